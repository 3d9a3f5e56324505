package core

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// TransactionStatusAPI looks up a transaction's lifecycle state, preferring
// transaction_status_api and degrading to condenser_api.get_transaction on
// nodes that do not run the plugin.
type TransactionStatusAPI struct {
	client *Client
}

// Status values synthesized by the condenser fallback.
const (
	StatusFoundInBlock = "found_in_block"
	StatusUnknown      = "unknown"
)

// FindTransaction resolves a transaction id to its status.
func (a *TransactionStatusAPI) FindTransaction(ctx context.Context, transactionID string) (*TransactionStatus, error) {
	var status TransactionStatus
	err := a.client.callInto(ctx, "transaction_status_api", "find_transaction",
		[]any{map[string]any{"transaction_id": transactionID}}, &status)
	if err == nil {
		return &status, nil
	}
	if shouldFallbackToCondenser(err) {
		return a.findTransactionWithCondenser(ctx, transactionID)
	}
	return nil, err
}

func (a *TransactionStatusAPI) findTransactionWithCondenser(ctx context.Context, transactionID string) (*TransactionStatus, error) {
	var found json.RawMessage
	err := a.client.callInto(ctx, "condenser_api", "get_transaction", []any{transactionID}, &found)
	if err == nil {
		return &TransactionStatus{Status: StatusFoundInBlock}, nil
	}

	var rpcErr *RPCError
	if errors.As(err, &rpcErr) && isUnknownTransactionError(rpcErr.Message) {
		return &TransactionStatus{Status: StatusUnknown}, nil
	}
	return nil, err
}

func shouldFallbackToCondenser(err error) bool {
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	message := strings.ToLower(rpcErr.Message)
	return strings.Contains(message, "could not find method") ||
		strings.Contains(message, "could not find api")
}

func isUnknownTransactionError(message string) bool {
	message = strings.ToLower(message)
	return strings.Contains(message, "unknown transaction") ||
		strings.Contains(message, "unable to find transaction") ||
		strings.Contains(message, "missing transaction")
}

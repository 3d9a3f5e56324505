package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the failover transport.
var (
	// ErrTimeout reports that a single node request exceeded the per-request
	// deadline configured at transport construction.
	ErrTimeout = errors.New("request timed out")

	// ErrAllNodesFailed reports that every node in the ring failed at the
	// transport level during one call.
	ErrAllNodesFailed = errors.New("all nodes failed")
)

// RPCError is an error payload returned by a node that answered the request.
// It never triggers failover: the node is up and rejected this request.
type RPCError struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// TransportError covers connection failures, non-2xx HTTP statuses and
// unreadable response bodies. It counts toward the per-node failure threshold.
type TransportError struct {
	Node   string
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Node == "" {
		return "transport error: " + e.Reason
	}
	return fmt.Sprintf("transport error: node %s: %s", e.Node, e.Reason)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SerializationError reports malformed wire data in either direction:
// invalid dates, bad hex, varint overflow, oversize symbols, truncated
// buffers, missing JSON-RPC fields.
type SerializationError struct {
	Reason string
}

func (e *SerializationError) Error() string { return "serialization error: " + e.Reason }

// KeyError reports an unusable key string: checksum mismatch, wrong network
// id or prefix, bad base58, a point off the curve.
type KeyError struct {
	Reason string
}

func (e *KeyError) Error() string { return "invalid key: " + e.Reason }

// SigningError reports a failed signing or recovery attempt, including the
// memo cipher's integrity-check mismatch.
type SigningError struct {
	Reason string
}

func (e *SigningError) Error() string { return "signing error: " + e.Reason }

// AssetError reports a malformed asset string or an amount that does not fit
// the declared precision.
type AssetError struct {
	Reason string
}

func (e *AssetError) Error() string { return "invalid asset: " + e.Reason }

// OtherError is the catch-all for failures outside the wire and key paths:
// RC arithmetic overflow, retired mining-operation serialization attempts,
// violated preconditions.
type OtherError struct {
	Reason string
}

func (e *OtherError) Error() string { return e.Reason }

// isTransportClass groups the error kinds the fallback chains treat as "the
// node did not process this request": transport failures, timeouts, a fully
// failed ring, and unreadable responses.
func isTransportClass(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrAllNodesFailed) {
		return true
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	var serializationErr *SerializationError
	return errors.As(err, &serializationErr)
}

func serializationErrorf(format string, args ...any) error {
	return &SerializationError{Reason: fmt.Sprintf(format, args...)}
}

func keyErrorf(format string, args ...any) error {
	return &KeyError{Reason: fmt.Sprintf(format, args...)}
}

func signingErrorf(format string, args ...any) error {
	return &SigningError{Reason: fmt.Sprintf(format, args...)}
}

func assetErrorf(format string, args ...any) error {
	return &AssetError{Reason: fmt.Sprintf(format, args...)}
}

package core

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// BroadcastAPI builds, signs and submits transactions.
type BroadcastAPI struct {
	client *Client
}

// DefaultExpiration is the head-time offset applied when the caller does not
// choose one.
const DefaultExpiration = 60 * time.Second

// broadcastConfirmPolls bounds the post-hoc confirmation loop of the
// asynchronous fallback path.
const broadcastConfirmPolls = 15

// CreateTransaction reads the dynamic global properties and derives the
// TaPoS reference fields and expiration for a fresh transaction.
func (a *BroadcastAPI) CreateTransaction(ctx context.Context, operations []Operation, expiration time.Duration) (*Transaction, error) {
	var props DynamicGlobalProperties
	if err := a.client.callInto(ctx, "condenser_api", "get_dynamic_global_properties", []any{}, &props); err != nil {
		return nil, err
	}

	blockID, err := hex.DecodeString(props.HeadBlockID)
	if err != nil {
		return nil, serializationErrorf("invalid head_block_id %q: %v", props.HeadBlockID, err)
	}
	if len(blockID) < 8 {
		return nil, &SerializationError{Reason: "head_block_id is too short to derive ref_block_prefix"}
	}
	refBlockPrefix := uint32(blockID[4]) | uint32(blockID[5])<<8 | uint32(blockID[6])<<16 | uint32(blockID[7])<<24

	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	headTime, err := ParseHiveTime(props.Time)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		RefBlockNum:    uint16(props.HeadBlockNumber & 0xFFFF),
		RefBlockPrefix: refBlockPrefix,
		Expiration:     FormatHiveTime(headTime.Add(expiration)),
		Operations:     operations,
		Extensions:     []string{},
	}, nil
}

// SignTransaction signs with the client's configured chain id.
func (a *BroadcastAPI) SignTransaction(tx *Transaction, keys ...*PrivateKey) (*SignedTransaction, error) {
	return SignTransaction(tx, keys, a.client.options.ChainID)
}

// Send submits a signed transaction synchronously. When the synchronous
// endpoint is unreachable or missing it falls back to the asynchronous
// broadcast with post-hoc confirmation polling.
func (a *BroadcastAPI) Send(ctx context.Context, tx *SignedTransaction) (*TransactionConfirmation, error) {
	var confirmation TransactionConfirmation
	err := a.client.callInto(ctx, "condenser_api", "broadcast_transaction_synchronous", []any{tx}, &confirmation)
	if err == nil {
		return &confirmation, nil
	}
	if shouldFallbackToAsyncBroadcast(err) {
		coreLog.WithError(err).Info("synchronous broadcast unavailable, falling back to async")
		return a.sendAsyncWithConfirmation(ctx, tx)
	}
	return nil, err
}

// SendOperations builds, signs and submits a transaction carrying the given
// operations with the default expiration.
func (a *BroadcastAPI) SendOperations(ctx context.Context, operations []Operation, key *PrivateKey) (*TransactionConfirmation, error) {
	tx, err := a.CreateTransaction(ctx, operations, 0)
	if err != nil {
		return nil, err
	}
	signed, err := a.SignTransaction(tx, key)
	if err != nil {
		return nil, err
	}
	return a.Send(ctx, signed)
}

func (a *BroadcastAPI) sendAsyncWithConfirmation(ctx context.Context, tx *SignedTransaction) (*TransactionConfirmation, error) {
	unsigned := tx.Unsigned()
	txID, err := TransactionID(&unsigned)
	if err != nil {
		return nil, err
	}

	if err := a.client.callInto(ctx, "condenser_api", "broadcast_transaction", []any{tx}, nil); err != nil {
		return nil, err
	}

	for poll := 0; poll < broadcastConfirmPolls; poll++ {
		var found json.RawMessage
		err := a.client.callInto(ctx, "condenser_api", "get_transaction", []any{txID}, &found)
		if err == nil {
			return confirmationFromCondenserTransaction(txID, found), nil
		}
		if !isTransientLookupError(err) {
			return nil, err
		}
		if err := sleepContext(ctx, time.Second); err != nil {
			return nil, err
		}
	}

	// The async broadcast went through but the tx was not visible within the
	// lookup window; report the id without block coordinates.
	return &TransactionConfirmation{ID: txID}, nil
}

func confirmationFromCondenserTransaction(txID string, payload json.RawMessage) *TransactionConfirmation {
	var decoded struct {
		BlockNum       uint32  `json:"block_num"`
		TransactionNum *uint32 `json:"transaction_num"`
		TrxNum         *uint32 `json:"trx_num"`
	}
	_ = json.Unmarshal(payload, &decoded)

	confirmation := &TransactionConfirmation{ID: txID, BlockNum: decoded.BlockNum}
	switch {
	case decoded.TransactionNum != nil:
		confirmation.TrxNum = *decoded.TransactionNum
	case decoded.TrxNum != nil:
		confirmation.TrxNum = *decoded.TrxNum
	}
	return confirmation
}

func shouldFallbackToAsyncBroadcast(err error) bool {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		message := strings.ToLower(rpcErr.Message)
		return strings.Contains(message, "could not find method") ||
			strings.Contains(message, "could not find api")
	}
	return isTransportClass(err)
}

func isTransientLookupError(err error) bool {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		message := strings.ToLower(rpcErr.Message)
		return strings.Contains(message, "unknown transaction") ||
			strings.Contains(message, "unable to find transaction") ||
			strings.Contains(message, "missing transaction") ||
			strings.Contains(message, "could not find method") ||
			strings.Contains(message, "could not find api")
	}
	return isTransportClass(err)
}

// Convenience helpers: one per broadcastable operation, mirroring the
// operation table. Each builds a single-operation transaction.

func (a *BroadcastAPI) Vote(ctx context.Context, op VoteOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) Comment(ctx context.Context, op CommentOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

// CommentWithOptions submits a comment together with its options in one
// transaction.
func (a *BroadcastAPI) CommentWithOptions(ctx context.Context, comment CommentOperation, options CommentOptionsOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&comment, &options}, key)
}

func (a *BroadcastAPI) Transfer(ctx context.Context, op TransferOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) TransferToVesting(ctx context.Context, op TransferToVestingOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) WithdrawVesting(ctx context.Context, op WithdrawVestingOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) LimitOrderCreate(ctx context.Context, op LimitOrderCreateOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) LimitOrderCancel(ctx context.Context, op LimitOrderCancelOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) FeedPublish(ctx context.Context, op FeedPublishOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) Convert(ctx context.Context, op ConvertOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) AccountCreate(ctx context.Context, op AccountCreateOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) AccountUpdate(ctx context.Context, op AccountUpdateOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) WitnessUpdate(ctx context.Context, op WitnessUpdateOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) AccountWitnessVote(ctx context.Context, op AccountWitnessVoteOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) AccountWitnessProxy(ctx context.Context, op AccountWitnessProxyOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) Custom(ctx context.Context, op CustomOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) ReportOverProduction(ctx context.Context, op ReportOverProductionOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) DeleteComment(ctx context.Context, op DeleteCommentOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) CustomJSON(ctx context.Context, op CustomJSONOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) CommentOptions(ctx context.Context, op CommentOptionsOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) SetWithdrawVestingRoute(ctx context.Context, op SetWithdrawVestingRouteOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) LimitOrderCreate2(ctx context.Context, op LimitOrderCreate2Operation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) ClaimAccount(ctx context.Context, op ClaimAccountOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) CreateClaimedAccount(ctx context.Context, op CreateClaimedAccountOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) RequestAccountRecovery(ctx context.Context, op RequestAccountRecoveryOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) RecoverAccount(ctx context.Context, op RecoverAccountOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) ChangeRecoveryAccount(ctx context.Context, op ChangeRecoveryAccountOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) EscrowTransfer(ctx context.Context, op EscrowTransferOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) EscrowDispute(ctx context.Context, op EscrowDisputeOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) EscrowRelease(ctx context.Context, op EscrowReleaseOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) EscrowApprove(ctx context.Context, op EscrowApproveOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) TransferToSavings(ctx context.Context, op TransferToSavingsOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) TransferFromSavings(ctx context.Context, op TransferFromSavingsOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) CancelTransferFromSavings(ctx context.Context, op CancelTransferFromSavingsOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) CustomBinary(ctx context.Context, op CustomBinaryOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) DeclineVotingRights(ctx context.Context, op DeclineVotingRightsOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) ResetAccount(ctx context.Context, op ResetAccountOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) SetResetAccount(ctx context.Context, op SetResetAccountOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) ClaimRewardBalance(ctx context.Context, op ClaimRewardBalanceOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) DelegateVestingShares(ctx context.Context, op DelegateVestingSharesOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) AccountCreateWithDelegation(ctx context.Context, op AccountCreateWithDelegationOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

// WitnessSetProperties encodes the given property map and broadcasts the
// witness_set_properties operation.
func (a *BroadcastAPI) WitnessSetProperties(ctx context.Context, owner string, props map[string]json.RawMessage, key *PrivateKey) (*TransactionConfirmation, error) {
	op, err := BuildWitnessSetProperties(owner, props)
	if err != nil {
		return nil, err
	}
	return a.SendOperations(ctx, []Operation{op}, key)
}

func (a *BroadcastAPI) AccountUpdate2(ctx context.Context, op AccountUpdate2Operation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) CreateProposal(ctx context.Context, op CreateProposalOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) UpdateProposalVotes(ctx context.Context, op UpdateProposalVotesOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) RemoveProposal(ctx context.Context, op RemoveProposalOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) UpdateProposal(ctx context.Context, op UpdateProposalOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) CollateralizedConvert(ctx context.Context, op CollateralizedConvertOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

func (a *BroadcastAPI) RecurrentTransfer(ctx context.Context, op RecurrentTransferOperation, key *PrivateKey) (*TransactionConfirmation, error) {
	return a.SendOperations(ctx, []Operation{&op}, key)
}

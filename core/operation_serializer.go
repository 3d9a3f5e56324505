package core

import (
	"encoding/hex"
	"sort"
)

// operationIDs maps each operation name to its wire id. The numbering is
// consensus-critical: any deviation produces incompatible bytes.
var operationIDs = map[string]uint32{
	"vote":                           0,
	"comment":                        1,
	"transfer":                       2,
	"transfer_to_vesting":            3,
	"withdraw_vesting":               4,
	"limit_order_create":             5,
	"limit_order_cancel":             6,
	"feed_publish":                   7,
	"convert":                        8,
	"account_create":                 9,
	"account_update":                 10,
	"witness_update":                 11,
	"account_witness_vote":           12,
	"account_witness_proxy":          13,
	"pow":                            14,
	"custom":                         15,
	"report_over_production":         16,
	"delete_comment":                 17,
	"custom_json":                    18,
	"comment_options":                19,
	"set_withdraw_vesting_route":     20,
	"limit_order_create2":            21,
	"claim_account":                  22,
	"create_claimed_account":         23,
	"request_account_recovery":       24,
	"recover_account":                25,
	"change_recovery_account":        26,
	"escrow_transfer":                27,
	"escrow_dispute":                 28,
	"escrow_release":                 29,
	"pow2":                           30,
	"escrow_approve":                 31,
	"transfer_to_savings":            32,
	"transfer_from_savings":          33,
	"cancel_transfer_from_savings":   34,
	"custom_binary":                  35,
	"decline_voting_rights":          36,
	"reset_account":                  37,
	"set_reset_account":              38,
	"claim_reward_balance":           39,
	"delegate_vesting_shares":        40,
	"account_create_with_delegation": 41,
	"witness_set_properties":         42,
	"account_update2":                43,
	"create_proposal":                44,
	"update_proposal_votes":          45,
	"remove_proposal":                46,
	"update_proposal":                47,
	"collateralized_convert":         48,
	"recurrent_transfer":             49,
}

var operationFactories = map[string]func() Operation{
	"vote":                           func() Operation { return &VoteOperation{} },
	"comment":                        func() Operation { return &CommentOperation{} },
	"transfer":                       func() Operation { return &TransferOperation{} },
	"transfer_to_vesting":            func() Operation { return &TransferToVestingOperation{} },
	"withdraw_vesting":               func() Operation { return &WithdrawVestingOperation{} },
	"limit_order_create":             func() Operation { return &LimitOrderCreateOperation{} },
	"limit_order_cancel":             func() Operation { return &LimitOrderCancelOperation{} },
	"feed_publish":                   func() Operation { return &FeedPublishOperation{} },
	"convert":                        func() Operation { return &ConvertOperation{} },
	"account_create":                 func() Operation { return &AccountCreateOperation{} },
	"account_update":                 func() Operation { return &AccountUpdateOperation{} },
	"witness_update":                 func() Operation { return &WitnessUpdateOperation{} },
	"account_witness_vote":           func() Operation { return &AccountWitnessVoteOperation{} },
	"account_witness_proxy":          func() Operation { return &AccountWitnessProxyOperation{} },
	"pow":                            func() Operation { return &PowOperation{} },
	"custom":                         func() Operation { return &CustomOperation{} },
	"report_over_production":         func() Operation { return &ReportOverProductionOperation{} },
	"delete_comment":                 func() Operation { return &DeleteCommentOperation{} },
	"custom_json":                    func() Operation { return &CustomJSONOperation{} },
	"comment_options":                func() Operation { return &CommentOptionsOperation{} },
	"set_withdraw_vesting_route":     func() Operation { return &SetWithdrawVestingRouteOperation{} },
	"limit_order_create2":            func() Operation { return &LimitOrderCreate2Operation{} },
	"claim_account":                  func() Operation { return &ClaimAccountOperation{} },
	"create_claimed_account":         func() Operation { return &CreateClaimedAccountOperation{} },
	"request_account_recovery":       func() Operation { return &RequestAccountRecoveryOperation{} },
	"recover_account":                func() Operation { return &RecoverAccountOperation{} },
	"change_recovery_account":        func() Operation { return &ChangeRecoveryAccountOperation{} },
	"escrow_transfer":                func() Operation { return &EscrowTransferOperation{} },
	"escrow_dispute":                 func() Operation { return &EscrowDisputeOperation{} },
	"escrow_release":                 func() Operation { return &EscrowReleaseOperation{} },
	"pow2":                           func() Operation { return &Pow2Operation{} },
	"escrow_approve":                 func() Operation { return &EscrowApproveOperation{} },
	"transfer_to_savings":            func() Operation { return &TransferToSavingsOperation{} },
	"transfer_from_savings":          func() Operation { return &TransferFromSavingsOperation{} },
	"cancel_transfer_from_savings":   func() Operation { return &CancelTransferFromSavingsOperation{} },
	"custom_binary":                  func() Operation { return &CustomBinaryOperation{} },
	"decline_voting_rights":          func() Operation { return &DeclineVotingRightsOperation{} },
	"reset_account":                  func() Operation { return &ResetAccountOperation{} },
	"set_reset_account":              func() Operation { return &SetResetAccountOperation{} },
	"claim_reward_balance":           func() Operation { return &ClaimRewardBalanceOperation{} },
	"delegate_vesting_shares":        func() Operation { return &DelegateVestingSharesOperation{} },
	"account_create_with_delegation": func() Operation { return &AccountCreateWithDelegationOperation{} },
	"witness_set_properties":         func() Operation { return &WitnessSetPropertiesOperation{} },
	"account_update2":                func() Operation { return &AccountUpdate2Operation{} },
	"create_proposal":                func() Operation { return &CreateProposalOperation{} },
	"update_proposal_votes":          func() Operation { return &UpdateProposalVotesOperation{} },
	"remove_proposal":                func() Operation { return &RemoveProposalOperation{} },
	"update_proposal":                func() Operation { return &UpdateProposalOperation{} },
	"collateralized_convert":         func() Operation { return &CollateralizedConvertOperation{} },
	"recurrent_transfer":             func() Operation { return &RecurrentTransferOperation{} },
}

// OperationID returns the wire id for an operation name.
func OperationID(name string) (uint32, bool) {
	id, ok := operationIDs[name]
	return id, ok
}

// SerializeOperation writes the full envelope: varint(id) followed by the
// body fields.
func SerializeOperation(op Operation) ([]byte, error) {
	var e encoder
	if err := serializeOperationTo(&e, op); err != nil {
		return nil, err
	}
	return e.bytes(), nil
}

func serializeOperationTo(e *encoder, op Operation) error {
	id, ok := operationIDs[op.OperationName()]
	if !ok {
		return serializationErrorf("unknown operation %q", op.OperationName())
	}
	e.writeVarint32(id)
	return op.serializeOp(e)
}

func writeFixedBinaryHex(e *encoder, hexValue string, expectedLen int) error {
	raw, err := hex.DecodeString(hexValue)
	if err != nil {
		return serializationErrorf("invalid hex field %q: %v", hexValue, err)
	}
	if len(raw) != expectedLen {
		return serializationErrorf("expected %d bytes, got %d", expectedLen, len(raw))
	}
	e.buf.Write(raw)
	return nil
}

func writeSignedBlockHeader(e *encoder, header SignedBlockHeader) error {
	if err := writeFixedBinaryHex(e, header.Previous, 20); err != nil {
		return err
	}
	if err := e.writeDate(header.Timestamp); err != nil {
		return err
	}
	e.writeString(header.Witness)
	if err := writeFixedBinaryHex(e, header.TransactionMerkleRoot, 20); err != nil {
		return err
	}
	if len(header.Extensions) != 0 {
		return &SerializationError{Reason: "signed block header extensions are expected to be empty"}
	}
	e.writeVoidArray()
	return writeFixedBinaryHex(e, header.WitnessSignature, 65)
}

func (op *VoteOperation) OperationName() string { return "vote" }

func (op *VoteOperation) serializeOp(e *encoder) error {
	e.writeString(op.Voter)
	e.writeString(op.Author)
	e.writeString(op.Permlink)
	e.writeI16(op.Weight)
	return nil
}

func (op *CommentOperation) OperationName() string { return "comment" }

func (op *CommentOperation) serializeOp(e *encoder) error {
	e.writeString(op.ParentAuthor)
	e.writeString(op.ParentPermlink)
	e.writeString(op.Author)
	e.writeString(op.Permlink)
	e.writeString(op.Title)
	e.writeString(op.Body)
	e.writeString(op.JSONMetadata)
	return nil
}

func (op *TransferOperation) OperationName() string { return "transfer" }

func (op *TransferOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeString(op.To)
	if err := e.writeAsset(op.Amount); err != nil {
		return err
	}
	e.writeString(op.Memo)
	return nil
}

func (op *TransferToVestingOperation) OperationName() string { return "transfer_to_vesting" }

func (op *TransferToVestingOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeString(op.To)
	return e.writeAsset(op.Amount)
}

func (op *WithdrawVestingOperation) OperationName() string { return "withdraw_vesting" }

func (op *WithdrawVestingOperation) serializeOp(e *encoder) error {
	e.writeString(op.Account)
	return e.writeAsset(op.VestingShares)
}

func (op *LimitOrderCreateOperation) OperationName() string { return "limit_order_create" }

func (op *LimitOrderCreateOperation) serializeOp(e *encoder) error {
	e.writeString(op.Owner)
	e.writeU32(op.OrderID)
	if err := e.writeAsset(op.AmountToSell); err != nil {
		return err
	}
	if err := e.writeAsset(op.MinToReceive); err != nil {
		return err
	}
	e.writeBool(op.FillOrKill)
	return e.writeDate(op.Expiration)
}

func (op *LimitOrderCancelOperation) OperationName() string { return "limit_order_cancel" }

func (op *LimitOrderCancelOperation) serializeOp(e *encoder) error {
	e.writeString(op.Owner)
	e.writeU32(op.OrderID)
	return nil
}

func (op *FeedPublishOperation) OperationName() string { return "feed_publish" }

func (op *FeedPublishOperation) serializeOp(e *encoder) error {
	e.writeString(op.Publisher)
	return e.writePrice(op.ExchangeRate)
}

func (op *ConvertOperation) OperationName() string { return "convert" }

func (op *ConvertOperation) serializeOp(e *encoder) error {
	e.writeString(op.Owner)
	e.writeU32(op.RequestID)
	return e.writeAsset(op.Amount)
}

func (op *AccountCreateOperation) OperationName() string { return "account_create" }

func (op *AccountCreateOperation) serializeOp(e *encoder) error {
	if err := e.writeAsset(op.Fee); err != nil {
		return err
	}
	e.writeString(op.Creator)
	e.writeString(op.NewAccountName)
	if err := e.writeAuthority(op.Owner); err != nil {
		return err
	}
	if err := e.writeAuthority(op.Active); err != nil {
		return err
	}
	if err := e.writeAuthority(op.Posting); err != nil {
		return err
	}
	if err := e.writePublicKeyString(op.MemoKey); err != nil {
		return err
	}
	e.writeString(op.JSONMetadata)
	return nil
}

func (op *AccountUpdateOperation) OperationName() string { return "account_update" }

func (op *AccountUpdateOperation) serializeOp(e *encoder) error {
	e.writeString(op.Account)
	if err := e.writeOptionalAuthority(op.Owner); err != nil {
		return err
	}
	if err := e.writeOptionalAuthority(op.Active); err != nil {
		return err
	}
	if err := e.writeOptionalAuthority(op.Posting); err != nil {
		return err
	}
	if err := e.writePublicKeyString(op.MemoKey); err != nil {
		return err
	}
	e.writeString(op.JSONMetadata)
	return nil
}

func (op *WitnessUpdateOperation) OperationName() string { return "witness_update" }

func (op *WitnessUpdateOperation) serializeOp(e *encoder) error {
	e.writeString(op.Owner)
	e.writeString(op.URL)
	if err := e.writePublicKeyString(op.BlockSigningKey); err != nil {
		return err
	}
	if err := e.writeChainProperties(op.Props); err != nil {
		return err
	}
	return e.writeAsset(op.Fee)
}

func (op *AccountWitnessVoteOperation) OperationName() string { return "account_witness_vote" }

func (op *AccountWitnessVoteOperation) serializeOp(e *encoder) error {
	e.writeString(op.Account)
	e.writeString(op.Witness)
	e.writeBool(op.Approve)
	return nil
}

func (op *AccountWitnessProxyOperation) OperationName() string { return "account_witness_proxy" }

func (op *AccountWitnessProxyOperation) serializeOp(e *encoder) error {
	e.writeString(op.Account)
	e.writeString(op.Proxy)
	return nil
}

func (op *PowOperation) OperationName() string { return "pow" }

func (op *PowOperation) serializeOp(e *encoder) error {
	return &OtherError{Reason: "pow operation serialization is unsupported"}
}

func (op *CustomOperation) OperationName() string { return "custom" }

func (op *CustomOperation) serializeOp(e *encoder) error {
	e.writeStringArray(op.RequiredAuths)
	e.writeU16(op.ID)
	e.writeVariableBinary(op.Data)
	return nil
}

func (op *ReportOverProductionOperation) OperationName() string { return "report_over_production" }

func (op *ReportOverProductionOperation) serializeOp(e *encoder) error {
	e.writeString(op.Reporter)
	if err := writeSignedBlockHeader(e, op.FirstBlock); err != nil {
		return err
	}
	return writeSignedBlockHeader(e, op.SecondBlock)
}

func (op *DeleteCommentOperation) OperationName() string { return "delete_comment" }

func (op *DeleteCommentOperation) serializeOp(e *encoder) error {
	e.writeString(op.Author)
	e.writeString(op.Permlink)
	return nil
}

func (op *CustomJSONOperation) OperationName() string { return "custom_json" }

func (op *CustomJSONOperation) serializeOp(e *encoder) error {
	e.writeStringArray(op.RequiredAuths)
	e.writeStringArray(op.RequiredPostingAuths)
	e.writeString(op.ID)
	e.writeString(op.JSON)
	return nil
}

func (op *CommentOptionsOperation) OperationName() string { return "comment_options" }

func (op *CommentOptionsOperation) serializeOp(e *encoder) error {
	e.writeString(op.Author)
	e.writeString(op.Permlink)
	if err := e.writeAsset(op.MaxAcceptedPayout); err != nil {
		return err
	}
	e.writeU16(op.PercentHBD)
	e.writeBool(op.AllowVotes)
	e.writeBool(op.AllowCurationReward)
	e.writeVarint32(uint32(len(op.Extensions)))
	for _, ext := range op.Extensions {
		e.writeVarint32(0)
		e.writeVarint32(uint32(len(ext.Beneficiaries)))
		for _, route := range ext.Beneficiaries {
			e.writeString(route.Account)
			e.writeU16(route.Weight)
		}
	}
	return nil
}

func (op *SetWithdrawVestingRouteOperation) OperationName() string { return "set_withdraw_vesting_route" }

func (op *SetWithdrawVestingRouteOperation) serializeOp(e *encoder) error {
	e.writeString(op.FromAccount)
	e.writeString(op.ToAccount)
	e.writeU16(op.Percent)
	e.writeBool(op.AutoVest)
	return nil
}

func (op *LimitOrderCreate2Operation) OperationName() string { return "limit_order_create2" }

func (op *LimitOrderCreate2Operation) serializeOp(e *encoder) error {
	e.writeString(op.Owner)
	e.writeU32(op.OrderID)
	if err := e.writeAsset(op.AmountToSell); err != nil {
		return err
	}
	if err := e.writePrice(op.ExchangeRate); err != nil {
		return err
	}
	e.writeBool(op.FillOrKill)
	return e.writeDate(op.Expiration)
}

func (op *ClaimAccountOperation) OperationName() string { return "claim_account" }

func (op *ClaimAccountOperation) serializeOp(e *encoder) error {
	e.writeString(op.Creator)
	if err := e.writeAsset(op.Fee); err != nil {
		return err
	}
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *CreateClaimedAccountOperation) OperationName() string { return "create_claimed_account" }

func (op *CreateClaimedAccountOperation) serializeOp(e *encoder) error {
	e.writeString(op.Creator)
	e.writeString(op.NewAccountName)
	if err := e.writeAuthority(op.Owner); err != nil {
		return err
	}
	if err := e.writeAuthority(op.Active); err != nil {
		return err
	}
	if err := e.writeAuthority(op.Posting); err != nil {
		return err
	}
	if err := e.writePublicKeyString(op.MemoKey); err != nil {
		return err
	}
	e.writeString(op.JSONMetadata)
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *RequestAccountRecoveryOperation) OperationName() string { return "request_account_recovery" }

func (op *RequestAccountRecoveryOperation) serializeOp(e *encoder) error {
	e.writeString(op.RecoveryAccount)
	e.writeString(op.AccountToRecover)
	if err := e.writeAuthority(op.NewOwnerAuthority); err != nil {
		return err
	}
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *RecoverAccountOperation) OperationName() string { return "recover_account" }

func (op *RecoverAccountOperation) serializeOp(e *encoder) error {
	e.writeString(op.AccountToRecover)
	if err := e.writeAuthority(op.NewOwnerAuthority); err != nil {
		return err
	}
	if err := e.writeAuthority(op.RecentOwnerAuthority); err != nil {
		return err
	}
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *ChangeRecoveryAccountOperation) OperationName() string { return "change_recovery_account" }

func (op *ChangeRecoveryAccountOperation) serializeOp(e *encoder) error {
	e.writeString(op.AccountToRecover)
	e.writeString(op.NewRecoveryAccount)
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *EscrowTransferOperation) OperationName() string { return "escrow_transfer" }

func (op *EscrowTransferOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeString(op.To)
	if err := e.writeAsset(op.HBDAmount); err != nil {
		return err
	}
	if err := e.writeAsset(op.HiveAmount); err != nil {
		return err
	}
	e.writeU32(op.EscrowID)
	e.writeString(op.Agent)
	if err := e.writeAsset(op.Fee); err != nil {
		return err
	}
	e.writeString(op.JSONMeta)
	if err := e.writeDate(op.RatificationDeadline); err != nil {
		return err
	}
	return e.writeDate(op.EscrowExpiration)
}

func (op *EscrowDisputeOperation) OperationName() string { return "escrow_dispute" }

func (op *EscrowDisputeOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeString(op.To)
	e.writeString(op.Agent)
	e.writeString(op.Who)
	e.writeU32(op.EscrowID)
	return nil
}

func (op *EscrowReleaseOperation) OperationName() string { return "escrow_release" }

func (op *EscrowReleaseOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeString(op.To)
	e.writeString(op.Agent)
	e.writeString(op.Who)
	e.writeString(op.Receiver)
	e.writeU32(op.EscrowID)
	if err := e.writeAsset(op.HBDAmount); err != nil {
		return err
	}
	return e.writeAsset(op.HiveAmount)
}

func (op *Pow2Operation) OperationName() string { return "pow2" }

func (op *Pow2Operation) serializeOp(e *encoder) error {
	return &OtherError{Reason: "pow2 operation serialization is unsupported"}
}

func (op *EscrowApproveOperation) OperationName() string { return "escrow_approve" }

func (op *EscrowApproveOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeString(op.To)
	e.writeString(op.Agent)
	e.writeString(op.Who)
	e.writeU32(op.EscrowID)
	e.writeBool(op.Approve)
	return nil
}

func (op *TransferToSavingsOperation) OperationName() string { return "transfer_to_savings" }

func (op *TransferToSavingsOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeString(op.To)
	if err := e.writeAsset(op.Amount); err != nil {
		return err
	}
	e.writeString(op.Memo)
	return nil
}

func (op *TransferFromSavingsOperation) OperationName() string { return "transfer_from_savings" }

func (op *TransferFromSavingsOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeU32(op.RequestID)
	e.writeString(op.To)
	if err := e.writeAsset(op.Amount); err != nil {
		return err
	}
	e.writeString(op.Memo)
	return nil
}

func (op *CancelTransferFromSavingsOperation) OperationName() string {
	return "cancel_transfer_from_savings"
}

func (op *CancelTransferFromSavingsOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeU32(op.RequestID)
	return nil
}

func (op *CustomBinaryOperation) OperationName() string { return "custom_binary" }

func (op *CustomBinaryOperation) serializeOp(e *encoder) error {
	e.writeStringArray(op.RequiredOwnerAuths)
	e.writeStringArray(op.RequiredActiveAuths)
	e.writeStringArray(op.RequiredPostingAuths)
	e.writeVarint32(uint32(len(op.RequiredAuths)))
	for _, authority := range op.RequiredAuths {
		if err := e.writeAuthority(authority); err != nil {
			return err
		}
	}
	e.writeString(op.ID)
	e.writeVariableBinary(op.Data)
	return nil
}

func (op *DeclineVotingRightsOperation) OperationName() string { return "decline_voting_rights" }

func (op *DeclineVotingRightsOperation) serializeOp(e *encoder) error {
	e.writeString(op.Account)
	e.writeBool(op.Decline)
	return nil
}

func (op *ResetAccountOperation) OperationName() string { return "reset_account" }

func (op *ResetAccountOperation) serializeOp(e *encoder) error {
	e.writeString(op.ResetAccount)
	e.writeString(op.AccountToReset)
	return e.writeAuthority(op.NewOwnerAuthority)
}

func (op *SetResetAccountOperation) OperationName() string { return "set_reset_account" }

func (op *SetResetAccountOperation) serializeOp(e *encoder) error {
	e.writeString(op.Account)
	e.writeString(op.CurrentResetAccount)
	e.writeString(op.ResetAccount)
	return nil
}

func (op *ClaimRewardBalanceOperation) OperationName() string { return "claim_reward_balance" }

func (op *ClaimRewardBalanceOperation) serializeOp(e *encoder) error {
	e.writeString(op.Account)
	if err := e.writeAsset(op.RewardHive); err != nil {
		return err
	}
	if err := e.writeAsset(op.RewardHBD); err != nil {
		return err
	}
	return e.writeAsset(op.RewardVests)
}

func (op *DelegateVestingSharesOperation) OperationName() string { return "delegate_vesting_shares" }

func (op *DelegateVestingSharesOperation) serializeOp(e *encoder) error {
	e.writeString(op.Delegator)
	e.writeString(op.Delegatee)
	return e.writeAsset(op.VestingShares)
}

func (op *AccountCreateWithDelegationOperation) OperationName() string {
	return "account_create_with_delegation"
}

func (op *AccountCreateWithDelegationOperation) serializeOp(e *encoder) error {
	if err := e.writeAsset(op.Fee); err != nil {
		return err
	}
	if err := e.writeAsset(op.Delegation); err != nil {
		return err
	}
	e.writeString(op.Creator)
	e.writeString(op.NewAccountName)
	if err := e.writeAuthority(op.Owner); err != nil {
		return err
	}
	if err := e.writeAuthority(op.Active); err != nil {
		return err
	}
	if err := e.writeAuthority(op.Posting); err != nil {
		return err
	}
	if err := e.writePublicKeyString(op.MemoKey); err != nil {
		return err
	}
	e.writeString(op.JSONMetadata)
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *WitnessSetPropertiesOperation) OperationName() string { return "witness_set_properties" }

func (op *WitnessSetPropertiesOperation) serializeOp(e *encoder) error {
	e.writeString(op.Owner)
	props := make([]WitnessProp, len(op.Props))
	copy(props, op.Props)
	sort.Slice(props, func(i, j int) bool { return props[i].Key < props[j].Key })
	e.writeVarint32(uint32(len(props)))
	for _, prop := range props {
		e.writeString(prop.Key)
		e.writeVariableBinary(prop.Value)
	}
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *AccountUpdate2Operation) OperationName() string { return "account_update2" }

func (op *AccountUpdate2Operation) serializeOp(e *encoder) error {
	e.writeString(op.Account)
	if err := e.writeOptionalAuthority(op.Owner); err != nil {
		return err
	}
	if err := e.writeOptionalAuthority(op.Active); err != nil {
		return err
	}
	if err := e.writeOptionalAuthority(op.Posting); err != nil {
		return err
	}
	if op.MemoKey == nil {
		e.writeU8(0)
	} else {
		e.writeU8(1)
		if err := e.writePublicKeyString(*op.MemoKey); err != nil {
			return err
		}
	}
	e.writeString(op.JSONMetadata)
	e.writeString(op.PostingJSONMetadata)
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *CreateProposalOperation) OperationName() string { return "create_proposal" }

func (op *CreateProposalOperation) serializeOp(e *encoder) error {
	e.writeString(op.Creator)
	e.writeString(op.Receiver)
	if err := e.writeDate(op.StartDate); err != nil {
		return err
	}
	if err := e.writeDate(op.EndDate); err != nil {
		return err
	}
	if err := e.writeAsset(op.DailyPay); err != nil {
		return err
	}
	e.writeString(op.Subject)
	e.writeString(op.Permlink)
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *UpdateProposalVotesOperation) OperationName() string { return "update_proposal_votes" }

func (op *UpdateProposalVotesOperation) serializeOp(e *encoder) error {
	e.writeString(op.Voter)
	e.writeVarint32(uint32(len(op.ProposalIDs)))
	for _, id := range op.ProposalIDs {
		e.writeI64(id)
	}
	e.writeBool(op.Approve)
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *RemoveProposalOperation) OperationName() string { return "remove_proposal" }

func (op *RemoveProposalOperation) serializeOp(e *encoder) error {
	e.writeString(op.ProposalOwner)
	e.writeVarint32(uint32(len(op.ProposalIDs)))
	for _, id := range op.ProposalIDs {
		e.writeI64(id)
	}
	return writeEmptyExtensions(e, len(op.Extensions))
}

func (op *UpdateProposalOperation) OperationName() string { return "update_proposal" }

func (op *UpdateProposalOperation) serializeOp(e *encoder) error {
	e.writeU64(op.ProposalID)
	e.writeString(op.Creator)
	if err := e.writeAsset(op.DailyPay); err != nil {
		return err
	}
	e.writeString(op.Subject)
	e.writeString(op.Permlink)
	e.writeVarint32(uint32(len(op.Extensions)))
	for _, ext := range op.Extensions {
		if ext.EndDate == nil {
			e.writeVarint32(0)
			continue
		}
		e.writeVarint32(1)
		if err := e.writeDate(*ext.EndDate); err != nil {
			return err
		}
	}
	return nil
}

func (op *CollateralizedConvertOperation) OperationName() string { return "collateralized_convert" }

func (op *CollateralizedConvertOperation) serializeOp(e *encoder) error {
	e.writeString(op.Owner)
	e.writeU32(op.RequestID)
	return e.writeAsset(op.Amount)
}

func (op *RecurrentTransferOperation) OperationName() string { return "recurrent_transfer" }

func (op *RecurrentTransferOperation) serializeOp(e *encoder) error {
	e.writeString(op.From)
	e.writeString(op.To)
	if err := e.writeAsset(op.Amount); err != nil {
		return err
	}
	e.writeString(op.Memo)
	e.writeU16(op.Recurrence)
	e.writeU16(op.Executions)
	return writeEmptyExtensions(e, len(op.Extensions))
}

// writeEmptyExtensions enforces the void-extension rule: empty lists emit a
// zero-length array, anything else is rejected.
func writeEmptyExtensions(e *encoder, count int) error {
	if count != 0 {
		return &SerializationError{Reason: "void extensions must be empty"}
	}
	e.writeVoidArray()
	return nil
}

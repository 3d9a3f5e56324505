package core

import (
	"encoding/hex"
	"encoding/json"
)

// Operation is one of the chain's fifty tagged transaction payloads. The
// JSON form is the two-element tuple ["name", body]; the binary form is
// varint(id) followed by the body fields in declared order.
type Operation interface {
	// OperationName returns the chain's snake_case discriminant.
	OperationName() string
	serializeOp(e *encoder) error
}

// HexBytes is a byte payload rendered as a hex string in JSON.
type HexBytes []byte

func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &SerializationError{Reason: "binary field must be a hex string"}
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return serializationErrorf("invalid hex field %q: %v", raw, err)
	}
	*b = decoded
	return nil
}

// BeneficiaryRoute routes a share of a comment's rewards to an account.
type BeneficiaryRoute struct {
	Account string `json:"account"`
	Weight  uint16 `json:"weight"`
}

// CommentOptionsExtension is the beneficiaries extension of comment_options.
type CommentOptionsExtension struct {
	Beneficiaries []BeneficiaryRoute
}

func (e CommentOptionsExtension) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type": "beneficiaries",
		"value": map[string]any{
			"beneficiaries": e.Beneficiaries,
		},
	})
}

func (e *CommentOptionsExtension) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  string `json:"type"`
		Value struct {
			Beneficiaries []BeneficiaryRoute `json:"beneficiaries"`
		} `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type != "beneficiaries" {
		return serializationErrorf("unsupported comment_options extension %q", raw.Type)
	}
	e.Beneficiaries = raw.Value.Beneficiaries
	return nil
}

// UpdateProposalExtension is either void or a replacement end date.
type UpdateProposalExtension struct {
	EndDate *string
}

func (e UpdateProposalExtension) MarshalJSON() ([]byte, error) {
	if e.EndDate == nil {
		return json.Marshal(map[string]any{"type": "void"})
	}
	return json.Marshal(map[string]any{
		"type":  "end_date",
		"value": map[string]string{"end_date": *e.EndDate},
	})
}

func (e *UpdateProposalExtension) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  string `json:"type"`
		Value struct {
			EndDate string `json:"end_date"`
		} `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case "void":
		e.EndDate = nil
	case "end_date":
		endDate := raw.Value.EndDate
		e.EndDate = &endDate
	default:
		return serializationErrorf("unsupported update_proposal extension %q", raw.Type)
	}
	return nil
}

// WitnessProp is one pre-serialized witness property, JSON-encoded as the
// tuple ["name", "hex"].
type WitnessProp struct {
	Key   string
	Value HexBytes
}

func (p WitnessProp) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Key, p.Value})
}

func (p *WitnessProp) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return &SerializationError{Reason: "witness prop must be a 2-item array"}
	}
	if err := json.Unmarshal(pair[0], &p.Key); err != nil {
		return &SerializationError{Reason: "witness prop key must be a string"}
	}
	return json.Unmarshal(pair[1], &p.Value)
}

type VoteOperation struct {
	Voter    string `json:"voter"`
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
	Weight   int16  `json:"weight"`
}

type CommentOperation struct {
	ParentAuthor   string `json:"parent_author"`
	ParentPermlink string `json:"parent_permlink"`
	Author         string `json:"author"`
	Permlink       string `json:"permlink"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	JSONMetadata   string `json:"json_metadata"`
}

type TransferOperation struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Asset  `json:"amount"`
	Memo   string `json:"memo"`
}

type TransferToVestingOperation struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Asset  `json:"amount"`
}

type WithdrawVestingOperation struct {
	Account       string `json:"account"`
	VestingShares Asset  `json:"vesting_shares"`
}

type LimitOrderCreateOperation struct {
	Owner        string `json:"owner"`
	OrderID      uint32 `json:"orderid"`
	AmountToSell Asset  `json:"amount_to_sell"`
	MinToReceive Asset  `json:"min_to_receive"`
	FillOrKill   bool   `json:"fill_or_kill"`
	Expiration   string `json:"expiration"`
}

type LimitOrderCancelOperation struct {
	Owner   string `json:"owner"`
	OrderID uint32 `json:"orderid"`
}

type FeedPublishOperation struct {
	Publisher    string `json:"publisher"`
	ExchangeRate Price  `json:"exchange_rate"`
}

type ConvertOperation struct {
	Owner     string `json:"owner"`
	RequestID uint32 `json:"requestid"`
	Amount    Asset  `json:"amount"`
}

type AccountCreateOperation struct {
	Fee            Asset     `json:"fee"`
	Creator        string    `json:"creator"`
	NewAccountName string    `json:"new_account_name"`
	Owner          Authority `json:"owner"`
	Active         Authority `json:"active"`
	Posting        Authority `json:"posting"`
	MemoKey        string    `json:"memo_key"`
	JSONMetadata   string    `json:"json_metadata"`
}

type AccountUpdateOperation struct {
	Account      string     `json:"account"`
	Owner        *Authority `json:"owner,omitempty"`
	Active       *Authority `json:"active,omitempty"`
	Posting      *Authority `json:"posting,omitempty"`
	MemoKey      string     `json:"memo_key"`
	JSONMetadata string     `json:"json_metadata"`
}

type WitnessUpdateOperation struct {
	Owner           string          `json:"owner"`
	URL             string          `json:"url"`
	BlockSigningKey string          `json:"block_signing_key"`
	Props           ChainProperties `json:"props"`
	Fee             Asset           `json:"fee"`
}

type AccountWitnessVoteOperation struct {
	Account string `json:"account"`
	Witness string `json:"witness"`
	Approve bool   `json:"approve"`
}

type AccountWitnessProxyOperation struct {
	Account string `json:"account"`
	Proxy   string `json:"proxy"`
}

// PowOperation is a retired mining operation: it round-trips JSON for
// history decoding but refuses binary serialization.
type PowOperation struct {
	Raw json.RawMessage
}

func (op PowOperation) MarshalJSON() ([]byte, error) {
	if op.Raw == nil {
		return []byte("{}"), nil
	}
	return op.Raw, nil
}

func (op *PowOperation) UnmarshalJSON(data []byte) error {
	op.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type CustomOperation struct {
	RequiredAuths []string `json:"required_auths"`
	ID            uint16   `json:"id"`
	Data          HexBytes `json:"data"`
}

type ReportOverProductionOperation struct {
	Reporter    string            `json:"reporter"`
	FirstBlock  SignedBlockHeader `json:"first_block"`
	SecondBlock SignedBlockHeader `json:"second_block"`
}

type DeleteCommentOperation struct {
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
}

type CustomJSONOperation struct {
	RequiredAuths        []string `json:"required_auths"`
	RequiredPostingAuths []string `json:"required_posting_auths"`
	ID                   string   `json:"id"`
	JSON                 string   `json:"json"`
}

type CommentOptionsOperation struct {
	Author              string                    `json:"author"`
	Permlink            string                    `json:"permlink"`
	MaxAcceptedPayout   Asset                     `json:"max_accepted_payout"`
	PercentHBD          uint16                    `json:"percent_hbd"`
	AllowVotes          bool                      `json:"allow_votes"`
	AllowCurationReward bool                      `json:"allow_curation_rewards"`
	Extensions          []CommentOptionsExtension `json:"extensions"`
}

type SetWithdrawVestingRouteOperation struct {
	FromAccount string `json:"from_account"`
	ToAccount   string `json:"to_account"`
	Percent     uint16 `json:"percent"`
	AutoVest    bool   `json:"auto_vest"`
}

type LimitOrderCreate2Operation struct {
	Owner        string `json:"owner"`
	OrderID      uint32 `json:"orderid"`
	AmountToSell Asset  `json:"amount_to_sell"`
	ExchangeRate Price  `json:"exchange_rate"`
	FillOrKill   bool   `json:"fill_or_kill"`
	Expiration   string `json:"expiration"`
}

type ClaimAccountOperation struct {
	Creator    string            `json:"creator"`
	Fee        Asset             `json:"fee"`
	Extensions []json.RawMessage `json:"extensions"`
}

type CreateClaimedAccountOperation struct {
	Creator        string            `json:"creator"`
	NewAccountName string            `json:"new_account_name"`
	Owner          Authority         `json:"owner"`
	Active         Authority         `json:"active"`
	Posting        Authority         `json:"posting"`
	MemoKey        string            `json:"memo_key"`
	JSONMetadata   string            `json:"json_metadata"`
	Extensions     []json.RawMessage `json:"extensions"`
}

type RequestAccountRecoveryOperation struct {
	RecoveryAccount   string            `json:"recovery_account"`
	AccountToRecover  string            `json:"account_to_recover"`
	NewOwnerAuthority Authority         `json:"new_owner_authority"`
	Extensions        []json.RawMessage `json:"extensions"`
}

type RecoverAccountOperation struct {
	AccountToRecover     string            `json:"account_to_recover"`
	NewOwnerAuthority    Authority         `json:"new_owner_authority"`
	RecentOwnerAuthority Authority         `json:"recent_owner_authority"`
	Extensions           []json.RawMessage `json:"extensions"`
}

type ChangeRecoveryAccountOperation struct {
	AccountToRecover   string            `json:"account_to_recover"`
	NewRecoveryAccount string            `json:"new_recovery_account"`
	Extensions         []json.RawMessage `json:"extensions"`
}

type EscrowTransferOperation struct {
	From                 string `json:"from"`
	To                   string `json:"to"`
	HBDAmount            Asset  `json:"hbd_amount"`
	HiveAmount           Asset  `json:"hive_amount"`
	EscrowID             uint32 `json:"escrow_id"`
	Agent                string `json:"agent"`
	Fee                  Asset  `json:"fee"`
	JSONMeta             string `json:"json_meta"`
	RatificationDeadline string `json:"ratification_deadline"`
	EscrowExpiration     string `json:"escrow_expiration"`
}

type EscrowDisputeOperation struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Agent    string `json:"agent"`
	Who      string `json:"who"`
	EscrowID uint32 `json:"escrow_id"`
}

type EscrowReleaseOperation struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Agent      string `json:"agent"`
	Who        string `json:"who"`
	Receiver   string `json:"receiver"`
	EscrowID   uint32 `json:"escrow_id"`
	HBDAmount  Asset  `json:"hbd_amount"`
	HiveAmount Asset  `json:"hive_amount"`
}

// Pow2Operation is the second retired mining operation; see PowOperation.
type Pow2Operation struct {
	Raw json.RawMessage
}

func (op Pow2Operation) MarshalJSON() ([]byte, error) {
	if op.Raw == nil {
		return []byte("{}"), nil
	}
	return op.Raw, nil
}

func (op *Pow2Operation) UnmarshalJSON(data []byte) error {
	op.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type EscrowApproveOperation struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Agent    string `json:"agent"`
	Who      string `json:"who"`
	EscrowID uint32 `json:"escrow_id"`
	Approve  bool   `json:"approve"`
}

type TransferToSavingsOperation struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Asset  `json:"amount"`
	Memo   string `json:"memo"`
}

type TransferFromSavingsOperation struct {
	From      string `json:"from"`
	RequestID uint32 `json:"request_id"`
	To        string `json:"to"`
	Amount    Asset  `json:"amount"`
	Memo      string `json:"memo"`
}

type CancelTransferFromSavingsOperation struct {
	From      string `json:"from"`
	RequestID uint32 `json:"request_id"`
}

type CustomBinaryOperation struct {
	RequiredOwnerAuths   []string    `json:"required_owner_auths"`
	RequiredActiveAuths  []string    `json:"required_active_auths"`
	RequiredPostingAuths []string    `json:"required_posting_auths"`
	RequiredAuths        []Authority `json:"required_auths"`
	ID                   string      `json:"id"`
	Data                 HexBytes    `json:"data"`
}

type DeclineVotingRightsOperation struct {
	Account string `json:"account"`
	Decline bool   `json:"decline"`
}

type ResetAccountOperation struct {
	ResetAccount      string    `json:"reset_account"`
	AccountToReset    string    `json:"account_to_reset"`
	NewOwnerAuthority Authority `json:"new_owner_authority"`
}

type SetResetAccountOperation struct {
	Account             string `json:"account"`
	CurrentResetAccount string `json:"current_reset_account"`
	ResetAccount        string `json:"reset_account"`
}

type ClaimRewardBalanceOperation struct {
	Account     string `json:"account"`
	RewardHive  Asset  `json:"reward_hive"`
	RewardHBD   Asset  `json:"reward_hbd"`
	RewardVests Asset  `json:"reward_vests"`
}

type DelegateVestingSharesOperation struct {
	Delegator     string `json:"delegator"`
	Delegatee     string `json:"delegatee"`
	VestingShares Asset  `json:"vesting_shares"`
}

type AccountCreateWithDelegationOperation struct {
	Fee            Asset             `json:"fee"`
	Delegation     Asset             `json:"delegation"`
	Creator        string            `json:"creator"`
	NewAccountName string            `json:"new_account_name"`
	Owner          Authority         `json:"owner"`
	Active         Authority         `json:"active"`
	Posting        Authority         `json:"posting"`
	MemoKey        string            `json:"memo_key"`
	JSONMetadata   string            `json:"json_metadata"`
	Extensions     []json.RawMessage `json:"extensions"`
}

type WitnessSetPropertiesOperation struct {
	Owner      string            `json:"owner"`
	Props      []WitnessProp     `json:"props"`
	Extensions []json.RawMessage `json:"extensions"`
}

type AccountUpdate2Operation struct {
	Account             string            `json:"account"`
	Owner               *Authority        `json:"owner,omitempty"`
	Active              *Authority        `json:"active,omitempty"`
	Posting             *Authority        `json:"posting,omitempty"`
	MemoKey             *string           `json:"memo_key,omitempty"`
	JSONMetadata        string            `json:"json_metadata"`
	PostingJSONMetadata string            `json:"posting_json_metadata"`
	Extensions          []json.RawMessage `json:"extensions"`
}

type CreateProposalOperation struct {
	Creator    string            `json:"creator"`
	Receiver   string            `json:"receiver"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	DailyPay   Asset             `json:"daily_pay"`
	Subject    string            `json:"subject"`
	Permlink   string            `json:"permlink"`
	Extensions []json.RawMessage `json:"extensions"`
}

type UpdateProposalVotesOperation struct {
	Voter       string            `json:"voter"`
	ProposalIDs []int64           `json:"proposal_ids"`
	Approve     bool              `json:"approve"`
	Extensions  []json.RawMessage `json:"extensions"`
}

type RemoveProposalOperation struct {
	ProposalOwner string            `json:"proposal_owner"`
	ProposalIDs   []int64           `json:"proposal_ids"`
	Extensions    []json.RawMessage `json:"extensions"`
}

type UpdateProposalOperation struct {
	ProposalID uint64                    `json:"proposal_id"`
	Creator    string                    `json:"creator"`
	DailyPay   Asset                     `json:"daily_pay"`
	Subject    string                    `json:"subject"`
	Permlink   string                    `json:"permlink"`
	Extensions []UpdateProposalExtension `json:"extensions"`
}

type CollateralizedConvertOperation struct {
	Owner     string `json:"owner"`
	RequestID uint32 `json:"requestid"`
	Amount    Asset  `json:"amount"`
}

type RecurrentTransferOperation struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Amount     Asset             `json:"amount"`
	Memo       string            `json:"memo"`
	Recurrence uint16            `json:"recurrence"`
	Executions uint16            `json:"executions"`
	Extensions []json.RawMessage `json:"extensions"`
}

// Operations carries a transaction's operation list and implements the
// chain's tuple JSON form for every element.
type Operations []Operation

func (ops Operations) MarshalJSON() ([]byte, error) {
	encoded := make([]json.RawMessage, len(ops))
	for i, op := range ops {
		tuple, err := MarshalOperation(op)
		if err != nil {
			return nil, err
		}
		encoded[i] = tuple
	}
	return json.Marshal(encoded)
}

func (ops *Operations) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded := make(Operations, len(raw))
	for i, item := range raw {
		op, err := UnmarshalOperation(item)
		if err != nil {
			return err
		}
		decoded[i] = op
	}
	*ops = decoded
	return nil
}

// MarshalOperation renders a single operation as its ["name", body] tuple.
func MarshalOperation(op Operation) ([]byte, error) {
	body, err := json.Marshal(op)
	if err != nil {
		return nil, err
	}
	return json.Marshal([2]json.RawMessage{
		json.RawMessage(`"` + op.OperationName() + `"`),
		body,
	})
}

// UnmarshalOperation parses a ["name", body] tuple into its typed form.
func UnmarshalOperation(data []byte) (Operation, error) {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return nil, &SerializationError{Reason: "operation must be a 2-item array"}
	}
	if len(tuple) != 2 {
		return nil, &SerializationError{Reason: "operation must be a 2-item array"}
	}

	var name string
	if err := json.Unmarshal(tuple[0], &name); err != nil {
		return nil, &SerializationError{Reason: "operation name must be a string"}
	}

	factory, ok := operationFactories[name]
	if !ok {
		return nil, serializationErrorf("unsupported operation type %q", name)
	}
	op := factory()
	if err := json.Unmarshal(tuple[1], op); err != nil {
		return nil, serializationErrorf("invalid %s operation body: %v", name, err)
	}
	return op, nil
}

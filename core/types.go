package core

import (
	"encoding/hex"
	"encoding/json"
)

// ChainID is the 32-byte constant mixed into every signing digest to
// domain-separate networks.
type ChainID [32]byte

const (
	mainnetChainIDHex = "beeab0de00000000000000000000000000000000000000000000000000000000"
	testnetChainIDHex = "18dcf0a285365fc58b71f18b3d3fec954aa0c141c44e4e5cb4cf777b9eab274e"
)

// MainnetChainID returns the Hive mainnet chain id.
func MainnetChainID() ChainID {
	id, _ := ChainIDFromHex(mainnetChainIDHex)
	return id
}

// TestnetChainID returns the public testnet chain id.
func TestnetChainID() ChainID {
	id, _ := ChainIDFromHex(testnetChainIDHex)
	return id
}

// ChainIDFromHex parses a 64-char hex chain id.
func ChainIDFromHex(value string) (ChainID, error) {
	raw, err := hex.DecodeString(value)
	if err != nil {
		return ChainID{}, serializationErrorf("invalid chain id hex: %v", err)
	}
	if len(raw) != 32 {
		return ChainID{}, serializationErrorf("chain id must be 32 bytes, got %d", len(raw))
	}
	var id ChainID
	copy(id[:], raw)
	return id, nil
}

func (c ChainID) String() string { return hex.EncodeToString(c[:]) }

func (c ChainID) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ChainID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &SerializationError{Reason: "chain id must be a string"}
	}
	parsed, err := ChainIDFromHex(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DynamicGlobalProperties is the live chain state the broadcast path needs;
// unknown fields are ignored.
type DynamicGlobalProperties struct {
	HeadBlockNumber          uint32 `json:"head_block_number"`
	HeadBlockID              string `json:"head_block_id"`
	Time                     string `json:"time"`
	CurrentWitness           string `json:"current_witness"`
	LastIrreversibleBlockNum uint32 `json:"last_irreversible_block_num"`
	TotalVestingFundHive     *Asset `json:"total_vesting_fund_hive,omitempty"`
	TotalVestingShares       *Asset `json:"total_vesting_shares,omitempty"`
}

// BlockHeader mirrors the chain's block header record.
type BlockHeader struct {
	Previous              string            `json:"previous"`
	Timestamp             string            `json:"timestamp"`
	Witness               string            `json:"witness"`
	TransactionMerkleRoot string            `json:"transaction_merkle_root"`
	Extensions            []json.RawMessage `json:"extensions"`
}

// SignedBlockHeader adds the producing witness's signature.
type SignedBlockHeader struct {
	BlockHeader
	WitnessSignature string `json:"witness_signature"`
}

// SignedBlock is a full block as returned by condenser_api.get_block.
type SignedBlock struct {
	SignedBlockHeader
	Transactions   []SignedTransaction `json:"transactions"`
	BlockID        string              `json:"block_id"`
	SigningKey     string              `json:"signing_key"`
	TransactionIDs []string            `json:"transaction_ids"`
}

// ExtendedAccount carries the typed account fields the client inspects;
// the remainder of the node payload is pass-through.
type ExtendedAccount struct {
	Name         string     `json:"name"`
	MemoKey      string     `json:"memo_key"`
	Reputation   any        `json:"reputation"`
	Owner        *Authority `json:"owner,omitempty"`
	Active       *Authority `json:"active,omitempty"`
	Posting      *Authority `json:"posting,omitempty"`
	JSONMetadata string     `json:"json_metadata"`
	Balance      *Asset     `json:"balance,omitempty"`
	HBDBalance   *Asset     `json:"hbd_balance,omitempty"`
	VestingShare *Asset     `json:"vesting_shares,omitempty"`
}

// AccountReputation pairs an account name with its raw reputation score.
type AccountReputation struct {
	Account    string `json:"account"`
	Reputation string `json:"reputation"`
}

// Version is the node's software version triple.
type Version struct {
	BlockchainVersion string `json:"blockchain_version"`
	HiveRevision      string `json:"hive_revision"`
	FCRevision        string `json:"fc_revision"`
}

// ScheduledHardfork announces the next protocol upgrade.
type ScheduledHardfork struct {
	HFVersion string `json:"hf_version"`
	LiveTime  string `json:"live_time"`
}

// FeedHistory is the HBD price feed window.
type FeedHistory struct {
	CurrentMedianHistory *Price  `json:"current_median_history,omitempty"`
	PriceHistory         []Price `json:"price_history"`
}

// RewardFund describes a reward pool's balance and claim state.
type RewardFund struct {
	ID            uint32 `json:"id"`
	Name          string `json:"name"`
	RewardBalance *Asset `json:"reward_balance,omitempty"`
	RecentClaims  string `json:"recent_claims"`
}

// Pass-through record shapes: the client routes these payloads without
// interpreting them, so they stay schemaless.
type (
	Discussion       = map[string]any
	Witness          = map[string]any
	OpenOrder        = map[string]any
	OrderBook        = map[string]any
	MarketTrade      = map[string]any
	MarketBucket     = map[string]any
	SavingsWithdraw  = map[string]any
	Escrow           = map[string]any
	Proposal         = map[string]any
	AppliedOperation = map[string]any
	OwnerHistory     = map[string]any
	RecoveryRequest  = map[string]any
	CommunityDetail  = map[string]any
	CommunityRole    = map[string]any
	Notification     = map[string]any
)

// DiscussionQuery narrows condenser discussion listings.
type DiscussionQuery struct {
	Tag           string `json:"tag,omitempty"`
	Limit         uint32 `json:"limit,omitempty"`
	StartAuthor   string `json:"start_author,omitempty"`
	StartPermlink string `json:"start_permlink,omitempty"`
	TruncateBody  uint32 `json:"truncate_body,omitempty"`
}

// DiscussionCategory selects which condenser listing to query.
type DiscussionCategory string

const (
	DiscussionsTrending DiscussionCategory = "trending"
	DiscussionsCreated  DiscussionCategory = "created"
	DiscussionsActive   DiscussionCategory = "active"
	DiscussionsCashout  DiscussionCategory = "cashout"
	DiscussionsPayout   DiscussionCategory = "payout"
	DiscussionsVotes    DiscussionCategory = "votes"
	DiscussionsChildren DiscussionCategory = "children"
	DiscussionsHot      DiscussionCategory = "hot"
	DiscussionsFeed     DiscussionCategory = "feed"
	DiscussionsBlog     DiscussionCategory = "blog"
	DiscussionsComments DiscussionCategory = "comments"
	DiscussionsPromoted DiscussionCategory = "promoted"
	DiscussionsReplies  DiscussionCategory = "replies"
)

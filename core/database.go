package core

import (
	"context"
	"encoding/json"
)

// DatabaseAPI is the condenser_api read surface.
type DatabaseAPI struct {
	client *Client
}

func (a *DatabaseAPI) call(ctx context.Context, method string, params, out any) error {
	return a.client.callInto(ctx, "condenser_api", method, params, out)
}

func (a *DatabaseAPI) GetAccounts(ctx context.Context, accounts []string) ([]ExtendedAccount, error) {
	var out []ExtendedAccount
	err := a.call(ctx, "get_accounts", []any{accounts}, &out)
	return out, err
}

func (a *DatabaseAPI) GetAccountCount(ctx context.Context) (uint64, error) {
	var out uint64
	err := a.call(ctx, "get_account_count", []any{}, &out)
	return out, err
}

// GetAccountHistory returns [index, operation] entries; the entries stay
// schemaless because history payloads mix fifty operation shapes with
// virtual operations.
func (a *DatabaseAPI) GetAccountHistory(ctx context.Context, account string, start int64, limit uint32) ([]json.RawMessage, error) {
	var out []json.RawMessage
	err := a.call(ctx, "get_account_history", []any{account, start, limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetAccountReputations(ctx context.Context, lowerBound string, limit uint32) ([]AccountReputation, error) {
	var out []AccountReputation
	err := a.call(ctx, "get_account_reputations", []any{lowerBound, limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetOwnerHistory(ctx context.Context, account string) ([]OwnerHistory, error) {
	var out []OwnerHistory
	err := a.call(ctx, "get_owner_history", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetRecoveryRequest(ctx context.Context, account string) (RecoveryRequest, error) {
	var out RecoveryRequest
	err := a.call(ctx, "get_recovery_request", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetContent(ctx context.Context, author, permlink string) (Discussion, error) {
	var out Discussion
	err := a.call(ctx, "get_content", []any{author, permlink}, &out)
	return out, err
}

func (a *DatabaseAPI) GetContentReplies(ctx context.Context, author, permlink string) ([]Discussion, error) {
	var out []Discussion
	err := a.call(ctx, "get_content_replies", []any{author, permlink}, &out)
	return out, err
}

func (a *DatabaseAPI) GetDiscussions(ctx context.Context, by DiscussionCategory, query DiscussionQuery) ([]Discussion, error) {
	method := "get_discussions_by_" + string(by)
	switch by {
	case DiscussionsPayout:
		method = "get_post_discussions_by_payout"
	case DiscussionsReplies:
		method = "get_replies_by_last_update"
	}
	var out []Discussion
	err := a.call(ctx, method, []any{query}, &out)
	return out, err
}

func (a *DatabaseAPI) GetDiscussionsByAuthorBeforeDate(ctx context.Context, author, startPermlink, beforeDate string, limit uint32) ([]Discussion, error) {
	var out []Discussion
	err := a.call(ctx, "get_discussions_by_author_before_date", []any{author, startPermlink, beforeDate, limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetActiveVotes(ctx context.Context, author, permlink string) ([]map[string]any, error) {
	var out []map[string]any
	err := a.call(ctx, "get_active_votes", []any{author, permlink}, &out)
	return out, err
}

func (a *DatabaseAPI) GetDynamicGlobalProperties(ctx context.Context) (*DynamicGlobalProperties, error) {
	var out DynamicGlobalProperties
	if err := a.call(ctx, "get_dynamic_global_properties", []any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *DatabaseAPI) GetChainProperties(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := a.call(ctx, "get_chain_properties", []any{}, &out)
	return out, err
}

func (a *DatabaseAPI) GetFeedHistory(ctx context.Context) (*FeedHistory, error) {
	var out FeedHistory
	if err := a.call(ctx, "get_feed_history", []any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *DatabaseAPI) GetCurrentMedianHistoryPrice(ctx context.Context) (*Price, error) {
	var out Price
	if err := a.call(ctx, "get_current_median_history_price", []any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *DatabaseAPI) GetHardforkVersion(ctx context.Context) (string, error) {
	var out string
	err := a.call(ctx, "get_hardfork_version", []any{}, &out)
	return out, err
}

func (a *DatabaseAPI) GetNextScheduledHardfork(ctx context.Context) (*ScheduledHardfork, error) {
	var out ScheduledHardfork
	if err := a.call(ctx, "get_next_scheduled_hardfork", []any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *DatabaseAPI) GetRewardFund(ctx context.Context, name string) (*RewardFund, error) {
	var out RewardFund
	if err := a.call(ctx, "get_reward_fund", []any{name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *DatabaseAPI) GetConfig(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := a.call(ctx, "get_config", []any{}, &out)
	return out, err
}

func (a *DatabaseAPI) GetVersion(ctx context.Context) (*Version, error) {
	var out Version
	if err := a.call(ctx, "get_version", []any{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *DatabaseAPI) GetActiveWitnesses(ctx context.Context) ([]string, error) {
	var out []string
	err := a.call(ctx, "get_active_witnesses", []any{}, &out)
	return out, err
}

func (a *DatabaseAPI) GetWitnessByAccount(ctx context.Context, account string) (Witness, error) {
	var out Witness
	err := a.call(ctx, "get_witness_by_account", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetVestingDelegations(ctx context.Context, account, from string, limit uint32) ([]map[string]any, error) {
	var out []map[string]any
	err := a.call(ctx, "get_vesting_delegations", []any{account, from, limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetExpiringVestingDelegations(ctx context.Context, account, from string, limit uint32) ([]map[string]any, error) {
	var out []map[string]any
	err := a.call(ctx, "get_expiring_vesting_delegations", []any{account, from, limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetOrderBook(ctx context.Context, limit uint32) (OrderBook, error) {
	var out OrderBook
	err := a.call(ctx, "get_order_book", []any{limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetOpenOrders(ctx context.Context, account string) ([]OpenOrder, error) {
	var out []OpenOrder
	err := a.call(ctx, "get_open_orders", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetRecentTrades(ctx context.Context, limit uint32) ([]MarketTrade, error) {
	var out []MarketTrade
	err := a.call(ctx, "get_recent_trades", []any{limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetMarketHistory(ctx context.Context, bucketSeconds uint32, start, end string) ([]MarketBucket, error) {
	var out []MarketBucket
	err := a.call(ctx, "get_market_history", []any{bucketSeconds, start, end}, &out)
	return out, err
}

func (a *DatabaseAPI) GetMarketHistoryBuckets(ctx context.Context) ([]uint32, error) {
	var out []uint32
	err := a.call(ctx, "get_market_history_buckets", []any{}, &out)
	return out, err
}

func (a *DatabaseAPI) GetSavingsWithdrawFrom(ctx context.Context, account string) ([]SavingsWithdraw, error) {
	var out []SavingsWithdraw
	err := a.call(ctx, "get_savings_withdraw_from", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetSavingsWithdrawTo(ctx context.Context, account string) ([]SavingsWithdraw, error) {
	var out []SavingsWithdraw
	err := a.call(ctx, "get_savings_withdraw_to", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetConversionRequests(ctx context.Context, account string) ([]map[string]any, error) {
	var out []map[string]any
	err := a.call(ctx, "get_conversion_requests", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetCollateralizedConversionRequests(ctx context.Context, account string) ([]map[string]any, error) {
	var out []map[string]any
	err := a.call(ctx, "get_collateralized_conversion_requests", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetFollowers(ctx context.Context, account, startFollower, followType string, limit uint32) ([]map[string]any, error) {
	var out []map[string]any
	err := a.call(ctx, "get_followers", []any{account, startFollower, followType, limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetFollowing(ctx context.Context, account, startFollowing, followType string, limit uint32) ([]map[string]any, error) {
	var out []map[string]any
	err := a.call(ctx, "get_following", []any{account, startFollowing, followType, limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetFollowCount(ctx context.Context, account string) (map[string]any, error) {
	var out map[string]any
	err := a.call(ctx, "get_follow_count", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetRebloggedBy(ctx context.Context, author, permlink string) ([]string, error) {
	var out []string
	err := a.call(ctx, "get_reblogged_by", []any{author, permlink}, &out)
	return out, err
}

func (a *DatabaseAPI) GetBlog(ctx context.Context, account string, startEntryID, limit uint32) ([]Discussion, error) {
	var out []Discussion
	err := a.call(ctx, "get_blog", []any{account, startEntryID, limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetBlogEntries(ctx context.Context, account string, startEntryID, limit uint32) ([]map[string]any, error) {
	var out []map[string]any
	err := a.call(ctx, "get_blog_entries", []any{account, startEntryID, limit}, &out)
	return out, err
}

func (a *DatabaseAPI) GetPotentialSignatures(ctx context.Context, tx *SignedTransaction) ([]string, error) {
	var out []string
	err := a.call(ctx, "get_potential_signatures", []any{tx}, &out)
	return out, err
}

func (a *DatabaseAPI) GetRequiredSignatures(ctx context.Context, tx *SignedTransaction, availableKeys []string) ([]string, error) {
	var out []string
	err := a.call(ctx, "get_required_signatures", []any{tx, availableKeys}, &out)
	return out, err
}

func (a *DatabaseAPI) VerifyAuthority(ctx context.Context, tx *SignedTransaction) (bool, error) {
	var out bool
	err := a.call(ctx, "verify_authority", []any{tx}, &out)
	return out, err
}

// GetKeyReferences is the condenser fallback for
// account_by_key_api.get_key_references.
func (a *DatabaseAPI) GetKeyReferences(ctx context.Context, keys []string) ([][]string, error) {
	var out [][]string
	err := a.call(ctx, "get_key_references", []any{keys}, &out)
	return out, err
}

func (a *DatabaseAPI) GetEscrow(ctx context.Context, from string, escrowID uint32) (Escrow, error) {
	var out Escrow
	err := a.call(ctx, "get_escrow", []any{from, escrowID}, &out)
	return out, err
}

func (a *DatabaseAPI) FindProposals(ctx context.Context, proposalIDs []int64) ([]Proposal, error) {
	var out []Proposal
	err := a.call(ctx, "find_proposals", []any{proposalIDs}, &out)
	return out, err
}

func (a *DatabaseAPI) ListProposals(ctx context.Context, start any, limit uint32, orderBy, orderDirection, status string) ([]Proposal, error) {
	var out []Proposal
	err := a.call(ctx, "list_proposals", []any{start, limit, orderBy, orderDirection, status}, &out)
	return out, err
}

func (a *DatabaseAPI) FindRecurrentTransfers(ctx context.Context, account string) ([]map[string]any, error) {
	var out []map[string]any
	err := a.call(ctx, "find_recurrent_transfers", []any{account}, &out)
	return out, err
}

func (a *DatabaseAPI) GetOpsInBlock(ctx context.Context, blockNum uint32, onlyVirtual bool) ([]AppliedOperation, error) {
	var out []AppliedOperation
	err := a.call(ctx, "get_ops_in_block", []any{blockNum, onlyVirtual}, &out)
	return out, err
}

func (a *DatabaseAPI) GetBlock(ctx context.Context, blockNum uint32) (*SignedBlock, error) {
	var out *SignedBlock
	err := a.call(ctx, "get_block", []any{blockNum}, &out)
	return out, err
}

func (a *DatabaseAPI) GetBlockHeader(ctx context.Context, blockNum uint32) (*BlockHeader, error) {
	var out *BlockHeader
	err := a.call(ctx, "get_block_header", []any{blockNum}, &out)
	return out, err
}

func (a *DatabaseAPI) GetTransaction(ctx context.Context, txID string) (json.RawMessage, error) {
	var out json.RawMessage
	err := a.call(ctx, "get_transaction", []any{txID}, &out)
	return out, err
}

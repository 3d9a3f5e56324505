package core

import "context"

// HivemindAPI talks to the social index over the bridge namespace.
type HivemindAPI struct {
	client *Client
}

func (a *HivemindAPI) call(ctx context.Context, method string, params, out any) error {
	return a.client.callInto(ctx, "bridge", method, params, out)
}

// PostsQuery narrows ranked-post listings.
type PostsQuery struct {
	Sort     string `json:"sort,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Observer string `json:"observer,omitempty"`
	Limit    uint32 `json:"limit,omitempty"`
}

// AccountPostsQuery narrows per-account post listings.
type AccountPostsQuery struct {
	Sort     string `json:"sort,omitempty"`
	Account  string `json:"account,omitempty"`
	Observer string `json:"observer,omitempty"`
	Limit    uint32 `json:"limit,omitempty"`
}

// CommunityQuery selects one community.
type CommunityQuery struct {
	Name     string `json:"name"`
	Observer string `json:"observer,omitempty"`
}

// ListCommunitiesQuery pages through communities.
type ListCommunitiesQuery struct {
	Last     string `json:"last,omitempty"`
	Limit    uint32 `json:"limit,omitempty"`
	Query    string `json:"query,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Observer string `json:"observer,omitempty"`
}

// AccountNotifsQuery pages through an account's notifications.
type AccountNotifsQuery struct {
	Account string `json:"account"`
	Limit   uint32 `json:"limit,omitempty"`
	LastID  uint64 `json:"last_id,omitempty"`
}

func (a *HivemindAPI) GetRankedPosts(ctx context.Context, query PostsQuery) ([]Discussion, error) {
	var out []Discussion
	err := a.call(ctx, "get_ranked_posts", []any{query}, &out)
	return out, err
}

func (a *HivemindAPI) GetAccountPosts(ctx context.Context, query AccountPostsQuery) ([]Discussion, error) {
	var out []Discussion
	err := a.call(ctx, "get_account_posts", []any{query}, &out)
	return out, err
}

func (a *HivemindAPI) GetCommunity(ctx context.Context, query CommunityQuery) (CommunityDetail, error) {
	var out CommunityDetail
	err := a.call(ctx, "get_community", []any{query}, &out)
	return out, err
}

func (a *HivemindAPI) ListCommunities(ctx context.Context, query ListCommunitiesQuery) ([]CommunityDetail, error) {
	var out []CommunityDetail
	err := a.call(ctx, "list_communities", []any{query}, &out)
	return out, err
}

func (a *HivemindAPI) GetCommunityRoles(ctx context.Context, community string, last string, limit uint32) ([]CommunityRole, error) {
	var out []CommunityRole
	err := a.call(ctx, "get_community_roles", []any{community, last, limit}, &out)
	return out, err
}

func (a *HivemindAPI) GetAccountNotifications(ctx context.Context, query AccountNotifsQuery) ([]Notification, error) {
	var out []Notification
	err := a.call(ctx, "get_account_notifications", []any{query}, &out)
	return out, err
}

func (a *HivemindAPI) GetDiscussion(ctx context.Context, author, permlink string) (Discussion, error) {
	var out Discussion
	err := a.call(ctx, "get_discussion", []any{author, permlink}, &out)
	return out, err
}

func (a *HivemindAPI) GetPost(ctx context.Context, author, permlink string) (Discussion, error) {
	var out Discussion
	err := a.call(ctx, "get_post", []any{author, permlink}, &out)
	return out, err
}

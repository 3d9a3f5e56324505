package core

import "context"

// AccountByKeyAPI resolves public keys to account names.
type AccountByKeyAPI struct {
	client *Client
}

// GetKeyReferences returns, for each key, the accounts whose authorities
// reference it. Callers may fall back to Database.GetKeyReferences on nodes
// without the account_by_key plugin.
func (a *AccountByKeyAPI) GetKeyReferences(ctx context.Context, keys []string) ([][]string, error) {
	var out [][]string
	err := a.client.callInto(ctx, "account_by_key_api", "get_key_references",
		[]any{map[string]any{"keys": keys}}, &out)
	return out, err
}

package core

import (
	"context"
	"encoding/json"
)

// RCAPI reads resource-credit state and prices transactions offline.
type RCAPI struct {
	client *Client
}

func (a *RCAPI) call(ctx context.Context, method string, params, out any) error {
	return a.client.callInto(ctx, "rc_api", method, params, out)
}

// FindRCAccounts returns per-account resource-credit state.
func (a *RCAPI) FindRCAccounts(ctx context.Context, accounts []string) ([]RCAccount, error) {
	var out struct {
		RCAccounts []RCAccount `json:"rc_accounts"`
	}
	if err := a.call(ctx, "find_rc_accounts", []any{map[string]any{"accounts": accounts}}, &out); err != nil {
		return nil, err
	}
	return out.RCAccounts, nil
}

// GetResourceParams fetches the pricing parameters and size tables.
func (a *RCAPI) GetResourceParams(ctx context.Context) (*RCParams, error) {
	var out RCParams
	if err := a.call(ctx, "get_resource_params", []any{map[string]any{}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetResourcePool fetches the live pool levels.
func (a *RCAPI) GetResourcePool(ctx context.Context) (*RCPool, error) {
	var out RCPool
	if err := a.call(ctx, "get_resource_pool", []any{map[string]any{}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRCStats fetches the live regen/share split. Both the wrapped and the
// bare payload shape are accepted.
func (a *RCAPI) GetRCStats(ctx context.Context) (*RCStats, error) {
	var raw json.RawMessage
	if err := a.call(ctx, "get_rc_stats", []any{map[string]any{}}, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		RCStats *RCStats `json:"rc_stats"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.RCStats != nil {
		return wrapped.RCStats, nil
	}

	var stats RCStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, serializationErrorf("decoding rc stats: %v", err)
	}
	return &stats, nil
}

// CalculateCost estimates the RC price of a transaction carrying the given
// operations, using live stats when available and the budget-proportional
// fallback otherwise.
func (a *RCAPI) CalculateCost(ctx context.Context, ops []Operation) (int64, error) {
	params, err := a.GetResourceParams(ctx)
	if err != nil {
		return 0, err
	}
	pool, err := a.GetResourcePool(ctx)
	if err != nil {
		return 0, err
	}

	names := ResourceNames(params)

	// Stats are best-effort: older nodes do not expose get_rc_stats.
	stats, statsErr := a.GetRCStats(ctx)
	if statsErr != nil {
		coreLog.WithError(statsErr).Debug("rc stats unavailable, using fallback shares")
		stats = nil
	}

	shares := ResolveShares(params, stats, names)

	var regen int64
	if stats != nil && stats.Regen > 0 && len(stats.Share) >= len(names) {
		regen = int64(stats.Regen)
	} else {
		props, err := a.client.Database.GetDynamicGlobalProperties(ctx)
		if err != nil {
			return 0, err
		}
		if props.TotalVestingShares == nil || props.TotalVestingShares.Amount <= 0 {
			return 0, &OtherError{Reason: "total_vesting_shares must be positive to derive rc regen"}
		}
		regen = props.TotalVestingShares.Amount / regenFallbackDivisor
	}

	return EstimateCost(params, pool, regen, shares, ops)
}

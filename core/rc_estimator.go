package core

import "math/big"

// The five chain resources, in the node's canonical order. Used when a node
// predates the resource_names field.
var defaultResourceOrder = []string{
	"resource_history_bytes",
	"resource_new_accounts",
	"resource_market_bytes",
	"resource_state_bytes",
	"resource_execution_time",
}

const (
	resourceHistoryBytes  = "resource_history_bytes"
	resourceNewAccounts   = "resource_new_accounts"
	resourceMarketBytes   = "resource_market_bytes"
	resourceStateBytes    = "resource_state_bytes"
	resourceExecutionTime = "resource_execution_time"
)

// sharesScale is the basis-point denominator of the share split.
const sharesScale = 10_000

// regenFallbackDivisor converts total vesting shares into the regen rate
// when live stats are unavailable.
const regenFallbackDivisor = 144_000

// errRCOverflow is returned (by identity) from every checked step of the
// pricing math so callers can match it with errors.Is or errors.As.
var errRCOverflow = &OtherError{Reason: "overflow"}

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// ResourceNames returns the resource ordering for a params payload: the
// node-provided list when present, else the fixed order plus any extra
// resources that only appear in resource_params.
func ResourceNames(params *RCParams) []string {
	if len(params.ResourceNames) > 0 {
		return params.ResourceNames
	}
	names := append([]string(nil), defaultResourceOrder...)
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}
	for name := range params.ResourceParams {
		if !known[name] {
			names = append(names, name)
		}
	}
	return names
}

// ResourceUsage is the estimated draw of one transaction, keyed by resource
// name.
type ResourceUsage map[string]int64

// EstimateUsage computes the per-resource usage of a transaction carrying
// the given operations, following the node's resource accounting:
// transaction size feeds history (and market for market-class operations),
// claim_account with a zero fee consumes a claimed account, state bytes and
// execution time accumulate from the size_info tables.
func EstimateUsage(params *RCParams, ops []Operation) (ResourceUsage, error) {
	tx := Transaction{
		Expiration: "1970-01-01T00:00:00",
		Operations: ops,
	}
	raw, err := SerializeTransaction(&tx)
	if err != nil {
		return nil, err
	}
	// One byte of signature-array overhead plus one 65-byte signature.
	txSize := int64(len(raw)) + 1 + 65

	stateTable := params.SizeInfo.ResourceStateBytes
	timeTable := params.SizeInfo.ResourceExecutionTime

	var stateBytes, executionTime, newAccounts int64
	marketClass := false

	for _, op := range ops {
		name := op.OperationName()
		opState := int64(stateTable[name+"_base_size"])
		opTime := int64(timeTable[name+"_time"])

		switch typed := op.(type) {
		case *TransferOperation, *TransferToVestingOperation,
			*LimitOrderCreateOperation, *LimitOrderCreate2Operation:
			marketClass = true
		case *RecurrentTransferOperation:
			marketClass = true
			opState *= int64(typed.Recurrence) * int64(typed.Executions)
			opTime *= int64(typed.Executions)
		case *ClaimAccountOperation:
			if typed.Fee.Amount == 0 {
				newAccounts++
			}
		case *CreateProposalOperation:
			hours, err := proposalHours(typed.StartDate, typed.EndDate)
			if err != nil {
				return nil, err
			}
			opState *= hours
		}

		accountMembers, keyMembers := authorityMembers(op)
		opState += int64(stateTable["authority_account_member_size"])*accountMembers +
			int64(stateTable["authority_key_member_size"])*keyMembers

		stateBytes += opState
		executionTime += opTime
	}

	stateBytes += int64(stateTable["transaction_base_size"])
	executionTime += int64(timeTable["transaction_time"]) + int64(timeTable["verify_authority_time"])

	usage := ResourceUsage{
		resourceHistoryBytes:  txSize,
		resourceNewAccounts:   newAccounts,
		resourceStateBytes:    stateBytes,
		resourceExecutionTime: executionTime,
	}
	if marketClass {
		usage[resourceMarketBytes] = txSize
	}
	return usage, nil
}

// proposalHours charges proposal state per funded hour, rounded up.
func proposalHours(start, end string) (int64, error) {
	startTime, err := ParseHiveTime(start)
	if err != nil {
		return 0, err
	}
	endTime, err := ParseHiveTime(end)
	if err != nil {
		return 0, err
	}
	seconds := endTime.Unix() - startTime.Unix()
	if seconds <= 0 {
		return 0, nil
	}
	return (seconds + 3599) / 3600, nil
}

func authorityMembers(op Operation) (accounts, keys int64) {
	var auths []*Authority
	switch typed := op.(type) {
	case *AccountCreateOperation:
		auths = []*Authority{&typed.Owner, &typed.Active, &typed.Posting}
	case *AccountCreateWithDelegationOperation:
		auths = []*Authority{&typed.Owner, &typed.Active, &typed.Posting}
	case *CreateClaimedAccountOperation:
		auths = []*Authority{&typed.Owner, &typed.Active, &typed.Posting}
	case *AccountUpdateOperation:
		auths = []*Authority{typed.Owner, typed.Active, typed.Posting}
	case *AccountUpdate2Operation:
		auths = []*Authority{typed.Owner, typed.Active, typed.Posting}
	case *RequestAccountRecoveryOperation:
		auths = []*Authority{&typed.NewOwnerAuthority}
	case *RecoverAccountOperation:
		auths = []*Authority{&typed.NewOwnerAuthority, &typed.RecentOwnerAuthority}
	case *ResetAccountOperation:
		auths = []*Authority{&typed.NewOwnerAuthority}
	}
	for _, authority := range auths {
		if authority == nil {
			continue
		}
		accounts += int64(len(authority.AccountAuths))
		keys += int64(len(authority.KeyAuths))
	}
	return accounts, keys
}

// ResolveShares returns the per-resource share split in basis points. Live
// stats win when the regen rate is positive and the share vector covers
// every resource; otherwise shares fall back to budget-proportional values
// with the new-accounts resource always owning its full pool.
func ResolveShares(params *RCParams, stats *RCStats, names []string) []int64 {
	if stats != nil && stats.Regen > 0 && len(stats.Share) >= len(names) {
		shares := make([]int64, len(names))
		for i := range names {
			if share := int64(stats.Share[i]); share > 0 {
				shares[i] = share
			}
		}
		return shares
	}
	return fallbackShares(params, names)
}

func fallbackShares(params *RCParams, names []string) []int64 {
	shares := make([]int64, len(names))

	var totalBudget int64
	lastBudgeted := -1
	for i, name := range names {
		if name == resourceNewAccounts {
			shares[i] = sharesScale
			continue
		}
		param, ok := params.ResourceParams[name]
		if !ok {
			continue
		}
		totalBudget += int64(param.ResourceDynamicsParams.BudgetPerTimeUnit)
		lastBudgeted = i
	}
	if totalBudget == 0 {
		return shares
	}

	var assigned int64
	for i, name := range names {
		if name == resourceNewAccounts || i == lastBudgeted {
			continue
		}
		param, ok := params.ResourceParams[name]
		if !ok {
			continue
		}
		share := int64(param.ResourceDynamicsParams.BudgetPerTimeUnit) * sharesScale / totalBudget
		shares[i] = share
		assigned += share
	}
	// The last budgeted resource absorbs rounding so the split sums exactly.
	shares[lastBudgeted] = sharesScale - assigned
	return shares
}

// EstimateCost prices a transaction's usage against live pool levels. It is
// pure: every input is caller-supplied.
func EstimateCost(params *RCParams, pool *RCPool, regen int64, sharesBP []int64, ops []Operation) (int64, error) {
	if len(ops) == 0 {
		return 0, nil
	}
	names := ResourceNames(params)
	usage, err := EstimateUsage(params, ops)
	if err != nil {
		return 0, err
	}

	var total int64
	for i, name := range names {
		if i >= len(sharesBP) {
			break
		}
		resourceUsage := usage[name]
		share := sharesBP[i]
		if resourceUsage == 0 || share <= 0 {
			continue
		}
		param, ok := params.ResourceParams[name]
		if !ok {
			continue
		}

		poolLevel := int64(pool.ResourcePool[name].Pool)
		cost, err := resourceCost(regen, share, &param, poolLevel, resourceUsage)
		if err != nil {
			return 0, err
		}

		sum := total + cost
		if (cost > 0 && sum < total) || (cost < 0 && sum > total) {
			return 0, errRCOverflow
		}
		total = sum
	}
	return total, nil
}

// resourceCost evaluates one resource's bonding-curve price:
// ((((regen·share/10000)·coeff_a) >> shift) + 1) · usage·unit
// over coeff_b + max(pool, 0), floored, plus one. All intermediates are
// checked against the 128-bit bound.
func resourceCost(regen, shareBP int64, param *RCResourceParam, poolLevel, usage int64) (int64, error) {
	negative := usage < 0
	if negative {
		usage = -usage
	}

	regenShare := new(big.Int).Div(
		new(big.Int).Mul(big.NewInt(regen), big.NewInt(shareBP)),
		big.NewInt(sharesScale),
	)

	curve := param.PriceCurveParams
	coefficient := new(big.Int).Mul(regenShare, curve.CoeffA.Big())
	if coefficient.Cmp(maxUint128) > 0 {
		return 0, errRCOverflow
	}
	coefficient.Rsh(coefficient, uint(curve.Shift))
	coefficient.Add(coefficient, big.NewInt(1))

	scaledUsage := new(big.Int).Mul(
		big.NewInt(usage),
		new(big.Int).SetUint64(uint64(param.ResourceDynamicsParams.ResourceUnit)),
	)
	if scaledUsage.Cmp(maxUint128) > 0 {
		return 0, errRCOverflow
	}

	numerator := new(big.Int).Mul(coefficient, scaledUsage)
	if numerator.Cmp(maxUint128) > 0 {
		return 0, errRCOverflow
	}

	if poolLevel < 0 {
		poolLevel = 0
	}
	denominator := new(big.Int).Add(curve.CoeffB.Big(), big.NewInt(poolLevel))
	if denominator.Sign() == 0 {
		return 0, errRCOverflow
	}

	cost := new(big.Int).Div(numerator, denominator)
	cost.Add(cost, big.NewInt(1))
	if !cost.IsInt64() {
		return 0, errRCOverflow
	}

	result := cost.Int64()
	if negative {
		result = -result
	}
	return result, nil
}

package core

import (
	"encoding/json"
	"math/big"
)

// Node RC payloads carry large integers either as JSON numbers or as
// strings; the Flex types accept both.

// FlexInt64 is an int64 that unmarshals from a number or a decimal string.
type FlexInt64 int64

func (v *FlexInt64) UnmarshalJSON(data []byte) error {
	number, err := flexNumber(data)
	if err != nil {
		return err
	}
	parsed, ok := new(big.Int).SetString(string(number), 10)
	if !ok || !parsed.IsInt64() {
		return serializationErrorf("value %q exceeds i64 range", number)
	}
	*v = FlexInt64(parsed.Int64())
	return nil
}

// FlexUint64 is a uint64 that unmarshals from a number or a decimal string.
type FlexUint64 uint64

func (v *FlexUint64) UnmarshalJSON(data []byte) error {
	number, err := flexNumber(data)
	if err != nil {
		return err
	}
	parsed, ok := new(big.Int).SetString(string(number), 10)
	if !ok || !parsed.IsUint64() {
		return serializationErrorf("value %q exceeds u64 range", number)
	}
	*v = FlexUint64(parsed.Uint64())
	return nil
}

// Uint128 is an unsigned 128-bit integer that unmarshals from a number or a
// decimal string. The RC price curves use the full width.
type Uint128 struct {
	value big.Int
}

// Uint128FromUint64 builds a Uint128 from a machine word.
func Uint128FromUint64(v uint64) Uint128 {
	var out Uint128
	out.value.SetUint64(v)
	return out
}

// Big returns a copy of the underlying value.
func (v *Uint128) Big() *big.Int {
	return new(big.Int).Set(&v.value)
}

func (v Uint128) String() string { return v.value.String() }

func (v Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.value.String())
}

func (v *Uint128) UnmarshalJSON(data []byte) error {
	number, err := flexNumber(data)
	if err != nil {
		return err
	}
	parsed, ok := new(big.Int).SetString(string(number), 10)
	if !ok || parsed.Sign() < 0 || parsed.BitLen() > 128 {
		return serializationErrorf("value %q exceeds u128 range", number)
	}
	v.value.Set(parsed)
	return nil
}

func flexNumber(data []byte) (json.Number, error) {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return "", serializationErrorf("invalid numeric string: %v", err)
		}
		return json.Number(raw), nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return "", serializationErrorf("invalid numeric value: %v", err)
	}
	return number, nil
}

// RCPriceCurve are the bonding-curve coefficients for one resource.
type RCPriceCurve struct {
	CoeffA Uint128 `json:"coeff_a"`
	CoeffB Uint128 `json:"coeff_b"`
	Shift  uint8   `json:"shift"`
}

// RCDecayParams describe a resource pool's decay schedule.
type RCDecayParams struct {
	DecayPerTimeUnit           FlexUint64 `json:"decay_per_time_unit"`
	DecayPerTimeUnitDenomShift uint8      `json:"decay_per_time_unit_denom_shift"`
}

// RCDynamicsParams describe a resource pool's regeneration dynamics.
type RCDynamicsParams struct {
	ResourceUnit      FlexUint64    `json:"resource_unit"`
	BudgetPerTimeUnit FlexUint64    `json:"budget_per_time_unit"`
	PoolEq            FlexInt64     `json:"pool_eq"`
	MaxPoolSize       FlexInt64     `json:"max_pool_size"`
	DecayParams       RCDecayParams `json:"decay_params"`
	MinDecay          FlexInt64     `json:"min_decay"`
}

// RCResourceParam bundles dynamics and pricing for one resource.
type RCResourceParam struct {
	ResourceDynamicsParams RCDynamicsParams `json:"resource_dynamics_params"`
	PriceCurveParams       RCPriceCurve     `json:"price_curve_params"`
}

// RCSizeInfo is the node's per-operation state-byte and execution-time
// lookup tables.
type RCSizeInfo struct {
	ResourceExecutionTime map[string]FlexInt64 `json:"resource_execution_time"`
	ResourceStateBytes    map[string]FlexInt64 `json:"resource_state_bytes"`
}

// RCParams is the rc_api.get_resource_params payload.
type RCParams struct {
	ResourceNames  []string                   `json:"resource_names"`
	ResourceParams map[string]RCResourceParam `json:"resource_params"`
	SizeInfo       RCSizeInfo                 `json:"size_info"`
}

// RCPoolResource is one resource's live pool level.
type RCPoolResource struct {
	Pool      FlexInt64 `json:"pool"`
	FillLevel FlexInt64 `json:"fill_level"`
}

// RCPool is the rc_api.get_resource_pool payload.
type RCPool struct {
	ResourcePool map[string]RCPoolResource `json:"resource_pool"`
}

// RCStats carries the node's live regen rate and per-resource share split in
// basis points, indexed in resource-name order.
type RCStats struct {
	Regen FlexInt64   `json:"regen"`
	Share []FlexInt64 `json:"share"`
}

// Manabar is a regenerating resource meter.
type Manabar struct {
	CurrentMana    FlexInt64  `json:"current_mana"`
	LastUpdateTime FlexUint64 `json:"last_update_time"`
}

// RCAccount is one account's resource-credit state.
type RCAccount struct {
	Account     string     `json:"account"`
	DelegatedRC *FlexInt64 `json:"delegated_rc,omitempty"`
	MaxRC       *FlexInt64 `json:"max_rc,omitempty"`
	RCManabar   *Manabar   `json:"rc_manabar,omitempty"`
}

package core

import (
	"encoding/json"
	"math"
	"sort"
	"sync/atomic"
	"time"
)

var nonceCounter atomic.Uint64

// UniqueNonce returns a 64-bit single-use value: wall-clock milliseconds in
// the high 48 bits mixed with a monotonic counter in the low 16.
func UniqueNonce() uint64 {
	millis := uint64(time.Now().UnixMilli())
	count := nonceCounter.Add(1) - 1
	return (millis << 16) ^ (count & 0xFFFF)
}

// MakeBitMaskFilter builds the two 64-bit masks used by account-history
// operation filters from a set of operation names. Unknown names are
// ignored.
func MakeBitMaskFilter(names []string) (uint64, uint64) {
	var lower, upper uint64
	for _, name := range names {
		id, ok := operationIDs[name]
		if !ok {
			continue
		}
		if id < 64 {
			lower |= 1 << id
		} else {
			upper |= 1 << (id - 64)
		}
	}
	return lower, upper
}

// BuildWitnessSetProperties encodes a map of witness properties into the
// pre-serialized, lexicographically sorted form witness_set_properties
// expects. Supported keys mirror the chain's property table.
func BuildWitnessSetProperties(owner string, props map[string]json.RawMessage) (*WitnessSetPropertiesOperation, error) {
	encoded := make([]WitnessProp, 0, len(props))

	for key, value := range props {
		var e encoder
		switch key {
		case "key", "new_signing_key":
			var keyStr string
			if err := json.Unmarshal(value, &keyStr); err != nil {
				return nil, serializationErrorf("%s must be a string", key)
			}
			if err := e.writePublicKeyString(keyStr); err != nil {
				return nil, err
			}
		case "account_subsidy_budget", "account_subsidy_decay", "maximum_block_size":
			var number uint32
			if err := json.Unmarshal(value, &number); err != nil {
				return nil, serializationErrorf("%s must be a u32", key)
			}
			e.writeU32(number)
		case "hbd_interest_rate":
			var number uint16
			if err := json.Unmarshal(value, &number); err != nil {
				return nil, serializationErrorf("%s must be a u16", key)
			}
			e.writeU16(number)
		case "url":
			var url string
			if err := json.Unmarshal(value, &url); err != nil {
				return nil, &SerializationError{Reason: "url must be a string"}
			}
			e.writeString(url)
		case "hbd_exchange_rate":
			var price Price
			if err := json.Unmarshal(value, &price); err != nil {
				return nil, serializationErrorf("invalid hbd_exchange_rate: %v", err)
			}
			if err := e.writePrice(price); err != nil {
				return nil, err
			}
		case "account_creation_fee":
			var fee Asset
			if err := json.Unmarshal(value, &fee); err != nil {
				return nil, serializationErrorf("invalid account_creation_fee: %v", err)
			}
			if err := e.writeAsset(fee); err != nil {
				return nil, err
			}
		default:
			return nil, serializationErrorf("unknown witness prop: %s", key)
		}
		encoded = append(encoded, WitnessProp{Key: key, Value: e.bytes()})
	}

	sort.Slice(encoded, func(i, j int) bool { return encoded[i].Key < encoded[j].Key })

	return &WitnessSetPropertiesOperation{
		Owner: owner,
		Props: encoded,
	}, nil
}

// VestingSharePrice returns the current HIVE-per-VESTS conversion price.
func VestingSharePrice(props *DynamicGlobalProperties) Price {
	base := HiveAsset(0)
	if props.TotalVestingFundHive != nil {
		base = *props.TotalVestingFundHive
	}
	quote := VestsAsset(0)
	if props.TotalVestingShares != nil {
		quote = *props.TotalVestingShares
	}
	return Price{Base: base, Quote: quote}
}

// GetVests converts a HIVE amount into its current VESTS equivalent.
func GetVests(props *DynamicGlobalProperties, hivePower Asset) Asset {
	fund := props.TotalVestingFundHive
	if fund == nil || fund.Amount == 0 {
		return VestsAsset(0)
	}
	shares := props.TotalVestingShares
	if shares == nil {
		return VestsAsset(0)
	}

	amount := math.Round(float64(hivePower.Amount) * float64(shares.Amount) / float64(fund.Amount))
	return VestsAsset(int64(amount))
}

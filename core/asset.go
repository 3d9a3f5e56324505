package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssetSymbol is the in-memory (modern) name of an asset. Legacy aliases are
// accepted on parse and re-emitted on the binary wire; see LegacySymbol.
type AssetSymbol string

const (
	SymbolHive  AssetSymbol = "HIVE"
	SymbolHBD   AssetSymbol = "HBD"
	SymbolVests AssetSymbol = "VESTS"
)

// Asset is a fixed-point chain amount: raw integer amount, decimal precision
// and symbol. HIVE and HBD carry precision 3, VESTS precision 6.
type Asset struct {
	Amount    int64
	Precision uint8
	Symbol    AssetSymbol
}

// HiveAsset builds a HIVE asset from a raw amount in milli-units.
func HiveAsset(amount int64) Asset {
	return Asset{Amount: amount, Precision: 3, Symbol: SymbolHive}
}

// HBDAsset builds an HBD asset from a raw amount in milli-units.
func HBDAsset(amount int64) Asset {
	return Asset{Amount: amount, Precision: 3, Symbol: SymbolHBD}
}

// VestsAsset builds a VESTS asset from a raw amount in micro-units.
func VestsAsset(amount int64) Asset {
	return Asset{Amount: amount, Precision: 6, Symbol: SymbolVests}
}

// AssetFromString parses "<decimal> <symbol>". Legacy symbols STEEM, SBD,
// TESTS and TBD normalize to their modern names. For known symbols the
// number of decimal places must match the fixed precision.
func AssetFromString(value string) (Asset, error) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return Asset{}, &AssetError{Reason: "asset string must be '<amount> <symbol>'"}
	}
	amountRaw, symbolRaw := parts[0], parts[1]

	symbolUpper := strings.ToUpper(symbolRaw)
	precision := countPrecision(amountRaw)
	if expected, known := knownSymbolPrecision(symbolUpper); known && precision != expected {
		return Asset{}, assetErrorf("symbol %s expects precision %d, got %d", symbolUpper, expected, precision)
	}

	amount, err := parseAssetAmount(amountRaw, precision)
	if err != nil {
		return Asset{}, err
	}

	var symbol AssetSymbol
	switch symbolUpper {
	case "HIVE", "STEEM", "TESTS":
		symbol = SymbolHive
	case "HBD", "SBD", "TBD":
		symbol = SymbolHBD
	case "VESTS":
		symbol = SymbolVests
	default:
		symbol = AssetSymbol(symbolUpper)
	}

	return Asset{Amount: amount, Precision: precision, Symbol: symbol}, nil
}

// LegacySymbol returns the amount, precision and the symbol name used on the
// binary wire. The wire retains the pre-fork names STEEM and SBD.
func (a Asset) LegacySymbol() (int64, uint8, string) {
	switch a.Symbol {
	case SymbolHive:
		return a.Amount, a.Precision, "STEEM"
	case SymbolHBD:
		return a.Amount, a.Precision, "SBD"
	default:
		return a.Amount, a.Precision, string(a.Symbol)
	}
}

// String renders the canonical decimal form, e.g. "1.000 HIVE".
func (a Asset) String() string {
	scale := int64(1)
	for i := uint8(0); i < a.Precision; i++ {
		scale *= 10
	}
	sign := ""
	abs := a.Amount
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	whole := abs / scale
	fraction := abs % scale
	if a.Precision == 0 {
		return fmt.Sprintf("%s%d %s", sign, whole, a.Symbol)
	}
	return fmt.Sprintf("%s%d.%0*d %s", sign, whole, int(a.Precision), fraction, a.Symbol)
}

// MarshalJSON emits the canonical string form; the JSON surface always
// carries modern symbol names.
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &AssetError{Reason: "asset must be a string"}
	}
	parsed, err := AssetFromString(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func knownSymbolPrecision(symbol string) (uint8, bool) {
	switch symbol {
	case "HIVE", "HBD", "STEEM", "SBD", "TESTS", "TBD":
		return 3, true
	case "VESTS":
		return 6, true
	default:
		return 0, false
	}
}

func countPrecision(amount string) uint8 {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(amount, "+"), "-")
	if _, fraction, found := strings.Cut(trimmed, "."); found {
		if len(fraction) > 255 {
			return 255
		}
		return uint8(len(fraction))
	}
	return 0
}

func parseAssetAmount(raw string, precision uint8) (int64, error) {
	negative := false
	body := raw
	switch {
	case strings.HasPrefix(body, "-"):
		negative = true
		body = body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}
	if body == "" {
		return 0, &AssetError{Reason: "amount cannot be empty"}
	}

	whole, fraction, _ := strings.Cut(body, ".")
	if strings.Contains(fraction, ".") {
		return 0, &AssetError{Reason: "invalid amount format"}
	}
	if !isDigits(whole) || !isDigits(fraction) {
		return 0, &AssetError{Reason: "amount contains non-digit characters"}
	}
	if len(fraction) != int(precision) {
		return 0, assetErrorf("expected %d decimal places, got %d", precision, len(fraction))
	}

	var amount int64
	for _, ch := range whole + fraction {
		digit := int64(ch - '0')
		if amount > (1<<63-1-digit)/10 {
			return 0, &AssetError{Reason: "asset amount overflow"}
		}
		amount = amount*10 + digit
	}
	if negative {
		amount = -amount
	}
	return amount, nil
}

func isDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// Price is a quote expressed as a base/quote asset pair.
type Price struct {
	Base  Asset `json:"base"`
	Quote Asset `json:"quote"`
}

// ChainProperties are the witness-votable consensus parameters.
type ChainProperties struct {
	AccountCreationFee Asset  `json:"account_creation_fee"`
	MaximumBlockSize   uint32 `json:"maximum_block_size"`
	HBDInterestRate    uint16 `json:"hbd_interest_rate"`
}

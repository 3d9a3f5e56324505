package core

import (
	"encoding/json"
	"testing"
)

func TestAssetParseAndRoundTrip(t *testing.T) {
	cases := []string{"1.000 HIVE", "0.001 HBD", "123456.789000 VESTS", "-100.333 HBD"}
	for _, input := range cases {
		asset, err := AssetFromString(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if asset.String() != input {
			t.Fatalf("round trip %q -> %q", input, asset.String())
		}
	}
}

func TestAssetLegacySymbolNormalization(t *testing.T) {
	asset, err := AssetFromString("-100.333 SBD")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if asset.Amount != -100_333 || asset.Precision != 3 || asset.Symbol != SymbolHBD {
		t.Fatalf("unexpected asset %+v", asset)
	}
	if asset.String() != "-100.333 HBD" {
		t.Fatalf("legacy symbol not normalized: %s", asset.String())
	}
}

func TestAssetWireSymbols(t *testing.T) {
	cases := []struct {
		input  string
		amount int64
		symbol string
	}{
		{"1.000 HIVE", 1_000, "STEEM"},
		{"2.000 HBD", 2_000, "SBD"},
		{"3.000000 VESTS", 3_000_000, "VESTS"},
	}
	for _, tc := range cases {
		asset, err := AssetFromString(tc.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.input, err)
		}
		amount, _, symbol := asset.LegacySymbol()
		if amount != tc.amount || symbol != tc.symbol {
			t.Fatalf("%q -> (%d, %s), want (%d, %s)", tc.input, amount, symbol, tc.amount, tc.symbol)
		}
	}
}

func TestAssetPrecisionMismatchRejected(t *testing.T) {
	for _, input := range []string{"1.00 HIVE", "1 HBD", "1.0000000 VESTS"} {
		if _, err := AssetFromString(input); err == nil {
			t.Fatalf("expected precision mismatch for %q", input)
		}
	}
}

func TestAssetMalformedRejected(t *testing.T) {
	for _, input := range []string{"", "HIVE", "1.000", "1.000 HIVE extra", "1.0a0 HIVE"} {
		if _, err := AssetFromString(input); err == nil {
			t.Fatalf("expected parse failure for %q", input)
		}
	}
}

func TestAssetJSONRoundTrip(t *testing.T) {
	asset, err := AssetFromString("42.123 HIVE")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	serialized, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(serialized) != `"42.123 HIVE"` {
		t.Fatalf("marshal=%s", serialized)
	}

	var decoded Asset
	if err := json.Unmarshal(serialized, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != asset {
		t.Fatalf("json round trip mismatch: %+v", decoded)
	}
}

package core

import (
	"encoding/hex"
	"testing"
)

func testDigest(t *testing.T) [32]byte {
	t.Helper()
	raw, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		t.Fatalf("decode digest: %v", err)
	}
	var digest [32]byte
	copy(digest[:], raw)
	return digest
}

// TestSignMatchesKnownVector pins the deterministic-nonce signing path to
// the vector shared with dhive.
func TestSignMatchesKnownVector(t *testing.T) {
	key, err := PrivateKeyFromLogin("foo", "barman", RoleActive)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	digest := testDigest(t)

	signature, err := key.Sign(digest)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	expected := "20173e52773241c69a8870c796634a537cb543e088c8aa13b89d46e33c0227c62e4afda5266272bd53c4e3e7f417af4d811b3fae5bd069c94447f1fdc48a525b8d"
	if got := signature.ToHex(); got != expected {
		t.Fatalf("signature=%s want %s", got, expected)
	}
	if !signature.IsCanonical() {
		t.Fatalf("signature must be canonical")
	}
}

func TestSignVerifyRecover(t *testing.T) {
	key, err := PrivateKeyFromLogin("foo", "barman", RoleActive)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	digest := testDigest(t)

	signature, err := key.Sign(digest)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !key.PublicKey().Verify(digest, signature) {
		t.Fatalf("verify failed")
	}

	recovered, err := signature.Recover(digest)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if recovered.String() != key.PublicKey().String() {
		t.Fatalf("recovered %s want %s", recovered.String(), key.PublicKey().String())
	}

	// A different digest must not verify.
	var other [32]byte
	other[0] = 0xFF
	if key.PublicKey().Verify(other, signature) {
		t.Fatalf("verify must fail for a different digest")
	}
}

func TestSignatureHexRoundTrip(t *testing.T) {
	value := "20173e52773241c69a8870c796634a537cb543e088c8aa13b89d46e33c0227c62e4afda5266272bd53c4e3e7f417af4d811b3fae5bd069c94447f1fdc48a525b8d"
	sig, err := SignatureFromHex(value)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sig.ToHex() != value {
		t.Fatalf("round trip=%s", sig.ToHex())
	}
	if _, err := SignatureFromHex("abcd"); err == nil {
		t.Fatalf("expected short hex to fail")
	}
}

func TestCanonicalPredicate(t *testing.T) {
	var compact [64]byte
	compact[0] = 0x10
	compact[32] = 0x10
	if !isCanonicalCompact(&compact) {
		t.Fatalf("plain low form should be canonical")
	}

	compact[0] = 0x80
	if isCanonicalCompact(&compact) {
		t.Fatalf("high bit in r must be rejected")
	}

	compact[0] = 0x00
	compact[1] = 0x10
	if isCanonicalCompact(&compact) {
		t.Fatalf("leading zero before low byte in r must be rejected")
	}

	compact[0] = 0x10
	compact[1] = 0x00
	compact[32] = 0x80
	if isCanonicalCompact(&compact) {
		t.Fatalf("high bit in s must be rejected")
	}
}

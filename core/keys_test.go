package core

import (
	"testing"
)

const (
	testWIF    = "5KG4sr3rMH1QuduYj79p36h7PrEeZakHEPjB9NkLWqgw19DDieL"
	testPubKey = "STM87F7tN56tAUL2C6J9Gzi9HzgNpZdi6M2cLQo7TjDU5v178QsYA"
)

func TestKnownWIFToPublicKey(t *testing.T) {
	key, err := PrivateKeyFromWIF(testWIF)
	if err != nil {
		t.Fatalf("parse wif: %v", err)
	}
	if got := key.PublicKey().String(); got != testPubKey {
		t.Fatalf("public key=%s want %s", got, testPubKey)
	}
}

func TestLoginDerivation(t *testing.T) {
	key, err := PrivateKeyFromLogin("foo", "barman", RoleActive)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if got := key.PublicKey().String(); got != testPubKey {
		t.Fatalf("login public key=%s want %s", got, testPubKey)
	}
}

func TestSeedDerivationIsDeterministic(t *testing.T) {
	a, err := PrivateKeyFromSeed("hivenet-test-seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	b, err := PrivateKeyFromSeed("hivenet-test-seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if a.SecretBytes() != b.SecretBytes() {
		t.Fatalf("same seed produced different keys")
	}
}

func TestWIFRoundTrip(t *testing.T) {
	key, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	parsed, err := PrivateKeyFromWIF(key.ToWIF())
	if err != nil {
		t.Fatalf("round trip parse: %v", err)
	}
	if parsed.SecretBytes() != key.SecretBytes() {
		t.Fatalf("wif round trip lost the scalar")
	}
}

func TestWIFRejectsCorruption(t *testing.T) {
	// Flip the final character; the double-sha256 checksum must catch it.
	corrupted := testWIF[:len(testWIF)-1] + "M"
	if _, err := PrivateKeyFromWIF(corrupted); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
	if _, err := PrivateKeyFromWIF("not-base58-0OIl"); err == nil {
		t.Fatalf("expected base58 failure")
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	key, err := PublicKeyFromString(testPubKey)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if key.String() != testPubKey {
		t.Fatalf("round trip=%s", key.String())
	}
	if key.Prefix() != "STM" {
		t.Fatalf("prefix=%s", key.Prefix())
	}
}

func TestPublicKeyChecksumMismatch(t *testing.T) {
	corrupted := testPubKey[:len(testPubKey)-1] + "B"
	if _, err := PublicKeyFromString(corrupted); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}

func TestNullPublicKey(t *testing.T) {
	key, err := PublicKeyFromString("STM1111111111111111111111111111111114T1Anm")
	if err != nil {
		t.Fatalf("parse null key: %v", err)
	}
	if !key.IsNull() {
		t.Fatalf("expected null key")
	}
	if key.CompressedBytes() != ([33]byte{}) {
		t.Fatalf("null key should serialize to zeros")
	}
	if key.Verify([32]byte{1}, Signature{}) {
		t.Fatalf("null key must never verify")
	}
}

func TestSharedSecretIsSymmetric(t *testing.T) {
	alice, err := PrivateKeyFromSeed("alice")
	if err != nil {
		t.Fatalf("alice: %v", err)
	}
	bob, err := PrivateKeyFromSeed("bob")
	if err != nil {
		t.Fatalf("bob: %v", err)
	}

	ab := alice.SharedSecret(bob.PublicKey())
	ba := bob.SharedSecret(alice.PublicKey())
	if ab != ba {
		t.Fatalf("ECDH value must be symmetric")
	}

	if alice.SharedSecret(PublicKey{}) != ([64]byte{}) {
		t.Fatalf("null peer key must yield 64 zero bytes")
	}
}

package core

import (
	"errors"
	"testing"
)

const (
	memoSenderWIF  = "5JdeC9P7Pbd1uGdFVEsJ41EkEnADbbHGq6p1BwFxm6txNBsQnsw"
	memoRecipient  = "STM8m5UgaFAAYQRuaNejYdS8FVLVp9Ss3K1qAVk5de6F8s3HnVbvA"
	memoCipherText = "#K55WaPFbgNW8w8UiPzFGRejmMLZH3CA6guETaVLS7fUGgYhSwWTXjQ26ozhA6zFtG339Tsjw5AXqce8v4HCsYZ9kG3mStgR9ixN9KWPUpFDFgST38EoeWVncvfsCPFseg"
	memoPlainText  = "#memo爱"
	memoFixedNonce = 1234567890
)

// TestMemoEncodeVector pins the deterministic-nonce cipher to a known
// cross-library vector.
func TestMemoEncodeVector(t *testing.T) {
	sender, err := PrivateKeyFromWIF(memoSenderWIF)
	if err != nil {
		t.Fatalf("parse wif: %v", err)
	}
	to, err := PublicKeyFromString(memoRecipient)
	if err != nil {
		t.Fatalf("parse recipient: %v", err)
	}

	encoded, err := EncodeMemoWithNonce(sender, to, memoPlainText, memoFixedNonce)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if encoded != memoCipherText {
		t.Fatalf("cipher text=%s want %s", encoded, memoCipherText)
	}
}

func TestMemoDecodeBySender(t *testing.T) {
	sender, err := PrivateKeyFromWIF(memoSenderWIF)
	if err != nil {
		t.Fatalf("parse wif: %v", err)
	}

	decoded, err := DecodeMemo(sender, memoCipherText)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != memoPlainText {
		t.Fatalf("plain text=%q want %q", decoded, memoPlainText)
	}
}

func TestMemoTamperDetection(t *testing.T) {
	sender, err := PrivateKeyFromWIF(memoSenderWIF)
	if err != nil {
		t.Fatalf("parse wif: %v", err)
	}

	tampered := memoCipherText[:len(memoCipherText)-1] + "h"
	_, err = DecodeMemo(sender, tampered)
	var signingErr *SigningError
	if !errors.As(err, &signingErr) || signingErr.Reason != "Invalid key" {
		t.Fatalf("expected Signing(Invalid key), got %v", err)
	}
}

func TestMemoWrongKeyRejected(t *testing.T) {
	stranger, err := PrivateKeyFromSeed("not-a-party-to-this-memo")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err = DecodeMemo(stranger, memoCipherText)
	var signingErr *SigningError
	if !errors.As(err, &signingErr) {
		t.Fatalf("expected SigningError, got %v", err)
	}
}

func TestMemoPassthrough(t *testing.T) {
	sender, err := PrivateKeyFromWIF(memoSenderWIF)
	if err != nil {
		t.Fatalf("parse wif: %v", err)
	}
	to, err := PublicKeyFromString(memoRecipient)
	if err != nil {
		t.Fatalf("parse recipient: %v", err)
	}

	plain := "ordinary memo"
	encoded, err := EncodeMemo(sender, to, plain)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if encoded != plain {
		t.Fatalf("plain memo must pass through, got %q", encoded)
	}

	decoded, err := DecodeMemo(sender, plain)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded != plain {
		t.Fatalf("plain memo must pass through, got %q", decoded)
	}
}

func TestMemoRoundTripWithFreshNonce(t *testing.T) {
	sender, err := PrivateKeyFromSeed("memo-sender")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	receiver, err := PrivateKeyFromSeed("memo-receiver")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	encoded, err := EncodeMemo(sender, receiver.PublicKey(), "#secret handshake")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decodedBySender, err := DecodeMemo(sender, encoded)
	if err != nil {
		t.Fatalf("decode by sender: %v", err)
	}
	decodedByReceiver, err := DecodeMemo(receiver, encoded)
	if err != nil {
		t.Fatalf("decode by receiver: %v", err)
	}
	if decodedBySender != "#secret handshake" || decodedByReceiver != "#secret handshake" {
		t.Fatalf("round trip mismatch: %q / %q", decodedBySender, decodedByReceiver)
	}
}

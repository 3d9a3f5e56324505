package core

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Signature is the chain's 65-byte recoverable form:
// [recovery_id + 31 ‖ compact r ‖ compact s].
type Signature struct {
	data [65]byte
}

// SignatureFromBytes wraps an existing 65-byte signature.
func SignatureFromBytes(data [65]byte) Signature {
	return Signature{data: data}
}

// SignatureFromCompact assembles the wire form from a compact (r,s) pair and
// a recovery id in [0,3].
func SignatureFromCompact(compact [64]byte, recoveryID byte) (Signature, error) {
	if recoveryID > 3 {
		return Signature{}, signingErrorf("invalid recovery id %d", recoveryID)
	}
	var sig Signature
	sig.data[0] = recoveryID + 31
	copy(sig.data[1:], compact[:])
	return sig, nil
}

// SignatureFromHex parses the 130-char hex rendering.
func SignatureFromHex(value string) (Signature, error) {
	raw, err := hex.DecodeString(value)
	if err != nil {
		return Signature{}, signingErrorf("invalid signature hex: %v", err)
	}
	if len(raw) != 65 {
		return Signature{}, &SigningError{Reason: "signature must be 65 bytes"}
	}
	var sig Signature
	copy(sig.data[:], raw)
	return sig, nil
}

// ToHex renders the 65 bytes as 130 hex chars.
func (s Signature) ToHex() string {
	return hex.EncodeToString(s.data[:])
}

// Bytes returns the full 65-byte wire form.
func (s Signature) Bytes() [65]byte { return s.data }

// CompactBytes returns the 64-byte r‖s pair without the recovery header.
func (s Signature) CompactBytes() [64]byte {
	var out [64]byte
	copy(out[:], s.data[1:])
	return out
}

// RecoveryID returns the two recovery bits.
func (s Signature) RecoveryID() byte {
	if s.data[0] < 31 {
		return 0
	}
	return s.data[0] - 31
}

// IsCanonical reports whether the (r,s) pair is in the strict form the chain
// accepts.
func (s Signature) IsCanonical() bool {
	compact := s.CompactBytes()
	return isCanonicalCompact(&compact)
}

// isCanonicalCompact enforces the chain's strict malleability rule:
// neither scalar may have its high bit set, nor a leading zero byte followed
// by a byte without the high bit.
func isCanonicalCompact(signature *[64]byte) bool {
	if signature[0]&0x80 != 0 {
		return false
	}
	if signature[0] == 0 && signature[1]&0x80 == 0 {
		return false
	}
	if signature[32]&0x80 != 0 {
		return false
	}
	if signature[32] == 0 && signature[33]&0x80 == 0 {
		return false
	}
	return true
}

// Recover reconstructs the signing public key from the signature and digest.
func (s Signature) Recover(digest [32]byte) (PublicKey, error) {
	key, _, err := ecdsa.RecoverCompact(s.data[:], digest[:])
	if err != nil {
		return PublicKey{}, signingErrorf("recover failed: %v", err)
	}
	return publicKeyFromSecp(key, DefaultAddressPrefix), nil
}

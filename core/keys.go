package core

import (
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/mr-tron/base58"
)

// wifNetworkID is the base58check network byte for private keys.
const wifNetworkID = 0x80

// DefaultAddressPrefix is the mainnet public-key prefix.
const DefaultAddressPrefix = "STM"

// KeyRole selects which account authority a login-derived key controls.
type KeyRole int

const (
	RoleOwner KeyRole = iota
	RoleActive
	RolePosting
	RoleMemo
)

func (r KeyRole) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleActive:
		return "active"
	case RolePosting:
		return "posting"
	case RoleMemo:
		return "memo"
	default:
		return "unknown"
	}
}

// PublicKey is a compressed secp256k1 point plus its address prefix. The
// all-zero point is the null-key sentinel: it parses and serializes but
// never verifies.
type PublicKey struct {
	key    *secp256k1.PublicKey
	prefix string
}

// PublicKeyFromString parses "STM…": a 3-char prefix followed by
// base58(33-byte point ‖ ripemd160(point)[0..4]).
func PublicKeyFromString(value string) (PublicKey, error) {
	if len(value) < 4 {
		return PublicKey{}, &KeyError{Reason: "public key must include a 3-byte prefix"}
	}
	prefix := value[:3]
	decoded, err := base58.Decode(value[3:])
	if err != nil {
		return PublicKey{}, keyErrorf("invalid base58 public key: %v", err)
	}
	if len(decoded) != 37 {
		return PublicKey{}, keyErrorf("public key payload must be 37 bytes, got %d", len(decoded))
	}

	var keyBytes [33]byte
	copy(keyBytes[:], decoded[:33])
	checksum := Ripemd160(keyBytes[:])
	if !bytesEqual(decoded[33:37], checksum[:4]) {
		return PublicKey{}, &KeyError{Reason: "public key checksum mismatch"}
	}
	return PublicKeyFromBytes(keyBytes, prefix)
}

// PublicKeyFromBytes builds a key from its 33 compressed bytes. The all-zero
// point yields the null key.
func PublicKeyFromBytes(bytes [33]byte, prefix string) (PublicKey, error) {
	if bytes == ([33]byte{}) {
		return PublicKey{prefix: prefix}, nil
	}
	key, err := secp256k1.ParsePubKey(bytes[:])
	if err != nil {
		return PublicKey{}, keyErrorf("invalid public key bytes: %v", err)
	}
	return PublicKey{key: key, prefix: prefix}, nil
}

func publicKeyFromSecp(key *secp256k1.PublicKey, prefix string) PublicKey {
	return PublicKey{key: key, prefix: prefix}
}

// StringWithPrefix renders the key under an explicit address prefix.
func (k PublicKey) StringWithPrefix(prefix string) string {
	compressed := k.CompressedBytes()
	checksum := Ripemd160(compressed[:])
	payload := make([]byte, 0, 37)
	payload = append(payload, compressed[:]...)
	payload = append(payload, checksum[:4]...)
	return prefix + base58.Encode(payload)
}

func (k PublicKey) String() string {
	return k.StringWithPrefix(k.prefix)
}

// CompressedBytes returns the 33-byte wire form; all zeros for the null key.
func (k PublicKey) CompressedBytes() [33]byte {
	var out [33]byte
	if k.key != nil {
		copy(out[:], k.key.SerializeCompressed())
	}
	return out
}

// IsNull reports whether this is the all-zero sentinel key.
func (k PublicKey) IsNull() bool { return k.key == nil }

// Prefix returns the address prefix the key was parsed or derived with.
func (k PublicKey) Prefix() string { return k.prefix }

// Verify checks a compact ECDSA signature against a 32-byte digest. The null
// key verifies nothing.
func (k PublicKey) Verify(digest [32]byte, signature Signature) bool {
	if k.key == nil {
		return false
	}
	compact := signature.CompactBytes()
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(compact[:32]) {
		return false
	}
	if s.SetByteSlice(compact[32:]) {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], k.key)
}

// PrivateKey is an immutable secp256k1 scalar.
type PrivateKey struct {
	secret *secp256k1.PrivateKey
}

// PrivateKeyFromWIF parses the wallet-import form:
// base58(0x80 ‖ scalar ‖ double_sha256(0x80‖scalar)[0..4]).
func PrivateKeyFromWIF(wif string) (*PrivateKey, error) {
	decoded, err := base58.Decode(wif)
	if err != nil {
		return nil, keyErrorf("invalid base58 wif: %v", err)
	}
	if len(decoded) != 37 {
		return nil, keyErrorf("wif payload must be 37 bytes, got %d", len(decoded))
	}
	if decoded[0] != wifNetworkID {
		return nil, &KeyError{Reason: "private key network id mismatch"}
	}

	checksum := DoubleSha256(decoded[:33])
	if !bytesEqual(decoded[33:37], checksum[:4]) {
		return nil, &KeyError{Reason: "private key checksum mismatch"}
	}

	var keyBytes [32]byte
	copy(keyBytes[:], decoded[1:33])
	return PrivateKeyFromBytes(keyBytes)
}

// PrivateKeyFromSeed derives a key as sha256(seed).
func PrivateKeyFromSeed(seed string) (*PrivateKey, error) {
	return PrivateKeyFromBytes(Sha256([]byte(seed)))
}

// PrivateKeyFromLogin derives the classic login key:
// sha256(username ‖ role ‖ password).
func PrivateKeyFromLogin(username, password string, role KeyRole) (*PrivateKey, error) {
	return PrivateKeyFromSeed(username + role.String() + password)
}

// PrivateKeyFromBytes validates the scalar range and wraps it.
func PrivateKeyFromBytes(bytes [32]byte) (*PrivateKey, error) {
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetBytes(&bytes)
	if overflow != 0 || scalar.IsZero() {
		return nil, &KeyError{Reason: "private key scalar is out of range"}
	}
	return &PrivateKey{secret: secp256k1.NewPrivateKey(&scalar)}, nil
}

// GeneratePrivateKey returns a fresh random key.
func GeneratePrivateKey() (*PrivateKey, error) {
	secret, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, keyErrorf("key generation failed: %v", err)
	}
	return &PrivateKey{secret: secret}, nil
}

// ToWIF renders the canonical wallet-import form.
func (k *PrivateKey) ToWIF() string {
	payload := make([]byte, 0, 37)
	payload = append(payload, wifNetworkID)
	payload = append(payload, k.secret.Serialize()...)
	checksum := DoubleSha256(payload)
	payload = append(payload, checksum[:4]...)
	return base58.Encode(payload)
}

func (k *PrivateKey) String() string { return k.ToWIF() }

// PublicKey derives the corresponding public key under the mainnet prefix.
func (k *PrivateKey) PublicKey() PublicKey {
	return publicKeyFromSecp(k.secret.PubKey(), DefaultAddressPrefix)
}

// SecretBytes returns the raw 32-byte scalar.
func (k *PrivateKey) SecretBytes() [32]byte {
	var out [32]byte
	copy(out[:], k.secret.Serialize())
	return out
}

// Sign produces a canonical 65-byte recoverable signature over a 32-byte
// digest. The deterministic nonce is RFC6979 with 32 bytes of extra entropy
// sha256(digest ‖ counter); non-canonical (r,s) pairs perturb the counter
// and retry. The expected iteration count is below two.
func (k *PrivateKey) Sign(digest [32]byte) (Signature, error) {
	privBytes := k.secret.Serialize()

	var e secp256k1.ModNScalar
	e.SetByteSlice(digest[:])

	seedInput := make([]byte, 33)
	copy(seedInput, digest[:])

	for attempt := uint32(1); attempt <= 0xFFFF; attempt++ {
		seedInput[32] = byte(attempt)
		nonceSeed := Sha256(seedInput)
		nonce := secp256k1.NonceRFC6979(privBytes, digest[:], nonceSeed[:], nil, 0)

		compact, recoveryID, ok := signCompactWithNonce(&k.secret.Key, nonce, &e)
		if !ok {
			continue
		}
		if isCanonicalCompact(&compact) {
			return SignatureFromCompact(compact, recoveryID)
		}
	}
	return Signature{}, &SigningError{Reason: "unable to produce canonical signature"}
}

// signCompactWithNonce performs one ECDSA signing round with a fixed nonce,
// matching libsecp256k1's low-S normalization and recovery-code layout.
func signCompactWithNonce(priv, nonce, e *secp256k1.ModNScalar) (compact [64]byte, recoveryID byte, ok bool) {
	var kG secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(nonce, &kG)
	kG.ToAffine()

	var xBytes [32]byte
	kG.X.PutBytes(&xBytes)
	var r secp256k1.ModNScalar
	if overflow := r.SetBytes(&xBytes); overflow != 0 {
		recoveryID |= 2
	}
	if kG.Y.IsOdd() {
		recoveryID |= 1
	}
	if r.IsZero() {
		return compact, 0, false
	}

	kInv := new(secp256k1.ModNScalar).InverseValNonConst(nonce)
	s := new(secp256k1.ModNScalar).Mul2(priv, &r).Add(e).Mul(kInv)
	if s.IsZero() {
		return compact, 0, false
	}
	if s.IsOverHalfOrder() {
		s.Negate()
		recoveryID ^= 1
	}

	rBytes := r.Bytes()
	sBytes := s.Bytes()
	copy(compact[:32], rBytes[:])
	copy(compact[32:], sBytes[:])
	return compact, recoveryID, true
}

// SharedSecret computes the ECDH value sha512(x_coord(secret · peer)). The
// null peer key yields 64 zero bytes.
func (k *PrivateKey) SharedSecret(peer PublicKey) [64]byte {
	if peer.key == nil {
		return [64]byte{}
	}
	x := secp256k1.GenerateSharedSecret(k.secret, peer.key)
	return Sha512(x)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

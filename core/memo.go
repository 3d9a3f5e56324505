package core

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"github.com/mr-tron/base58"
)

// memoCipherPrefix marks an encrypted memo. Anything else passes through
// unchanged in both directions.
const memoCipherPrefix = "#"

// EncodeMemo encrypts a "#"-prefixed memo from the sender's key to the
// recipient's public key using a fresh unique nonce. Plain memos are
// returned as-is.
func EncodeMemo(sender *PrivateKey, to PublicKey, memo string) (string, error) {
	if !strings.HasPrefix(memo, memoCipherPrefix) {
		return memo, nil
	}
	return EncodeMemoWithNonce(sender, to, memo, UniqueNonce())
}

// EncodeMemoWithNonce is the deterministic variant used for test vectors and
// replay-exact encodings.
func EncodeMemoWithNonce(sender *PrivateKey, to PublicKey, memo string, nonce uint64) (string, error) {
	if !strings.HasPrefix(memo, memoCipherPrefix) {
		return memo, nil
	}
	plain := strings.TrimPrefix(memo, memoCipherPrefix)

	shared := sender.SharedSecret(to)
	key, iv, check := memoKeySchedule(nonce, shared)

	var plainEnc encoder
	plainEnc.writeString(plain)
	cipherText, err := aesCBCEncrypt(key, iv, plainEnc.bytes())
	if err != nil {
		return "", err
	}

	from := sender.PublicKey().CompressedBytes()
	toBytes := to.CompressedBytes()

	var payload encoder
	payload.buf.Write(from[:])
	payload.buf.Write(toBytes[:])
	payload.writeU64(nonce)
	payload.buf.Write(check[:])
	payload.writeVariableBinary(cipherText)

	return memoCipherPrefix + base58.Encode(payload.bytes()), nil
}

// DecodeMemo decrypts a "#"-prefixed memo addressed to (or sent by) the
// holder of the given key. The counterparty key is whichever embedded key is
// not our own; payloads matching neither fall back to the embedded sender.
func DecodeMemo(receiver *PrivateKey, memo string) (string, error) {
	if !strings.HasPrefix(memo, memoCipherPrefix) {
		return memo, nil
	}

	raw, err := base58.Decode(strings.TrimPrefix(memo, memoCipherPrefix))
	if err != nil {
		return "", serializationErrorf("invalid base58 memo: %v", err)
	}

	d := newDecoder(raw)
	fromBytes, err := d.readBytes(33)
	if err != nil {
		return "", err
	}
	toBytes, err := d.readBytes(33)
	if err != nil {
		return "", err
	}
	nonce, err := d.readU64()
	if err != nil {
		return "", err
	}
	checkBytes, err := d.readBytes(4)
	if err != nil {
		return "", err
	}
	cipherText, err := d.readVariableBinary()
	if err != nil {
		return "", err
	}

	own := receiver.PublicKey().CompressedBytes()
	counterparty := fromBytes
	if bytesEqual(own[:], fromBytes) {
		counterparty = toBytes
	}

	var counterpartyKey [33]byte
	copy(counterpartyKey[:], counterparty)
	peer, err := PublicKeyFromBytes(counterpartyKey, DefaultAddressPrefix)
	if err != nil {
		return "", err
	}

	shared := receiver.SharedSecret(peer)
	key, iv, check := memoKeySchedule(nonce, shared)
	if !bytesEqual(checkBytes, check[:]) {
		return "", &SigningError{Reason: "Invalid key"}
	}

	plain, err := aesCBCDecrypt(key, iv, cipherText)
	if err != nil {
		return "", err
	}

	pd := newDecoder(plain)
	if text, err := pd.readString(); err == nil && pd.remaining() == 0 {
		return memoCipherPrefix + text, nil
	}
	if utf8.Valid(plain) {
		return memoCipherPrefix + string(plain), nil
	}
	return "", &SigningError{Reason: "Invalid key"}
}

// memoKeySchedule derives the AES key, IV and integrity-check word from the
// nonce and the 64-byte ECDH value:
// material = sha512(u64_LE(nonce) ‖ shared), key = material[0..32],
// iv = material[32..48], check = sha256(material)[0..4].
func memoKeySchedule(nonce uint64, shared [64]byte) (key [32]byte, iv [16]byte, check [4]byte) {
	seed := make([]byte, 8+len(shared))
	binary.LittleEndian.PutUint64(seed[:8], nonce)
	copy(seed[8:], shared[:])

	material := Sha512(seed)
	copy(key[:], material[:32])
	copy(iv[:], material[32:48])

	sum := Sha256(material[:])
	copy(check[:], sum[:4])
	return key, iv, check
}

func aesCBCEncrypt(key [32]byte, iv [16]byte, plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, signingErrorf("cipher init failed: %v", err)
	}

	padded := pkcs7Pad(plain, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(out, padded)
	return out, nil
}

func aesCBCDecrypt(key [32]byte, iv [16]byte, cipherText []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, signingErrorf("cipher init failed: %v", err)
	}
	if len(cipherText) == 0 || len(cipherText)%aes.BlockSize != 0 {
		return nil, &SigningError{Reason: "Invalid key"}
	}

	out := make([]byte, len(cipherText))
	cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(out, cipherText)
	return pkcs7Unpad(out, aes.BlockSize)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padding)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padding)
	}
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, &SigningError{Reason: "Invalid key"}
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, &SigningError{Reason: "Invalid key"}
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, &SigningError{Reason: "Invalid key"}
		}
	}
	return data[:len(data)-padding], nil
}

package core

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// hiveTimeLayout is the naive RFC-3339 form the chain uses everywhere:
// second precision, no zone suffix, implicitly UTC.
const hiveTimeLayout = "2006-01-02T15:04:05"

// ParseHiveTime parses a chain timestamp. A trailing 'Z' is tolerated.
func ParseHiveTime(value string) (time.Time, error) {
	trimmed := strings.TrimSuffix(value, "Z")
	parsed, err := time.ParseInLocation(hiveTimeLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, serializationErrorf("invalid hive time %q: %v", value, err)
	}
	return parsed, nil
}

// FormatHiveTime renders a timestamp in the chain's naive UTC form.
func FormatHiveTime(value time.Time) string {
	return value.UTC().Format(hiveTimeLayout)
}

// encoder accumulates the canonical little-endian wire form. Write methods
// that cannot fail return nothing; fallible ones return an error.
type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) bytes() []byte { return e.buf.Bytes() }

func (e *encoder) writeU8(v uint8)  { e.buf.WriteByte(v) }
func (e *encoder) writeI8(v int8)   { e.buf.WriteByte(byte(v)) }
func (e *encoder) writeBool(v bool) { e.buf.WriteByte(boolByte(v)) }

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func (e *encoder) writeU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) writeU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) writeU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *encoder) writeI16(v int16) { e.writeU16(uint16(v)) }
func (e *encoder) writeI32(v int32) { e.writeU32(uint32(v)) }
func (e *encoder) writeI64(v int64) { e.writeU64(uint64(v)) }

// writeVarint32 emits 7-bit groups, low group first, high bit set on every
// group except the last.
func (e *encoder) writeVarint32(v uint32) {
	for v >= 0x80 {
		e.buf.WriteByte(byte(v&0x7F) | 0x80)
		v >>= 7
	}
	e.buf.WriteByte(byte(v))
}

func (e *encoder) writeString(s string) {
	e.writeVarint32(uint32(len(s)))
	e.buf.WriteString(s)
}

func (e *encoder) writeVariableBinary(data []byte) {
	e.writeVarint32(uint32(len(data)))
	e.buf.Write(data)
}

// writeVoidArray emits an empty extension array.
func (e *encoder) writeVoidArray() { e.writeVarint32(0) }

func (e *encoder) writeStringArray(items []string) {
	e.writeVarint32(uint32(len(items)))
	for _, item := range items {
		e.writeString(item)
	}
}

// writeDate encodes a chain timestamp as u32 LE Unix seconds. Timestamps
// outside the unsigned 32-bit range are rejected.
func (e *encoder) writeDate(value string) error {
	parsed, err := ParseHiveTime(value)
	if err != nil {
		return err
	}
	ts := parsed.Unix()
	if ts < 0 || ts > math.MaxUint32 {
		return serializationErrorf("date %q is out of u32 timestamp range", value)
	}
	e.writeU32(uint32(ts))
	return nil
}

// writeAsset encodes amount, precision and the 7-byte NUL-padded legacy
// symbol.
func (e *encoder) writeAsset(asset Asset) error {
	amount, precision, symbol := asset.LegacySymbol()
	e.writeI64(amount)
	e.writeU8(precision)

	if len(symbol) > 7 {
		return serializationErrorf("asset symbol %q exceeds 7 bytes", symbol)
	}
	var padded [7]byte
	copy(padded[:], symbol)
	e.buf.Write(padded[:])
	return nil
}

// writePublicKeyString encodes a prefixed key string as its 33 compressed
// bytes.
func (e *encoder) writePublicKeyString(value string) error {
	key, err := PublicKeyFromString(value)
	if err != nil {
		return err
	}
	compressed := key.CompressedBytes()
	e.buf.Write(compressed[:])
	return nil
}

func (e *encoder) writeAuthority(authority Authority) error {
	e.writeU32(authority.WeightThreshold)
	e.writeVarint32(uint32(len(authority.AccountAuths)))
	for _, auth := range authority.AccountAuths {
		e.writeString(auth.Account)
		e.writeU16(auth.Weight)
	}
	e.writeVarint32(uint32(len(authority.KeyAuths)))
	for _, auth := range authority.KeyAuths {
		if err := e.writePublicKeyString(auth.Key); err != nil {
			return err
		}
		e.writeU16(auth.Weight)
	}
	return nil
}

func (e *encoder) writeOptionalAuthority(authority *Authority) error {
	if authority == nil {
		e.writeU8(0)
		return nil
	}
	e.writeU8(1)
	return e.writeAuthority(*authority)
}

func (e *encoder) writePrice(price Price) error {
	if err := e.writeAsset(price.Base); err != nil {
		return err
	}
	return e.writeAsset(price.Quote)
}

func (e *encoder) writeChainProperties(props ChainProperties) error {
	if err := e.writeAsset(props.AccountCreationFee); err != nil {
		return err
	}
	e.writeU32(props.MaximumBlockSize)
	e.writeU16(props.HBDInterestRate)
	return nil
}

// decoder walks a wire buffer. It is used by the memo path; operation
// decoding happens via JSON.
type decoder struct {
	buf []byte
}

func newDecoder(data []byte) *decoder { return &decoder{buf: data} }

func (d *decoder) remaining() int { return len(d.buf) }

func (d *decoder) readBytes(n int) ([]byte, error) {
	if len(d.buf) < n {
		return nil, serializationErrorf("buffer underflow: need %d bytes, have %d", n, len(d.buf))
	}
	out := d.buf[:n]
	d.buf = d.buf[n:]
	return out, nil
}

func (d *decoder) readU8() (uint8, error) {
	b, err := d.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) readU16() (uint16, error) {
	b, err := d.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *decoder) readU32() (uint32, error) {
	b, err := d.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) readU64() (uint64, error) {
	b, err := d.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readVarint32 mirrors writeVarint32: it accepts up to five 7-bit groups
// (the most the writer emits for a uint32) and rejects longer encodings.
func (d *decoder) readVarint32() (uint32, error) {
	var value uint32
	var shift uint
	for i := 0; i < len(d.buf); i++ {
		b := d.buf[i]
		value |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			d.buf = d.buf[i+1:]
			return value, nil
		}
		shift += 7
		if shift > 28 {
			return 0, serializationErrorf("varint32 value is too large")
		}
	}
	return 0, serializationErrorf("unexpected EOF while parsing varint32")
}

func (d *decoder) readString() (string, error) {
	length, err := d.readVarint32()
	if err != nil {
		return "", err
	}
	raw, err := d.readBytes(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", serializationErrorf("invalid UTF-8 string")
	}
	return string(raw), nil
}

func (d *decoder) readVariableBinary() ([]byte, error) {
	length, err := d.readVarint32()
	if err != nil {
		return nil, err
	}
	return d.readBytes(int(length))
}

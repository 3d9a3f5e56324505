package core

import (
	"encoding/hex"
	"errors"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 255, 300, 65535, 1_000_000, 1<<28 - 1}
	for _, value := range values {
		var e encoder
		e.writeVarint32(value)

		d := newDecoder(e.bytes())
		decoded, err := d.readVarint32()
		if err != nil {
			t.Fatalf("varint %d: %v", value, err)
		}
		if decoded != value {
			t.Fatalf("varint round trip: got %d want %d", decoded, value)
		}
		if d.remaining() != 0 {
			t.Fatalf("varint %d left %d bytes", value, d.remaining())
		}
	}
}

func TestVarintRejectsOversizeEncoding(t *testing.T) {
	d := newDecoder([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01})
	if _, err := d.readVarint32(); err == nil {
		t.Fatalf("expected oversize varint to fail")
	}
}

func TestVarintRejectsTruncatedInput(t *testing.T) {
	d := newDecoder([]byte{0x80})
	var serErr *SerializationError
	if _, err := d.readVarint32(); !errors.As(err, &serErr) {
		t.Fatalf("expected SerializationError, got %v", err)
	}
}

func TestDateMatchesKnownVectors(t *testing.T) {
	var e encoder
	if err := e.writeDate("2017-07-15T16:51:19"); err != nil {
		t.Fatalf("write date: %v", err)
	}
	if got := hex.EncodeToString(e.bytes()); got != "07486a59" {
		t.Fatalf("date bytes=%s", got)
	}

	var e2 encoder
	if err := e2.writeDate("2000-01-01T00:00:00"); err != nil {
		t.Fatalf("write date: %v", err)
	}
	if got := hex.EncodeToString(e2.bytes()); got != "80436d38" {
		t.Fatalf("date bytes=%s", got)
	}
}

func TestDateToleratesTrailingZ(t *testing.T) {
	var plain, suffixed encoder
	if err := plain.writeDate("2017-07-15T16:51:19"); err != nil {
		t.Fatalf("write date: %v", err)
	}
	if err := suffixed.writeDate("2017-07-15T16:51:19Z"); err != nil {
		t.Fatalf("write date with Z: %v", err)
	}
	if !bytesEqual(plain.bytes(), suffixed.bytes()) {
		t.Fatalf("Z suffix changed encoding")
	}
}

func TestDateRejectsOutOfRangeTimestamp(t *testing.T) {
	var e encoder
	if err := e.writeDate("2110-01-01T00:00:00"); err == nil {
		t.Fatalf("expected out-of-range date to fail")
	}
	if err := e.writeDate("not-a-date"); err == nil {
		t.Fatalf("expected invalid date to fail")
	}
}

func TestStringRoundTrip(t *testing.T) {
	var e encoder
	e.writeString("Hellooo fröm Swäden!")
	if got := hex.EncodeToString(e.bytes()); got != "1648656c6c6f6f6f206672c3b66d205377c3a464656e21" {
		t.Fatalf("string bytes=%s", got)
	}

	d := newDecoder(e.bytes())
	decoded, err := d.readString()
	if err != nil {
		t.Fatalf("read string: %v", err)
	}
	if decoded != "Hellooo fröm Swäden!" {
		t.Fatalf("string round trip: %q", decoded)
	}
	if d.remaining() != 0 {
		t.Fatalf("string left %d bytes", d.remaining())
	}
}

func TestDecoderLittleEndianPrimitives(t *testing.T) {
	d := newDecoder([]byte{0x11, 0x22, 0x33, 0x78, 0x56, 0x34, 0x12})
	if v, _ := d.readU8(); v != 0x11 {
		t.Fatalf("readU8=%x", v)
	}
	if v, _ := d.readU16(); v != 0x3322 {
		t.Fatalf("readU16=%x", v)
	}
	if v, _ := d.readU32(); v != 0x12345678 {
		t.Fatalf("readU32=%x", v)
	}
	if _, err := d.readU8(); err == nil {
		t.Fatalf("expected underflow")
	}
}

func TestAssetSymbolTooLongRejected(t *testing.T) {
	var e encoder
	err := e.writeAsset(Asset{Amount: 1, Precision: 0, Symbol: "TOOLONGSYM"})
	if err == nil {
		t.Fatalf("expected oversize symbol to fail")
	}
}

func TestVariableBinaryRoundTrip(t *testing.T) {
	var e encoder
	e.writeVariableBinary([]byte("hello"))
	d := newDecoder(e.bytes())
	value, err := d.readVariableBinary()
	if err != nil {
		t.Fatalf("read variable binary: %v", err)
	}
	if string(value) != "hello" {
		t.Fatalf("variable binary round trip: %q", value)
	}
}

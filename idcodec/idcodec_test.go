package idcodec

import (
	"testing"

	"github.com/chirino/qpid-jms-go/internal/wire"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	uuidBytes := [16]byte{0x6b, 0xa7, 0xb8, 0x10, 0x9d, 0xad, 0x11, 0xd1,
		0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8}

	cases := []struct {
		name string
		id   wire.MessageID
	}{
		{"string", wire.StringID("msg-42")},
		{"ulong", wire.UlongID(123456789)},
		{"ulong-max", wire.UlongID(18446744073709551615)},
		{"uuid", wire.UuidID(uuidBytes)},
		{"binary", wire.BinaryID([]byte{10, 9, 8, 7, 6, 5, 4, 3, 2, 1})},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			encoded, err := Encode(c.id)
			if err != nil {
				t.Fatalf("Encode: %s", err)
			}
			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode(%q): %s", encoded, err)
			}
			if !decoded.Equal(c.id) {
				t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, c.id)
			}

			reencoded, err := Encode(decoded)
			if err != nil {
				t.Fatalf("re-Encode: %s", err)
			}
			if reencoded != encoded {
				t.Fatalf("re-encode mismatch: got %q, want %q", reencoded, encoded)
			}
		})
	}
}

func TestBinaryIdLiteralFromSpec(t *testing.T) {
	id := wire.BinaryID([]byte{10, 9, 8, 7, 6, 5, 4, 3, 2, 1})
	got, err := Encode(id)
	if err != nil {
		t.Fatalf("Encode: %s", err)
	}
	want := "ID:AMQP_BINARY:0A090807060504030201"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodePlainString(t *testing.T) {
	id, err := Decode("myAppString")
	if err != nil {
		t.Fatalf("Decode: %s", err)
	}
	if id.Kind != wire.IDString || id.Str != "myAppString" {
		t.Fatalf("got %+v", id)
	}
}

func TestDecodeBareIdPrefixIsEmptyString(t *testing.T) {
	id, err := Decode("ID:")
	if err != nil {
		t.Fatalf("Decode: %s", err)
	}
	if id.Kind != wire.IDString || id.Str != "" {
		t.Fatalf("got %+v", id)
	}
}

func TestDecodeEmptyTagPayloadIsError(t *testing.T) {
	for _, s := range []string{"ID:AMQP_UUID:", "ID:AMQP_ULONG:", "ID:AMQP_BINARY:"} {
		if _, err := Decode(s); err == nil {
			t.Fatalf("Decode(%q): expected error, got nil", s)
		}
	}
}

func TestDecodeOddLengthHexIsError(t *testing.T) {
	if _, err := Decode("ID:AMQP_BINARY:0A0"); err == nil {
		t.Fatal("expected error for odd-length hex")
	}
}

func TestDecodeHexIsCaseInsensitiveOnInput(t *testing.T) {
	id, err := Decode("ID:AMQP_BINARY:0a0908070605040302ab")
	if err != nil {
		t.Fatalf("Decode: %s", err)
	}
	want := []byte{0x0a, 0x09, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0xab}
	if len(id.Binary) != len(want) {
		t.Fatalf("got %v, want %v", id.Binary, want)
	}
	for i := range want {
		if id.Binary[i] != want[i] {
			t.Fatalf("got %v, want %v", id.Binary, want)
		}
	}
}

func TestDecodeCorrelationVerbatimWhenAppAnnotated(t *testing.T) {
	got, err := DecodeCorrelation(wire.StringID("myAppString"), true)
	if err != nil {
		t.Fatalf("DecodeCorrelation: %s", err)
	}
	if got != "myAppString" {
		t.Fatalf("got %q, want %q", got, "myAppString")
	}
}

func TestDecodeCorrelationStandardWhenNotAppAnnotated(t *testing.T) {
	got, err := DecodeCorrelation(wire.StringID("msg-42"), false)
	if err != nil {
		t.Fatalf("DecodeCorrelation: %s", err)
	}
	if got != "ID:msg-42" {
		t.Fatalf("got %q, want %q", got, "ID:msg-42")
	}
}

func TestDecodeCorrelationBinaryIgnoresAnnotationFlag(t *testing.T) {
	id := wire.BinaryID([]byte{10, 9, 8, 7, 6, 5, 4, 3, 2, 1})
	got, err := DecodeCorrelation(id, true)
	if err != nil {
		t.Fatalf("DecodeCorrelation: %s", err)
	}
	want := "ID:AMQP_BINARY:0A090807060504030201"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUlongOutOfRangeIsError(t *testing.T) {
	if _, err := Decode("ID:AMQP_ULONG:-1"); err == nil {
		t.Fatal("expected error for negative ulong")
	}
	if _, err := Decode("ID:AMQP_ULONG:99999999999999999999999"); err == nil {
		t.Fatal("expected error for overflowing ulong")
	}
}

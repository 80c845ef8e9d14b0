package profile

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToBytes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Payload
	}{
		{"Empty", "", Payload{}},
		{"FF00", "ff00", Payload{0xFF, 0x00}},
		{"UpperCase", "ABCD", Payload{0xAB, 0xCD}},
		{"MixedCase", "aBcD01", Payload{0xAB, 0xCD, 0x01}},
		{"LeadingZero", "0a", Payload{0x0A}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToBytes(tt.in)
			if err != nil {
				t.Fatalf("HexToBytes(%q) error = %v", tt.in, err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("HexToBytes(%q) = %x, want %x", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexToBytesMalformed(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantOffset int
	}{
		{"OddLength", "abc", 3},
		{"SingleChar", "f", 1},
		{"InvalidDigit", "zz", 0},
		{"InvalidSecondPair", "00g0", 2},
		{"Space", "00 0", 2},
		{"Prefix", "0x00", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToBytes(tt.in)
			require.Error(t, err)
			assert.Nil(t, got, "no partial payload on error")
			assert.True(t, errors.Is(err, ErrMalformedHex))

			var hexErr *HexError
			require.True(t, errors.As(err, &hexErr))
			assert.Equal(t, tt.wantOffset, hexErr.Offset)
		})
	}
}

func TestBytesToHex(t *testing.T) {
	assert.Equal(t, "", BytesToHex(nil))
	assert.Equal(t, "ff00", BytesToHex(Payload{0xFF, 0x00}))
	assert.Equal(t, "000a10", BytesToHex(Payload{0x00, 0x0A, 0x10}))
	assert.Equal(t, "abcd", Payload{0xAB, 0xCD}.Hex())
}

func TestHexRoundTripAllTwoBytePayloads(t *testing.T) {
	for v := 0; v <= 0xFFFF; v++ {
		p := Payload{byte(v >> 8), byte(v)}
		got, err := HexToBytes(BytesToHex(p))
		if err != nil {
			t.Fatalf("round trip %x: %v", p, err)
		}
		if !bytes.Equal(got, p) {
			t.Fatalf("round trip %x = %x", p, got)
		}
	}
}

func TestBytesToBitsExample(t *testing.T) {
	p, err := HexToBytes("ff00")
	require.NoError(t, err)

	want := BitSequence{
		true, true, true, true, true, true, true, true,
		false, false, false, false, false, false, false, false,
	}
	assert.Equal(t, want, BytesToBits(p))
}

func TestBytesToBitsOrder(t *testing.T) {
	bits := BytesToBits(Payload{0x80, 0x01})
	assert.Equal(t, "1000000000000001", bits.String())
}

func TestBytesToBitsLength(t *testing.T) {
	for n := 0; n <= 32; n++ {
		p := make(Payload, n)
		if got := len(BytesToBits(p)); got != 8*n {
			t.Errorf("len(BytesToBits(%d bytes)) = %d, want %d", n, got, 8*n)
		}
	}
}

func TestBytesToBitsInjective(t *testing.T) {
	seen := make(map[string]uint16, 1<<16)
	for v := 0; v <= 0xFFFF; v++ {
		key := BytesToBits(Payload{byte(v >> 8), byte(v)}).String()
		if prev, dup := seen[key]; dup {
			t.Fatalf("payloads %04x and %04x share bit sequence %s", prev, v, key)
		}
		seen[key] = uint16(v)
	}
}

func TestBitSequenceBytesRoundTrip(t *testing.T) {
	p := Payload{0xDE, 0xAD, 0xBE, 0xEF}
	assert.Equal(t, p, BytesToBits(p).Bytes())

	// Partial trailing byte pads with zeros.
	assert.Equal(t, Payload{0xA0}, BitSequence{true, false, true}.Bytes())
}

func TestBitSequenceAt(t *testing.T) {
	bits := BytesToBits(Payload{0x40})

	bit, ok := bits.At(1)
	assert.True(t, ok)
	assert.True(t, bit)

	_, ok = bits.At(8)
	assert.False(t, ok)

	_, ok = bits.At(-1)
	assert.False(t, ok)
}

func TestPayloadCloneIsIndependent(t *testing.T) {
	p := Payload{1, 2, 3}
	c := p.Clone()
	c[0] = 9
	assert.Equal(t, byte(1), p[0])
	assert.Nil(t, Payload(nil).Clone())
}

package profile

import (
	"encoding/hex"
	"strings"
)

// BitsPerByte is the number of BitSequence entries produced per payload byte.
const BitsPerByte = 8

// Payload is the raw byte form of a profile as broadcast by a peer.
type Payload []byte

// Clone returns an independent copy of the payload.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	copy(out, p)
	return out
}

// Hex returns the payload as lowercase hex.
func (p Payload) Hex() string {
	return BytesToHex(p)
}

// Bits returns the BitSequence view of the payload.
func (p Payload) Bits() BitSequence {
	return BytesToBits(p)
}

// HexToBytes decodes a hex string into a Payload. Each pair of characters
// becomes one byte, high nibble first. Upper and lower case digits are both
// accepted.
//
// Odd-length input or a non-hex character yields a *HexError matching
// ErrMalformedHex. No partial payload is returned.
func HexToBytes(s string) (Payload, error) {
	if len(s)%2 != 0 {
		return nil, &HexError{Offset: len(s), Reason: "odd length"}
	}
	if i := strings.IndexFunc(s, func(r rune) bool { return !isHexDigit(r) }); i >= 0 {
		return nil, &HexError{Offset: i, Reason: "invalid hex digit"}
	}

	out := make(Payload, len(s)/2)
	if _, err := hex.Decode(out, []byte(s)); err != nil {
		return nil, &HexError{Offset: 0, Reason: err.Error()}
	}
	return out, nil
}

// BytesToHex renders a payload as lowercase hex, two zero-padded characters
// per byte. It is the inverse of HexToBytes.
func BytesToHex(p Payload) string {
	return hex.EncodeToString(p)
}

// BytesToBits expands a payload into its BitSequence, most-significant bit of
// each byte first. The result has exactly BitsPerByte*len(p) entries.
func BytesToBits(p Payload) BitSequence {
	bits := make(BitSequence, 0, len(p)*BitsPerByte)
	for _, b := range p {
		for shift := BitsPerByte - 1; shift >= 0; shift-- {
			bits = append(bits, (b>>uint(shift))&1 != 0)
		}
	}
	return bits
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}

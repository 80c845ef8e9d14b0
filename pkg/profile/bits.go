package profile

import "strings"

// BitSequence is the boolean expansion of a Payload, most-significant bit of
// each byte first.
type BitSequence []bool

// Len returns the number of bits.
func (s BitSequence) Len() int {
	return len(s)
}

// At returns the bit at offset and whether the offset exists.
func (s BitSequence) At(offset int) (bit, ok bool) {
	if offset < 0 || offset >= len(s) {
		return false, false
	}
	return s[offset], true
}

// Bytes packs the sequence back into a Payload. A trailing partial byte is
// padded with zero bits on the right.
func (s BitSequence) Bytes() Payload {
	out := make(Payload, (len(s)+BitsPerByte-1)/BitsPerByte)
	for i, bit := range s {
		if bit {
			out[i/BitsPerByte] |= 1 << uint(BitsPerByte-1-i%BitsPerByte)
		}
	}
	return out
}

// String renders the sequence as '1' and '0' characters in offset order.
func (s BitSequence) String() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, bit := range s {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

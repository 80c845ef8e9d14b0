package profile

import "fmt"

// Attribute offsets within a BitSequence.
const (
	OffsetCategory = 14 // set: category A ("Man"), clear: category B ("Woman")
	OffsetHeight   = 15
	OffsetAge      = 16
	OffsetHair     = 17
	OffsetGlasses  = 18

	// AttributeBits is the minimum BitSequence length carrying every attribute.
	AttributeBits = OffsetGlasses + 1
)

// Appearance holds the attribute bits at offsets 14 through 18.
type Appearance struct {
	CategoryA bool // offset 14
	Taller    bool // offset 15
	Older     bool // offset 16
	HairTrait bool // offset 17: facial hair for category A, long hair otherwise
	Glasses   bool // offset 18
}

// Builder composes a profile payload bit by bit. It grows the payload as
// needed so any offset can be written. The zero value is ready to use.
type Builder struct {
	payload Payload
}

// NewBuilder returns a builder over size zero bytes.
func NewBuilder(size int) *Builder {
	if size < 0 {
		size = 0
	}
	return &Builder{payload: make(Payload, size)}
}

// BuilderFrom returns a builder initialised with a copy of p.
func BuilderFrom(p Payload) *Builder {
	return &Builder{payload: p.Clone()}
}

// Set writes the bit at a BitSequence offset.
func (b *Builder) Set(offset int, v bool) *Builder {
	if offset < 0 {
		panic(fmt.Sprintf("profile: negative bit offset %d", offset))
	}
	b.grow(offset/BitsPerByte + 1)
	mask := byte(1) << uint(BitsPerByte-1-offset%BitsPerByte)
	if v {
		b.payload[offset/BitsPerByte] |= mask
	} else {
		b.payload[offset/BitsPerByte] &^= mask
	}
	return b
}

// SetByteBit writes bit position pos (0 = least significant) of the byte at
// index. This is the numbering the matcher uses.
func (b *Builder) SetByteBit(index, pos int, v bool) *Builder {
	if pos < 0 || pos >= BitsPerByte {
		panic(fmt.Sprintf("profile: bit position %d out of range", pos))
	}
	return b.Set(index*BitsPerByte+(BitsPerByte-1-pos), v)
}

// SetAppearance writes offsets 14 through 18.
func (b *Builder) SetAppearance(a Appearance) *Builder {
	return b.Set(OffsetCategory, a.CategoryA).
		Set(OffsetHeight, a.Taller).
		Set(OffsetAge, a.Older).
		Set(OffsetHair, a.HairTrait).
		Set(OffsetGlasses, a.Glasses)
}

// Payload returns a copy of the composed payload.
func (b *Builder) Payload() Payload {
	return b.payload.Clone()
}

// Hex returns the composed payload as lowercase hex.
func (b *Builder) Hex() string {
	return BytesToHex(b.payload)
}

func (b *Builder) grow(n int) {
	if len(b.payload) >= n {
		return
	}
	grown := make(Payload, n)
	copy(grown, b.payload)
	b.payload = grown
}

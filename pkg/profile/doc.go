// Package profile implements the byte and bit views of a broadcast user profile.
//
// A profile travels between peers as a short hex string. This package turns
// that string into a Payload (raw bytes) and the Payload into a BitSequence,
// the canonical view the matcher and the describer operate on.
//
// # Bit Order
//
// BitSequence expands each byte most-significant bit first, so offset 0 is
// bit 7 of byte 0 and offset 15 is bit 0 of byte 1:
//
//	payload:  0xFF       0x00
//	bits:     11111111   00000000
//	offsets:  0......7   8.....15
//
// # Attribute Offsets
//
// Offsets 14 through 18 carry the appearance attributes rendered by package
// describe. Builder.SetAppearance writes them.
package profile

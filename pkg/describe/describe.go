package describe

import (
	"strings"

	"github.com/profilebeacon/beacon-go/pkg/profile"
)

// Statement labels.
const (
	LabelMan   = "Man"
	LabelWoman = "Woman"

	LabelTallerA  = `Taller than 5'9" (175cm)`
	LabelShorterA = `Shorter than 5'9" (175cm)`
	LabelTallerB  = `Taller than 5'4" (162cm)`
	LabelShorterB = `Shorter than 5'4" (162cm)`

	LabelOlderA   = "Older than 30.3 years"
	LabelYoungerA = "Younger than 30.3 years"
	LabelOlderB   = "Older than 31.8 years"
	LabelYoungerB = "Younger than 31.8 years"

	LabelFacialHair   = "Has facial hair"
	LabelNoFacialHair = "Does not have facial hair"
	LabelLongHair     = "Hair reaches below shoulder"
	LabelShortHair    = "Hair does not reach below shoulder"

	LabelGlasses   = "Wearing glasses"
	LabelNoGlasses = "Not wearing glasses"
)

// Description is an ordered list of attribute statements, one per offset.
type Description []string

// String joins the statements into a multi-line block.
func (d Description) String() string {
	return strings.Join(d, "\n")
}

// Empty reports whether no attribute offsets were present.
func (d Description) Empty() bool {
	return len(d) == 0
}

// labels holds the set and clear statement for one offset.
type labels struct {
	set, clear string
}

func (l labels) pick(bit bool) string {
	if bit {
		return l.set
	}
	return l.clear
}

// attribute renders one offset. byCategory holds the labels for category A
// and B; offsets that ignore the category repeat the same labels.
type attribute struct {
	offset     int
	byCategory [2]labels
}

func (a attribute) render(bit, categoryA bool) string {
	if categoryA {
		return a.byCategory[0].pick(bit)
	}
	return a.byCategory[1].pick(bit)
}

var (
	category = labels{LabelMan, LabelWoman}

	attributes = []attribute{
		{profile.OffsetHeight, [2]labels{{LabelTallerA, LabelShorterA}, {LabelTallerB, LabelShorterB}}},
		{profile.OffsetAge, [2]labels{{LabelOlderA, LabelYoungerA}, {LabelOlderB, LabelYoungerB}}},
		{profile.OffsetHair, [2]labels{{LabelFacialHair, LabelNoFacialHair}, {LabelLongHair, LabelShortHair}}},
		{profile.OffsetGlasses, [2]labels{{LabelGlasses, LabelNoGlasses}, {LabelGlasses, LabelNoGlasses}}},
	}
)

// Describe renders the attribute statements for bits in offset order.
// Offsets past the end of bits are omitted.
func Describe(bits profile.BitSequence) Description {
	categoryA, ok := bits.At(profile.OffsetCategory)
	if !ok {
		return Description{}
	}

	out := make(Description, 0, 1+len(attributes))
	out = append(out, category.pick(categoryA))
	for _, a := range attributes {
		bit, ok := bits.At(a.offset)
		if !ok {
			break
		}
		out = append(out, a.render(bit, categoryA))
	}
	return out
}

// DescribePayload expands p and describes it.
func DescribePayload(p profile.Payload) Description {
	return Describe(profile.BytesToBits(p))
}

// DecodeAppearance reads the attribute bits of a sequence. ok is false when
// the sequence is shorter than profile.AttributeBits.
func DecodeAppearance(bits profile.BitSequence) (a profile.Appearance, ok bool) {
	if len(bits) < profile.AttributeBits {
		return profile.Appearance{}, false
	}
	return profile.Appearance{
		CategoryA: bits[profile.OffsetCategory],
		Taller:    bits[profile.OffsetHeight],
		Older:     bits[profile.OffsetAge],
		HairTrait: bits[profile.OffsetHair],
		Glasses:   bits[profile.OffsetGlasses],
	}, true
}

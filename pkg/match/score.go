package match

import (
	"fmt"

	"github.com/profilebeacon/beacon-go/pkg/profile"
)

// Window limits.
const (
	// MaxScore is the number of window positions, and so the highest score.
	MaxScore = 14

	// WindowBytes is the number of local bytes the window spans.
	WindowBytes = 2

	// secondByteBits is how many low positions of local byte 1 are in window.
	secondByteBits = 6
)

// Score is the number of window agreements between two profiles.
type Score int

// String renders the score as presented to the user, e.g. "3 out of 14".
func (s Score) String() string {
	return fmt.Sprintf("%d out of %d", int(s), MaxScore)
}

// Comparison records one in-window check.
type Comparison struct {
	// LocalIndex is the local byte consulted.
	LocalIndex int

	// Position is the local bit position (0 = least significant).
	Position int

	// RemotePosition is the paired position checked in the remote byte.
	RemotePosition int

	// Matched is set when the remote bit at RemotePosition is set.
	Matched bool
}

// Detail is a score together with the comparisons that produced it.
type Detail struct {
	Score       Score
	Comparisons []Comparison
}

// ComputeMatchScore scores remote against local.
//
// It returns a *IndexError (matching ErrIndexOutOfRange) when a window
// position falls in a local byte beyond len(local). Neither slice is
// modified.
func ComputeMatchScore(local, remote profile.Payload) (Score, error) {
	var score Score
	err := fold(local, remote, func(c Comparison) {
		if c.Matched {
			score++
		}
	})
	if err != nil {
		return 0, err
	}
	return score, nil
}

// ComputeMatchDetail is ComputeMatchScore that also reports every comparison
// made, in evaluation order.
func ComputeMatchDetail(local, remote profile.Payload) (Detail, error) {
	var d Detail
	err := fold(local, remote, func(c Comparison) {
		d.Comparisons = append(d.Comparisons, c)
		if c.Matched {
			d.Score++
		}
	})
	if err != nil {
		return Detail{}, err
	}
	return d, nil
}

// InWindow reports whether bit position pos of local byte index is one of
// the 14 scored window positions.
func InWindow(index, pos int) bool {
	return index == 0 || (index == 1 && pos < secondByteBits)
}

// PairedPosition returns the remote position compared against local
// position pos: pos+1 for even pos, pos-1 for odd pos.
func PairedPosition(pos int) int {
	return pos ^ 1
}

// fold walks the remote bytes in order, consulting one local byte per remote
// byte, and calls visit for every in-window position whose local bit is set.
func fold(local, remote profile.Payload, visit func(Comparison)) error {
	localIndex := 0
	for _, remoteByte := range remote {
		for pos := 0; pos < profile.BitsPerByte; pos++ {
			if !InWindow(localIndex, pos) {
				continue
			}
			if localIndex >= len(local) {
				return &IndexError{LocalIndex: localIndex, LocalLen: len(local)}
			}
			if (local[localIndex]>>uint(pos))&1 == 0 {
				continue
			}
			paired := PairedPosition(pos)
			visit(Comparison{
				LocalIndex:     localIndex,
				Position:       pos,
				RemotePosition: paired,
				Matched:        (remoteByte>>uint(paired))&1 != 0,
			})
		}
		localIndex++
	}
	return nil
}

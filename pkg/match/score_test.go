package match

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilebeacon/beacon-go/pkg/profile"
)

func TestComputeMatchScore(t *testing.T) {
	tests := []struct {
		name   string
		local  profile.Payload
		remote profile.Payload
		want   Score
	}{
		{
			// 0xAA sets odd positions 7,5,3,1; 0x55 sets each paired even position.
			name:   "AlternatingBitsFirstByte",
			local:  profile.Payload{0xAA, 0x00},
			remote: profile.Payload{0x55},
			want:   4,
		},
		{
			name:   "AlternatingBitsTwoRemoteBytes",
			local:  profile.Payload{0xAA, 0x00},
			remote: profile.Payload{0x55, 0xFF},
			want:   4,
		},
		{
			name:   "OnlyLowestPairAgrees",
			local:  profile.Payload{0xAA, 0x00},
			remote: profile.Payload{0x01},
			want:   1,
		},
		{
			name:   "SameBitsNeverPair",
			local:  profile.Payload{0xAA, 0x00},
			remote: profile.Payload{0xAA},
			want:   0,
		},
		{
			name:   "EvenPositionChecksNextBit",
			local:  profile.Payload{0x01, 0x00},
			remote: profile.Payload{0x02},
			want:   1,
		},
		{
			name:   "EvenPositionIgnoresSameBit",
			local:  profile.Payload{0x01, 0x00},
			remote: profile.Payload{0x01},
			want:   0,
		},
		{
			name:   "OddPositionChecksPreviousBit",
			local:  profile.Payload{0x80, 0x00},
			remote: profile.Payload{0x40},
			want:   1,
		},
		{
			name:   "ClearLocalBitNeverScores",
			local:  profile.Payload{0x00, 0x00},
			remote: profile.Payload{0xFF, 0xFF},
			want:   0,
		},
		{
			name:   "SecondByteLowSixPositions",
			local:  profile.Payload{0x00, 0x20},
			remote: profile.Payload{0x00, 0x10},
			want:   1,
		},
		{
			name:   "SecondByteHighPositionsOutOfWindow",
			local:  profile.Payload{0x00, 0xC0},
			remote: profile.Payload{0x00, 0xFF},
			want:   0,
		},
		{
			name:   "FullWindow",
			local:  profile.Payload{0xFF, 0xFF},
			remote: profile.Payload{0xFF, 0xFF},
			want:   MaxScore,
		},
		{
			name:   "ExtraRemoteBytesIgnored",
			local:  profile.Payload{0xAA, 0x00},
			remote: profile.Payload{0x55, 0x00, 0xFF, 0xFF},
			want:   4,
		},
		{
			name:   "EmptyRemote",
			local:  profile.Payload{0xFF, 0xFF},
			remote: nil,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeMatchScore(tt.local, tt.remote)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeMatchScoreIndexOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		local     profile.Payload
		remote    profile.Payload
		wantIndex int
	}{
		{"EmptyLocal", nil, profile.Payload{0x00}, 0},
		{"OneByteLocalTwoByteRemote", profile.Payload{0xFF}, profile.Payload{0xFF, 0xFF}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeMatchScore(tt.local, tt.remote)
			require.Error(t, err)
			assert.Equal(t, Score(0), got)
			assert.True(t, errors.Is(err, ErrIndexOutOfRange))

			var idxErr *IndexError
			require.True(t, errors.As(err, &idxErr))
			assert.Equal(t, tt.wantIndex, idxErr.LocalIndex)
			assert.Equal(t, len(tt.local), idxErr.LocalLen)
		})
	}
}

func TestComputeMatchScoreShortLocalShortRemote(t *testing.T) {
	// One remote byte only consults local byte 0.
	got, err := ComputeMatchScore(profile.Payload{0xFF}, profile.Payload{0xFF})
	require.NoError(t, err)
	assert.Equal(t, Score(8), got)
}

func TestComputeMatchScoreZeroLocal(t *testing.T) {
	local := profile.Payload{0x00, 0x00, 0xFF}
	for v := 0; v <= 0xFFFF; v++ {
		got, err := ComputeMatchScore(local, profile.Payload{byte(v >> 8), byte(v)})
		if err != nil {
			t.Fatalf("remote %04x: %v", v, err)
		}
		if got != 0 {
			t.Fatalf("remote %04x: score = %d, want 0", v, got)
		}
	}
}

func TestComputeMatchScoreBounds(t *testing.T) {
	remotes := []profile.Payload{
		{0x00, 0x00},
		{0xFF, 0xFF},
		{0x55, 0xAA},
		{0xAA, 0x55},
		{0x0F, 0xF0, 0xFF},
	}
	for v := 0; v <= 0xFFFF; v++ {
		local := profile.Payload{byte(v >> 8), byte(v)}
		for _, remote := range remotes {
			got, err := ComputeMatchScore(local, remote)
			if err != nil {
				t.Fatalf("local %x remote %x: %v", local, remote, err)
			}
			if got < 0 || got > MaxScore {
				t.Fatalf("local %x remote %x: score %d out of bounds", local, remote, got)
			}
		}
	}
}

func TestComputeMatchScoreDoesNotModifyInputs(t *testing.T) {
	local := profile.Payload{0xAA, 0x3F}
	remote := profile.Payload{0x55, 0x2A}
	_, err := ComputeMatchScore(local, remote)
	require.NoError(t, err)
	assert.Equal(t, profile.Payload{0xAA, 0x3F}, local)
	assert.Equal(t, profile.Payload{0x55, 0x2A}, remote)
}

func TestComputeMatchScoreDeterministic(t *testing.T) {
	local := profile.Payload{0xC3, 0x15}
	remote := profile.Payload{0x96, 0x2B}
	first, err := ComputeMatchScore(local, remote)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		got, err := ComputeMatchScore(local, remote)
		require.NoError(t, err)
		require.Equal(t, first, got)
	}
}

func TestComputeMatchDetail(t *testing.T) {
	d, err := ComputeMatchDetail(profile.Payload{0xAA, 0x00}, profile.Payload{0x01})
	require.NoError(t, err)

	assert.Equal(t, Score(1), d.Score)
	require.Len(t, d.Comparisons, 4)

	// Positions are visited low to high: 1, 3, 5, 7.
	for i, c := range d.Comparisons {
		assert.Equal(t, 0, c.LocalIndex)
		assert.Equal(t, 2*i+1, c.Position)
		assert.Equal(t, 2*i, c.RemotePosition)
		assert.Equal(t, i == 0, c.Matched)
	}
}

func TestComputeMatchDetailAgreesWithScore(t *testing.T) {
	for v := 0; v <= 0xFFFF; v += 97 {
		local := profile.Payload{byte(v >> 8), byte(v)}
		remote := profile.Payload{byte(v), byte(v >> 8)}
		s, err := ComputeMatchScore(local, remote)
		require.NoError(t, err)
		d, err := ComputeMatchDetail(local, remote)
		require.NoError(t, err)
		require.Equal(t, s, d.Score)
	}
}

func TestInWindow(t *testing.T) {
	count := 0
	for index := 0; index < 4; index++ {
		for pos := 0; pos < 8; pos++ {
			if InWindow(index, pos) {
				count++
			}
		}
	}
	assert.Equal(t, MaxScore, count)
	assert.True(t, InWindow(1, 5))
	assert.False(t, InWindow(1, 6))
	assert.False(t, InWindow(2, 0))
}

func TestPairedPosition(t *testing.T) {
	want := []int{1, 0, 3, 2, 5, 4, 7, 6}
	for pos, w := range want {
		assert.Equal(t, w, PairedPosition(pos), "position %d", pos)
	}
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "0 out of 14", Score(0).String())
	assert.Equal(t, "14 out of 14", Score(MaxScore).String())
}

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilebeacon/beacon-go/pkg/profile"
)

func TestRunBits(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"a5", "10100101\n"},
		{"A5FF", "10100101 11111111\n"},
		{"", "\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, RunBits(tt.hex, &buf), tt.hex)
		assert.Equal(t, tt.want, buf.String(), tt.hex)
	}

	assert.ErrorIs(t, RunBits("abc", &bytes.Buffer{}), profile.ErrMalformedHex)
}

func TestRunDescribe(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunDescribe("00", &buf))
	assert.Equal(t, "(no appearance data)\n", buf.String())

	buf.Reset()
	require.NoError(t, RunDescribe("0000", &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2, "category and height only")

	buf.Reset()
	require.NoError(t, RunDescribe("000000", &buf))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)

	assert.Error(t, RunDescribe("0g", &buf))
}

func TestRunBuild(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunBuild(BuildOptions{
		Base:       "0000",
		Appearance: AppearanceFlags{Glasses: ptr(true)},
	}, &buf))
	assert.Equal(t, "000020\n", buf.String())

	buf.Reset()
	require.NoError(t, RunBuild(BuildOptions{
		Base:  "ff00",
		Set:   []int{8},
		Clear: []int{0},
	}, &buf))
	assert.Equal(t, "7f8000\n", buf.String())

	assert.Error(t, RunBuild(BuildOptions{Base: "f"}, &buf))
	assert.Error(t, RunBuild(BuildOptions{Base: "00", Set: []int{-1}}, &buf))
}

func TestRunBuildKeepsBaseAppearance(t *testing.T) {
	tests := []struct {
		name  string
		flags AppearanceFlags
		want  string
	}{
		{"no overrides", AppearanceFlags{}, "000260\n"},
		{"clear glasses", AppearanceFlags{Glasses: ptr(false)}, "000240\n"},
		{"set age", AppearanceFlags{Older: ptr(true)}, "0002e0\n"},
		{"clear category", AppearanceFlags{CategoryA: ptr(false)}, "000060\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RunBuild(BuildOptions{Base: "000260", Appearance: tt.flags}, &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func ptr(v bool) *bool { return &v }

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMatch(t *testing.T) {
	svc := newTestScanner(t, "aa00")

	var buf bytes.Buffer
	err := RunMatch(svc, []string{"5500", "zz", "0000"}, MatchOptions{}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 payloads rejected")

	out := buf.String()
	assert.Contains(t, out, "With this user, you have this many matches: 4 out of 14")
	assert.Contains(t, out, "With this user, you have this many matches: 0 out of 14")
	assert.Contains(t, out, "User Data: 5500")
	assert.Contains(t, out, "Error: zz:")
}

func TestRunMatchServiceData(t *testing.T) {
	svc := newTestScanner(t, "aa00")

	var buf bytes.Buffer
	err := RunMatch(svc, []string{"{0000fe9a-0000-1000-8000-00805f9b34fb=(0x) 55:00}"}, MatchOptions{ServiceData: true}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "4 out of 14")

	buf.Reset()
	err = RunMatch(svc, []string{"not service data"}, MatchOptions{ServiceData: true}, &buf)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "Error:")
}

func TestRunMatchDetail(t *testing.T) {
	svc := newTestScanner(t, "aa00")

	var buf bytes.Buffer
	require.NoError(t, RunMatch(svc, []string{"5500"}, MatchOptions{Detail: true}, &buf))

	out := buf.String()
	assert.Contains(t, out, "Comparisons (4):")
	assert.Equal(t, 4, strings.Count(out, "[x]"))
	assert.Contains(t, out, "local byte 0 bit 1 ~ remote bit 0")
}

package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilebeacon/beacon-go/pkg/log"
)

const testSession = "0f3c2a9e-7d1b-4c55-9a43-2b1e8f6d7c90"

func testEvents() []log.Event {
	ts := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return []log.Event{
		{
			Timestamp: ts, SessionID: testSession, Direction: log.DirectionOut, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "IDLE", NewState: "RUNNING", Reason: "started"},
		},
		{
			Timestamp: ts.Add(time.Second), SessionID: testSession, Direction: log.DirectionIn,
			Category: log.CategoryAdvertisement, Peer: "beacon-aaaa",
			Advertisement: &log.AdvertisementEvent{PayloadHex: "ffff", Size: 2, Addresses: []string{"192.168.1.20"}},
		},
		{
			Timestamp: ts.Add(time.Second), SessionID: testSession, Direction: log.DirectionIn,
			Category: log.CategoryMatch, Peer: "beacon-aaaa",
			Match: &log.MatchEvent{Score: 14, Description: []string{"line one"}, ProcessingTime: 250 * time.Microsecond},
		},
		{
			Timestamp: ts.Add(2 * time.Second), SessionID: testSession, Direction: log.DirectionIn,
			Category: log.CategoryAdvertisement, Peer: "beacon-bbbb",
			Advertisement: &log.AdvertisementEvent{PayloadHex: "zz"},
		},
		{
			Timestamp: ts.Add(2 * time.Second), SessionID: testSession, Direction: log.DirectionIn,
			Category: log.CategoryError, Peer: "beacon-bbbb",
			Error: &log.ErrorEventData{Kind: log.ErrorKindMalformedHex, Message: "bad hex", Context: "evaluate"},
		},
	}
}

func TestRunViewAll(t *testing.T) {
	path := createTestLogFile(t, testEvents())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, log.Filter{}, &buf))

	out := buf.String()
	assert.Contains(t, out, "2026-03-14T10:00:00.000000Z [session:0f3c2a9e] OUT STATE -")
	assert.Contains(t, out, "IDLE -> RUNNING")
	assert.Contains(t, out, "Payload: ffff (2 bytes)")
	assert.Contains(t, out, "Addresses: 192.168.1.20")
	assert.Contains(t, out, "Score: 14 out of 14")
	assert.Contains(t, out, "| line one")
	assert.Contains(t, out, "Duration: 250.000us")
	assert.Contains(t, out, "Kind: MALFORMED_HEX")
	assert.Equal(t, 5, strings.Count(out, "[session:"))
}

func TestRunViewFiltered(t *testing.T) {
	path := createTestLogFile(t, testEvents())

	filter, err := ViewOptions{Peer: "beacon-bbbb", Category: "error"}.Filter()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RunView(path, filter, &buf))
	assert.Equal(t, 1, strings.Count(buf.String(), "[session:"))
	assert.Contains(t, buf.String(), "bad hex")
}

func TestViewOptionsFilter(t *testing.T) {
	f, err := ViewOptions{Direction: "OUT", Category: "adv", TimeStart: "2026-03-14T10:00:00Z"}.Filter()
	require.NoError(t, err)
	require.NotNil(t, f.Direction)
	assert.Equal(t, log.DirectionOut, *f.Direction)
	require.NotNil(t, f.Category)
	assert.Equal(t, log.CategoryAdvertisement, *f.Category)
	require.NotNil(t, f.TimeStart)
	assert.Nil(t, f.TimeEnd)

	for _, bad := range []ViewOptions{
		{Direction: "sideways"},
		{Category: "frame"},
		{TimeStart: "yesterday"},
		{TimeEnd: "tomorrow"},
	} {
		_, err := bad.Filter()
		assert.Error(t, err, "%+v", bad)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	err := RunView("/nonexistent/path.plog", log.Filter{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "failed to open log file")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "12.000us", formatDuration(12*time.Microsecond))
	assert.Equal(t, "1.500ms", formatDuration(1500*time.Microsecond))
	assert.Equal(t, "2.000s", formatDuration(2*time.Second))
}

func TestCollectStats(t *testing.T) {
	path := createTestLogFile(t, testEvents())

	stats, err := CollectStats(path)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalEvents)
	assert.Len(t, stats.Sessions, 1)
	assert.Equal(t, 2, stats.EventsByCategory[log.CategoryAdvertisement])
	assert.Equal(t, 4, stats.EventsByDirection[log.DirectionIn])
	assert.Equal(t, 1, stats.ErrorsByKind[log.ErrorKindMalformedHex])

	require.Contains(t, stats.Peers, "beacon-aaaa")
	assert.Equal(t, 14, stats.Peers["beacon-aaaa"].BestScore)
	assert.Equal(t, 1, stats.Peers["beacon-aaaa"].Matches)
	assert.Equal(t, -1, stats.Peers["beacon-bbbb"].BestScore)
	assert.Equal(t, 1, stats.Peers["beacon-bbbb"].Errors)
}

func TestRunStats(t *testing.T) {
	path := createTestLogFile(t, testEvents())

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))

	out := buf.String()
	assert.Contains(t, out, "Total Events: 5")
	assert.Contains(t, out, "Duration:   2s")
	assert.Contains(t, out, "MALFORMED_HEX:")
	assert.Contains(t, out, "beacon-aaaa: 1 advertisements, 1 matches, 0 errors, best 14 out of 14")
	assert.Contains(t, out, "beacon-bbbb: 1 advertisements, 0 matches, 1 errors, best -")
	assert.Less(t, strings.Index(out, "beacon-aaaa"), strings.Index(out, "beacon-bbbb"))
}

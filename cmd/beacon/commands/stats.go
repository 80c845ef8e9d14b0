package commands

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/profilebeacon/beacon-go/pkg/log"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	ErrorsByKind      map[log.ErrorKind]int
	Sessions          map[string]*SessionStats
	Peers             map[string]*PeerStats
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single scan session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
}

// PeerStats holds statistics for a single peer.
type PeerStats struct {
	Advertisements int
	Matches        int
	Errors         int
	BestScore      int
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

// CollectStats reads every event in path.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		ErrorsByKind:      make(map[log.ErrorKind]int),
		Sessions:          make(map[string]*SessionStats),
		Peers:             make(map[string]*PeerStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		stats.EventsByDirection[event.Direction]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}

		if event.Error != nil {
			stats.ErrorsByKind[event.Error.Kind]++
		}

		// Own advertisements and state changes are not per-peer.
		if event.Direction != log.DirectionIn || event.Peer == "" {
			continue
		}
		peer, ok := stats.Peers[event.Peer]
		if !ok {
			peer = &PeerStats{BestScore: -1}
			stats.Peers[event.Peer] = peer
		}
		switch {
		case event.Advertisement != nil:
			peer.Advertisements++
		case event.Match != nil:
			peer.Matches++
			peer.BestScore = max(peer.BestScore, event.Match.Score)
		case event.Error != nil:
			peer.Errors++
		}
	}
	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Beacon Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryAdvertisement, log.CategoryMatch, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-15s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-15s %d\n", dir.String()+":", count)
		}
	}

	if len(stats.ErrorsByKind) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors by Kind:")
		for _, kind := range []log.ErrorKind{log.ErrorKindMalformedHex, log.ErrorKindIndexOutOfRange, log.ErrorKindTransport, log.ErrorKindOther} {
			if count := stats.ErrorsByKind[kind]; count > 0 {
				fmt.Fprintf(w, "  %-20s %d\n", kind.String()+":", count)
			}
		}
	}

	if len(stats.Peers) == 0 {
		return
	}

	names := make([]string, 0, len(stats.Peers))
	for name := range stats.Peers {
		names = append(names, name)
	}
	// Best score first, then name.
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(stats.Peers[b].BestScore, stats.Peers[a].BestScore); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Peers: %d\n", len(names))
	for _, name := range names {
		p := stats.Peers[name]
		best := "-"
		if p.BestScore >= 0 {
			best = fmt.Sprintf("%d out of 14", p.BestScore)
		}
		fmt.Fprintf(w, "  %s: %d advertisements, %d matches, %d errors, best %s\n",
			name, p.Advertisements, p.Matches, p.Errors, best)
	}
}

package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/profilebeacon/beacon-go/pkg/log"
)

// ViewOptions are the raw filter flags of the log view command.
type ViewOptions struct {
	SessionID string
	Peer      string
	Direction string
	Category  string
	TimeStart string
	TimeEnd   string
}

func logCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "View and summarise protocol capture files",
	}
	cmd.AddCommand(logViewCmd(), logStatsCmd())
	return cmd
}

func logViewCmd() *cobra.Command {
	var opts ViewOptions
	cmd := &cobra.Command{
		Use:   "view <file.plog>",
		Short: "View a capture file in human-readable format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := opts.Filter()
			if err != nil {
				return err
			}
			return RunView(args[0], filter, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.SessionID, "session", "", "filter by session ID")
	f.StringVar(&opts.Peer, "peer", "", "filter by peer instance name")
	f.StringVar(&opts.Direction, "direction", "", "filter by direction (in, out)")
	f.StringVar(&opts.Category, "category", "", "filter by category (advertisement, match, state, error)")
	f.StringVar(&opts.TimeStart, "time-start", "", "filter by start time (RFC3339)")
	f.StringVar(&opts.TimeEnd, "time-end", "", "filter by end time (RFC3339)")
	return cmd
}

func logStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file.plog>",
		Short: "Show statistics about a capture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunStats(args[0], cmd.OutOrStdout())
		},
	}
}

// Filter converts the flag values to a log.Filter.
func (o ViewOptions) Filter() (log.Filter, error) {
	f := log.Filter{SessionID: o.SessionID, Peer: o.Peer}

	if o.Direction != "" {
		d, err := parseDirection(o.Direction)
		if err != nil {
			return log.Filter{}, err
		}
		f.Direction = &d
	}
	if o.Category != "" {
		c, err := parseCategory(o.Category)
		if err != nil {
			return log.Filter{}, err
		}
		f.Category = &c
	}
	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start: %w", err)
		}
		f.TimeStart = &t
	}
	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end: %w", err)
		}
		f.TimeEnd = &t
	}
	return f, nil
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "advertisement", "adv":
		return log.CategoryAdvertisement, nil
	case "match":
		return log.CategoryMatch, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be advertisement, match, state, or error)", s)
	}
}

// RunView prints every event in path that matches filter.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	peer := event.Peer
	if peer == "" {
		peer = "-"
	}

	fmt.Fprintf(w, "%s [session:%s] %-3s %s %s\n", ts, shortenID(event.SessionID), event.Direction, event.Category, peer)

	switch {
	case event.Advertisement != nil:
		a := event.Advertisement
		fmt.Fprintf(w, "  Payload: %s (%d bytes)\n", a.PayloadHex, a.Size)
		if len(a.Addresses) > 0 {
			fmt.Fprintf(w, "  Addresses: %s\n", strings.Join(a.Addresses, ", "))
		}
	case event.Match != nil:
		m := event.Match
		fmt.Fprintf(w, "  Score: %d out of 14\n", m.Score)
		for _, line := range m.Description {
			fmt.Fprintf(w, "  | %s\n", line)
		}
		if m.ProcessingTime > 0 {
			fmt.Fprintf(w, "  Duration: %s\n", formatDuration(m.ProcessingTime))
		}
	case event.StateChange != nil:
		sc := event.StateChange
		if sc.OldState != "" {
			fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
		} else {
			fmt.Fprintf(w, "  -> %s\n", sc.NewState)
		}
		if sc.Reason != "" {
			fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
		}
	case event.Error != nil:
		e := event.Error
		fmt.Fprintf(w, "  Kind: %s\n", e.Kind)
		fmt.Fprintf(w, "  Message: %s\n", e.Message)
		if e.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", e.Context)
		}
	}

	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Peer != "" {
		attrs = append(attrs, slog.String("peer", event.Peer))
	}

	switch {
	case event.Advertisement != nil:
		attrs = append(attrs,
			slog.String("payload", event.Advertisement.PayloadHex),
			slog.Int("size", event.Advertisement.Size),
		)
	case event.Match != nil:
		attrs = append(attrs,
			slog.Int("score", event.Match.Score),
			slog.Any("description", event.Match.Description),
		)
		if event.Match.ProcessingTime > 0 {
			attrs = append(attrs, slog.Duration("processing_time", event.Match.ProcessingTime))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_kind", event.Error.Kind.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)

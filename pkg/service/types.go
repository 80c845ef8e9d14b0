package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/profilebeacon/beacon-go/pkg/describe"
	"github.com/profilebeacon/beacon-go/pkg/discovery"
	"github.com/profilebeacon/beacon-go/pkg/log"
	"github.com/profilebeacon/beacon-go/pkg/match"
	"github.com/profilebeacon/beacon-go/pkg/profile"
)

// Service errors.
var (
	ErrAlreadyStarted      = errors.New("service already started")
	ErrInvalidLocalProfile = errors.New("invalid local profile")
)

// ServiceState represents the scanner state.
type ServiceState uint8

const (
	// StateIdle - scanner created but not started.
	StateIdle ServiceState = iota

	// StateStarting - Start is bringing up the transports.
	StateStarting

	// StateRunning - advertising and browsing.
	StateRunning

	// StateStopping - transports are being torn down.
	StateStopping

	// StateStopped - scanner has stopped. It may be started again.
	StateStopped
)

// String returns the state name.
func (s ServiceState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStarting:
		return "STARTING"
	case StateRunning:
		return "RUNNING"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// ScannerConfig configures a ScannerService.
type ScannerConfig struct {
	// LocalProfile is the local payload as hex. Required, at least two bytes.
	LocalProfile string

	// InstanceName is the local advertisement name. Generated when empty.
	InstanceName string

	// DisplayName is advertised with the payload.
	DisplayName string

	// Port is the advertised port (discovery.DefaultPort when zero).
	Port uint16

	// Advertiser publishes the local payload. Optional.
	Advertiser discovery.Advertiser

	// Browser delivers peer payloads. Optional.
	Browser discovery.Browser

	// ProtocolLogger captures advertisement, match, state and error events.
	// Optional.
	ProtocolLogger log.Logger

	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Validate checks the configuration and returns the decoded local payload.
func (c *ScannerConfig) Validate() (profile.Payload, error) {
	local, err := profile.HexToBytes(c.LocalProfile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLocalProfile, err)
	}
	if len(local) < match.WindowBytes {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrInvalidLocalProfile, len(local), match.WindowBytes)
	}
	if c.InstanceName != "" {
		if err := discovery.ValidateInstanceName(c.InstanceName); err != nil {
			return nil, err
		}
	}
	return local, nil
}

// Result is the outcome of evaluating one peer payload.
type Result struct {
	// Peer is the advertisement instance name. Empty for direct Evaluate calls.
	Peer string

	// DisplayName is the peer's advertised name, if any.
	DisplayName string

	// PayloadHex is the payload as received.
	PayloadHex string

	// Payload is the decoded payload.
	Payload profile.Payload

	// Bits is the payload's bit sequence.
	Bits profile.BitSequence

	// Score is the number of window agreements with the local payload.
	Score match.Score

	// Description holds the rendered appearance statements.
	Description describe.Description

	// EvaluatedAt is when the result was produced.
	EvaluatedAt time.Time
}

// Summary renders the result for display.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "With this user, you have this many matches: %s\n", r.Score)
	fmt.Fprintf(&b, "This user looks like this: \n%s\n", r.Description)
	fmt.Fprintf(&b, "User Data: %s", r.PayloadHex)
	return b.String()
}

// ResultEvent is delivered to handlers for each processed advertisement.
type ResultEvent struct {
	// Service is the advertisement that triggered the evaluation.
	Service *discovery.ProfileService

	// Result is set on success.
	Result *Result

	// Err is set when the payload could not be evaluated.
	Err error
}

// ResultHandler handles result events.
type ResultHandler func(ResultEvent)

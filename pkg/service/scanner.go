package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/profilebeacon/beacon-go/pkg/describe"
	"github.com/profilebeacon/beacon-go/pkg/discovery"
	"github.com/profilebeacon/beacon-go/pkg/log"
	"github.com/profilebeacon/beacon-go/pkg/match"
	"github.com/profilebeacon/beacon-go/pkg/profile"
)

// ScannerService advertises the local profile and evaluates peer profiles.
type ScannerService struct {
	mu sync.RWMutex

	config       ScannerConfig
	local        profile.Payload
	instanceName string
	sessionID    string
	state        ServiceState

	logger   *slog.Logger
	protocol log.Logger

	handlers []ResultHandler
	results  map[string]*Result

	active *session

	now func() time.Time
}

// session is one Start/Stop cycle.
type session struct {
	id     string
	cancel context.CancelFunc

	// done is closed when the processing goroutine exits, stopped when
	// teardown has finished.
	done    chan struct{}
	stopped chan struct{}
}

// NewScannerService creates a scanner. The local profile is decoded once and
// never modified afterwards.
func NewScannerService(config ScannerConfig) (*ScannerService, error) {
	local, err := config.Validate()
	if err != nil {
		return nil, err
	}

	instanceName := config.InstanceName
	if instanceName == "" {
		instanceName = discovery.NewInstanceName()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	protocol := config.ProtocolLogger
	if protocol == nil {
		protocol = log.NoopLogger{}
	}

	return &ScannerService{
		config:       config,
		local:        local,
		instanceName: instanceName,
		sessionID:    uuid.NewString(),
		state:        StateIdle,
		logger:       logger.With("instance", instanceName),
		protocol:     protocol,
		results:      make(map[string]*Result),
		now:          time.Now,
	}, nil
}

// State returns the current scanner state.
func (s *ScannerService) State() ServiceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// InstanceName returns the local advertisement name.
func (s *ScannerService) InstanceName() string {
	return s.instanceName
}

// SessionID returns the ID stamped on protocol events of the current session.
func (s *ScannerService) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// LocalProfile returns a copy of the local payload.
func (s *ScannerService) LocalProfile() profile.Payload {
	return s.local.Clone()
}

// OnResult registers a result handler. Handlers run on the scanning
// goroutine, one advertisement at a time.
func (s *ScannerService) OnResult(handler ResultHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Evaluate decodes remoteHex, scores it against the local profile and
// describes it. It fails with profile.ErrMalformedHex or
// match.ErrIndexOutOfRange and never returns a partial result.
func (s *ScannerService) Evaluate(remoteHex string) (*Result, error) {
	remote, err := profile.HexToBytes(remoteHex)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	score, err := match.ComputeMatchScore(s.local.Clone(), remote)
	if err != nil {
		return nil, fmt.Errorf("score payload: %w", err)
	}

	return &Result{
		PayloadHex:  remoteHex,
		Payload:     remote,
		Bits:        remote.Bits(),
		Score:       score,
		Description: describe.DescribePayload(remote),
		EvaluatedAt: s.now(),
	}, nil
}

// Start advertises the local profile and begins processing peer
// advertisements until ctx is cancelled or Stop is called. Cancelling ctx
// tears the scanner down as Stop would, after which it may be started again.
func (s *ScannerService) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateStarting, StateRunning, StateStopping:
		s.mu.Unlock()
		return ErrAlreadyStarted
	case StateStopped:
		s.sessionID = uuid.NewString()
		s.results = make(map[string]*Result)
	}
	prev := s.state
	s.state = StateStarting
	s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	abort := func() {
		cancel()
		s.mu.Lock()
		s.state = prev
		s.mu.Unlock()
	}

	if s.config.Advertiser != nil {
		info := &discovery.ProfileInfo{
			InstanceName: s.instanceName,
			PayloadHex:   s.local.Hex(),
			DisplayName:  s.config.DisplayName,
			Port:         s.config.Port,
		}
		if err := s.config.Advertiser.AdvertiseProfile(runCtx, info); err != nil {
			abort()
			s.logError("", log.ErrorKindTransport, err, "advertise")
			return fmt.Errorf("advertise: %w", err)
		}
		s.logEvent(log.Event{
			Direction: log.DirectionOut,
			Category:  log.CategoryAdvertisement,
			Peer:      s.instanceName,
			Advertisement: &log.AdvertisementEvent{
				PayloadHex: info.PayloadHex,
				Size:       len(s.local),
			},
		})
		s.logger.Info("advertising profile", "payload", info.PayloadHex)
	}

	var peers <-chan *discovery.ProfileService
	if s.config.Browser != nil {
		ch, err := s.config.Browser.BrowseProfiles(runCtx)
		if err != nil {
			if s.config.Advertiser != nil {
				_ = s.config.Advertiser.StopProfile(s.instanceName)
			}
			abort()
			s.logError("", log.ErrorKindTransport, err, "browse")
			return fmt.Errorf("browse: %w", err)
		}
		peers = discovery.FilterBrowseResults(ch, discovery.ExcludeInstance(s.instanceName))
	}

	sess := &session{
		id:      s.SessionID(),
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	s.logTransition(sess.id, prev, StateRunning, "started")

	s.mu.Lock()
	s.active = sess
	s.state = StateRunning
	s.mu.Unlock()

	go s.run(runCtx, peers, sess.done)
	go func() {
		<-runCtx.Done()
		_ = s.shutdown(sess, "context done")
	}()
	return nil
}

// Stop stops advertising and browsing. Stopping a scanner that is not
// running is a no-op. Concurrent calls wait for the same teardown.
func (s *ScannerService) Stop() error {
	return s.shutdown(nil, "stopped")
}

// shutdown tears down target, or the active session when target is nil.
// Only the first caller performs the teardown; later callers wait for it.
func (s *ScannerService) shutdown(target *session, reason string) error {
	s.mu.Lock()
	sess := s.active
	if sess == nil || (target != nil && target != sess) {
		s.mu.Unlock()
		return nil
	}
	if s.state == StateStopping {
		s.mu.Unlock()
		<-sess.stopped
		return nil
	}
	s.state = StateStopping
	s.mu.Unlock()

	sess.cancel()

	if s.config.Browser != nil {
		s.config.Browser.Stop()
	}

	var stopErr error
	if s.config.Advertiser != nil {
		if err := s.config.Advertiser.StopProfile(s.instanceName); err != nil && !errors.Is(err, discovery.ErrNotFound) {
			s.logger.Warn("stop advertising failed", "error", err)
			stopErr = fmt.Errorf("stop advertising: %w", err)
		}
	}

	<-sess.done
	s.logTransition(sess.id, StateRunning, StateStopped, reason)

	s.mu.Lock()
	s.active = nil
	s.state = StateStopped
	s.mu.Unlock()

	close(sess.stopped)
	return stopErr
}

// Results returns the latest result per peer for the current session,
// highest score first, ties broken by peer name.
func (s *ScannerService) Results() []*Result {
	s.mu.RLock()
	out := make([]*Result, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Peer, b.Peer)
	})
	return out
}

func (s *ScannerService) run(ctx context.Context, peers <-chan *discovery.ProfileService, done chan struct{}) {
	defer close(done)

	if peers == nil {
		<-ctx.Done()
		return
	}

	for {
		select {
		case <-ctx.Done():
			// Unblock the filter goroutine until the browser closes its channel.
			go func() {
				for range peers {
				}
			}()
			return
		case svc, ok := <-peers:
			if !ok {
				return
			}
			s.handleService(svc)
		}
	}
}

// handleService runs one advertisement through the pipeline.
func (s *ScannerService) handleService(svc *discovery.ProfileService) {
	start := s.now()

	s.logEvent(log.Event{
		Direction: log.DirectionIn,
		Category:  log.CategoryAdvertisement,
		Peer:      svc.InstanceName,
		Advertisement: &log.AdvertisementEvent{
			PayloadHex: svc.PayloadHex,
			Size:       len(svc.PayloadHex) / 2,
			Addresses:  svc.Addresses,
		},
	})

	result, err := s.Evaluate(svc.PayloadHex)
	if err != nil {
		s.logger.Warn("advertisement rejected", "peer", svc.InstanceName, "payload", svc.PayloadHex, "error", err)
		s.logError(svc.InstanceName, errorKind(err), err, "evaluate")
		s.dispatch(ResultEvent{Service: svc, Err: err})
		return
	}

	result.Peer = svc.InstanceName
	result.DisplayName = svc.DisplayName

	s.mu.Lock()
	s.results[svc.InstanceName] = result
	s.mu.Unlock()

	s.logger.Debug("advertisement evaluated",
		"peer", svc.InstanceName,
		"bits", result.Bits.String(),
		"score", int(result.Score))

	s.logEvent(log.Event{
		Direction: log.DirectionIn,
		Category:  log.CategoryMatch,
		Peer:      svc.InstanceName,
		Match: &log.MatchEvent{
			Score:          int(result.Score),
			Description:    result.Description,
			ProcessingTime: s.now().Sub(start),
		},
	})

	s.dispatch(ResultEvent{Service: svc, Result: result})
}

func (s *ScannerService) dispatch(event ResultEvent) {
	s.mu.RLock()
	handlers := slices.Clone(s.handlers)
	s.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func (s *ScannerService) logTransition(sessionID string, from, to ServiceState, reason string) {
	s.logger.Info("scanner state changed", "from", from.String(), "to", to.String(), "reason", reason)
	s.logEvent(log.Event{
		SessionID: sessionID,
		Direction: log.DirectionOut,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState: from.String(),
			NewState: to.String(),
			Reason:   reason,
		},
	})
}

func (s *ScannerService) logError(peer string, kind log.ErrorKind, err error, op string) {
	s.logEvent(log.Event{
		Direction: log.DirectionIn,
		Category:  log.CategoryError,
		Peer:      peer,
		Error: &log.ErrorEventData{
			Kind:    kind,
			Message: err.Error(),
			Context: op,
		},
	})
}

func (s *ScannerService) logEvent(event log.Event) {
	event.Timestamp = s.now()
	if event.SessionID == "" {
		event.SessionID = s.SessionID()
	}
	s.protocol.Log(event)
}

func errorKind(err error) log.ErrorKind {
	switch {
	case errors.Is(err, profile.ErrMalformedHex):
		return log.ErrorKindMalformedHex
	case errors.Is(err, match.ErrIndexOutOfRange):
		return log.ErrorKindIndexOutOfRange
	default:
		return log.ErrorKindOther
	}
}

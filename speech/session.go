package speech

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Request carries the settings one utterance is started with. Rate is
// passed through in engine units; the shell clamps it beforehand.
type Request struct {
	Text   string
	Voice  string
	Rate   int
	Volume float64
}

// Session is the lifecycle of one utterance: a fresh engine handle, a
// blocking speak call on its own goroutine, a cooperative cancel flag
// and a captured failure. The cancel flag is the only state written by
// the interactive side; failure is written once by the worker before
// done closes, so polling after completion reads it safely.
type Session struct {
	Req Request

	logger    *slog.Logger
	newEngine EngineFactory
	cancelled atomic.Bool
	done      chan struct{}
	failure   error
}

// Start builds a session and begins speaking on a new goroutine.
func Start(log *slog.Logger, factory EngineFactory, req Request) *Session {
	s := &Session{
		Req:       req,
		logger:    log,
		newEngine: factory,
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Session) run() {
	defer close(s.done)
	eng, err := s.newEngine()
	if err != nil {
		s.logger.Error("failed to init speech engine", "error", err)
		s.failure = err
		return
	}
	defer eng.Stop()
	// best-effort properties; a rejected one does not abort the utterance
	if s.Req.Voice != "" {
		if err := eng.SetVoice(s.Req.Voice); err != nil {
			s.logger.Debug("failed to set voice", "voice", s.Req.Voice, "error", err)
		}
	}
	if err := eng.SetRate(s.Req.Rate); err != nil {
		s.logger.Debug("failed to set rate", "rate", s.Req.Rate, "error", err)
	}
	if err := eng.SetVolume(s.Req.Volume); err != nil {
		s.logger.Debug("failed to set volume", "volume", s.Req.Volume, "error", err)
	}
	if err := eng.Speak(s.Req.Text, s.keepGoing); err != nil && !s.cancelled.Load() {
		s.logger.Error("utterance failed", "error", err)
		s.failure = err
	}
}

func (s *Session) keepGoing() bool {
	return !s.cancelled.Load()
}

// Cancel asks the utterance to stop at its next checkpoint. It never
// blocks; callers that need the session settled use Wait.
func (s *Session) Cancel() {
	s.cancelled.Store(true)
}

func (s *Session) Cancelled() bool {
	return s.cancelled.Load()
}

func (s *Session) Running() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the session settles or the timeout passes. Past the
// timeout the session is simply abandoned.
func (s *Session) Wait(d time.Duration) bool {
	select {
	case <-s.done:
		return true
	case <-time.After(d):
		return false
	}
}

// Err reports the captured failure. Deliberate cancellation never sets
// it. Valid once Running reports false.
func (s *Session) Err() error {
	if s.Running() {
		return nil
	}
	return s.failure
}

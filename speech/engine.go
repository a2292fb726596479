package speech

import (
	"log/slog"
	"strings"

	"mouthpiece/config"
	"mouthpiece/models"
)

// DefaultRate is the engine-neutral speaking rate in words per minute.
// Provider implementations scale their own speed units against it.
const DefaultRate = 180

// Engine is one handle into a synthesis backend. A handle serves exactly
// one utterance and is thrown away afterwards; reusing a handle across
// utterances is the documented cause of "speaks only once" failures on
// some platforms, so sessions always mint a fresh one.
type Engine interface {
	// SetVoice, SetRate and SetVolume are best-effort; a rejected
	// property must not prevent the utterance from playing.
	SetVoice(id string) error
	SetRate(wpm int) error
	SetVolume(vol float64) error
	// Speak blocks until the utterance finishes or keepGoing returns
	// false at a checkpoint. An early return on cancellation is not an
	// error; only real backend failures are.
	Speak(text string, keepGoing func() bool) error
	// Stop halts any playback still owned by this handle.
	Stop()
}

// EngineFactory mints a fresh engine handle for one session.
type EngineFactory func() (Engine, error)

// Provider enumerates voices and builds engine handles for one backend.
type Provider interface {
	Name() string
	Voices() ([]models.Voice, error)
	NewEngine() (Engine, error)
}

// NewProvider picks the synthesis backend from config.
func NewProvider(log *slog.Logger, cfg *config.Config) Provider {
	switch strings.ToLower(cfg.TTS_PROVIDER) {
	case "espeak":
		return &espeakProvider{logger: log, binary: espeakBinary()}
	case "htgo":
		return &htgoProvider{logger: log, cacheDir: cfg.CacheDir}
	default:
		return &googleProvider{logger: log, cacheDir: cfg.CacheDir}
	}
}

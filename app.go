package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"mouthpiece/config"
	"mouthpiece/models"
	"mouthpiece/speech"
	"mouthpiece/transcript"
)

var (
	cfg         *config.Config
	logger      *slog.Logger
	logLevel    = new(slog.LevelVar)
	ctx, cancel = context.WithCancel(context.Background())
	provider    speech.Provider
	mgr         *transcript.Manager
	voices      []models.Voice
	// set when the speech service failed at startup; shown once
	startupErr string
)

const pollInterval = 120 * time.Millisecond

func init() {
	var err error
	cfg, err = config.LoadConfig("config.toml")
	if err != nil {
		fmt.Println("failed to load config.toml", err)
		cancel()
		os.Exit(1)
		return
	}
	logfile, err := os.OpenFile(cfg.LogFile,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("failed to open log file", "error", err, "filename", cfg.LogFile)
		cancel()
		os.Exit(1)
		return
	}
	logLevel.Set(slog.LevelInfo)
	logger = slog.New(slog.NewTextHandler(logfile, &slog.HandlerOptions{Level: logLevel}))
	provider = speech.NewProvider(logger, cfg)
	voices, err = provider.Voices()
	if err != nil {
		// degraded mode: empty voice list, engine defaults
		logger.Error("failed to enumerate voices", "provider", provider.Name(), "error", err)
		startupErr = fmt.Sprintf("speech service unavailable (%s): %v", provider.Name(), err)
		voices = nil
	}
	mgr = transcript.NewManager(logger, provider.NewEngine)
	mgr.Rate = transcript.ClampRate(cfg.TTS_RATE)
	mgr.Volume = transcript.VolumeFromPercent(cfg.TTS_VOLUME)
	mgr.AutoSpeak = cfg.AutoSpeak
	if cfg.TTS_VOICE != "" {
		mgr.VoiceID = cfg.TTS_VOICE
	} else if v, ok := speech.PickDefault(voices); ok {
		mgr.VoiceID = v.ID
	}
}

// pollWatcher ticks the manager until the active session settles and
// reconciles completion and failure back into the UI goroutine. The
// manager itself is only ever touched from queued updates.
func pollWatcher(ctx context.Context) {
	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	wasSpeaking := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			app.QueueUpdate(func() {
				speaking := mgr.Speaking()
				_, err := mgr.Poll()
				if err != nil {
					logger.Error("utterance failed", "error", err)
					showFailurePopup(err)
				}
				if speaking != wasSpeaking || err != nil {
					updateStatusLine()
					app.Draw()
				}
				wasSpeaking = speaking
			})
		}
	}
}

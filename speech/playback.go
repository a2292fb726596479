package speech

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const cancelPollInterval = 50 * time.Millisecond

// player drives beep playback for one engine handle. keepGoing is
// polled while a chunk plays, which is where cancellation between word
// checkpoints actually lands.
type player struct {
	logger *slog.Logger
	mu     sync.Mutex
	ctrl   *beep.Ctrl
}

func (p *player) play(streamer beep.StreamSeekCloser, format beep.Format, volume, speed float64, keepGoing func() bool) error {
	defer streamer.Close()
	var playback beep.Streamer = streamer
	if speed > 0 && speed != 1.0 {
		playback = beep.ResampleRatio(3, speed, streamer)
	}
	if volume != 1.0 {
		playback = &effects.Volume{
			Streamer: playback,
			Base:     2,
			Volume:   math.Log2(math.Max(volume, 0.01)),
			Silent:   volume <= 0,
		}
	}
	// init fails on every call after the first; that is fine
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		p.logger.Debug("failed to init speaker", "error", err)
	}
	done := make(chan bool)
	ctrl := &beep.Ctrl{Streamer: beep.Seq(playback, beep.Callback(func() {
		close(done)
	}))}
	p.mu.Lock()
	p.ctrl = ctrl
	p.mu.Unlock()
	speaker.Play(ctrl)
	tick := time.NewTicker(cancelPollInterval)
	defer tick.Stop()
	for {
		select {
		case <-done:
			return nil
		case <-tick.C:
			if !keepGoing() {
				p.halt()
				return nil
			}
		}
	}
}

func (p *player) halt() {
	speaker.Lock()
	defer speaker.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl != nil {
		p.ctrl.Streamer = nil
		p.ctrl = nil
	}
}

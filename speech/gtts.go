package speech

import (
	"fmt"
	"io"
	"log/slog"

	google_translate_tts "github.com/GrailFinder/google-translate-tts"
	"github.com/GrailFinder/google-translate-tts/handlers"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"mouthpiece/models"
)

// googleProvider synthesizes through the translate endpoint. The
// default backend: no local install needed.
type googleProvider struct {
	logger   *slog.Logger
	cacheDir string
}

func (p *googleProvider) Name() string { return "google" }

func (p *googleProvider) Voices() ([]models.Voice, error) {
	return append([]models.Voice(nil), translateVoices...), nil
}

func (p *googleProvider) NewEngine() (Engine, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sentence tokenizer: %w", err)
	}
	return &googleEngine{
		logger:    p.logger,
		player:    player{logger: p.logger},
		tokenizer: tokenizer,
		speech: &google_translate_tts.Speech{
			Folder:   p.cacheDir,
			Language: "en",
			Speed:    1.0,
			Handler:  &handlers.Beep{},
		},
		volume: 1.0,
		speed:  1.0,
	}, nil
}

type googleEngine struct {
	logger    *slog.Logger
	player    player
	tokenizer sentences.SentenceTokenizer
	speech    *google_translate_tts.Speech
	volume    float64
	speed     float64
}

func (e *googleEngine) SetVoice(id string) error {
	if id == "" {
		return fmt.Errorf("empty voice id")
	}
	e.speech.Language = id
	return nil
}

func (e *googleEngine) SetRate(wpm int) error {
	if wpm <= 0 {
		return fmt.Errorf("rate out of range: %d", wpm)
	}
	e.speed = float64(wpm) / float64(DefaultRate)
	return nil
}

func (e *googleEngine) SetVolume(vol float64) error {
	if vol < 0 || vol > 1 {
		return fmt.Errorf("volume out of range: %f", vol)
	}
	e.volume = vol
	return nil
}

func (e *googleEngine) Speak(text string, keepGoing func() bool) error {
	text = cleanText(text)
	if text == "" {
		return nil
	}
	for _, chunk := range splitChunks(e.tokenizer, text) {
		if !keepGoing() {
			return nil
		}
		if err := e.playChunk(chunk, keepGoing); err != nil {
			return err
		}
	}
	return nil
}

func (e *googleEngine) playChunk(text string, keepGoing func() bool) error {
	e.logger.Debug("synthesizing chunk", "text-len", len(text), "lang", e.speech.Language)
	reader, err := e.speech.GenerateSpeech(text)
	if err != nil {
		return fmt.Errorf("generate speech failed: %w", err)
	}
	streamer, format, err := mp3.Decode(io.NopCloser(reader))
	if err != nil {
		return fmt.Errorf("mp3 decode failed: %w", err)
	}
	return e.player.play(streamer, format, e.volume, e.speed, keepGoing)
}

func (e *googleEngine) Stop() {
	e.player.halt()
	_ = e.speech.Stop()
}

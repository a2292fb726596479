package speech

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"mouthpiece/models"
)

// espeakProvider speaks through a local espeak-ng binary. Fully offline
// and the only backend with real per-voice enumeration.
type espeakProvider struct {
	logger *slog.Logger
	binary string
}

func espeakBinary() string {
	if path, err := exec.LookPath("espeak-ng"); err == nil {
		return path
	}
	return "espeak"
}

func (p *espeakProvider) Name() string { return "espeak" }

func (p *espeakProvider) Voices() ([]models.Voice, error) {
	out, err := exec.Command(p.binary, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list espeak voices: %w", err)
	}
	return parseEspeakVoices(out), nil
}

// parseEspeakVoices reads `espeak --voices` output:
//
//	Pty Language Age/Gender VoiceName          File          Other Languages
//	 5  af             M  afrikaans            other/af
func parseEspeakVoices(out []byte) []models.Voice {
	lines := strings.Split(string(out), "\n")
	voices := []models.Voice{}
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		voices = append(voices, models.Voice{
			ID:        fields[1],
			Name:      fields[3],
			Languages: []string{fields[1]},
		})
	}
	return voices
}

func (p *espeakProvider) NewEngine() (Engine, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sentence tokenizer: %w", err)
	}
	return &espeakEngine{
		logger:    p.logger,
		binary:    p.binary,
		tokenizer: tokenizer,
		rate:      DefaultRate,
		amplitude: 100,
	}, nil
}

type espeakEngine struct {
	logger    *slog.Logger
	binary    string
	tokenizer sentences.SentenceTokenizer
	voice     string
	rate      int
	amplitude int // espeak takes 0..200, 100 is normal
}

func (e *espeakEngine) SetVoice(id string) error {
	if id == "" {
		return fmt.Errorf("empty voice id")
	}
	e.voice = id
	return nil
}

func (e *espeakEngine) SetRate(wpm int) error {
	if wpm <= 0 {
		return fmt.Errorf("rate out of range: %d", wpm)
	}
	e.rate = wpm
	return nil
}

func (e *espeakEngine) SetVolume(vol float64) error {
	if vol < 0 || vol > 1 {
		return fmt.Errorf("volume out of range: %f", vol)
	}
	e.amplitude = int(vol * 100)
	return nil
}

func (e *espeakEngine) Speak(text string, keepGoing func() bool) error {
	text = cleanText(text)
	if text == "" {
		return nil
	}
	for _, chunk := range splitChunks(e.tokenizer, text) {
		if !keepGoing() {
			return nil
		}
		if err := e.sayChunk(chunk, keepGoing); err != nil {
			return err
		}
	}
	return nil
}

func (e *espeakEngine) sayChunk(text string, keepGoing func() bool) error {
	args := []string{"-s", strconv.Itoa(e.rate), "-a", strconv.Itoa(e.amplitude)}
	if e.voice != "" {
		args = append(args, "-v", e.voice)
	}
	args = append(args, text)
	cmd := exec.Command(e.binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", e.binary, err)
	}
	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()
	tick := time.NewTicker(cancelPollInterval)
	defer tick.Stop()
	for {
		select {
		case err := <-waitCh:
			if err != nil {
				return fmt.Errorf("%s failed: %w", e.binary, err)
			}
			return nil
		case <-tick.C:
			if !keepGoing() {
				_ = cmd.Process.Kill()
				<-waitCh
				return nil
			}
		}
	}
}

func (e *espeakEngine) Stop() {}

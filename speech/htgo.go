package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/gopxl/beep/v2/mp3"
	htgotts "github.com/hegedustibor/htgo-tts"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"mouthpiece/models"
)

// size of the MP3 the endpoint returns when it rejects the input
const badSpeechFileSize = 1685

// htgoProvider renders chunks to cached MP3 files and plays them back
// itself, which keeps volume control working (htgo-tts plays at fixed
// volume through its own handlers).
type htgoProvider struct {
	logger   *slog.Logger
	cacheDir string
}

func (p *htgoProvider) Name() string { return "htgo" }

func (p *htgoProvider) Voices() ([]models.Voice, error) {
	return append([]models.Voice(nil), translateVoices...), nil
}

func (p *htgoProvider) NewEngine() (Engine, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sentence tokenizer: %w", err)
	}
	return &htgoEngine{
		logger:    p.logger,
		player:    player{logger: p.logger},
		tokenizer: tokenizer,
		speech:    htgotts.Speech{Folder: p.cacheDir, Language: "en"},
		volume:    1.0,
	}, nil
}

type htgoEngine struct {
	logger    *slog.Logger
	player    player
	tokenizer sentences.SentenceTokenizer
	speech    htgotts.Speech
	volume    float64
}

func (e *htgoEngine) SetVoice(id string) error {
	if id == "" {
		return fmt.Errorf("empty voice id")
	}
	e.speech.Language = id
	return nil
}

// the htgo backend plays at its natural pace only
func (e *htgoEngine) SetRate(wpm int) error {
	return fmt.Errorf("rate is not supported by the htgo provider")
}

func (e *htgoEngine) SetVolume(vol float64) error {
	if vol < 0 || vol > 1 {
		return fmt.Errorf("volume out of range: %f", vol)
	}
	e.volume = vol
	return nil
}

func (e *htgoEngine) Speak(text string, keepGoing func() bool) error {
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

func (e *htgoEngine) playChunk(text string, keepGoing func() bool) error {
	path, err := e.speech.CreateSpeechFile(text, hashString(text))
	if err != nil {
		return fmt.Errorf("failed to create speech file: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat speech file: %w", err)
	}
	if info.Size() == badSpeechFileSize {
		e.logger.Warn("htgotts returned bad MP3 file", "text-len", len(text))
		return fmt.Errorf("failed to gen speech - line too long")
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open speech file: %w", err)
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("mp3 decode failed: %w", err)
	}
	return e.player.play(streamer, format, e.volume, 1.0, keepGoing)
}

func (e *htgoEngine) Stop() {
	e.player.halt()
}

func hashString(input string) string {
	hash := sha256.New()
	hash.Write([]byte(input))
	return hex.EncodeToString(hash.Sum(nil))
}

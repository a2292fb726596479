package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LogFile     string `toml:"LogFile"`
	ColorScheme string `toml:"ColorScheme"`
	// cache folder for synthesized mp3 chunks
	CacheDir   string `toml:"CacheDir"`
	ExportPath string `toml:"ExportPath"`
	AutoSpeak  bool   `toml:"AutoSpeak"`
	// TTS
	TTS_PROVIDER string `toml:"TTS_PROVIDER"` // google, htgo, espeak
	TTS_VOICE    string `toml:"TTS_VOICE"`
	TTS_RATE     int    `toml:"TTS_RATE"`
	TTS_VOLUME   int    `toml:"TTS_VOLUME"` // percent, 0..100
}

// LoadConfig reads fn, falling back to defaults when the file does not
// exist. The app runs fine without a config.
func LoadConfig(fn string) (*Config, error) {
	if fn == "" {
		fn = "config.toml"
	}
	config := &Config{
		LogFile:      "mouthpiece.log",
		ColorScheme:  "default",
		AutoSpeak:    true,
		TTS_PROVIDER: "google",
		TTS_RATE:     180,
		TTS_VOLUME:   100,
	}
	if _, err := toml.DecodeFile(fn, &config); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	if config.CacheDir == "" {
		config.CacheDir = filepath.Join(os.TempDir(), "mouthpiece-tts")
	}
	return config, nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Segment holds segmentation thresholds shared by transcript and subtitle
// generation.
type Segment struct {
	// SentencePause is the silence that ends a sentence in transcript mode.
	SentencePause float64 `toml:"sentence_pause"`
	// CuePause is the silence that ends a cue in subtitle mode.
	CuePause float64 `toml:"cue_pause"`
	// MaxCueChars bounds the joined cue text length in runes.
	MaxCueChars int `toml:"max_cue_chars"`
	// PunctuationLookahead is how many upcoming words may rescue an
	// overlong cue from a mid-thought break.
	PunctuationLookahead int `toml:"punctuation_lookahead"`
	// SentencesPerParagraph sizes transcript paragraphs.
	SentencesPerParagraph int `toml:"sentences_per_paragraph"`
}

// Translate holds batch translation parameters.
type Translate struct {
	BatchSize      int      `toml:"batch_size"`
	Engines        []string `toml:"engines"`
	FallbackEngine string   `toml:"fallback_engine"`
	BatchDelayMs   int      `toml:"batch_delay_ms"`
}

// BatchDelay returns the inter-batch pause as a duration.
func (t Translate) BatchDelay() time.Duration {
	return time.Duration(t.BatchDelayMs) * time.Millisecond
}

// ASR holds transcription server parameters.
type ASR struct {
	ServerURL string `toml:"server_url"`
	Model     string `toml:"model"`
	Language  string `toml:"language"`
	VADFilter bool   `toml:"vad_filter"`
}

// Config holds the full application configuration. It is passed explicitly
// into the components that need it; there is no ambient process-wide state.
type Config struct {
	Segment   Segment   `toml:"segment"`
	Translate Translate `toml:"translate"`
	ASR       ASR       `toml:"asr"`
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Segment: Segment{
			SentencePause:         0.7,
			CuePause:              0.8,
			MaxCueChars:           45,
			PunctuationLookahead:  3,
			SentencesPerParagraph: 5,
		},
		Translate: Translate{
			BatchSize:      20,
			Engines:        []string{"google", "bing"},
			FallbackEngine: "google",
			BatchDelayMs:   200,
		},
		ASR: ASR{
			Model:     "small",
			Language:  "auto",
			VADFilter: true,
		},
	}
}

// Load returns the defaults overlaid with a TOML config file. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Segment.SentencePause != 0.7 {
		t.Errorf("SentencePause = %f, want 0.7", cfg.Segment.SentencePause)
	}
	if cfg.Segment.CuePause != 0.8 {
		t.Errorf("CuePause = %f, want 0.8", cfg.Segment.CuePause)
	}
	if cfg.Segment.MaxCueChars != 45 {
		t.Errorf("MaxCueChars = %d, want 45", cfg.Segment.MaxCueChars)
	}
	if cfg.Segment.SentencesPerParagraph != 5 {
		t.Errorf("SentencesPerParagraph = %d, want 5", cfg.Segment.SentencesPerParagraph)
	}
	if cfg.Translate.BatchSize != 20 {
		t.Errorf("BatchSize = %d, want 20", cfg.Translate.BatchSize)
	}
	if len(cfg.Translate.Engines) != 2 || cfg.Translate.Engines[0] != "google" {
		t.Errorf("Engines = %v, want [google bing]", cfg.Translate.Engines)
	}
	if cfg.Translate.BatchDelay() != 200*time.Millisecond {
		t.Errorf("BatchDelay = %v, want 200ms", cfg.Translate.BatchDelay())
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Segment.MaxCueChars != 45 {
		t.Errorf("MaxCueChars = %d, want default 45", cfg.Segment.MaxCueChars)
	}
}

func TestLoad_PartialFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[translate]
batch_size = 5
engines = ["bing"]

[segment]
max_cue_chars = 30
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Translate.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want 5", cfg.Translate.BatchSize)
	}
	if len(cfg.Translate.Engines) != 1 || cfg.Translate.Engines[0] != "bing" {
		t.Errorf("Engines = %v, want [bing]", cfg.Translate.Engines)
	}
	if cfg.Segment.MaxCueChars != 30 {
		t.Errorf("MaxCueChars = %d, want 30", cfg.Segment.MaxCueChars)
	}
	// Untouched values keep their defaults.
	if cfg.Segment.SentencePause != 0.7 {
		t.Errorf("SentencePause = %f, want default 0.7", cfg.Segment.SentencePause)
	}
	if cfg.ASR.Model != "small" {
		t.Errorf("Model = %q, want default 'small'", cfg.ASR.Model)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}

package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tvph1996/Kuiche/internal/asr"
	"github.com/tvph1996/Kuiche/internal/config"
	"github.com/tvph1996/Kuiche/internal/ffmpeg"
	"github.com/tvph1996/Kuiche/internal/segment"
	"github.com/tvph1996/Kuiche/internal/srt"
	"github.com/tvph1996/Kuiche/internal/translate"
)

const (
	// Minimum speech duration passed to VAD: transcripts tolerate a longer
	// floor than subtitles, which want every short utterance timed.
	transcriptMinSpeechMs = 100
	subtitleMinSpeechMs   = 50

	// verbatimPrompt seeds the recognizer so filler words survive into the
	// subtitles instead of being cleaned up.
	verbatimPrompt = "The following is a raw, verbatim transcription, including all filler words like 'uhm' and 'ah'."
)

// Options configures a run over one or more input files.
type Options struct {
	Inputs     []string
	OutputPath string // single-input override; derived from the input otherwise
	TargetLang string // translate mode only
	Config     *config.Config
}

// Transcribe turns each audio input into a paragraph-formatted text
// transcript next to the input file.
func Transcribe(ctx context.Context, opts Options) error {
	client := asr.NewClient(opts.Config.ASR.ServerURL)
	if err := client.Check(ctx); err != nil {
		return err
	}

	return eachInput(opts.Inputs, func(path string) error {
		return transcribeFile(ctx, client, path, opts)
	})
}

// Subtitle turns each video input into an SRT subtitle file, extracting a
// scratch waveform first when the input is a video container.
func Subtitle(ctx context.Context, opts Options) error {
	client := asr.NewClient(opts.Config.ASR.ServerURL)
	if err := client.Check(ctx); err != nil {
		return err
	}

	return eachInput(opts.Inputs, func(path string) error {
		return subtitleFile(ctx, client, path, opts)
	})
}

// Translate rewrites each SRT input into a translated copy, batch by batch.
func Translate(ctx context.Context, opts Options) error {
	cfg := opts.Config.Translate

	engines, err := translate.ByName(cfg.Engines)
	if err != nil {
		return err
	}
	fallbacks, err := translate.ByName([]string{cfg.FallbackEngine})
	if err != nil {
		return err
	}
	controller := translate.NewController(engines, fallbacks[0], cfg.BatchSize, cfg.BatchDelay())

	return eachInput(opts.Inputs, func(path string) error {
		return translateFile(ctx, controller, path, opts)
	})
}

// eachInput runs fn over every input path. A missing file or a per-file
// failure is logged and the remaining inputs still run; an error is returned
// only when no input succeeded.
func eachInput(inputs []string, fn func(path string) error) error {
	var firstErr error
	failed := 0

	for i, path := range inputs {
		slog.Info("processing file",
			"file", filepath.Base(path),
			"n", fmt.Sprintf("%d/%d", i+1, len(inputs)))

		if _, err := os.Stat(path); err != nil {
			slog.Error("input file not found, skipping", "path", path)
			failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %s", ErrInputMissing, path)
			}
			continue
		}

		if err := fn(path); err != nil {
			slog.Error("processing failed", "file", filepath.Base(path), "err", err)
			failed++
			if firstErr == nil || errors.Is(firstErr, ErrInputMissing) {
				firstErr = err
			}
		}
	}

	if failed == len(inputs) {
		return firstErr
	}
	if failed > 0 {
		slog.Warn("some inputs failed", "failed", failed, "total", len(inputs))
	}
	return nil
}

func transcribeFile(ctx context.Context, client *asr.Client, path string, opts Options) error {
	resp, err := client.Transcribe(ctx, path, asr.Options{
		Model:               opts.Config.ASR.Model,
		Language:            opts.Config.ASR.Language,
		WordTimestamps:      true,
		VADFilter:           opts.Config.ASR.VADFilter,
		MinSpeechDurationMs: transcriptMinSpeechMs,
	})
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	logDetectedLanguage(resp)

	words := resp.Words()
	if len(words) == 0 {
		slog.Warn("no speech detected", "file", filepath.Base(path))
		return nil
	}

	splitter := segment.NewSentenceSplitter(opts.Config.Segment.SentencePause)
	sentences := splitter.Split(words)
	paragraphs := segment.Paragraphs(sentences, opts.Config.Segment.SentencesPerParagraph)

	out := outputPath(path, opts.OutputPath, ".txt")
	if err := os.WriteFile(out, []byte(segment.RenderTranscript(paragraphs)), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	slog.Info("transcript saved", "path", out)
	return nil
}

func subtitleFile(ctx context.Context, client *asr.Client, path string, opts Options) error {
	ffmpeg.LogMediaInfo(ctx, path)

	workingPath := path
	if ffmpeg.IsVideoExtension(filepath.Ext(path)) {
		if !ffmpeg.Available() {
			return fmt.Errorf("ffmpeg not found on PATH, required for video input")
		}

		tmp, err := os.CreateTemp("", "kuiche_audio_*.wav")
		if err != nil {
			return fmt.Errorf("create scratch audio file: %w", err)
		}
		tmp.Close()
		tempAudio := tmp.Name()
		defer os.Remove(tempAudio)

		if err := ffmpeg.ExtractAudio(ctx, path, tempAudio); err != nil {
			return fmt.Errorf("extract audio: %w", err)
		}
		workingPath = tempAudio
	}

	resp, err := client.Transcribe(ctx, workingPath, asr.Options{
		Model:               opts.Config.ASR.Model,
		Language:            opts.Config.ASR.Language,
		WordTimestamps:      true,
		VADFilter:           opts.Config.ASR.VADFilter,
		MinSpeechDurationMs: subtitleMinSpeechMs,
		InitialPrompt:       verbatimPrompt,
	})
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	logDetectedLanguage(resp)
	if ts, err := srt.Timestamp(resp.Duration); err == nil {
		slog.Info("estimated audio duration", "duration", ts)
	}

	words := resp.Words()
	if len(words) == 0 {
		slog.Warn("no speech detected", "file", filepath.Base(path))
		return nil
	}

	splitter := segment.NewCueSplitter(
		opts.Config.Segment.CuePause,
		opts.Config.Segment.MaxCueChars,
		opts.Config.Segment.PunctuationLookahead,
	)
	cues := splitter.Split(words)

	content, err := srt.Render(srt.FromUnits(cues))
	if err != nil {
		return fmt.Errorf("render subtitles: %w", err)
	}

	out := outputPath(path, opts.OutputPath, ".srt")
	if err := os.WriteFile(out, []byte(content), 0644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}

	slog.Info("subtitle file saved", "path", out, "cues", len(cues))
	return nil
}

func translateFile(ctx context.Context, controller *translate.Controller, path string, opts Options) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open subtitle file: %w", err)
	}
	entries, err := srt.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parse subtitle file: %w", err)
	}

	if len(entries) == 0 {
		slog.Warn("no subtitle entries found", "file", filepath.Base(path))
		return nil
	}

	slog.Info("translating entries", "count", len(entries), "target", opts.TargetLang)
	if err := controller.TranslateAll(ctx, entries, opts.TargetLang); err != nil {
		return err
	}

	content, err := srt.Render(entries)
	if err != nil {
		return fmt.Errorf("render subtitles: %w", err)
	}

	out := outputPath(path, opts.OutputPath, "_"+opts.TargetLang+".srt")
	if err := os.WriteFile(out, []byte(content), 0644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}

	slog.Info("translated file saved", "path", out)
	return nil
}

func logDetectedLanguage(resp *asr.Response) {
	slog.Info("language detected",
		"language", resp.Language,
		"probability", fmt.Sprintf("%.2f", resp.LanguageProbability))
}

// outputPath derives the output file next to the input, unless an explicit
// override was given.
func outputPath(inputPath, override, suffix string) string {
	if override != "" {
		return override
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + suffix
}

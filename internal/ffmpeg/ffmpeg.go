package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// MediaInfo holds duration and codec information from ffprobe.
type MediaInfo struct {
	Duration float64
	Codec    string
}

// Available returns true if ffmpeg is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// ProbeMedia uses ffprobe to get media duration and audio codec.
func ProbeMedia(ctx context.Context, path string) (*MediaInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}

	dur, _ := strconv.ParseFloat(probe.Format.Duration, 64)

	codec := "N/A"
	if len(probe.Streams) > 0 && probe.Streams[0].CodecName != "" {
		codec = probe.Streams[0].CodecName
	}

	return &MediaInfo{Duration: dur, Codec: codec}, nil
}

// ExtractAudio decodes the audio stream of a video file into the mono 16kHz
// WAV waveform the speech recognizer expects.
func ExtractAudio(ctx context.Context, videoPath, outputPath string) error {
	slog.Info("extracting audio", "input", filepath.Base(videoPath), "output", filepath.Base(outputPath))

	cmd := exec.CommandContext(ctx,
		"ffmpeg", "-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		outputPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract audio failed: %w\n%s", err, string(out))
	}
	return nil
}

// IsVideoExtension returns true for common video file extensions.
func IsVideoExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mkv", ".mov", ".avi", ".flv", ".webm":
		return true
	}
	return false
}

// LogMediaInfo logs file size and media information.
func LogMediaInfo(ctx context.Context, path string) *MediaInfo {
	stat, err := os.Stat(path)
	if err != nil {
		slog.Warn("cannot stat file", "path", path, "err", err)
		return nil
	}

	sizeMB := float64(stat.Size()) / (1024 * 1024)
	msg := fmt.Sprintf("file size: %.2f MB", sizeMB)

	info, err := ProbeMedia(ctx, path)
	if err == nil && info != nil {
		minutes := int(info.Duration) / 60
		seconds := int(info.Duration) % 60
		msg += fmt.Sprintf(" | duration: %02d:%02d | codec: %s", minutes, seconds, info.Codec)
	}

	slog.Info(msg)
	return info
}

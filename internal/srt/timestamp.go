package srt

import (
	"fmt"
	"math"
	"strings"
)

// Timestamp converts seconds into the SRT timecode format HH:MM:SS,mmm.
// The value is rounded to whole milliseconds first, ties away from zero,
// then decomposed by integer division. Negative input is a contract
// violation and returns an error.
func Timestamp(seconds float64) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("negative timestamp: %f", seconds)
	}

	ms := int64(math.Round(seconds * 1000))
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	secs := ms / 1000
	ms %= 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms), nil
}

// ParseTimestamp converts an SRT timecode back into seconds.
func ParseTimestamp(s string) (float64, error) {
	var h, m, sec, ms int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d:%d,%d", &h, &m, &sec, &ms); err != nil {
		return 0, fmt.Errorf("malformed timecode %q: %w", s, err)
	}
	if h < 0 || m < 0 || sec < 0 || ms < 0 {
		return 0, fmt.Errorf("malformed timecode %q: negative component", s)
	}
	return float64(h)*3600 + float64(m)*60 + float64(sec) + float64(ms)/1000, nil
}

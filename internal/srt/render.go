package srt

import (
	"fmt"
	"strings"

	"github.com/tvph1996/Kuiche/internal/segment"
)

// Entry is one subtitle block. Index is 1-based and sequential in a rendered
// file; within an in-memory translation batch, entries are addressed by
// their 0-based position instead.
type Entry struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// FromUnits numbers segmented cues into subtitle entries.
func FromUnits(units []segment.Unit) []Entry {
	entries := make([]Entry, 0, len(units))
	for i, u := range units {
		entries = append(entries, Entry{
			Index: i + 1,
			Start: u.Start,
			End:   u.End,
			Text:  u.Text,
		})
	}
	return entries
}

// Render formats entries as SRT file content: blocks of sequential 1-based
// index, timecode range, and text, separated by blank lines.
func Render(entries []Entry) (string, error) {
	var sb strings.Builder

	for i, e := range entries {
		start, err := Timestamp(e.Start)
		if err != nil {
			return "", fmt.Errorf("entry %d start: %w", i+1, err)
		}
		end, err := Timestamp(e.End)
		if err != nil {
			return "", fmt.Errorf("entry %d end: %w", i+1, err)
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n", i+1, start, end, e.Text)
	}

	return sb.String(), nil
}

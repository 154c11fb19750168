package srt

import (
	"math"
	"strings"
	"testing"

	"github.com/tvph1996/Kuiche/internal/segment"
)

func TestRender(t *testing.T) {
	entries := []Entry{
		{Index: 1, Start: 0, End: 1.5, Text: "Hello world."},
		{Index: 2, Start: 2, End: 3.25, Text: "Second cue"},
	}

	got, err := Render(entries)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "1\n00:00:00,000 --> 00:00:01,500\nHello world.\n\n" +
		"2\n00:00:02,000 --> 00:00:03,250\nSecond cue\n\n"
	if got != want {
		t.Errorf("Render =\n%q\nwant\n%q", got, want)
	}
}

func TestRender_RenumbersSequentially(t *testing.T) {
	// Stored indices are ignored; the rendered file is always 1-based
	// sequential.
	entries := []Entry{
		{Index: 7, Start: 0, End: 1, Text: "a"},
		{Index: 9, Start: 1, End: 2, Text: "b"},
	}

	got, err := Render(entries)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(got, "1\n") || !strings.Contains(got, "\n\n2\n") {
		t.Errorf("expected sequential renumbering, got:\n%s", got)
	}
}

func TestRender_NegativeTimeRejected(t *testing.T) {
	_, err := Render([]Entry{{Start: -1, End: 1, Text: "x"}})
	if err == nil {
		t.Error("expected error for negative start time")
	}
}

func TestFromUnits(t *testing.T) {
	units := []segment.Unit{
		{Text: "first", Start: 0, End: 1},
		{Text: "second", Start: 1.5, End: 2.5},
	}

	entries := FromUnits(units)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Index != 1 || entries[1].Index != 2 {
		t.Errorf("indices = %d, %d, want 1, 2", entries[0].Index, entries[1].Index)
	}
	if entries[1].Text != "second" || entries[1].Start != 1.5 {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestParse(t *testing.T) {
	content := "1\n00:00:00,000 --> 00:00:01,500\nHello world.\n\n" +
		"2\n00:00:02,000 --> 00:00:03,250\nTwo lines\nof text\n\n"

	entries, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Text != "Hello world." {
		t.Errorf("entries[0].Text = %q", entries[0].Text)
	}
	if entries[0].Start != 0 || entries[0].End != 1.5 {
		t.Errorf("entries[0] timing = [%f, %f]", entries[0].Start, entries[0].End)
	}
	if entries[1].Text != "Two lines\nof text" {
		t.Errorf("entries[1].Text = %q, want multi-line text preserved", entries[1].Text)
	}
}

func TestParse_CRLFAndMissingTrailingBlank(t *testing.T) {
	content := "1\r\n00:00:00,000 --> 00:00:01,000\r\nfirst\r\n\r\n" +
		"2\r\n00:00:01,500 --> 00:00:02,000\r\nlast"

	entries, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Text != "last" {
		t.Errorf("entries[1].Text = %q, want 'last'", entries[1].Text)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad index", "x\n00:00:00,000 --> 00:00:01,000\ntext\n\n"},
		{"bad timecode", "1\n00:00:00,000 -> 00:00:01,000\ntext\n\n"},
		{"truncated block", "1\n\n"},
	}

	for _, tt := range tests {
		if _, err := Parse(strings.NewReader(tt.content)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	entries, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestRenderParse_RoundTrip(t *testing.T) {
	entries := []Entry{
		{Index: 1, Start: 0, End: 1.25, Text: "one"},
		{Index: 2, Start: 2.5, End: 4, Text: "two\nlines"},
		{Index: 3, Start: 5.042, End: 7.9, Text: "three"},
	}

	content, err := Render(entries)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	parsed, err := Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(parsed) != len(entries) {
		t.Fatalf("round trip lost entries: %d != %d", len(parsed), len(entries))
	}
	for i := range entries {
		if parsed[i].Text != entries[i].Text {
			t.Errorf("entry %d text = %q, want %q", i, parsed[i].Text, entries[i].Text)
		}
		if math.Abs(parsed[i].Start-entries[i].Start) > 1e-9 ||
			math.Abs(parsed[i].End-entries[i].End) > 1e-9 {
			t.Errorf("entry %d timing = [%f, %f], want [%f, %f]",
				i, parsed[i].Start, parsed[i].End, entries[i].Start, entries[i].End)
		}
	}
}

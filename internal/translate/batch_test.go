package translate

import (
	"testing"

	"github.com/tvph1996/Kuiche/internal/srt"
)

func batchOf(texts ...string) []srt.Entry {
	entries := make([]srt.Entry, 0, len(texts))
	for i, text := range texts {
		entries = append(entries, srt.Entry{Index: i + 1, Text: text})
	}
	return entries
}

func TestEncodeBatch(t *testing.T) {
	got := EncodeBatch(batchOf("Hello.", "World."))
	want := "0_> Hello.\n1_> World."
	if got != want {
		t.Errorf("EncodeBatch = %q, want %q", got, want)
	}
}

func TestEncodeBatch_Empty(t *testing.T) {
	if got := EncodeBatch(nil); got != "" {
		t.Errorf("EncodeBatch(nil) = %q, want empty", got)
	}
}

func TestParseResponse_SeparatorVariants(t *testing.T) {
	// Translation services rewrite the marker in many ways; all of these
	// must map back to the right index.
	tests := []struct {
		name string
		raw  string
	}{
		{"original marker", "0_> first\n1_> second"},
		{"angle only", "0> first\n1> second"},
		{"dot", "0. first\n1. second"},
		{"colon", "0: first\n1: second"},
		{"dash", "0 - first\n1 - second"},
		{"leading space", "  0_> first\n  1_> second"},
		{"no space after marker", "0_>first\n1_>second"},
	}

	for _, tt := range tests {
		mapping := ParseResponse(tt.raw)
		if len(mapping) != 2 {
			t.Errorf("%s: got %d entries, want 2: %v", tt.name, len(mapping), mapping)
			continue
		}
		if mapping[0] != "first" || mapping[1] != "second" {
			t.Errorf("%s: mapping = %v", tt.name, mapping)
		}
	}
}

func TestParseResponse_ContinuationLines(t *testing.T) {
	raw := "0_> first line\nstill the first entry\n1_> second"

	mapping := ParseResponse(raw)
	if len(mapping) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(mapping), mapping)
	}
	if mapping[0] != "first line\nstill the first entry" {
		t.Errorf("mapping[0] = %q, want continuation joined by newline", mapping[0])
	}
}

func TestParseResponse_LeadingJunkIgnored(t *testing.T) {
	// Text before the first marker belongs to no entry and is dropped.
	mapping := ParseResponse("Here is your translation:\n0_> only entry")
	if len(mapping) != 1 || mapping[0] != "only entry" {
		t.Errorf("mapping = %v, want {0: 'only entry'}", mapping)
	}
}

func TestParseResponse_Empty(t *testing.T) {
	if mapping := ParseResponse(""); len(mapping) != 0 {
		t.Errorf("expected empty mapping, got %v", mapping)
	}
}

func TestBatch_RoundTrip(t *testing.T) {
	batch := batchOf(
		"Plain text",
		"Two lines\nin one entry",
		"Trailing punctuation!",
	)

	mapping := ParseResponse(EncodeBatch(batch))
	if len(mapping) != len(batch) {
		t.Fatalf("round trip size = %d, want %d: %v", len(mapping), len(batch), mapping)
	}
	for j, e := range batch {
		if mapping[j] != e.Text {
			t.Errorf("entry %d = %q, want %q", j, mapping[j], e.Text)
		}
	}
}

func TestParseResponse_DigitPrefixedContinuationAmbiguity(t *testing.T) {
	// Known limitation of the heuristic parser: a continuation line that
	// itself starts with "digit separator" is read as a new index. The
	// resulting size mismatch makes the controller reject the batch rather
	// than silently corrupt it.
	raw := "0_> the answer is\n42 - as everyone knows"

	mapping := ParseResponse(raw)
	if len(mapping) != 2 {
		t.Fatalf("expected the ambiguous line to open index 42, got %v", mapping)
	}
	if mapping[42] != "as everyone knows" {
		t.Errorf("mapping[42] = %q", mapping[42])
	}
}

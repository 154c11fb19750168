package translate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tvph1996/Kuiche/internal/srt"
)

// EncodeBatch serializes a batch into one indexed payload: a line
// "{j}_> {text}" per entry, j being the 0-based position within the batch.
// The numeric marker survives most reformatting by translation services
// because ParseResponse accepts variant separators.
func EncodeBatch(batch []srt.Entry) string {
	lines := make([]string, 0, len(batch))
	for j, e := range batch {
		lines = append(lines, fmt.Sprintf("%d_> %s", j, e.Text))
	}
	return strings.Join(lines, "\n")
}

// markerPattern matches an indexed line coming back from a translation
// service: optional leading whitespace, the batch index, one or more of the
// separators `_ > . : -`, then the translated text.
var markerPattern = regexp.MustCompile(`^\s*(\d+)\s*[_>.:\-]+\s*(.*)$`)

// ParseResponse scans a raw translated block line by line and builds the
// index-to-text mapping. Lines without an index marker are continuations of
// the most recently opened entry, newline-joined, so multi-line translations
// are preserved. A continuation line that happens to start with
// "digit separator" is indistinguishable from a marker and opens a new
// index instead; see the parser tests for this known ambiguity.
func ParseResponse(raw string) map[int]string {
	mapping := make(map[int]string)
	current := -1
	var collected []string

	flush := func() {
		if current >= 0 {
			mapping[current] = strings.TrimSpace(strings.Join(collected, "\n"))
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := markerPattern.FindStringSubmatch(line); m != nil {
			flush()
			current, _ = strconv.Atoi(m[1])
			collected = []string{strings.TrimSpace(m[2])}
			continue
		}
		if current >= 0 {
			collected = append(collected, strings.TrimSpace(line))
		}
	}
	flush()

	return mapping
}

package segment

import "strings"

// Paragraphs groups sentence units into space-joined paragraphs of
// perParagraph sentences each. A final partial group still closes a
// paragraph at end of input.
func Paragraphs(sentences []Unit, perParagraph int) []string {
	if perParagraph <= 0 {
		perParagraph = 1
	}

	var paragraphs []string
	var current []string

	for i, s := range sentences {
		current = append(current, s.Text)
		if len(current) >= perParagraph || i == len(sentences)-1 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}

	return paragraphs
}

// RenderTranscript joins paragraphs with a blank line between them.
func RenderTranscript(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

package segment

import (
	"strings"
	"unicode/utf8"
)

// Mode selects the segmentation granularity.
type Mode int

const (
	// ModeSentence produces sentence units for plain-text transcripts.
	ModeSentence Mode = iota
	// ModeCue produces display-bounded units for subtitle files.
	ModeCue
)

// Splitter turns an ordered word stream into ordered text units using a
// single forward pass over an accumulation buffer.
type Splitter struct {
	Mode Mode

	// Pause is the silence between a word's end and the next word's start
	// that forces a unit boundary.
	Pause float64

	// MaxChars bounds the joined cue text length in runes. Cue mode only;
	// zero disables the length rule.
	MaxChars int

	// Lookahead is how many upcoming words to scan for terminal punctuation
	// before breaking an overlong cue mid-thought.
	Lookahead int
}

// NewSentenceSplitter creates a splitter for transcript sentences, broken on
// terminal punctuation and pauses longer than pause seconds.
func NewSentenceSplitter(pause float64) *Splitter {
	return &Splitter{Mode: ModeSentence, Pause: pause}
}

// NewCueSplitter creates a splitter for subtitle cues, additionally bounded
// by maxChars per cue with a punctuation lookahead window.
func NewCueSplitter(pause float64, maxChars, lookahead int) *Splitter {
	return &Splitter{Mode: ModeCue, Pause: pause, MaxChars: maxChars, Lookahead: lookahead}
}

// Split segments words into units. Every word belongs to exactly one unit
// and the final unit is always closed, even without punctuation or pause.
// An empty word stream yields no units.
func (s *Splitter) Split(words []Word) []Unit {
	if len(words) == 0 {
		return nil
	}

	var units []Unit
	var buffer []Word

	for i := range words {
		buffer = append(buffer, words[i])

		isLast := i == len(words)-1
		if isLast || s.shouldBreak(words, i, buffer) {
			if u, ok := s.closeUnit(buffer); ok {
				units = append(units, u)
			}
			buffer = nil
		}
	}

	return units
}

// shouldBreak decides whether the unit ends after word i. Conditions are
// checked in precedence order: terminal punctuation, pause to the next word,
// then (cue mode) maximum length with the lookahead exception.
func (s *Splitter) shouldBreak(words []Word, i int, buffer []Word) bool {
	if endsSentence(words[i].Text) {
		return true
	}

	if i < len(words)-1 && words[i+1].Start-words[i].End > s.Pause {
		return true
	}

	if s.Mode == ModeCue && s.MaxChars > 0 {
		if utf8.RuneCountInString(joinCue(buffer)) > s.MaxChars && !s.punctuationAhead(words, i) {
			return true
		}
	}

	return false
}

// punctuationAhead reports whether any of the next Lookahead words ends a
// sentence. An overlong cue is allowed to run to such a nearby natural end
// instead of being cut mid-thought.
func (s *Splitter) punctuationAhead(words []Word, i int) bool {
	for j := 1; j <= s.Lookahead; j++ {
		if i+j >= len(words) {
			break
		}
		if endsSentence(words[i+j].Text) {
			return true
		}
	}
	return false
}

func (s *Splitter) closeUnit(buffer []Word) (Unit, bool) {
	var text string
	if s.Mode == ModeCue {
		text = joinCue(buffer)
	} else {
		// Sentence mode: words carry their own spacing, so concatenate raw.
		var b strings.Builder
		for _, w := range buffer {
			b.WriteString(w.Text)
		}
		text = strings.TrimSpace(b.String())
	}

	if text == "" {
		return Unit{}, false
	}
	return Unit{
		Text:  text,
		Start: buffer[0].Start,
		End:   buffer[len(buffer)-1].End,
	}, true
}

// joinCue joins stripped word texts with single spaces.
func joinCue(words []Word) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, strings.TrimSpace(w.Text))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// endsSentence reports whether the stripped word text ends with terminal
// punctuation.
func endsSentence(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	return r == '.' || r == '?' || r == '!'
}

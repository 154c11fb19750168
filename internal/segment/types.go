package segment

// Word is a single timestamped token from the speech recognizer. Within a
// stream, Start values are non-decreasing and End >= Start.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Unit is one segmented text unit: a sentence in transcript mode or a cue in
// subtitle mode. Start is the first buffered word's start, End the last
// word's end.
type Unit struct {
	Text  string
	Start float64
	End   float64
}

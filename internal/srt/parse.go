package srt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads SRT blocks from r. Multi-line cue text and CRLF line endings
// are tolerated; the stored index is kept as-is rather than renumbered.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var entries []Entry
	var block []string

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		e, err := parseBlock(block)
		if err != nil {
			return err
		}
		entries = append(entries, e)
		block = nil
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return entries, nil
}

func parseBlock(lines []string) (Entry, error) {
	if len(lines) < 2 {
		return Entry{}, fmt.Errorf("truncated subtitle block starting %q", lines[0])
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Entry{}, fmt.Errorf("bad subtitle index %q: %w", lines[0], err)
	}

	startStr, endStr, ok := strings.Cut(lines[1], "-->")
	if !ok {
		return Entry{}, fmt.Errorf("bad timecode line %q", lines[1])
	}
	start, err := ParseTimestamp(startStr)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %d: %w", index, err)
	}
	end, err := ParseTimestamp(endStr)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %d: %w", index, err)
	}

	return Entry{
		Index: index,
		Start: start,
		End:   end,
		Text:  strings.Join(lines[2:], "\n"),
	}, nil
}

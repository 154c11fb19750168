// Package asr talks to a faster-whisper compatible transcription server.
// The server owns model loading; this client only uploads audio and decodes
// the word-timestamped result.
package asr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tvph1996/Kuiche/internal/segment"
)

const (
	// DefaultServerURL is where a locally run transcription server listens.
	DefaultServerURL = "http://127.0.0.1:9090"

	uploadTimeout = 30 * time.Minute
	checkTimeout  = 10 * time.Second
)

// Options control a transcription request.
type Options struct {
	Model               string
	Language            string // empty or "auto" lets the server detect
	WordTimestamps      bool
	VADFilter           bool
	MinSpeechDurationMs int
	InitialPrompt       string
}

// Segment is one recognized span containing ordered timestamped words.
type Segment struct {
	Start float64        `json:"start"`
	End   float64        `json:"end"`
	Text  string         `json:"text"`
	Words []segment.Word `json:"words"`
}

// Response is the transcription result.
type Response struct {
	Language            string    `json:"language"`
	LanguageProbability float64   `json:"language_probability"`
	Duration            float64   `json:"duration"`
	Segments            []Segment `json:"segments"`
}

// Words flattens all segment words into one ordered stream.
func (r *Response) Words() []segment.Word {
	var words []segment.Word
	for _, s := range r.Segments {
		words = append(words, s.Words...)
	}
	return words
}

// Client is an HTTP client for the transcription server.
type Client struct {
	serverURL string
	client    *http.Client
}

func NewClient(serverURL string) *Client {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: uploadTimeout},
	}
}

// Check verifies the server is reachable with its model loaded. It runs once
// before any file is processed; a failure here aborts the whole run.
func (c *Client) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("transcription server unreachable at %s: %w", c.serverURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("transcription server unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// Transcribe uploads the audio file and returns the timestamped transcript.
// The multipart body is streamed through a pipe so large files are never
// buffered in memory.
func (c *Client) Transcribe(ctx context.Context, audioPath string, opts Options) (*Response, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	var g errgroup.Group
	g.Go(func() error {
		defer pw.Close()
		defer mw.Close()
		if err := writeForm(mw, f, audioPath, opts); err != nil {
			pw.CloseWithError(err)
			return err
		}
		return nil
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/transcribe", pr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("multipart write error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

func writeForm(mw *multipart.Writer, f *os.File, audioPath string, opts Options) error {
	fields := map[string]string{
		"model":           opts.Model,
		"word_timestamps": strconv.FormatBool(opts.WordTimestamps),
		"vad_filter":      strconv.FormatBool(opts.VADFilter),
		"response_format": "verbose_json",
	}
	if opts.Language != "" && strings.ToLower(opts.Language) != "auto" {
		fields["language"] = opts.Language
	}
	if opts.MinSpeechDurationMs > 0 {
		fields["min_speech_duration_ms"] = strconv.Itoa(opts.MinSpeechDurationMs)
	}
	if opts.InitialPrompt != "" {
		fields["initial_prompt"] = opts.InitialPrompt
	}

	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}

	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleEngine translates through the unauthenticated Google web endpoint.
type GoogleEngine struct {
	client *http.Client
}

func NewGoogleEngine(client *http.Client) *GoogleEngine {
	return &GoogleEngine{client: client}
}

func (g *GoogleEngine) Name() string { return "google" }

// Translate sends the text as form data so that multi-line batch payloads
// are not subject to URL length limits.
func (g *GoogleEngine) Translate(ctx context.Context, text, targetLang string) (string, error) {
	form := url.Values{}
	form.Set("client", "gtx")
	form.Set("sl", "auto")
	form.Set("tl", targetLang)
	form.Set("dt", "t")
	form.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header = randomHeaders()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("google returned status %d: %s", resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return decodeGoogleResponse(data)
}

// decodeGoogleResponse extracts the translated text from the gtx response,
// a nested JSON array whose first element lists [translated, original, ...]
// chunks.
func decodeGoogleResponse(data []byte) (string, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(outer) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var chunks [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &chunks); err != nil {
		return "", fmt.Errorf("decode translation chunks: %w", err)
	}

	var b strings.Builder
	for _, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(chunk[0], &part); err != nil {
			continue
		}
		b.WriteString(part)
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("translation response contained no text")
	}
	return b.String(), nil
}

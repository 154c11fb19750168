package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
)

const (
	bingPageURL      = "https://www.bing.com/translator"
	bingTranslateURL = "https://www.bing.com/ttranslatev3?isVertical=1&IID=translator.5028"
)

var (
	bingIGPattern    = regexp.MustCompile(`IG:"([^"]+)"`)
	bingTokenPattern = regexp.MustCompile(`params_AbusePreventionHelper\s*=\s*\[(\d+),"([^"]+)"`)
)

// bingSession holds the per-session parameters scraped from the translator
// page, required by the unauthenticated translate endpoint.
type bingSession struct {
	ig    string
	key   string
	token string
}

// BingEngine translates through the unauthenticated Bing web endpoint.
type BingEngine struct {
	client *http.Client

	mu      sync.Mutex
	session *bingSession
}

func NewBingEngine(client *http.Client) *BingEngine {
	return &BingEngine{client: client}
}

func (b *BingEngine) Name() string { return "bing" }

func (b *BingEngine) Translate(ctx context.Context, text, targetLang string) (string, error) {
	session, err := b.ensureSession(ctx)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("fromLang", "auto-detect")
	form.Set("to", targetLang)
	form.Set("text", text)
	form.Set("key", session.key)
	form.Set("token", session.token)

	endpoint := bingTranslateURL + "&IG=" + url.QueryEscape(session.ig)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header = randomHeaders()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("Origin", "https://www.bing.com")
	req.Header.Set("Referer", bingPageURL)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("bing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b.dropSession()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("bing returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload []struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		b.dropSession()
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(payload) == 0 || len(payload[0].Translations) == 0 {
		return "", fmt.Errorf("translation response contained no text")
	}

	return payload[0].Translations[0].Text, nil
}

// ensureSession scrapes the translator page for the IG, key, and token
// parameters, caching the result across calls.
func (b *BingEngine) ensureSession(ctx context.Context) (*bingSession, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session != nil {
		return b.session, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bingPageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create session request: %w", err)
	}
	req.Header = randomHeaders()

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bing session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bing session page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read session page: %w", err)
	}

	ig := bingIGPattern.FindSubmatch(body)
	token := bingTokenPattern.FindSubmatch(body)
	if ig == nil || token == nil {
		return nil, fmt.Errorf("bing session parameters not found in translator page")
	}

	b.session = &bingSession{
		ig:    string(ig[1]),
		key:   string(token[1]),
		token: string(token[2]),
	}
	return b.session, nil
}

func (b *BingEngine) dropSession() {
	b.mu.Lock()
	b.session = nil
	b.mu.Unlock()
}

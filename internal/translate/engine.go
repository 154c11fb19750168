package translate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const engineTimeout = 2 * time.Minute

// Engine is one external translation service. A call may fail at any time;
// callers never assume success.
type Engine interface {
	Name() string
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// ByName returns engines for the configured names, in priority order. All
// engines share one HTTP client.
func ByName(names []string) ([]Engine, error) {
	client := &http.Client{Timeout: engineTimeout}

	engines := make([]Engine, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "google":
			engines = append(engines, NewGoogleEngine(client))
		case "bing":
			engines = append(engines, NewBingEngine(client))
		default:
			return nil, fmt.Errorf("unknown translation engine %q", name)
		}
	}
	return engines, nil
}

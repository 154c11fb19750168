package translate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/tvph1996/Kuiche/internal/srt"
)

// Controller orchestrates batch translation across a prioritized list of
// engines, degrading to per-entry translation when every engine fails a
// batch. Batches run strictly one after another.
type Controller struct {
	// Engines are tried in order for each batch.
	Engines []Engine
	// Fallback is the single engine used for per-entry translation after
	// all batch attempts fail. Defaults to the first engine.
	Fallback Engine
	// BatchSize bounds how many entries are sent per call.
	BatchSize int
	// Delay is the fixed pause between consecutive batches.
	Delay time.Duration
}

func NewController(engines []Engine, fallback Engine, batchSize int, delay time.Duration) *Controller {
	return &Controller{
		Engines:   engines,
		Fallback:  fallback,
		BatchSize: batchSize,
		Delay:     delay,
	}
}

// TranslateAll translates entries in place, batch by batch, preserving
// order. A batch for which every engine fails falls back to per-entry
// translation; an entry that still fails keeps its original text. Only
// context cancellation aborts the run.
func (c *Controller) TranslateAll(ctx context.Context, entries []srt.Entry, targetLang string) error {
	if len(c.Engines) == 0 {
		return fmt.Errorf("no translation engines configured")
	}

	batchSize := c.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}

	// First Wait passes immediately; subsequent ones pace the batches.
	limiter := rate.NewLimiter(rate.Every(c.Delay), 1)
	total := (len(entries) + batchSize - 1) / batchSize

	for i := 0; i < len(entries); i += batchSize {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("inter-batch delay: %w", err)
		}

		end := min(i+batchSize, len(entries))
		batch := entries[i:end]
		num := i/batchSize + 1

		if engine, ok := c.translateBatch(ctx, batch, num, targetLang); ok {
			slog.Info("batch translated", "batch", fmt.Sprintf("%d/%d", num, total), "engine", engine)
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		slog.Warn("all engines failed for batch, translating entries individually", "batch", num)
		c.translateEntries(ctx, batch, i, targetLang)
	}

	return nil
}

// translateBatch tries each engine in order until one returns a response
// that round-trips entry for entry. Returns the winning engine's name.
func (c *Controller) translateBatch(ctx context.Context, batch []srt.Entry, num int, targetLang string) (string, bool) {
	payload := EncodeBatch(batch)

	for _, engine := range c.Engines {
		raw, err := engine.Translate(ctx, payload, targetLang)
		if err != nil {
			slog.Warn("engine call failed, trying next engine",
				"batch", num, "engine", engine.Name(), "err", err)
			if ctx.Err() != nil {
				return "", false
			}
			continue
		}

		mapping := ParseResponse(raw)
		if len(mapping) != len(batch) {
			slog.Warn("batch integrity check failed, trying next engine",
				"batch", num, "engine", engine.Name(),
				"expected", len(batch), "parsed", len(mapping))
			slog.Debug("batch mismatch detail",
				"payload", payload, "response", raw, "mapping", fmt.Sprint(mapping))
			continue
		}

		for j := range batch {
			text, ok := mapping[j]
			if !ok {
				// The size check passed, so a hole here means duplicate
				// indices in the response. Keep the source text for this
				// entry rather than failing the batch.
				slog.Warn("translated index missing after validation",
					"batch", num, "entry", j, "engine", engine.Name())
				continue
			}
			batch[j].Text = text
		}
		return engine.Name(), true
	}

	return "", false
}

// translateEntries is the last-resort path: each entry goes through the
// fallback engine on its own, and failures keep the original text.
func (c *Controller) translateEntries(ctx context.Context, batch []srt.Entry, offset int, targetLang string) {
	engine := c.Fallback
	if engine == nil {
		engine = c.Engines[0]
	}

	for j := range batch {
		translated, err := engine.Translate(ctx, batch[j].Text, targetLang)
		if err != nil {
			slog.Warn("entry translation failed, keeping original text",
				"entry", offset+j+1, "engine", engine.Name(), "err", err)
			if ctx.Err() != nil {
				return
			}
			continue
		}
		batch[j].Text = translated
	}
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"garland/internal/logging"
)

// Prefetch warms the event page cache for an edition range, pausing between
// fetches to stay polite to the upstream.
func (p *Pipeline) Prefetch(ctx context.Context, start, end int) error {
	if start < 1 {
		start = 1
	}
	if end < 1 || end > p.cfg.Award.CurrentEdition {
		end = p.cfg.Award.CurrentEdition
	}
	if start > end {
		return fmt.Errorf("edition range %d-%d is empty", start, end)
	}

	delay := p.fetchDelay()
	for edition := start; edition <= end; edition++ {
		if _, err := p.imdb.Fetch(ctx, edition); err != nil {
			return fmt.Errorf("edition %d: %w", edition, err)
		}
		p.logger.Debug("event page cached", logging.Int("edition", edition))
		if edition == end || delay == 0 {
			continue
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.logger.Info("event pages cached",
		logging.Int("start", start), logging.Int("end", end))
	return nil
}

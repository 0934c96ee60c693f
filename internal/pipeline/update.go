package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"garland/internal/award"
	"garland/internal/logging"
	"garland/internal/store"
)

// UpdatePending ingests one pending edition. Officials come from the
// ceremony page rather than the registry snapshot, results are stored with
// the pending flag set, and any category label that does not resolve to a
// seeded category name aborts the run.
func (p *Pipeline) UpdatePending(ctx context.Context, edition int) error {
	runID := uuid.NewString()
	log := p.logger.With(logging.String("run_id", runID), logging.Int("edition", edition))

	officials, err := p.registry.PendingCategories(ctx, edition)
	if err != nil {
		return fmt.Errorf("edition %d: scrape ceremony page: %w", edition, err)
	}

	report, err := p.reconcile(ctx, edition, true, officials)
	if err != nil {
		return err
	}

	known, err := p.store.CategoryNamesOfficial(ctx)
	if err != nil {
		return fmt.Errorf("load category names: %w", err)
	}
	knownSet := make(map[string]struct{}, len(known))
	for _, name := range known {
		knownSet[strings.ToLower(name)] = struct{}{}
	}
	labels := make([]string, 0, len(report.Categories))
	for _, category := range report.Categories {
		if _, ok := knownSet[store.CategoryNameKey(category.Category)]; !ok {
			return fmt.Errorf("edition %d: new category name %q", edition, category.Category)
		}
		labels = append(labels, category.Category)
	}

	meta, err := p.registry.Edition(ctx, edition)
	if err != nil {
		return fmt.Errorf("edition %d: scrape ceremony metadata: %w", edition, err)
	}
	if err := p.store.InsertEditions(ctx, []award.Edition{meta}); err != nil {
		return fmt.Errorf("edition %d: insert edition: %w", edition, err)
	}
	if err := p.store.LinkEditionCategories(ctx, edition, labels); err != nil {
		return fmt.Errorf("edition %d: link categories: %w", edition, err)
	}

	// Announcements get re-ingested as details firm up; replace wholesale.
	if err := p.store.DeleteEditionNominees(ctx, edition); err != nil {
		return fmt.Errorf("edition %d: clear previous ingest: %w", edition, err)
	}

	nominees := report.Nominees()
	if err := p.store.InsertNominees(ctx, nominees); err != nil {
		return fmt.Errorf("edition %d: store nominees: %w", edition, err)
	}
	log.Info("pending edition ingested",
		logging.Int("categories", len(report.Categories)),
		logging.Int("nominees", len(nominees)))
	return nil
}

package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"garland/internal/award"
	"garland/internal/logging"
	"garland/internal/match"
	"garland/internal/sources/imdb"
	"garland/internal/sources/registry"
)

// Reconcile runs the matcher for one edition without touching the store.
// Officials come from the configured registry snapshot; the catalog side is
// fetched (or served from cache) from the event pages.
func (p *Pipeline) Reconcile(ctx context.Context, edition int, pending bool) (EditionReport, error) {
	report := EditionReport{Edition: edition}

	if p.cfg.Sources.RegistrySnapshot == "" {
		return report, ErrSnapshotRequired
	}
	officials, err := registry.LoadDatabase(p.cfg.Sources.RegistrySnapshot, edition)
	if err != nil {
		return report, fmt.Errorf("edition %d: load registry snapshot: %w", edition, err)
	}
	return p.reconcile(ctx, edition, pending, officials)
}

func (p *Pipeline) reconcile(ctx context.Context, edition int, pending bool, officials []award.OfficialCategory) (EditionReport, error) {
	report := EditionReport{Edition: edition}

	payload, err := p.imdb.Fetch(ctx, edition)
	if err != nil {
		return report, fmt.Errorf("edition %d: fetch event page: %w", edition, err)
	}
	catalog, err := imdb.Parse(payload)
	if err != nil {
		return report, fmt.Errorf("edition %d: parse event payload: %w", edition, err)
	}

	if err := p.overrides.ApplyOfficial(edition, officials); err != nil {
		return report, fmt.Errorf("edition %d: apply official overrides: %w", edition, err)
	}
	if err := p.overrides.ApplyIMDb(edition, catalog); err != nil {
		return report, fmt.Errorf("edition %d: apply catalog overrides: %w", edition, err)
	}

	categories, warnings, err := match.Edition(officials, catalog, edition, pending)
	if err != nil {
		return report, fmt.Errorf("edition %d: %w", edition, err)
	}
	report.Categories = categories
	report.Warnings = warnings
	return report, nil
}

// Rebuild reconstructs the whole dataset: ceremony metadata, the category
// hierarchy, and the canonical nominees for editions 1 through the configured
// current edition. The first failing edition aborts the run.
func (p *Pipeline) Rebuild(ctx context.Context) error {
	runID := uuid.NewString()
	log := p.logger.With(logging.String("run_id", runID))
	current := p.cfg.Award.CurrentEdition

	if p.cfg.Sources.RegistrySnapshot == "" {
		return ErrSnapshotRequired
	}

	log.Info("scraping ceremony metadata", logging.Int("editions", current))
	editions, err := p.registry.Editions(ctx, 1, current)
	if err != nil {
		return fmt.Errorf("scrape editions: %w", err)
	}

	if err := p.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	if err := p.store.InsertEditions(ctx, editions); err != nil {
		return fmt.Errorf("insert editions: %w", err)
	}
	if err := p.store.SeedCategories(ctx, current); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	for edition := 1; edition <= current; edition++ {
		report, err := p.Reconcile(ctx, edition, false)
		if err != nil {
			return err
		}
		for _, warning := range report.Warnings {
			log.Warn("credit name differs from catalog",
				logging.Int("edition", edition),
				logging.String("official", warning.Official),
				logging.String("catalog", warning.IMDb))
		}
		nominees := report.Nominees()
		if err := p.store.InsertNominees(ctx, nominees); err != nil {
			return fmt.Errorf("edition %d: store nominees: %w", edition, err)
		}
		log.Info("edition reconciled",
			logging.Int("edition", edition),
			logging.Int("categories", len(report.Categories)),
			logging.Int("nominees", len(nominees)))
	}

	log.Info("rebuild complete", logging.Int("editions", current))
	return nil
}

// Match dry-runs the matcher over an edition range and returns the per
// edition reports without writing anything.
func (p *Pipeline) Match(ctx context.Context, start, end int) ([]EditionReport, error) {
	if start < 1 {
		start = 1
	}
	if end < 1 || end > p.cfg.Award.CurrentEdition {
		end = p.cfg.Award.CurrentEdition
	}
	if start > end {
		return nil, fmt.Errorf("edition range %d-%d is empty", start, end)
	}

	var reports []EditionReport
	for edition := start; edition <= end; edition++ {
		report, err := p.Reconcile(ctx, edition, false)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

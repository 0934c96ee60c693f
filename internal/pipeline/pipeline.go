package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"garland/internal/award"
	"garland/internal/config"
	"garland/internal/logging"
	"garland/internal/match"
	"garland/internal/overrides"
	"garland/internal/sources/imdb"
	"garland/internal/sources/registry"
	"garland/internal/store"
)

// ErrSnapshotRequired indicates a run needs the registry database snapshot
// but none is configured.
var ErrSnapshotRequired = errors.New("sources.registry_snapshot must be set")

// Pipeline wires the sources, overrides, matcher, and store together.
type Pipeline struct {
	cfg       *config.Config
	store     *store.Store
	logger    *slog.Logger
	registry  *registry.Client
	imdb      *imdb.Client
	overrides *overrides.Catalog
}

// Option customizes pipeline construction, primarily for tests.
type Option func(*Pipeline)

// WithRegistryClient overrides the ceremony page client.
func WithRegistryClient(client *registry.Client) Option {
	return func(p *Pipeline) {
		p.registry = client
	}
}

// WithIMDbClient overrides the event catalog client.
func WithIMDbClient(client *imdb.Client) Option {
	return func(p *Pipeline) {
		p.imdb = client
	}
}

// New builds a pipeline from configuration. The store stays owned by the
// caller.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("pipeline requires configuration")
	}
	catalog, err := overrides.Load()
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}

	p := &Pipeline{
		cfg:       cfg,
		store:     st,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		overrides: catalog,
	}
	for _, opt := range opts {
		opt(p)
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.Sources.RequestTimeout) * time.Second}
	if p.registry == nil {
		client, err := registry.NewClient(cfg.Sources.RegistryBaseURL, registry.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("registry client: %w", err)
		}
		p.registry = client
	}
	if p.imdb == nil {
		client, err := imdb.New(cfg.Sources.IMDbBaseURL, cfg.IMDbCacheDir(), imdb.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("imdb client: %w", err)
		}
		p.imdb = client
	}
	return p, nil
}

// EditionReport summarizes one reconciled edition.
type EditionReport struct {
	Edition    int
	Categories []award.MatchedCategory
	Warnings   []match.Warning
}

// Nominees flattens the report into storable records.
func (r EditionReport) Nominees() []award.MatchedNominee {
	var nominees []award.MatchedNominee
	for _, category := range r.Categories {
		nominees = append(nominees, category.Nominees...)
	}
	return nominees
}

func (p *Pipeline) fetchDelay() time.Duration {
	return time.Duration(p.cfg.Sources.FetchDelay) * time.Second
}

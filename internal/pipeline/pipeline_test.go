package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"garland/internal/config"
	"garland/internal/logging"
	"garland/internal/sources/imdb"
	"garland/internal/sources/registry"
	"garland/internal/store"
)

// hrefPrefix pads registry category links to the offset the id parser
// expects.
const hrefPrefix = "https://awardsdatabase.oscars.org/s?"

// emptyCeremony stands in for editions the test never reconciles; the
// database export parser addresses editions by block position.
const emptyCeremony = `<div class="awards-result-chron"></div>`

// databaseExport carries one populated edition, the sixth, with a winner and
// a loser in ACTOR and a lone winner in DIRECTING.
const databaseExport = `<html><body>` +
	emptyCeremony + emptyCeremony + emptyCeremony + emptyCeremony + emptyCeremony + `
<div class="awards-result-chron">
  <div class="subgroup-awardcategory-chron">
    <div class="result-subgroup-title"><a href="` + hrefPrefix + `9&e=6">ACTOR</a></div>
    <div class="result-details">
      <span class="winner-marker"></span>
      <div class="awards-result-film-title">The Informer;</div>
      <div class="awards-result-nominationstatement">Victor McLaglen</div>
      <div class="awards-result-character-name">{"Gypo Nolan"};</div>
    </div>
    <div class="result-details">
      <div class="awards-result-film-title">Mutiny on the Bounty</div>
      <div class="awards-result-nominationstatement">Clark Gable</div>
      <div class="awards-result-character-name">{"Fletcher Christian"}</div>
    </div>
  </div>
  <div class="subgroup-awardcategory-chron">
    <div class="result-subgroup-title"><a href="` + hrefPrefix + `2&e=6">DIRECTING</a></div>
    <div class="result-details">
      <span class="winner-marker"></span>
      <div class="awards-result-film-title">The Informer</div>
      <div class="awards-result-nominationstatement">John Ford</div>
    </div>
  </div>
</div>
</body></html>`

// classicEventPage is the sixth ceremony's event page in the classic
// generation, mirroring the edition in databaseExport.
const classicEventPage = `<html><body>
<div class="article">IMDb.loadAjaxModule(['center-3-react',{"nomineesWidgetModel":{"eventEditionSummary":{"awards":[{"awardName":"Oscar","categories":[{"categoryName":"Best Actor in a Leading Role","nominations":[{"isWinner":true,"notes":"","primaryNominees":[{"name":"Victor McLaglen","const":"nm0564033"}],"secondaryNominees":[{"name":"The Informer","const":"tt0026529"}]},{"isWinner":false,"notes":"","primaryNominees":[{"name":"Clark Gable","const":"nm0000022"}],"secondaryNominees":[{"name":"Mutiny on the Bounty","const":"tt0026752"}]}]},{"categoryName":"Best Director","nominations":[{"isWinner":true,"notes":"","primaryNominees":[{"name":"The Informer","const":"tt0026529"}],"secondaryNominees":[{"name":"John Ford","const":"nm0000406"}]}]}]}]}}}]);</div>
</body></html>`

// pendingCeremonyPage announces one category of an upcoming ceremony; no
// winner classes yet.
const pendingCeremonyPage = `<html><body>
<div class="field--name-field-date-time">Sunday, March 2, 2025</div>
<div class="field--name-field-award-categories">
  <div class="field__item">
    <div class="field--name-field-award-category-oscars">%s</div>
    <div class="field--name-field-award-honorees">
      <div class="field__item">
        <div class="field--name-field-honoree-type nominee">Nominee</div>
        <div class="field--name-field-award-film">Anora</div>
        <div class="field--name-field-award-entities">Sean Baker</div>
      </div>
      <div class="field__item">
        <div class="field--name-field-honoree-type nominee">Nominee</div>
        <div class="field--name-field-award-film">The Brutalist</div>
        <div class="field--name-field-award-entities">Brady Corbet</div>
      </div>
    </div>
  </div>
</div>
</body></html>`

// pendingEventPage is the matching event page in the current generation.
const pendingEventPage = `<html><body>
<script id="__NEXT_DATA__" type="application/json">{"props":{"pageProps":{"edition":{"awards":[{"text":"Oscar","nominationCategories":{"edges":[{"node":{"category":{"text":"%s"},"nominations":{"edges":[{"node":{"isWinner":false,"notes":null,"awardedEntities":{"__typename":"AwardedNames","awardNames":[{"name":{"id":"nm3214149","nameText":{"text":"Sean Baker"}}}],"secondaryAwardTitles":[{"title":{"id":"tt28607951","titleText":{"text":"Anora"}}}]}}},{"node":{"isWinner":false,"notes":null,"awardedEntities":{"__typename":"AwardedNames","awardNames":[{"name":{"id":"nm1148550","nameText":{"text":"Brady Corbet"}}}],"secondaryAwardTitles":[{"title":{"id":"tt8999762","titleText":{"text":"The Brutalist"}}}]}}}]}}}]}}]}}}}</script>
</body></html>`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "database.html")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func serveFixed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestPipeline(t *testing.T, cfg *config.Config, st *store.Store, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(cfg, st, logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestMatchDryRunReconcilesEdition(t *testing.T) {
	srv := serveFixed(t, classicEventPage)

	cfg := config.Default()
	cfg.Award.CurrentEdition = 6
	cfg.Sources.RegistrySnapshot = writeSnapshot(t, databaseExport)
	cfg.Sources.FetchDelay = 0

	ic, err := imdb.New(srv.URL, t.TempDir())
	if err != nil {
		t.Fatalf("imdb.New: %v", err)
	}
	p := newTestPipeline(t, &cfg, nil, WithIMDbClient(ic))

	reports, err := p.Match(context.Background(), 6, 6)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(reports) != 1 || reports[0].Edition != 6 {
		t.Fatalf("expected one report for edition 6, got %+v", reports)
	}
	report := reports[0]
	if len(report.Categories) != 2 {
		t.Fatalf("expected 2 matched categories, got %d", len(report.Categories))
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", report.Warnings)
	}

	byName := make(map[string]int)
	for i, c := range report.Categories {
		byName[c.Category] = i
	}

	actor := report.Categories[byName["ACTOR"]]
	winner := actor.Nominees[0]
	if !winner.Winner || winner.Statement != "Victor McLaglen" {
		t.Fatalf("unexpected actor winner: %+v", winner)
	}
	if !winner.IsPerson {
		t.Fatal("acting nominee should be flagged as a person")
	}
	if winner.Films[0].ID != "tt0026529" || winner.Films[0].Detail[0] != "Gypo Nolan" {
		t.Fatalf("unexpected winner film: %+v", winner.Films[0])
	}
	if winner.People[0].ID != "nm0564033" {
		t.Fatalf("statement name should resolve to catalog id, got %+v", winner.People)
	}
	if !winner.Stat {
		t.Fatal("competitive nominee should count toward totals")
	}

	directing := report.Categories[byName["DIRECTING"]]
	ford := directing.Nominees[0]
	if ford.People[0].ID != "nm0000406" || ford.IsPerson {
		t.Fatalf("unexpected directing winner: %+v", ford)
	}
	if ford.Stat {
		t.Fatal("category without losers is honorary and must not count toward totals")
	}
}

func TestReconcileRequiresSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Sources.RegistrySnapshot = ""

	p := newTestPipeline(t, &cfg, nil)
	if _, err := p.Reconcile(context.Background(), 6, false); !errors.Is(err, ErrSnapshotRequired) {
		t.Fatalf("expected ErrSnapshotRequired, got %v", err)
	}
}

func TestPrefetchCachesEditions(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.Write([]byte(classicEventPage))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Award.CurrentEdition = 6
	cfg.Sources.FetchDelay = 0

	cacheDir := t.TempDir()
	ic, err := imdb.New(srv.URL, cacheDir)
	if err != nil {
		t.Fatalf("imdb.New: %v", err)
	}
	p := newTestPipeline(t, &cfg, nil, WithIMDbClient(ic))

	if err := p.Prefetch(context.Background(), 5, 6); err != nil {
		t.Fatalf("Prefetch: %v", err)
	}
	for _, name := range []string{"5.json", "6.json"} {
		if _, err := os.Stat(filepath.Join(cacheDir, name)); err != nil {
			t.Fatalf("cache file %s missing: %v", name, err)
		}
	}
	if requests != 2 {
		t.Fatalf("expected 2 fetches, got %d", requests)
	}

	// A second pass is served from disk.
	if err := p.Prefetch(context.Background(), 5, 6); err != nil {
		t.Fatalf("Prefetch (cached): %v", err)
	}
	if requests != 2 {
		t.Fatalf("cached pass should not refetch, got %d requests", requests)
	}
}

func TestPrefetchRejectsEmptyRange(t *testing.T) {
	cfg := config.Default()
	cfg.Award.CurrentEdition = 6

	p := newTestPipeline(t, &cfg, nil)
	if err := p.Prefetch(context.Background(), 5, 2); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func newPendingPipeline(t *testing.T, category string) (*Pipeline, *store.Store) {
	t.Helper()

	registrySrv := serveFixed(t, strings.ReplaceAll(pendingCeremonyPage, "%s", category))
	imdbSrv := serveFixed(t, strings.ReplaceAll(pendingEventPage, "%s", "Best Director"))

	st, err := store.Open(filepath.Join(t.TempDir(), "garland.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	if err := st.SeedCategories(ctx, 97); err != nil {
		t.Fatalf("SeedCategories: %v", err)
	}

	cfg := config.Default()
	cfg.Award.CurrentEdition = 97
	cfg.Sources.FetchDelay = 0

	rc, err := registry.NewClient(registrySrv.URL)
	if err != nil {
		t.Fatalf("registry.NewClient: %v", err)
	}
	ic, err := imdb.New(imdbSrv.URL, t.TempDir())
	if err != nil {
		t.Fatalf("imdb.New: %v", err)
	}
	return newTestPipeline(t, &cfg, st, WithRegistryClient(rc), WithIMDbClient(ic)), st
}

func TestUpdatePendingIngestsEdition(t *testing.T) {
	p, st := newPendingPipeline(t, "Directing")
	ctx := context.Background()

	if err := p.UpdatePending(ctx, 97); err != nil {
		t.Fatalf("UpdatePending: %v", err)
	}

	nominations, err := st.Nominations(ctx, store.NominationFilter{PendingOnly: true})
	if err != nil {
		t.Fatalf("Nominations: %v", err)
	}
	if len(nominations) != 2 {
		t.Fatalf("expected 2 pending nominations, got %d", len(nominations))
	}
	first := nominations[0]
	if first.Iteration != 97 || !first.Pending || first.Winner {
		t.Fatalf("unexpected nomination: %+v", first)
	}
	if first.OfficialName != "DIRECTING" {
		t.Fatalf("announced label should resolve to the seeded name, got %q", first.OfficialName)
	}

	var baker bool
	for _, n := range nominations {
		for _, person := range n.People {
			if person.ExternalID == "nm3214149" && person.Name == "Sean Baker" {
				baker = true
			}
		}
	}
	if !baker {
		t.Fatal("expected Sean Baker credit among pending nominations")
	}

	// Re-ingesting the same edition replaces rather than duplicates.
	if err := p.UpdatePending(ctx, 97); err != nil {
		t.Fatalf("UpdatePending (second run): %v", err)
	}
	nominations, err = st.Nominations(ctx, store.NominationFilter{PendingOnly: true})
	if err != nil {
		t.Fatalf("Nominations after re-ingest: %v", err)
	}
	if len(nominations) != 2 {
		t.Fatalf("expected 2 nominations after re-ingest, got %d", len(nominations))
	}

	ceremony, err := st.Ceremony(ctx, 97)
	if err != nil {
		t.Fatalf("Ceremony: %v", err)
	}
	if ceremony.OfficialYear != "2024" {
		t.Fatalf("unexpected official year %q", ceremony.OfficialYear)
	}
}

func TestUpdatePendingRejectsUnknownCategory(t *testing.T) {
	p, st := newPendingPipeline(t, "Best Haircut")
	ctx := context.Background()

	err := p.UpdatePending(ctx, 97)
	if err == nil || !strings.Contains(err.Error(), "new category name") {
		t.Fatalf("expected new category error, got %v", err)
	}

	// The run aborts before anything is written.
	nominations, err := st.Nominations(ctx, store.NominationFilter{})
	if err != nil {
		t.Fatalf("Nominations: %v", err)
	}
	if len(nominations) != 0 {
		t.Fatalf("aborted run must not store nominations, got %d", len(nominations))
	}
}

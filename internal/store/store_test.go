package store_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"garland/internal/award"
	"garland/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "garland.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedEditions(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()
	editions := []award.Edition{
		{Award: "oscar", Iteration: 1, OfficialYear: "1927/28", CeremonyDate: time.Date(1929, 5, 16, 0, 0, 0, 0, time.UTC)},
		{Award: "oscar", Iteration: 3, OfficialYear: "1929/30", CeremonyDate: time.Date(1930, 11, 5, 0, 0, 0, 0, time.UTC)},
		{Award: "oscar", Iteration: 96, OfficialYear: "2023", CeremonyDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
	}
	if err := s.InsertEditions(ctx, editions); err != nil {
		t.Fatalf("InsertEditions failed: %v", err)
	}
	if err := s.SeedCategories(ctx, 96); err != nil {
		t.Fatalf("SeedCategories failed: %v", err)
	}
}

func TestSeedCategoriesRegistersEditionNames(t *testing.T) {
	s := newStore(t)
	seedEditions(t, s)
	ctx := context.Background()

	names, err := s.CategoryNamesOfficial(ctx)
	if err != nil {
		t.Fatalf("CategoryNamesOfficial failed: %v", err)
	}
	if !slices.Contains(names, "BEST PICTURE") || !slices.Contains(names, "DIRECTING") {
		t.Fatalf("seeded names missing expected entries: %v", names)
	}

	groups, err := s.CategoryHierarchy(ctx)
	if err != nil {
		t.Fatalf("CategoryHierarchy failed: %v", err)
	}
	if len(groups) == 0 || groups[0].Name != "Best Picture" {
		t.Fatalf("unexpected first group: %+v", groups)
	}
	if groups[0].Categories[0].Names[0].Official != "OUTSTANDING PICTURE" {
		t.Fatalf("unexpected first category name: %+v", groups[0].Categories[0])
	}
}

func TestInsertNomineesAndQuery(t *testing.T) {
	s := newStore(t)
	seedEditions(t, s)
	ctx := context.Background()

	nominees := []award.MatchedNominee{
		{
			Edition:      96,
			CategoryName: "DIRECTING",
			Winner:       true,
			Statement:    "Christopher Nolan",
			Films:        []award.MatchedFilm{{Title: "Oppenheimer", ID: "tt15398776", Winner: true, Detail: []string{}}},
			People:       []award.MatchedPerson{{Name: "Christopher Nolan", ID: "nm0634240", StatementInd: 0}},
			IsPerson:     true,
			Official:     true,
			Stat:         true,
		},
		{
			Edition:      96,
			CategoryName: "DIRECTING",
			Statement:    "Justine Triet",
			Films:        []award.MatchedFilm{{Title: "Anatomy of a Fall", ID: "tt17009710", Detail: []string{}}},
			People:       []award.MatchedPerson{{Name: "Justine Triet", ID: "nm2990816", StatementInd: 0}},
			IsPerson:     true,
			Official:     true,
			Stat:         true,
		},
	}
	if err := s.InsertNominees(ctx, nominees); err != nil {
		t.Fatalf("InsertNominees failed: %v", err)
	}

	all, err := s.Nominations(ctx, store.NominationFilter{StartEdition: 96, EndEdition: 96})
	if err != nil {
		t.Fatalf("Nominations failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 nominations, got %d", len(all))
	}
	if !all[0].Winner {
		t.Fatal("expected winner ordered first")
	}
	if all[0].CommonName != "Best Director" || all[0].CategoryGroup != "Directing" {
		t.Fatalf("unexpected category metadata: %+v", all[0])
	}
	if len(all[0].Films) != 1 || all[0].Films[0].ExternalID != "tt15398776" {
		t.Fatalf("unexpected films: %+v", all[0].Films)
	}
	if len(all[0].People) != 1 || all[0].People[0].Kind != "person" {
		t.Fatalf("unexpected people: %+v", all[0].People)
	}

	winners, err := s.Nominations(ctx, store.NominationFilter{WinnersOnly: true})
	if err != nil {
		t.Fatalf("Nominations winners failed: %v", err)
	}
	if len(winners) != 1 || winners[0].Statement != "Christopher Nolan" {
		t.Fatalf("unexpected winners: %+v", winners)
	}
}

func TestInsertNomineeUnlinkedCategoryFails(t *testing.T) {
	s := newStore(t)
	seedEditions(t, s)

	err := s.InsertNominees(context.Background(), []award.MatchedNominee{
		{Edition: 1, CategoryName: "ANIMATED FEATURE FILM", Statement: "x"},
	})
	if err == nil || !strings.Contains(err.Error(), "not linked") {
		t.Fatalf("expected unlinked category error, got %v", err)
	}
}

func TestInsertNomineeRejectsBadEntityID(t *testing.T) {
	s := newStore(t)
	seedEditions(t, s)

	err := s.InsertNominees(context.Background(), []award.MatchedNominee{
		{
			Edition:      96,
			CategoryName: "DIRECTING",
			Statement:    "Nobody",
			People:       []award.MatchedPerson{{Name: "Nobody", ID: "xx123"}},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "unrecognized prefix") {
		t.Fatalf("expected prefix error, got %v", err)
	}
}

func TestEntityUpsertKeepsLatestName(t *testing.T) {
	s := newStore(t)
	seedEditions(t, s)
	ctx := context.Background()

	credit := func(edition int, name string) award.MatchedNominee {
		return award.MatchedNominee{
			Edition:      edition,
			CategoryName: "DIRECTING",
			Statement:    name,
			People:       []award.MatchedPerson{{Name: name, ID: "nm0000217", StatementInd: 0}},
			IsPerson:     true,
			Official:     true,
			Stat:         true,
			Winner:       edition == 96,
		}
	}
	if err := s.InsertNominees(ctx, []award.MatchedNominee{credit(3, "Martin Scorcese"), credit(96, "Martin Scorsese")}); err != nil {
		t.Fatalf("InsertNominees failed: %v", err)
	}

	profile, err := s.EntityByExternalID(ctx, "nm0000217")
	if err != nil {
		t.Fatalf("EntityByExternalID failed: %v", err)
	}
	if profile.Name != "Martin Scorsese" {
		t.Fatalf("expected upserted name, got %q", profile.Name)
	}
	if profile.Nominations != 2 || profile.Wins != 1 {
		t.Fatalf("unexpected aggregates: %+v", profile)
	}
	if !slices.Contains(profile.Aliases, "Martin Scorcese") {
		t.Fatalf("expected alias recorded, got %v", profile.Aliases)
	}
}

func TestTitleProfileAndSearch(t *testing.T) {
	s := newStore(t)
	seedEditions(t, s)
	ctx := context.Background()

	nominee := award.MatchedNominee{
		Edition:      96,
		CategoryName: "BEST PICTURE",
		Winner:       true,
		Statement:    "Emma Thomas, Producer",
		Films:        []award.MatchedFilm{{Title: "Oppenheimer", ID: "tt15398776", Winner: true, Detail: []string{}}},
		People:       []award.MatchedPerson{{Name: "Emma Thomas", ID: "nm0859048", StatementInd: 0}},
		Official:     true,
		Stat:         true,
	}
	if err := s.InsertNominees(ctx, []award.MatchedNominee{nominee}); err != nil {
		t.Fatalf("InsertNominees failed: %v", err)
	}

	profile, err := s.TitleByExternalID(ctx, "tt15398776")
	if err != nil {
		t.Fatalf("TitleByExternalID failed: %v", err)
	}
	if profile.Title != "Oppenheimer" || profile.Nominations != 1 || profile.Wins != 1 {
		t.Fatalf("unexpected title profile: %+v", profile)
	}
	if !slices.Equal(profile.Editions, []int{96}) {
		t.Fatalf("unexpected editions: %v", profile.Editions)
	}

	if _, err := s.TitleByExternalID(ctx, "tt0000000"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	results, err := s.Search(ctx, "oppen", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results.Titles) != 1 || results.Titles[0].Name != "Oppenheimer" {
		t.Fatalf("unexpected search titles: %+v", results.Titles)
	}
}

func TestLinkEditionCategoriesConvertsLabels(t *testing.T) {
	s := newStore(t)
	seedEditions(t, s)
	ctx := context.Background()

	if err := s.LinkEditionCategories(ctx, 96, []string{"Animated Short Film"}); err != nil {
		t.Fatalf("LinkEditionCategories failed: %v", err)
	}
	// the converted label now accepts nominees for that edition
	err := s.InsertNominees(ctx, []award.MatchedNominee{{
		Edition:      96,
		CategoryName: "Animated Short Film",
		Statement:    "someone",
		Official:     true,
	}})
	if err != nil {
		t.Fatalf("InsertNominees after link failed: %v", err)
	}

	if err := s.LinkEditionCategories(ctx, 96, []string{"Best Haircut"}); err == nil {
		t.Fatal("expected unknown label to fail")
	}
}

func TestExportCSV(t *testing.T) {
	s := newStore(t)
	seedEditions(t, s)
	ctx := context.Background()

	nominee := award.MatchedNominee{
		Edition:      96,
		CategoryName: "MUSIC (ORIGINAL SONG)",
		Winner:       true,
		Statement:    "Billie Eilish and Finneas O'Connell",
		Films:        []award.MatchedFilm{{Title: "Barbie", ID: "tt1517268", Winner: true, Detail: []string{"What Was I Made For?"}}},
		People: []award.MatchedPerson{
			{Name: "Billie Eilish", ID: "nm9230992", StatementInd: 0},
			{Name: "Finneas O'Connell", ID: "nm5271177", StatementInd: 18},
		},
		Official: true,
		Stat:     true,
	}
	if err := s.InsertNominees(ctx, []award.MatchedNominee{nominee}); err != nil {
		t.Fatalf("InsertNominees failed: %v", err)
	}

	var buf bytes.Buffer
	if err := s.ExportCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[0], "iteration,official_year,ceremony_date") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	// two entities x one title
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "Billie Eilish") || !strings.Contains(lines[1], "tt1517268") {
		t.Fatalf("unexpected first row: %s", lines[1])
	}
	if !strings.Contains(lines[1], `What Was I Made For?`) {
		t.Fatalf("expected detail in row: %s", lines[1])
	}
}

func TestResetClearsData(t *testing.T) {
	s := newStore(t)
	seedEditions(t, s)
	ctx := context.Background()

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	ceremonies, err := s.Ceremonies(ctx)
	if err != nil {
		t.Fatalf("Ceremonies failed: %v", err)
	}
	if len(ceremonies) != 0 {
		t.Fatalf("expected empty store, got %d ceremonies", len(ceremonies))
	}
}

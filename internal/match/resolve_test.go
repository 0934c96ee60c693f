package match

import (
	"errors"
	"testing"

	"garland/internal/award"
)

func TestResolveNomineeBasic(t *testing.T) {
	tables := mustTables(t)
	official := award.OfficialNominee{
		Winner:    true,
		Films:     []string{"It Happened One Night"},
		Statement: "Frank Capra",
	}
	imdb := award.IMDbNominee{
		Winner: true,
		Films:  []award.TitleRef{{Title: "It Happened One Night", ID: "tt0025316"}},
		People: []award.PersonRef{{Name: "Frank Capra", ID: "nm0001008"}},
	}

	got, warnings, err := resolveNominee(official, imdb, 7, "DIRECTING", true, false, tables)
	if err != nil {
		t.Fatalf("resolveNominee: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(got.Films) != 1 || got.Films[0].ID != "tt0025316" || !got.Films[0].Winner {
		t.Fatalf("unexpected films: %+v", got.Films)
	}
	if len(got.People) != 1 {
		t.Fatalf("expected one person, got %+v", got.People)
	}
	p := got.People[0]
	if p.Name != "Frank Capra" || p.ID != "nm0001008" || p.StatementInd != 0 {
		t.Fatalf("unexpected person: %+v", p)
	}
	if !got.Official || !got.Stat || got.IsPerson {
		t.Fatalf("unexpected flags: official=%v stat=%v isPerson=%v", got.Official, got.Stat, got.IsPerson)
	}
}

func TestResolveNomineeActingCategoryIsPerson(t *testing.T) {
	tables := mustTables(t)
	official := award.OfficialNominee{
		Films:     []string{"Morning Glory"},
		Statement: "Katharine Hepburn",
	}
	imdb := award.IMDbNominee{
		Films:  []award.TitleRef{{Title: "Morning Glory", ID: "tt0024397"}},
		People: []award.PersonRef{{Name: "Katharine Hepburn", ID: "nm0000031"}},
	}

	got, _, err := resolveNominee(official, imdb, 6, "ACTRESS", true, false, tables)
	if err != nil {
		t.Fatalf("resolveNominee: %v", err)
	}
	if !got.IsPerson {
		t.Fatal("acting category nominee should be flagged as a person")
	}
}

func TestResolveNomineeThirdEditionActingWinner(t *testing.T) {
	tables := mustTables(t)
	official := award.OfficialNominee{
		Winner:    true,
		Films:     []string{"The Big House", "Disraeli"},
		Statement: "George Arliss",
	}
	imdb := award.IMDbNominee{
		Winner: true,
		Films: []award.TitleRef{
			{Title: "The Big House", ID: "tt0020686"},
			{Title: "Disraeli", ID: "tt0019823"},
		},
		People: []award.PersonRef{{Name: "George Arliss", ID: "nm0000779"}},
	}

	got, _, err := resolveNominee(official, imdb, 3, "ACTOR", false, false, tables)
	if err != nil {
		t.Fatalf("resolveNominee: %v", err)
	}
	if !got.Films[0].Winner {
		t.Fatal("first film should carry the win")
	}
	if got.Films[1].Winner {
		t.Fatal("later films should not carry the win")
	}
	if got.Stat {
		t.Fatal("non-competitive category should not count toward stats")
	}
}

func TestResolveNomineeFilmDetailMismatch(t *testing.T) {
	tables := mustTables(t)
	official := award.OfficialNominee{
		Films:     []string{"Film One", "Film Two"},
		Statement: "Somebody",
		Detail:    []string{"only one detail"},
	}
	imdb := award.IMDbNominee{
		Films: []award.TitleRef{
			{Title: "Film One", ID: "tt0000001"},
			{Title: "Film Two", ID: "tt0000002"},
		},
		People: []award.PersonRef{{Name: "Somebody", ID: "nm0000003"}},
	}

	_, _, err := resolveNominee(official, imdb, 10, "SOME CATEGORY", true, false, tables)
	if !errors.Is(err, ErrAlignment) {
		t.Fatalf("expected ErrAlignment, got %v", err)
	}
}

func TestResolveNomineeDetailAllocation(t *testing.T) {
	tables := mustTables(t)
	official := award.OfficialNominee{
		Films:     []string{"Film One", "Film Two"},
		Statement: "Somebody",
		Detail:    []string{"number one", "number two"},
	}
	imdb := award.IMDbNominee{
		Films: []award.TitleRef{
			{Title: "Film One", ID: "tt0000001"},
			{Title: "Film Two", ID: "tt0000002"},
		},
		People: []award.PersonRef{{Name: "Somebody", ID: "nm0000003"}},
	}

	got, _, err := resolveNominee(official, imdb, 10, "DANCE DIRECTION", true, false, tables)
	if err != nil {
		t.Fatalf("resolveNominee: %v", err)
	}
	if len(got.Films[0].Detail) != 1 || got.Films[0].Detail[0] != "number one" {
		t.Fatalf("unexpected first film detail: %v", got.Films[0].Detail)
	}
	if len(got.Films[1].Detail) != 1 || got.Films[1].Detail[0] != "number two" {
		t.Fatalf("unexpected second film detail: %v", got.Films[1].Detail)
	}
}

func TestResolveNomineeNicknameWarning(t *testing.T) {
	tables := mustTables(t)
	official := award.OfficialNominee{
		Films:     []string{"Selma"},
		Statement: "Music and Lyric by John Stephens and Lonnie R. Lynn",
	}
	imdb := award.IMDbNominee{
		Films: []award.TitleRef{{Title: "Selma", ID: "tt1020072"}},
		People: []award.PersonRef{
			{Name: "John Stephens", ID: "nm1775466"},
			{Name: "Common", ID: "nm0151953"},
		},
	}

	got, warnings, err := resolveNominee(official, imdb, 87, "MUSIC (Original Song)", true, false, tables)
	if err != nil {
		t.Fatalf("resolveNominee: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one inexact-name warning, got %v", warnings)
	}
	if warnings[0].Official != "Lonnie R. Lynn" || warnings[0].IMDb != "Common" {
		t.Fatalf("unexpected warning: %+v", warnings[0])
	}
	if got.People[1].ID != "nm0151953" {
		t.Fatalf("nickname credit should keep catalog id, got %+v", got.People[1])
	}
}

func TestResolveNomineeCountryResolution(t *testing.T) {
	tables := mustTables(t)
	statement := "To Monsieur Vincent - voted by the Academy Board of Governors as the most outstanding foreign language film released in the United States during 1948."
	official := award.OfficialNominee{
		Winner:    true,
		Films:     []string{"Monsieur Vincent"},
		Statement: statement,
	}
	imdb := award.IMDbNominee{
		Winner: true,
		Films:  []award.TitleRef{{Title: "Monsieur Vincent", ID: "tt0039632"}},
		People: []award.PersonRef{{Name: "France", ID: ""}},
	}

	got, _, err := resolveNominee(official, imdb, 21, "SPECIAL FOREIGN LANGUAGE FILM AWARD", false, false, tables)
	if err != nil {
		t.Fatalf("resolveNominee: %v", err)
	}
	if len(got.People) != 1 {
		t.Fatalf("expected one resolved entity, got %+v", got.People)
	}
	p := got.People[0]
	if p.Name != "France" || p.ID != "ccFR" {
		t.Fatalf("expected France/ccFR, got %+v", p)
	}
	if p.StatementInd != -1 {
		t.Fatalf("name absent from statement should index -1, got %d", p.StatementInd)
	}
	if kind, ok := award.KindOfID(p.ID); !ok || kind != award.EntityCountry {
		t.Fatalf("expected country kind for %q", p.ID)
	}
}

func TestResolveNomineeSharedCountryHonor(t *testing.T) {
	tables := mustTables(t)
	statement := "To The Walls of Malapaga - voted by the Board of Governors as the most outstanding foreign language film released in the United States in 1950."
	official := award.OfficialNominee{
		Winner:    true,
		Films:     []string{"The Walls of Malapaga"},
		Statement: statement,
	}
	imdb := award.IMDbNominee{
		Winner: true,
		Films:  []award.TitleRef{{Title: "The Walls of Malapaga", ID: "tt0041252"}},
		People: []award.PersonRef{{Name: "France", ID: ""}, {Name: "Italy", ID: ""}},
	}

	got, _, err := resolveNominee(official, imdb, 23, "HONORARY AWARD", false, false, tables)
	if err != nil {
		t.Fatalf("resolveNominee: %v", err)
	}
	if len(got.People) != 2 {
		t.Fatalf("expected both countries, got %+v", got.People)
	}
	ids := map[string]string{}
	for _, p := range got.People {
		ids[p.Name] = p.ID
	}
	if ids["France"] != "ccFR" || ids["Italy"] != "ccIT" {
		t.Fatalf("unexpected country ids: %v", ids)
	}
}

func TestResolveNomineeEmptyIDFails(t *testing.T) {
	tables := mustTables(t)
	official := award.OfficialNominee{
		Films:     []string{"Some Film"},
		Statement: "John Doe",
	}
	imdb := award.IMDbNominee{
		Films:  []award.TitleRef{{Title: "Some Film", ID: "tt0000004"}},
		People: []award.PersonRef{{Name: "John Doe", ID: ""}},
	}

	_, _, err := resolveNominee(official, imdb, 50, "WRITING", true, false, tables)
	if !errors.Is(err, ErrResolution) {
		t.Fatalf("expected ErrResolution, got %v", err)
	}
}

func TestResolveNomineeStudioInjection(t *testing.T) {
	tables := mustTables(t)
	official := award.OfficialNominee{
		Films:     []string{"The Bells of St. Mary's"},
		Statement: "RKO Radio Studio Sound Department, Stephen Dunn, Sound Director",
	}
	imdb := award.IMDbNominee{
		Films:  []award.TitleRef{{Title: "The Bells of St. Mary's", ID: "tt0037536"}},
		People: []award.PersonRef{{Name: "Stephen Dunn", ID: "nm0242931"}},
	}

	got, _, err := resolveNominee(official, imdb, 18, "SOUND RECORDING", true, false, tables)
	if err != nil {
		t.Fatalf("resolveNominee: %v", err)
	}
	if len(got.People) != 2 {
		t.Fatalf("expected studio credit synthesized, got %+v", got.People)
	}
	ids := map[string]string{}
	for _, p := range got.People {
		ids[p.Name] = p.ID
	}
	if ids["RKO Radio Studio Sound Department"] != "co0041421" {
		t.Fatalf("unexpected studio id: %v", ids)
	}
	if ids["Stephen Dunn"] != "nm0242931" {
		t.Fatalf("unexpected person id: %v", ids)
	}
}

func TestResolveNomineeSuffixCleanup(t *testing.T) {
	tables := mustTables(t)
	official := award.OfficialNominee{
		Films:     []string{"Some Picture"},
		Statement: "Sammy Davis, Jr.",
	}
	imdb := award.IMDbNominee{
		Films:  []award.TitleRef{{Title: "Some Picture", ID: "tt0000005"}},
		People: []award.PersonRef{{Name: "Sammy Davis Jr.", ID: "nm0001111"}},
	}

	got, warnings, err := resolveNominee(official, imdb, 40, "SOME CATEGORY", true, false, tables)
	if err != nil {
		t.Fatalf("resolveNominee: %v", err)
	}
	if got.Statement != "Sammy Davis Jr." {
		t.Fatalf("suffix comma should be cleaned, got %q", got.Statement)
	}
	if len(warnings) != 0 {
		t.Fatalf("cleaned statement should match credit exactly, got %v", warnings)
	}
	if got.People[0].StatementInd != 0 {
		t.Fatalf("unexpected statement index: %d", got.People[0].StatementInd)
	}
}

func TestDedupPeople(t *testing.T) {
	people := []award.PersonRef{
		{Name: "First Spelling", ID: "nm0000001"},
		{Name: "Someone Else", ID: "nm0000002"},
		{Name: "Second Spelling", ID: "nm0000001"},
		{Name: "No ID", ID: ""},
	}
	got := dedupPeople(people)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %+v", got)
	}
	if got[0].Name != "Second Spelling" {
		t.Fatalf("duplicate id should keep first position with last value, got %+v", got[0])
	}
	if got[2].Name != "No ID" {
		t.Fatalf("id-less credit should survive positionally, got %+v", got[2])
	}
}

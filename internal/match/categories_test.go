package match

import (
	"testing"

	"garland/internal/award"
)

func TestEditionFuzzyCategoryPairing(t *testing.T) {
	officials := []award.OfficialCategory{
		{Category: "FILM EDITING", Nominees: []award.OfficialNominee{
			{Winner: true, Films: []string{"Edited Film"}, Statement: "Ed Itor"},
		}},
		{Category: "CINEMATOGRAPHY", Nominees: []award.OfficialNominee{
			{Winner: true, Films: []string{"Shot Film"}, Statement: "Cam Operator"},
		}},
	}
	catalog := []award.IMDbCategory{
		{Category: "Best Cinematography", Nominees: []award.IMDbNominee{
			{Winner: true, Films: []award.TitleRef{{Title: "Shot Film", ID: "tt0000061"}}, People: []award.PersonRef{{Name: "Cam Operator", ID: "nm0000061"}}},
		}},
		{Category: "Best Film Editing", Nominees: []award.IMDbNominee{
			{Winner: true, Films: []award.TitleRef{{Title: "Edited Film", ID: "tt0000060"}}, People: []award.PersonRef{{Name: "Ed Itor", ID: "nm0000060"}}},
		}},
	}

	got, warnings, err := Edition(officials, catalog, 40, false)
	if err != nil {
		t.Fatalf("Edition: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	byLabel := map[string]award.MatchedCategory{}
	for _, c := range got {
		byLabel[c.Category] = c
	}
	if c := byLabel["FILM EDITING"]; len(c.Nominees) != 1 || c.Nominees[0].Films[0].ID != "tt0000060" {
		t.Fatalf("film editing paired wrong: %+v", c)
	}
	if c := byLabel["CINEMATOGRAPHY"]; len(c.Nominees) != 1 || c.Nominees[0].Films[0].ID != "tt0000061" {
		t.Fatalf("cinematography paired wrong: %+v", c)
	}
}

func TestEditionStaticPairingBypassesFuzzy(t *testing.T) {
	// DIRECTING is statically paired with "best director" label variants, so
	// it must claim that catalog category even when another official label
	// would score higher.
	officials := []award.OfficialCategory{
		{Category: "DIRECTING", Nominees: []award.OfficialNominee{
			{Winner: true, Films: []string{"Directed Film"}, Statement: "A Director"},
		}},
	}
	catalog := []award.IMDbCategory{
		{Category: "Best Director", Nominees: []award.IMDbNominee{
			{Winner: true, Films: []award.TitleRef{{Title: "Directed Film", ID: "tt0000070"}}, People: []award.PersonRef{{Name: "A Director", ID: "nm0000070"}}},
		}},
	}

	got, _, err := Edition(officials, catalog, 40, false)
	if err != nil {
		t.Fatalf("Edition: %v", err)
	}
	if len(got) != 1 || got[0].Category != "DIRECTING" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got[0].Nominees[0].People[0].ID != "nm0000070" {
		t.Fatalf("unexpected nominee: %+v", got[0].Nominees[0])
	}
}

func TestEditionSyntheticEdgeCase(t *testing.T) {
	// The 21st ceremony's special foreign film award has no catalog
	// category at all; its counterpart comes from the edge-case table.
	officials := []award.OfficialCategory{
		{Category: "SPECIAL FOREIGN LANGUAGE FILM AWARD", Nominees: []award.OfficialNominee{
			{
				Winner:    true,
				Films:     []string{"Monsieur Vincent"},
				Statement: "To Monsieur Vincent - voted by the Academy Board of Governors as the most outstanding foreign language film released in the United States during 1948.",
			},
		}},
	}

	got, _, err := Edition(officials, nil, 21, false)
	if err != nil {
		t.Fatalf("Edition: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 category, got %d", len(got))
	}
	n := got[0].Nominees[0]
	if n.Films[0].ID != "tt0039632" {
		t.Fatalf("unexpected film: %+v", n.Films)
	}
	if len(n.People) != 1 || n.People[0].Name != "France" || n.People[0].ID != "ccFR" {
		t.Fatalf("unexpected entity: %+v", n.People)
	}
	if n.Stat {
		t.Fatal("single-winner special award should not count toward stats")
	}
}

func TestEditionTwentyInjectsSpecialAward(t *testing.T) {
	got, _, err := Edition(nil, nil, 20, false)
	if err != nil {
		t.Fatalf("Edition: %v", err)
	}
	if len(got) != 1 || got[0].Category != "SPECIAL AWARD" {
		t.Fatalf("expected injected special award, got %+v", got)
	}
	n := got[0].Nominees[0]
	if n.Films[0].ID != "tt0038913" || n.People[0].ID != "ccIT" {
		t.Fatalf("unexpected injected nominee: %+v", n)
	}
	if n.Stat || !n.Official || !n.Winner {
		t.Fatalf("unexpected flags: %+v", n)
	}
}

func TestEditionCategoryCountMismatchFails(t *testing.T) {
	officials := []award.OfficialCategory{
		{Category: "FILM EDITING"},
		{Category: "CINEMATOGRAPHY"},
	}
	catalog := []award.IMDbCategory{
		{Category: "Best Film Editing"},
	}

	_, _, err := Edition(officials, catalog, 40, false)
	if err == nil {
		t.Fatal("expected error for category count mismatch")
	}
}

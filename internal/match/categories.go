package match

import (
	"garland/internal/award"
)

// specialAward20 is the one canonical record with no source row on either
// side: the twentieth ceremony's honorary foreign film award, absent from
// both the registry's category list and the catalog.
var specialAward20 = award.MatchedNominee{
	Edition:      20,
	CategoryName: "SPECIAL AWARD",
	Winner:       true,
	Statement:    "To Shoe-Shine - the high quality of this motion picture, brought to eloquent life in a country scarred by war, is proof to the world that the creative spirit can triumph over adversity.",
	Films: []award.MatchedFilm{
		{Title: "Shoe-Shine", ID: "tt0038913", Winner: true, Detail: []string{}},
	},
	People: []award.MatchedPerson{
		{Name: "Italy", ID: "ccIT", StatementInd: -1},
	},
	Official: true,
	Stat:     false,
}

type categoryPair struct {
	official award.OfficialCategory
	imdb     award.IMDbCategory
}

// Edition pairs an edition's official categories with its catalog categories
// and resolves every nominee, returning the canonical categories plus any
// inexact-name warnings. Static pairings and synthetic edge cases are taken
// first; whatever remains must pair one-to-one by fuzzy label similarity.
func Edition(
	officials []award.OfficialCategory,
	catalog []award.IMDbCategory,
	edition int,
	pending bool,
) ([]award.MatchedCategory, []Warning, error) {
	tables, err := LoadTables()
	if err != nil {
		return nil, nil, err
	}

	remaining := append([]award.IMDbCategory(nil), catalog...)
	var pairs []categoryPair
	var unpaired []award.OfficialCategory

	for _, oc := range officials {
		if i, ok := findPrematch(tables, oc.Category, remaining); ok {
			pairs = append(pairs, categoryPair{official: oc, imdb: remaining[i]})
			remaining = append(remaining[:i], remaining[i+1:]...)
			continue
		}
		if nominees, ok := tables.edgeCaseNominees(oc.Category, edition); ok {
			pairs = append(pairs, categoryPair{
				official: oc,
				imdb:     award.IMDbCategory{Category: oc.Category, Nominees: nominees},
			})
			continue
		}
		unpaired = append(unpaired, oc)
	}

	officialLabels := make([]string, len(unpaired))
	for i, c := range unpaired {
		officialLabels[i] = c.Category
	}
	catalogLabels := make([]string, len(remaining))
	for i, c := range remaining {
		catalogLabels[i] = c.Category
	}
	matches, err := matchStrings(officialLabels, catalogLabels, categoryScore)
	if err != nil {
		return nil, nil, err
	}
	for i, oc := range unpaired {
		pairs = append(pairs, categoryPair{official: oc, imdb: remaining[matches[i]]})
	}

	var results []award.MatchedCategory
	if edition == 20 {
		injected := specialAward20
		injected.Pending = pending
		results = append(results, award.MatchedCategory{
			Category: injected.CategoryName,
			Nominees: []award.MatchedNominee{injected},
		})
	}

	var warnings []Warning
	for _, p := range pairs {
		matched, w, err := matchCategory(p.official, p.imdb, edition, pending, tables)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, matched)
		warnings = append(warnings, w...)
	}
	return results, warnings, nil
}

// findPrematch returns the index of the first catalog category statically
// paired with the official label.
func findPrematch(tables *Tables, official string, catalog []award.IMDbCategory) (int, bool) {
	if len(tables.prematch.Categories[official]) == 0 {
		return 0, false
	}
	for i, c := range catalog {
		if tables.prematchedVariant(official, normalizeCategory(c.Category)) {
			return i, true
		}
	}
	return 0, false
}

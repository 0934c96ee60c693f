package match

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"garland/internal/award"
)

// Warning records an inexact person match: the statement spelling and the
// catalog credit it was paired with. Warnings are informational; the pairing
// itself stood.
type Warning struct {
	Official string
	IMDb     string
}

// statementCleanups are applied to every statement before parsing. Suffix
// commas would otherwise split a single name in two, and one statement is
// wrapped in stray quotes at the source.
var statementCleanups = []struct{ old, new string }{
	{", Jr.", " Jr."},
	{", Sr.", " Sr."},
	{", III", " III"},
	{
		"'Made by Fred Zinnemann with the cooperation of Paramount Pictures Corporation for the Los Angeles Orthopaedic Hospital'",
		"Made by Fred Zinnemann with the cooperation of Paramount Pictures Corporation for the Los Angeles Orthopaedic Hospital",
	},
}

// personCategories are the acting categories; their nominees are people
// rather than films.
var personCategories = map[string]struct{}{
	"actor":                        {},
	"actor in a leading role":      {},
	"actor in a supporting role":   {},
	"actress":                      {},
	"actress in a leading role":    {},
	"actress in a supporting role": {},
}

// resolveNominee pairs one official nominee with its catalog counterpart and
// produces the canonical record: films get catalog title ids, statement names
// get entity ids. Films resolve first, then people.
func resolveNominee(
	official award.OfficialNominee,
	imdb award.IMDbNominee,
	edition int,
	category string,
	competitive bool,
	pending bool,
	tables *Tables,
) (award.MatchedNominee, []Warning, error) {
	statement := official.Statement
	for _, c := range statementCleanups {
		statement = strings.ReplaceAll(statement, c.old, c.new)
	}

	// Stat marks nominations that count toward aggregate nomination totals:
	// official entries in competitive categories only. Honorary categories
	// have no losers, so their entries inflate nothing.
	isOfficial := !strings.Contains(official.Note, award.UnofficialNote)
	_, isPerson := personCategories[strings.ToLower(category)]

	result := award.MatchedNominee{
		Edition:      edition,
		CategoryName: category,
		Winner:       official.Winner,
		Statement:    statement,
		IsPerson:     isPerson,
		Note:         official.Note,
		Official:     isOfficial,
		Stat:         isOfficial && competitive,
		Pending:      pending,
	}

	var warnings []Warning

	if len(official.Films) > 0 {
		imdbTitles := make([]string, len(imdb.Films))
		for i, t := range imdb.Films {
			imdbTitles[i] = t.Title
		}
		matches, err := matchStrings(official.Films, imdbTitles, ratioFolded)
		if err != nil {
			return result, nil, fmt.Errorf("category %q films: %w", category, err)
		}

		for i, title := range official.Films {
			winner := official.Winner
			if edition == 3 && (category == "ACTOR" || category == "ACTRESS") && official.Winner {
				// The third ceremony credited acting winners with several
				// films; only the first is the winning performance.
				winner = i == 0
			}

			// One film takes every detail line. Several films take one detail
			// line each, so the counts must agree.
			detail := official.Detail
			if len(official.Films) > 1 && len(official.Detail) > 0 {
				if len(official.Films) != len(official.Detail) {
					return result, nil, fmt.Errorf(
						"%w: nominee has %d films but %d details: %v vs %v",
						ErrAlignment, len(official.Films), len(official.Detail),
						official.Films, official.Detail)
				}
				detail = official.Detail[i : i+1]
			}

			result.Films = append(result.Films, award.MatchedFilm{
				Title:  title,
				ID:     imdb.Films[matches[i]].ID,
				Winner: winner,
				Detail: detail,
			})
		}
	}

	names := parseStatement(statement, tables)

	people := append([]award.PersonRef(nil), imdb.People...)

	// The catalog rarely credits studios; synthesize them from the statement
	// when the credit list runs short.
	for _, name := range names {
		if id, ok := tables.Studios[name]; ok && len(people) < len(names) {
			people = append(people, award.PersonRef{Name: name, ID: id})
		}
	}

	// This honor was shared between two countries but credited to one.
	if strings.HasPrefix(statement, "To The Walls of Malapaga") {
		names = append(names, "Italy")
	}

	people = dedupPeople(people)

	if len(names) > 0 || len(people) > 0 {
		credits := make([]string, len(people))
		for i, p := range people {
			credits[i] = tables.nickname(p.Name)
		}
		matches, err := matchStrings(names, credits, ratioFolded)
		if err != nil {
			return result, nil, fmt.Errorf("category %q people: %w", category, err)
		}

		for i, name := range names {
			paired := people[matches[i]]
			if name != paired.Name {
				warnings = append(warnings, Warning{Official: name, IMDb: paired.Name})
			}

			finalName := name
			if mapped, ok := tables.StatementEntities[name]; ok {
				finalName = mapped
			}
			id := paired.ID
			if code, ok := tables.CountryCode(finalName); ok {
				id = code
			}
			if id == "" {
				return result, nil, fmt.Errorf("%w: empty id for %q in category %q",
					ErrResolution, finalName, category)
			}

			result.People = append(result.People, award.MatchedPerson{
				Name:         finalName,
				ID:           id,
				StatementInd: runeIndex(statement, finalName),
			})
		}
	}

	return result, warnings, nil
}

// dedupPeople drops repeated credits by id, keeping the first position but
// the last value. Credits without an id are kept positionally.
func dedupPeople(people []award.PersonRef) []award.PersonRef {
	type slot struct {
		pos int
		ref award.PersonRef
	}
	slots := make(map[string]*slot, len(people))
	var order []string
	for i, p := range people {
		key := p.ID
		if key == "" {
			key = fmt.Sprintf("#%d", i)
		}
		if s, ok := slots[key]; ok {
			s.ref = p
			continue
		}
		slots[key] = &slot{pos: i, ref: p}
		order = append(order, key)
	}
	out := make([]award.PersonRef, 0, len(order))
	for _, key := range order {
		out = append(out, slots[key].ref)
	}
	return out
}

// runeIndex is the rune offset of the first occurrence of sub in s, or -1.
func runeIndex(s, sub string) int {
	ind := strings.Index(s, sub)
	if ind < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:ind])
}

package match

import (
	"fmt"
	"strings"

	"garland/internal/award"
)

// matchCategory pairs the nominees of one official category with those of its
// catalog counterpart and resolves each pair. Winners are paired first; a
// category can carry several winners, and the earliest editions listed
// write-in losers the catalog never saw.
func matchCategory(
	official award.OfficialCategory,
	imdb award.IMDbCategory,
	edition int,
	pending bool,
	tables *Tables,
) (award.MatchedCategory, []Warning, error) {
	var officialWinners, officialLosers []award.OfficialNominee
	for _, n := range official.Nominees {
		if n.Winner {
			officialWinners = append(officialWinners, n)
		} else {
			officialLosers = append(officialLosers, n)
		}
	}

	var imdbWinners, imdbLosers []award.IMDbNominee
	for _, n := range imdb.Nominees {
		if n.Winner {
			imdbWinners = append(imdbWinners, n)
		} else {
			imdbLosers = append(imdbLosers, n)
		}
	}

	competitive := len(officialLosers) > 0
	result := award.MatchedCategory{Category: official.Category}
	var warnings []Warning

	rounds := []struct {
		official []award.OfficialNominee
		imdb     []award.IMDbNominee
	}{
		{officialWinners, imdbWinners},
		{officialLosers, imdbLosers},
	}

	for _, round := range rounds {
		if len(round.official) == 0 || len(round.imdb) == 0 {
			continue
		}

		// Score films and statements separately, then sum. A nominee must
		// look right on both axes to claim a pairing.
		song := strings.Contains(official.Category, "Song")

		officialFilms := make([]string, len(round.official))
		statements := make([]string, len(round.official))
		for i, n := range round.official {
			officialFilms[i] = nomineeFilmKey(n, song)
			statements[i] = n.Statement
		}

		imdbFilms := make([]string, len(round.imdb))
		credits := make([]string, len(round.imdb))
		for i, n := range round.imdb {
			imdbFilms[i] = catalogFilmKey(n, song)
			credits[i] = catalogCreditKey(n, tables)
		}

		if len(round.official) != len(round.imdb) {
			return result, nil, fmt.Errorf(
				"%w: category %q has %d official nominees but %d catalog nominees",
				ErrAlignment, official.Category, len(round.official), len(round.imdb))
		}

		films := scoreMatrix(officialFilms, imdbFilms, ratioFolded)
		people := scoreMatrix(statements, credits, ratioFolded)
		combined := make([][]float64, len(films))
		for i := range films {
			row := make([]float64, len(films[i]))
			for j := range row {
				row[j] = films[i][j] + people[i][j]
			}
			combined[i] = row
		}

		left := make([]string, len(round.official))
		for i := range left {
			left[i] = officialFilms[i] + " / " + statements[i]
		}
		right := make([]string, len(round.imdb))
		for i := range right {
			right[i] = imdbFilms[i] + " / " + credits[i]
		}

		matches, err := FromScores(left, right, combined)
		if err != nil {
			return result, nil, fmt.Errorf("category %q: %w", official.Category, err)
		}

		for i := range round.official {
			nominee, w, err := resolveNominee(
				round.official[i], round.imdb[matches[i]],
				edition, official.Category, competitive, pending, tables)
			if err != nil {
				return result, nil, err
			}
			result.Nominees = append(result.Nominees, nominee)
			warnings = append(warnings, w...)
		}

		// A pending ceremony has winners on neither side yet; the loser
		// round above covered everything.
		if len(officialLosers) == 0 || len(imdbLosers) == 0 {
			return result, warnings, nil
		}
	}

	return result, warnings, nil
}

// nomineeFilmKey joins an official nominee's films into one comparison
// string. Song categories append the song titles: several songs from one
// film can compete in the same year.
func nomineeFilmKey(n award.OfficialNominee, song bool) string {
	key := strings.Join(n.Films, ", ")
	if song {
		key += " | " + strings.Join(n.Detail, ", ")
	}
	return key
}

func catalogFilmKey(n award.IMDbNominee, song bool) string {
	titles := make([]string, len(n.Films))
	for i, t := range n.Films {
		titles[i] = t.Title
	}
	key := strings.Join(titles, ", ")
	if song {
		key += " | " + n.Detail
	}
	return key
}

// catalogCreditKey joins a catalog nominee's credited names, spelled the way
// the official statements spell them.
func catalogCreditKey(n award.IMDbNominee, tables *Tables) string {
	names := make([]string, len(n.People))
	for i, p := range n.People {
		names[i] = tables.nickname(p.Name)
	}
	return strings.Join(names, ", ")
}

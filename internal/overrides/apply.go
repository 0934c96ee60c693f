package overrides

import (
	"fmt"
	"slices"

	"garland/internal/award"
)

// ApplyOfficial patches one edition's parsed registry categories in place.
// Stage order is fixed: replacements, new titles, removals, merges.
func (c *Catalog) ApplyOfficial(edition int, categories []award.OfficialCategory) error {
	for _, r := range c.Official.Replacements {
		if r.Edition != edition {
			continue
		}
		if err := checkOfficialIndex(categories, r.Category, r.Nominee); err != nil {
			return fmt.Errorf("official replacement: %w", err)
		}
		categories[r.Category].Nominees[r.Nominee] = r.With.nominee()
	}

	for _, nt := range c.Official.NewTitles {
		if nt.Edition != edition {
			continue
		}
		if err := checkOfficialIndex(categories, nt.Category, nt.Nominee); err != nil {
			return fmt.Errorf("official title override: %w", err)
		}
		categories[nt.Category].Nominees[nt.Nominee].Films = nt.Titles
	}

	for _, rm := range c.Official.Removals {
		if rm.Edition != edition {
			continue
		}
		if rm.Category >= len(categories) {
			return fmt.Errorf("official removal: category %d out of range", rm.Category)
		}
		kept := categories[rm.Category].Nominees[:0]
		for _, n := range categories[rm.Category].Nominees {
			if slices.Equal(rm.Films, n.Films) && rm.Statement == n.Statement {
				continue
			}
			kept = append(kept, n)
		}
		categories[rm.Category].Nominees = kept
	}

	for _, m := range c.Official.Merges {
		if m.Edition != edition {
			continue
		}
		if m.Category >= len(categories) {
			return fmt.Errorf("official merge: category %d out of range", m.Category)
		}
		merged, err := mergeGroups(categories[m.Category].Nominees, m.Groups, mergeOfficialNominees)
		if err != nil {
			return fmt.Errorf("official merge: %w", err)
		}
		categories[m.Category].Nominees = merged
	}

	return nil
}

// ApplyIMDb patches one edition's parsed catalog categories in place. Stage
// order is fixed: new titles, credit removals, credit additions, nominee
// additions, nominee removals, merges.
func (c *Catalog) ApplyIMDb(edition int, categories []award.IMDbCategory) error {
	for _, nt := range c.IMDb.NewTitles {
		if nt.Edition != edition {
			continue
		}
		if err := checkIMDbIndex(categories, nt.Category, nt.Nominee); err != nil {
			return fmt.Errorf("catalog title override: %w", err)
		}
		categories[nt.Category].Nominees[nt.Nominee].Films = nt.Titles
	}

	for _, pr := range c.IMDb.PersonRemovals {
		if pr.Edition != edition {
			continue
		}
		if err := checkIMDbIndex(categories, pr.Category, pr.Nominee); err != nil {
			return fmt.Errorf("credit removal: %w", err)
		}
		people := categories[pr.Category].Nominees[pr.Nominee].People
		ind := slices.Index(people, award.PersonRef{Name: pr.Name, ID: pr.ID})
		if ind < 0 {
			// The credit the override targets no longer exists; the source
			// shifted under the catalog and the override needs review.
			return fmt.Errorf("credit removal: %q (%s) not present on edition %d category %d nominee %d",
				pr.Name, pr.ID, edition, pr.Category, pr.Nominee)
		}
		categories[pr.Category].Nominees[pr.Nominee].People = slices.Delete(people, ind, ind+1)
	}

	for _, pa := range c.IMDb.PersonAdditions {
		if pa.Edition != edition {
			continue
		}
		if err := checkIMDbIndex(categories, pa.Category, pa.Nominee); err != nil {
			return fmt.Errorf("credit addition: %w", err)
		}
		nominee := &categories[pa.Category].Nominees[pa.Nominee]
		if slices.ContainsFunc(nominee.People, func(p award.PersonRef) bool { return p.ID == pa.ID }) {
			continue
		}
		nominee.People = append(nominee.People, award.PersonRef{Name: pa.Name, ID: pa.ID})
	}

	for _, na := range c.IMDb.NomineeAdditions {
		if na.Edition != edition {
			continue
		}
		if na.Category >= len(categories) {
			return fmt.Errorf("nominee addition: category %d out of range", na.Category)
		}
		categories[na.Category].Nominees = append(categories[na.Category].Nominees, na.Nominees...)
	}

	for _, nr := range c.IMDb.NomineeRemovals {
		if nr.Edition != edition {
			continue
		}
		if nr.Category >= len(categories) {
			return fmt.Errorf("nominee removal: category %d out of range", nr.Category)
		}
		kept := categories[nr.Category].Nominees[:0]
		for _, n := range categories[nr.Category].Nominees {
			if slices.Equal(nr.Films, n.Films) && slices.Equal(nr.People, n.People) {
				continue
			}
			kept = append(kept, n)
		}
		categories[nr.Category].Nominees = kept
	}

	for _, m := range c.IMDb.Merges {
		if m.Edition != edition {
			continue
		}
		if m.Category >= len(categories) {
			return fmt.Errorf("catalog merge: category %d out of range", m.Category)
		}
		merged, err := mergeGroups(categories[m.Category].Nominees, m.Groups, mergeIMDbNominees)
		if err != nil {
			return fmt.Errorf("catalog merge: %w", err)
		}
		categories[m.Category].Nominees = merged
	}

	return nil
}

// mergeGroups folds each index group into one nominee, appends the merged
// records, and drops the group members from their original positions.
func mergeGroups[T any](nominees []T, groups [][]int, merge func(T, T) (T, error)) ([]T, error) {
	mergedInds := make(map[int]struct{})
	out := slices.Clone(nominees)
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		for _, ind := range group {
			if ind >= len(nominees) {
				return nil, fmt.Errorf("nominee %d out of range", ind)
			}
			mergedInds[ind] = struct{}{}
		}
		acc := nominees[group[0]]
		for _, ind := range group[1:] {
			var err error
			acc, err = merge(acc, nominees[ind])
			if err != nil {
				return nil, err
			}
		}
		out = append(out, acc)
	}
	kept := out[:0]
	for i, n := range out {
		if _, merged := mergedInds[i]; merged && i < len(nominees) {
			continue
		}
		kept = append(kept, n)
	}
	return kept, nil
}

// mergeOfficialNominees combines two registry rows for one nomination. Film
// lists concatenate when they differ; statements concatenate with "and" when
// they differ; details always concatenate.
func mergeOfficialNominees(a, b award.OfficialNominee) (award.OfficialNominee, error) {
	films := a.Films
	if !slices.Equal(a.Films, b.Films) {
		films = append(slices.Clone(a.Films), b.Films...)
	}
	statement := a.Statement
	if a.Statement != b.Statement {
		statement = a.Statement + " and " + b.Statement
	}
	return award.OfficialNominee{
		Winner:    a.Winner,
		Films:     films,
		Statement: statement,
		Detail:    append(slices.Clone(a.Detail), b.Detail...),
		Note:      a.Note,
	}, nil
}

// mergeIMDbNominees combines two catalog rows for one nomination. The rows
// must credit the same people; only the film lists concatenate.
func mergeIMDbNominees(a, b award.IMDbNominee) (award.IMDbNominee, error) {
	if !slices.Equal(a.People, b.People) {
		return award.IMDbNominee{}, fmt.Errorf("merge credits differ: %v vs %v", a.People, b.People)
	}
	return award.IMDbNominee{
		Winner: a.Winner,
		Films:  append(slices.Clone(a.Films), b.Films...),
		People: a.People,
		Detail: a.Detail,
	}, nil
}

func checkOfficialIndex(categories []award.OfficialCategory, category, nominee int) error {
	if category >= len(categories) {
		return fmt.Errorf("category %d out of range (%d categories)", category, len(categories))
	}
	if nominee >= len(categories[category].Nominees) {
		return fmt.Errorf("nominee %d out of range in category %d (%d nominees)",
			nominee, category, len(categories[category].Nominees))
	}
	return nil
}

func checkIMDbIndex(categories []award.IMDbCategory, category, nominee int) error {
	if category >= len(categories) {
		return fmt.Errorf("category %d out of range (%d categories)", category, len(categories))
	}
	if nominee >= len(categories[category].Nominees) {
		return fmt.Errorf("nominee %d out of range in category %d (%d nominees)",
			nominee, category, len(categories[category].Nominees))
	}
	return nil
}

package overrides

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"garland/internal/award"
)

//go:embed overrides.json
var catalogJSON []byte

// Catalog is the full set of source corrections, keyed by edition and
// position within the parsed category lists. Positions refer to the lists as
// parsed, before any stage has run, except where a stage's own ordering
// says otherwise: stages apply in declaration order and later stages see the
// effect of earlier ones.
type Catalog struct {
	Official OfficialSet `json:"official"`
	IMDb     IMDbSet     `json:"imdb"`
}

// OfficialSet corrects the official registry side.
type OfficialSet struct {
	// Replacements swap out a nominee parsed from broken markup.
	Replacements []OfficialReplacement `json:"replacements"`
	// NewTitles overwrite a nominee's film list, usually to the release
	// title the catalog indexes under.
	NewTitles []OfficialNewTitles `json:"new_titles"`
	// Removals drop registry rows with no catalog counterpart.
	Removals []OfficialRemoval `json:"removals"`
	// Merges recombine nominations the earliest ceremonies listed across
	// several rows. Never combined with removals on the same category.
	Merges []Merge `json:"merges"`
}

// IMDbSet corrects the catalog side.
type IMDbSet struct {
	NewTitles        []IMDbNewTitles   `json:"new_titles"`
	PersonRemovals   []PersonPatch     `json:"person_removals"`
	PersonAdditions  []PersonPatch     `json:"person_additions"`
	NomineeAdditions []NomineeAddition `json:"nominee_additions"`
	NomineeRemovals  []NomineeRemoval  `json:"nominee_removals"`
	Merges           []Merge           `json:"merges"`
}

// OfficialReplacement substitutes an entire nominee record.
type OfficialReplacement struct {
	Edition  int                 `json:"edition"`
	Category int                 `json:"category"`
	Nominee  int                 `json:"nominee"`
	With     officialNomineeSpec `json:"with"`
}

type officialNomineeSpec struct {
	Winner    bool     `json:"winner"`
	Films     []string `json:"films"`
	Statement string   `json:"statement"`
	Detail    []string `json:"detail"`
	Note      string   `json:"note"`
}

func (s officialNomineeSpec) nominee() award.OfficialNominee {
	return award.OfficialNominee{
		Winner:    s.Winner,
		Films:     s.Films,
		Statement: s.Statement,
		Detail:    s.Detail,
		Note:      s.Note,
	}
}

// OfficialNewTitles overwrites a registry nominee's film list.
type OfficialNewTitles struct {
	Edition  int      `json:"edition"`
	Category int      `json:"category"`
	Nominee  int      `json:"nominee"`
	Titles   []string `json:"titles"`
}

// OfficialRemoval identifies a registry nominee by value rather than index:
// every nominee in the category whose films and statement both match is
// dropped.
type OfficialRemoval struct {
	Edition   int      `json:"edition"`
	Category  int      `json:"category"`
	Films     []string `json:"films"`
	Statement string   `json:"statement"`
}

// IMDbNewTitles overwrites a catalog nominee's film list.
type IMDbNewTitles struct {
	Edition  int              `json:"edition"`
	Category int              `json:"category"`
	Nominee  int              `json:"nominee"`
	Titles   []award.TitleRef `json:"titles"`
}

// PersonPatch adds or removes one credit on a catalog nominee.
type PersonPatch struct {
	Edition  int    `json:"edition"`
	Category int    `json:"category"`
	Nominee  int    `json:"nominee"`
	Name     string `json:"name"`
	ID       string `json:"id"`
}

// NomineeAddition appends nominees the catalog never listed.
type NomineeAddition struct {
	Edition  int                 `json:"edition"`
	Category int                 `json:"category"`
	Nominees []award.IMDbNominee `json:"nominees"`
}

// NomineeRemoval identifies a catalog nominee by value: every nominee in the
// category whose films and people both match is dropped.
type NomineeRemoval struct {
	Edition  int               `json:"edition"`
	Category int               `json:"category"`
	Films    []award.TitleRef  `json:"films"`
	People   []award.PersonRef `json:"people"`
}

// Merge recombines groups of nominees within one category. Each group's
// members merge into one record appended after the survivors, first member's
// fields winning where the sides agree.
type Merge struct {
	Edition  int     `json:"edition"`
	Category int     `json:"category"`
	Groups   [][]int `json:"groups"`
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses the embedded correction catalog. The result is cached and
// shared; callers must not mutate it.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		c := &Catalog{}
		if err := json.Unmarshal(catalogJSON, c); err != nil {
			loadErr = fmt.Errorf("parse override catalog: %w", err)
			return
		}
		loaded = c
	})
	return loaded, loadErr
}

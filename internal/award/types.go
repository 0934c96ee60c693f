package award

import "time"

// UnofficialNote is the sentinel the official registry embeds in a nominee's
// public note when the entry is a registry artifact rather than a true
// nomination (e.g. write-in candidates from the earliest ceremonies).
const UnofficialNote = "THIS IS NOT AN OFFICIAL NOMINATION"

// Edition identifies one occurrence of the ceremony.
type Edition struct {
	Award        string
	Iteration    int
	OfficialYear string // listed year, ex. "1927/28"
	CeremonyDate time.Time
}

// OfficialNominee is one nomination entry as listed by the official registry.
// Films and Detail are positionally aligned when a nominee spans multiple
// films.
type OfficialNominee struct {
	Winner    bool
	Films     []string
	Statement string // free-text nomination statement naming people/entities
	Detail    []string
	Note      string
}

// OfficialCategory is one category as labeled by the official registry for a
// single edition.
type OfficialCategory struct {
	Category string
	Nominees []OfficialNominee
}

// TitleRef is a film title with its external catalog identifier.
type TitleRef struct {
	Title string `json:"title"`
	ID    string `json:"id"`
}

// PersonRef is a person, company, or country with its external catalog
// identifier. Country entries carry an empty ID until resolution.
type PersonRef struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// IMDbNominee is one nomination entry from the IMDb event catalog.
type IMDbNominee struct {
	Winner bool        `json:"winner"`
	Films  []TitleRef  `json:"films"`
	People []PersonRef `json:"people"`
	Detail string      `json:"detail"` // song title, or country for foreign film
}

// IMDbCategory is one category from the IMDb event catalog.
type IMDbCategory struct {
	Category string
	Nominees []IMDbNominee
}

// MatchedFilm is one resolved film within a canonical nomination.
type MatchedFilm struct {
	Title  string
	ID     string
	Winner bool
	Detail []string // song titles or dance numbers associated with this film
}

// MatchedPerson is one resolved entity within a canonical nomination.
// StatementInd is the first-occurrence offset of Name within the cleaned
// statement, or -1 when the name does not appear literally.
type MatchedPerson struct {
	Name         string
	ID           string
	StatementInd int
	Role         string
}

// MatchedNominee is the canonical, entity-resolved nomination record.
type MatchedNominee struct {
	Edition      int
	CategoryName string
	Winner       bool
	Statement    string
	Films        []MatchedFilm
	People       []MatchedPerson
	IsPerson     bool
	Note         string
	Official     bool
	Stat         bool
	Pending      bool
}

// MatchedCategory groups the canonical nominees of one category for one
// edition.
type MatchedCategory struct {
	Category string
	Nominees []MatchedNominee
}

// EntityKind classifies an external entity identifier by its prefix.
type EntityKind string

const (
	EntityPerson  EntityKind = "person"
	EntityCompany EntityKind = "company"
	EntityCountry EntityKind = "country"
)

// KindOfID derives the entity kind from an external identifier prefix.
// An unrecognized prefix returns false; resolved records must never carry one.
func KindOfID(id string) (EntityKind, bool) {
	switch {
	case len(id) > 2 && id[:2] == "nm":
		return EntityPerson, true
	case len(id) > 2 && id[:2] == "co":
		return EntityCompany, true
	case len(id) > 2 && id[:2] == "cc":
		return EntityCountry, true
	default:
		return "", false
	}
}

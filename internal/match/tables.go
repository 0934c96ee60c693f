package match

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"garland/internal/award"
)

//go:embed tables.json
var tablesJSON []byte

//go:embed prematch.json
var prematchJSON []byte

//go:embed countries.json
var countriesJSON []byte

// Tables holds the read-only lookup data the matcher consults: credited
// nickname substitutions, studio identifier assignments, statement fragments
// that must never be split, whole-statement entity mappings, and country
// codes. Loaded once and shared by reference; never mutated after load.
type Tables struct {
	// Nicknames maps an IMDb-credited stage name to the legal name used in
	// official statements.
	Nicknames map[string]string `json:"nicknames"`
	// Studios maps an officially-listed studio or organization name to its
	// external company identifier.
	Studios map[string]string `json:"studios"`
	// SplitExceptions are phrases kept whole during statement parsing.
	SplitExceptions []string `json:"split_exceptions"`
	// StatementEntities maps an entire nomination statement (or candidate
	// fragment) to the entity it actually credits.
	StatementEntities map[string]string `json:"statement_entities"`

	countries map[string]string
	prematch  prematchTable
}

type prematchTable struct {
	// Categories maps an official category label to the normalized IMDb
	// category names it pairs with directly, bypassing fuzzy matching.
	Categories map[string][]string `json:"categories"`
	// EdgeCases supply synthetic IMDb categories for historical awards the
	// catalog never listed, keyed by official label and edition.
	EdgeCases []edgeCase `json:"edge_cases"`
}

type edgeCase struct {
	Official string              `json:"official"`
	Edition  int                 `json:"edition"`
	Nominees []award.IMDbNominee `json:"nominees"`
}

var (
	tablesOnce sync.Once
	tablesVal  *Tables
	tablesErr  error
)

// LoadTables parses the embedded lookup tables. The result is cached; all
// callers share one immutable instance.
func LoadTables() (*Tables, error) {
	tablesOnce.Do(func() {
		t := &Tables{}
		if err := json.Unmarshal(tablesJSON, t); err != nil {
			tablesErr = fmt.Errorf("parse lookup tables: %w", err)
			return
		}
		if err := json.Unmarshal(countriesJSON, &t.countries); err != nil {
			tablesErr = fmt.Errorf("parse country codes: %w", err)
			return
		}
		if err := json.Unmarshal(prematchJSON, &t.prematch); err != nil {
			tablesErr = fmt.Errorf("parse category prematch table: %w", err)
			return
		}
		// Longest exception first so nested fragments extract outside-in.
		sort.Slice(t.SplitExceptions, func(i, j int) bool {
			return len(t.SplitExceptions[i]) > len(t.SplitExceptions[j])
		})
		tablesVal = t
	})
	return tablesVal, tablesErr
}

// CountryCode returns the external identifier for a country name.
func (t *Tables) CountryCode(name string) (string, bool) {
	id, ok := t.countries[name]
	return id, ok
}

// nickname returns the official-statement spelling for an IMDb-credited name.
func (t *Tables) nickname(name string) string {
	if legal, ok := t.Nicknames[name]; ok {
		return legal
	}
	return name
}

func (t *Tables) edgeCaseNominees(official string, edition int) ([]award.IMDbNominee, bool) {
	for _, ec := range t.prematch.EdgeCases {
		if ec.Official == official && ec.Edition == edition {
			return ec.Nominees, true
		}
	}
	return nil, false
}

func (t *Tables) prematchedVariant(official, normalizedIMDb string) bool {
	for _, variant := range t.prematch.Categories[official] {
		if variant == normalizedIMDb {
			return true
		}
	}
	return false
}

// normalizeCategory reduces a category label to the comparison form shared by
// the prematch table and the fuzzy pass.
func normalizeCategory(label string) string {
	lowered := strings.ToLower(label)
	lowered = strings.ReplaceAll(lowered, "(", "")
	lowered = strings.ReplaceAll(lowered, ")", "")
	lowered = strings.ReplaceAll(lowered, "-", " ")
	return strings.ReplaceAll(lowered, ",", "")
}

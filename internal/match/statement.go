package match

import (
	"regexp"
	"strings"
)

// parentheticalAside matches a space followed by a parenthesized aside.
var parentheticalAside = regexp.MustCompile(`\s\([^)]*\)`)

// rolePrefixes are label fragments stripped from candidates before filtering.
var rolePrefixes = []string{
	"Production Design: ",
	"Set Decoration: ",
	"Screenplay - ",
	"Art Direction: ",
	"Musical Settings: ",
	"Interior Decoration: ",
	"in collaboration with ",
	"In collaboration with ",
}

// roleNoise lists non-name role tokens dropped even after splitting.
var roleNoise = map[string]struct{}{
	"head of department":    {},
	"musical director":      {},
	"Producer":              {},
	"Producers":             {},
	"Sound Director":        {},
	"Co-Producer":           {},
	"Co-Producers":          {},
	"Executive Producer":    {},
	"Producer.":             {},
	"Associate Producer":    {},
	"Principal Productions": {},
}

// pseudonymCredit is the one credited alias that expands to two real names:
// the shared editing pseudonym of Joel and Ethan Coen.
const pseudonymCredit = "Roderick Jaynes"

// parseStatement extracts candidate entity names from an official nomination
// statement. Exception phrases are pulled out whole first, parenthetical
// asides dropped, then the remainder is decomposed along role-group and list
// separators. The result is deduplicated and may legitimately be empty when
// the statement carried only role noise.
func parseStatement(statement string, tables *Tables) []string {
	var names []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, exception := range tables.SplitExceptions {
		if strings.Contains(statement, exception) {
			add(exception)
			statement = strings.ReplaceAll(statement, exception, "")
		}
	}

	stripped := parentheticalAside.ReplaceAllString(statement, "")
	for _, groupAnd := range strings.Split(stripped, "; and ") {
		for _, group := range strings.Split(groupAnd, "; ") {
			// Keep only the named parties after a trailing " by " marker;
			// everything before it describes the role, not the people.
			if ind := strings.Index(group, " by "); ind != -1 {
				group = group[ind+4:]
			}
			for _, sub := range strings.Split(group, ",") {
				sub = strings.TrimSpace(sub)
				for _, subAnd := range strings.Split(sub, " and ") {
					for _, candidate := range strings.Split(subAnd, " & ") {
						for _, prefix := range rolePrefixes {
							candidate = strings.ReplaceAll(candidate, prefix, "")
						}
						if candidate != "" && candidate[0] == '(' {
							candidate = candidate[1:]
						}
						if candidate != "" && candidate[len(candidate)-1] == ')' {
							candidate = candidate[:len(candidate)-1]
						}
						if candidate == pseudonymCredit {
							add("Joel Coen")
							add("Ethan Coen")
							continue
						}
						if candidate == "" {
							continue
						}
						if _, noise := roleNoise[candidate]; noise {
							continue
						}
						if strings.Contains(candidate, "Music Department") {
							continue
						}
						add(candidate)
					}
				}
			}
		}
	}
	return names
}

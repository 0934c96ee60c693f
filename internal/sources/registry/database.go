package registry

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"garland/internal/award"
)

// excludedCategoryIDs are honorary, scientific, and technical categories the
// database lists alongside the competitive ones. They have no counterpart in
// the catalog and are skipped wholesale.
var excludedCategoryIDs = map[int]struct{}{
	99:  {}, // humanitarian
	100: {}, // special
	101: {}, // honorary
	102: {}, // gordon e. sawyer
	103: {}, // sci-tech class i
	104: {}, // sci-tech class ii
	105: {}, // sci-tech class iii
	106: {}, // sci-tech award of merit
	107: {}, // award of merit
	108: {}, // sci-tech sci-eng
	109: {}, // sci-eng
	110: {}, // sci-tech tech achievement
	111: {}, // technical achievement
	112: {}, // award of commendation
	113: {}, // john a. bonner
	114: {}, // special achievement award
	119: {}, // irving g. thalberg
	121: {}, // medal of commendation
	125: {}, // sci-tech special
}

// LoadDatabase reads the saved awards database export and parses one
// edition's categories out of it.
func LoadDatabase(path string, edition int) ([]award.OfficialCategory, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open awards database export: %w", err)
	}
	defer fd.Close()
	return ParseDatabase(fd, edition)
}

// ParseDatabase extracts one edition's categories from the awards database
// HTML. Editions appear in ceremony order, one result block each.
func ParseDatabase(r io.Reader, edition int) ([]award.OfficialCategory, error) {
	if edition < 1 {
		return nil, fmt.Errorf("edition must be positive, got %d", edition)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse awards database export: %w", err)
	}

	ceremony := doc.Find("div.awards-result-chron").Eq(edition - 1)
	if ceremony.Length() == 0 {
		return nil, fmt.Errorf("edition %d not present in awards database export", edition)
	}

	var categories []award.OfficialCategory
	var parseErr error

	ceremony.ChildrenFiltered("div.subgroup-awardcategory-chron").EachWithBreak(func(_ int, categoryDiv *goquery.Selection) bool {
		anchor := categoryDiv.Find("div.result-subgroup-title a").First()
		if anchor.Length() == 0 {
			parseErr = fmt.Errorf("edition %d: category block without title link", edition)
			return false
		}
		href, _ := anchor.Attr("href")
		id, err := categoryID(href)
		if err != nil {
			parseErr = fmt.Errorf("edition %d: %w", edition, err)
			return false
		}
		if _, excluded := excludedCategoryIDs[id]; excluded {
			return true
		}

		category := award.OfficialCategory{Category: strings.TrimSpace(anchor.Text())}
		categoryDiv.Find("div.result-details").Each(func(_ int, nomineeDiv *goquery.Selection) {
			category.Nominees = append(category.Nominees, parseNominee(nomineeDiv))
		})
		categories = append(categories, category)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("edition %d has no categories in awards database export", edition)
	}
	return categories, nil
}

func parseNominee(nomineeDiv *goquery.Selection) award.OfficialNominee {
	// Winners carry a marker span directly under the details block.
	winner := nomineeDiv.ChildrenFiltered("span").Length() > 0

	var films []string
	nomineeDiv.Find("div.awards-result-film-title").Each(func(_ int, s *goquery.Selection) {
		films = append(films, strings.TrimSuffix(s.Text(), ";"))
	})

	statement := nomineeDiv.Find("div.awards-result-nominationstatement").First().Text()
	citation := nomineeDiv.Find("div.awards-result-citation").First().Text()
	note := nomineeDiv.Find("div.awards-result-publicnote").First().Text()

	// Characters render as -- "Name"; songs and dance numbers in quotes.
	var characters []string
	nomineeDiv.Find("div.awards-result-character-name").Each(func(_ int, s *goquery.Selection) {
		characters = append(characters, trimCharacter(s.Text()))
	})
	var songs []string
	nomineeDiv.Find("div.awards-result-songtitle").Each(func(_ int, s *goquery.Selection) {
		songs = append(songs, trimQuoted(s.Text()))
	})
	var dances []string
	nomineeDiv.Find("div.awards-result-dancenumber").Each(func(_ int, s *goquery.Selection) {
		dances = append(dances, trimQuoted(s.Text()))
	})

	if statement == "" {
		statement = citation
	}
	detail := characters
	if len(detail) == 0 {
		detail = songs
	}
	if len(detail) == 0 {
		detail = dances
	}

	return award.OfficialNominee{
		Winner:    winner,
		Films:     films,
		Statement: statement,
		Detail:    detail,
		Note:      note,
	}
}

// categoryID pulls the numeric category id out of a result link. The id sits
// at a fixed offset in the search URL, terminated by the next parameter.
func categoryID(href string) (int, error) {
	if len(href) <= 36 {
		return 0, fmt.Errorf("malformed category link %q", href)
	}
	rest := href[36:]
	amp := strings.Index(rest, "&")
	if amp < 0 {
		return 0, fmt.Errorf("malformed category link %q", href)
	}
	id, err := strconv.Atoi(rest[:amp])
	if err != nil {
		return 0, fmt.Errorf("malformed category id in link %q: %w", href, err)
	}
	return id, nil
}

func trimCharacter(s string) string {
	runes := []rune(s)
	if len(runes) < 4 {
		return s
	}
	if runes[len(runes)-1] == ';' {
		return string(runes[2 : len(runes)-3])
	}
	return string(runes[2 : len(runes)-2])
}

func trimQuoted(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	return string(runes[1 : len(runes)-1])
}

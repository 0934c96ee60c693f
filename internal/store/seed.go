package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"garland/internal/award"
)

//go:embed categories.json
var categoriesJSON []byte

// officialPageConversions maps ceremony page category labels to the official
// registry spelling used by the category hierarchy.
var officialPageConversions = map[string]string{
	"Animated Short Film":    "short film (animated)",
	"Live Action Short Film": "short film (live action)",
}

// CategoryNameKey normalizes a category label for hierarchy lookups,
// applying the ceremony page spelling conversions before lowercasing.
func CategoryNameKey(label string) string {
	if converted, ok := officialPageConversions[label]; ok {
		return strings.ToLower(converted)
	}
	return strings.ToLower(label)
}

type categoryGroupSeed struct {
	Group      string `json:"group"`
	Categories []struct {
		Name  string `json:"name"`
		Names []struct {
			Official string `json:"official"`
			Editions string `json:"editions"`
			Common   string `json:"common"`
		} `json:"names"`
	} `json:"categories"`
}

// parseEditionRanges expands a range expression such as "1-2, 4-present" into
// the inclusive list of editions it covers.
func parseEditionRanges(expr string, current int) ([]int, error) {
	var editions []int
	for _, group := range strings.Split(expr, ", ") {
		bounds := strings.Split(group, "-")
		switch len(bounds) {
		case 1:
			value, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("edition range %q: %w", expr, err)
			}
			editions = append(editions, value)
		case 2:
			lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("edition range %q: %w", expr, err)
			}
			hiText := strings.TrimSpace(bounds[1])
			hi := current
			if hiText != "present" {
				if hi, err = strconv.Atoi(hiText); err != nil {
					return nil, fmt.Errorf("edition range %q: %w", expr, err)
				}
			}
			for e := lo; e <= hi; e++ {
				editions = append(editions, e)
			}
		default:
			return nil, fmt.Errorf("edition range %q: malformed group %q", expr, group)
		}
	}
	return editions, nil
}

// InsertEditions records ceremony metadata rows.
func (s *Store) InsertEditions(ctx context.Context, editions []award.Edition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin editions tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO editions (award, iteration, official_year, ceremony_date) VALUES (?, ?, ?, ?)
		ON CONFLICT(award, iteration) DO UPDATE SET
			official_year = excluded.official_year,
			ceremony_date = excluded.ceremony_date`)
	if err != nil {
		return fmt.Errorf("prepare editions insert: %w", err)
	}
	defer stmt.Close()

	for _, edition := range editions {
		date := edition.CeremonyDate.Format("2006-01-02")
		if _, err := stmt.ExecContext(ctx, edition.Award, edition.Iteration, edition.OfficialYear, date); err != nil {
			return fmt.Errorf("insert edition %d: %w", edition.Iteration, err)
		}
	}
	return tx.Commit()
}

// SeedCategories loads the embedded category hierarchy and registers every
// category name for each edition its range covers. Ranges ending in "present"
// extend through currentEdition.
func (s *Store) SeedCategories(ctx context.Context, currentEdition int) error {
	var groups []categoryGroupSeed
	if err := json.Unmarshal(categoriesJSON, &groups); err != nil {
		return fmt.Errorf("parse category hierarchy: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin categories tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, group := range groups {
		groupRes, err := tx.ExecContext(ctx,
			"INSERT INTO category_groups (name) VALUES (?)", group.Group)
		if err != nil {
			return fmt.Errorf("insert group %q: %w", group.Group, err)
		}
		groupID, err := groupRes.LastInsertId()
		if err != nil {
			return fmt.Errorf("group %q id: %w", group.Group, err)
		}

		for _, category := range group.Categories {
			catRes, err := tx.ExecContext(ctx,
				"INSERT INTO categories (name, category_group_id) VALUES (?, ?)",
				category.Name, groupID)
			if err != nil {
				return fmt.Errorf("insert category %q: %w", category.Name, err)
			}
			categoryID, err := catRes.LastInsertId()
			if err != nil {
				return fmt.Errorf("category %q id: %w", category.Name, err)
			}

			for _, name := range category.Names {
				editions, err := parseEditionRanges(name.Editions, currentEdition)
				if err != nil {
					return fmt.Errorf("category %q: %w", category.Name, err)
				}
				nameRes, err := tx.ExecContext(ctx,
					"INSERT INTO category_names (official_name, common_name, category_id) VALUES (?, ?, ?)",
					name.Official, name.Common, categoryID)
				if err != nil {
					return fmt.Errorf("insert category name %q: %w", name.Official, err)
				}
				nameID, err := nameRes.LastInsertId()
				if err != nil {
					return fmt.Errorf("category name %q id: %w", name.Official, err)
				}
				for _, edition := range editions {
					if _, err := tx.ExecContext(ctx, `
						INSERT INTO editions_category_names (edition_id, category_name_id)
						SELECT id, ? FROM editions WHERE iteration = ?`,
						nameID, edition); err != nil {
						return fmt.Errorf("link %q to edition %d: %w", name.Official, edition, err)
					}
				}
			}
		}
	}
	return tx.Commit()
}

// LinkEditionCategories registers the category names observed on a ceremony
// page for one edition. Every label must resolve to a seeded category name.
func (s *Store) LinkEditionCategories(ctx context.Context, edition int, labels []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin link tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var editionID int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM editions WHERE iteration = ?", edition).Scan(&editionID)
	if err != nil {
		return fmt.Errorf("edition %d not recorded: %w", edition, err)
	}

	for _, label := range labels {
		var nameID int64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM category_names WHERE LOWER(official_name) = ? ORDER BY id LIMIT 1",
			CategoryNameKey(label)).Scan(&nameID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("category %q is not in the seeded hierarchy", label)
		}
		if err != nil {
			return fmt.Errorf("resolve category %q: %w", label, err)
		}
		var linked int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM editions_category_names WHERE edition_id = ? AND category_name_id = ?",
			editionID, nameID).Scan(&linked)
		if err != nil {
			return fmt.Errorf("check link for %q: %w", label, err)
		}
		if linked > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO editions_category_names (edition_id, category_name_id) VALUES (?, ?)",
			editionID, nameID); err != nil {
			return fmt.Errorf("link category %q: %w", label, err)
		}
	}
	return tx.Commit()
}

// CategoryNamesOfficial returns every seeded official category name.
func (s *Store) CategoryNamesOfficial(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT official_name FROM category_names ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query category names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

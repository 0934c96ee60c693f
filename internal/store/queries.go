package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates a lookup by id matched nothing.
var ErrNotFound = errors.New("not found")

// Ceremony is one edition's metadata row.
type Ceremony struct {
	ID           int64  `json:"id"`
	Iteration    int    `json:"iteration"`
	OfficialYear string `json:"official_year"`
	CeremonyDate string `json:"ceremony_date"`
}

// CategoryName is one official spelling of a category with its common alias.
type CategoryName struct {
	Official string `json:"official_name"`
	Common   string `json:"common_name"`
}

// Category is one category with every official spelling it has carried.
type Category struct {
	Name  string         `json:"name"`
	Names []CategoryName `json:"names"`
}

// CategoryGroup is the top level of the category hierarchy.
type CategoryGroup struct {
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// NominationTitle is one film attached to a nomination.
type NominationTitle struct {
	Title      string   `json:"title"`
	ExternalID string   `json:"external_id"`
	Winner     bool     `json:"winner"`
	Detail     []string `json:"detail"`
}

// NominationEntity is one person, company, or country attached to a nomination.
type NominationEntity struct {
	Name         string `json:"name"`
	ExternalID   string `json:"external_id"`
	Kind         string `json:"kind"`
	StatementInd int    `json:"statement_ind"`
}

// Nomination is one denormalized nomination record.
type Nomination struct {
	ID            int64              `json:"id"`
	Iteration     int                `json:"iteration"`
	OfficialYear  string             `json:"official_year"`
	CategoryGroup string             `json:"category_group"`
	Category      string             `json:"category"`
	OfficialName  string             `json:"official_name"`
	CommonName    string             `json:"common_name"`
	Statement     string             `json:"statement"`
	IsPerson      bool               `json:"is_person"`
	Pending       bool               `json:"pending"`
	Winner        bool               `json:"winner"`
	Official      bool               `json:"official"`
	Stat          bool               `json:"stat"`
	Note          string             `json:"note"`
	Films         []NominationTitle  `json:"films"`
	People        []NominationEntity `json:"people"`
}

// NominationFilter narrows a nominations query.
type NominationFilter struct {
	StartEdition int
	EndEdition   int
	WinnersOnly  bool
	PendingOnly  bool
	Categories   []string
}

// Ceremonies lists every recorded edition, earliest first.
func (s *Store) Ceremonies(ctx context.Context) ([]Ceremony, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, iteration, official_year, ceremony_date FROM editions ORDER BY iteration")
	if err != nil {
		return nil, fmt.Errorf("query ceremonies: %w", err)
	}
	defer rows.Close()

	var ceremonies []Ceremony
	for rows.Next() {
		var c Ceremony
		if err := rows.Scan(&c.ID, &c.Iteration, &c.OfficialYear, &c.CeremonyDate); err != nil {
			return nil, fmt.Errorf("scan ceremony: %w", err)
		}
		ceremonies = append(ceremonies, c)
	}
	return ceremonies, rows.Err()
}

// Ceremony returns one edition by iteration.
func (s *Store) Ceremony(ctx context.Context, iteration int) (*Ceremony, error) {
	var c Ceremony
	err := s.db.QueryRowContext(ctx,
		"SELECT id, iteration, official_year, ceremony_date FROM editions WHERE iteration = ?",
		iteration).Scan(&c.ID, &c.Iteration, &c.OfficialYear, &c.CeremonyDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ceremony %d: %w", iteration, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query ceremony %d: %w", iteration, err)
	}
	return &c, nil
}

// CategoryHierarchy returns the seeded group/category/name tree.
func (s *Store) CategoryHierarchy(ctx context.Context) ([]CategoryGroup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cg.id, cg.name, c.id, c.name, cn.official_name, cn.common_name
		FROM category_groups cg
		JOIN categories c ON c.category_group_id = cg.id
		JOIN category_names cn ON cn.category_id = c.id
		ORDER BY cg.id, c.id, cn.id`)
	if err != nil {
		return nil, fmt.Errorf("query category hierarchy: %w", err)
	}
	defer rows.Close()

	var groups []CategoryGroup
	var lastGroupID, lastCategoryID int64
	for rows.Next() {
		var groupID, categoryID int64
		var groupName, categoryName string
		var name CategoryName
		if err := rows.Scan(&groupID, &groupName, &categoryID, &categoryName, &name.Official, &name.Common); err != nil {
			return nil, fmt.Errorf("scan hierarchy row: %w", err)
		}
		if len(groups) == 0 || groupID != lastGroupID {
			groups = append(groups, CategoryGroup{Name: groupName})
			lastGroupID = groupID
			lastCategoryID = 0
		}
		group := &groups[len(groups)-1]
		if len(group.Categories) == 0 || categoryID != lastCategoryID {
			group.Categories = append(group.Categories, Category{Name: categoryName})
			lastCategoryID = categoryID
		}
		category := &group.Categories[len(group.Categories)-1]
		category.Names = append(category.Names, name)
	}
	return groups, rows.Err()
}

// Nominations returns denormalized nomination records matching the filter,
// ordered by edition, category, and winner first within each category.
func (s *Store) Nominations(ctx context.Context, filter NominationFilter) ([]Nomination, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT n.id, e.iteration, e.official_year, cg.name, c.name,
		       cn.official_name, cn.common_name, n.statement, n.is_person,
		       n.pending, n.winner, n.official, n.stat, n.note
		FROM nominees n
		JOIN editions e ON e.id = n.edition_id
		JOIN category_names cn ON cn.id = n.category_name_id
		JOIN categories c ON c.id = cn.category_id
		JOIN category_groups cg ON cg.id = c.category_group_id
		WHERE 1=1`)
	var args []any
	if filter.StartEdition > 0 {
		query.WriteString(" AND e.iteration >= ?")
		args = append(args, filter.StartEdition)
	}
	if filter.EndEdition > 0 {
		query.WriteString(" AND e.iteration <= ?")
		args = append(args, filter.EndEdition)
	}
	if filter.WinnersOnly {
		query.WriteString(" AND n.winner = 1")
	}
	if filter.PendingOnly {
		query.WriteString(" AND n.pending = 1")
	}
	if len(filter.Categories) > 0 {
		query.WriteString(" AND c.name IN (")
		query.WriteString(placeholders(len(filter.Categories)))
		query.WriteString(")")
		for _, category := range filter.Categories {
			args = append(args, category)
		}
	}
	query.WriteString(" ORDER BY e.iteration, c.id, n.winner DESC, n.id")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query nominations: %w", err)
	}
	defer rows.Close()

	var nominations []Nomination
	index := map[int64]int{}
	for rows.Next() {
		var n Nomination
		if err := rows.Scan(&n.ID, &n.Iteration, &n.OfficialYear, &n.CategoryGroup,
			&n.Category, &n.OfficialName, &n.CommonName, &n.Statement, &n.IsPerson,
			&n.Pending, &n.Winner, &n.Official, &n.Stat, &n.Note); err != nil {
			return nil, fmt.Errorf("scan nomination: %w", err)
		}
		index[n.ID] = len(nominations)
		nominations = append(nominations, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(nominations) == 0 {
		return nominations, nil
	}

	if err := s.attachFilms(ctx, nominations, index); err != nil {
		return nil, err
	}
	if err := s.attachPeople(ctx, nominations, index); err != nil {
		return nil, err
	}
	return nominations, nil
}

func (s *Store) attachFilms(ctx context.Context, nominations []Nomination, index map[int64]int) error {
	ids, args := nomineeIDArgs(index)
	rows, err := s.db.QueryContext(ctx, `
		SELECT nt.nominee_id, t.title, t.external_id, nt.winner, nt.detail
		FROM nominees_titles nt
		JOIN titles t ON t.id = nt.title_id
		WHERE nt.nominee_id IN (`+ids+`)
		ORDER BY nt.winner DESC, nt.id`, args...)
	if err != nil {
		return fmt.Errorf("query nomination titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var nomineeID int64
		var film NominationTitle
		var detail string
		if err := rows.Scan(&nomineeID, &film.Title, &film.ExternalID, &film.Winner, &detail); err != nil {
			return fmt.Errorf("scan nomination title: %w", err)
		}
		if err := json.Unmarshal([]byte(detail), &film.Detail); err != nil {
			return fmt.Errorf("decode detail for nominee %d: %w", nomineeID, err)
		}
		pos := index[nomineeID]
		nominations[pos].Films = append(nominations[pos].Films, film)
	}
	return rows.Err()
}

func (s *Store) attachPeople(ctx context.Context, nominations []Nomination, index map[int64]int) error {
	ids, args := nomineeIDArgs(index)
	rows, err := s.db.QueryContext(ctx, `
		SELECT ne.nominee_id, ne.name, en.external_id, en.kind, ne.statement_ind
		FROM nominees_entities ne
		JOIN entities en ON en.id = ne.entity_id
		WHERE ne.nominee_id IN (`+ids+`)
		ORDER BY ne.statement_ind, ne.id`, args...)
	if err != nil {
		return fmt.Errorf("query nomination entities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var nomineeID int64
		var entity NominationEntity
		if err := rows.Scan(&nomineeID, &entity.Name, &entity.ExternalID, &entity.Kind, &entity.StatementInd); err != nil {
			return fmt.Errorf("scan nomination entity: %w", err)
		}
		pos := index[nomineeID]
		nominations[pos].People = append(nominations[pos].People, entity)
	}
	return rows.Err()
}

func nomineeIDArgs(index map[int64]int) (string, []any) {
	args := make([]any, 0, len(index))
	for id := range index {
		args = append(args, id)
	}
	return placeholders(len(args)), args
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TitleProfile aggregates one title's nomination record. Nominations and Wins
// count only stat-eligible nominees.
type TitleProfile struct {
	ExternalID  string `json:"external_id"`
	Title       string `json:"title"`
	Nominations int    `json:"nominations"`
	Wins        int    `json:"wins"`
	Editions    []int  `json:"editions"`
}

// EntityProfile aggregates one entity's nomination record across every alias
// it has been credited under.
type EntityProfile struct {
	ExternalID  string   `json:"external_id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Nominations int      `json:"nominations"`
	Wins        int      `json:"wins"`
	Aliases     []string `json:"aliases"`
}

// SearchHit is one matching title or entity.
type SearchHit struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Kind       string `json:"kind,omitempty"`
}

// SearchResults groups matches by record type.
type SearchResults struct {
	Titles     []SearchHit `json:"titles"`
	Entities   []SearchHit `json:"entities"`
	Categories []string    `json:"categories"`
}

// TitleByExternalID returns the aggregated profile of one title.
func (s *Store) TitleByExternalID(ctx context.Context, externalID string) (*TitleProfile, error) {
	profile := TitleProfile{ExternalID: externalID}
	var titleID int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title FROM titles WHERE external_id = ?", externalID,
	).Scan(&titleID, &profile.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("title %q: %w", externalID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query title %q: %w", externalID, err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(1), COALESCE(SUM(n.winner), 0)
		FROM nominees_titles nt
		JOIN nominees n ON n.id = nt.nominee_id
		WHERE nt.title_id = ? AND n.stat = 1`, titleID,
	).Scan(&profile.Nominations, &profile.Wins)
	if err != nil {
		return nil, fmt.Errorf("aggregate title %q: %w", externalID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT e.iteration
		FROM nominees_titles nt
		JOIN nominees n ON n.id = nt.nominee_id
		JOIN editions e ON e.id = n.edition_id
		WHERE nt.title_id = ?
		ORDER BY e.iteration`, titleID)
	if err != nil {
		return nil, fmt.Errorf("title editions %q: %w", externalID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var iteration int
		if err := rows.Scan(&iteration); err != nil {
			return nil, fmt.Errorf("scan title edition: %w", err)
		}
		profile.Editions = append(profile.Editions, iteration)
	}
	return &profile, rows.Err()
}

// EntityByExternalID returns the aggregated profile of one entity.
func (s *Store) EntityByExternalID(ctx context.Context, externalID string) (*EntityProfile, error) {
	profile := EntityProfile{ExternalID: externalID}
	var entityID int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, kind, name FROM entities WHERE external_id = ?", externalID,
	).Scan(&entityID, &profile.Kind, &profile.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("entity %q: %w", externalID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query entity %q: %w", externalID, err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(1), COALESCE(SUM(n.winner), 0)
		FROM nominees_entities ne
		JOIN nominees n ON n.id = ne.nominee_id
		WHERE ne.entity_id = ? AND n.stat = 1`, entityID,
	).Scan(&profile.Nominations, &profile.Wins)
	if err != nil {
		return nil, fmt.Errorf("aggregate entity %q: %w", externalID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT name FROM nominees_entities
		WHERE entity_id = ? AND name != ?
		ORDER BY name`, entityID, profile.Name)
	if err != nil {
		return nil, fmt.Errorf("entity aliases %q: %w", externalID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var alias string
		if err := rows.Scan(&alias); err != nil {
			return nil, fmt.Errorf("scan entity alias: %w", err)
		}
		profile.Aliases = append(profile.Aliases, alias)
	}
	return &profile, rows.Err()
}

// Search runs a case-insensitive substring search across titles, entities,
// and category names.
func (s *Store) Search(ctx context.Context, query string, limit int) (*SearchResults, error) {
	if limit <= 0 {
		limit = 25
	}
	pattern := "%" + query + "%"
	results := &SearchResults{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT external_id, title FROM titles
		WHERE title LIKE ? COLLATE NOCASE ORDER BY title LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search titles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var hit SearchHit
		if err := rows.Scan(&hit.ExternalID, &hit.Name); err != nil {
			return nil, fmt.Errorf("scan title hit: %w", err)
		}
		results.Titles = append(results.Titles, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entityRows, err := s.db.QueryContext(ctx, `
		SELECT external_id, kind, name FROM entities
		WHERE name LIKE ? COLLATE NOCASE ORDER BY name LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search entities: %w", err)
	}
	defer entityRows.Close()
	for entityRows.Next() {
		var hit SearchHit
		if err := entityRows.Scan(&hit.ExternalID, &hit.Kind, &hit.Name); err != nil {
			return nil, fmt.Errorf("scan entity hit: %w", err)
		}
		results.Entities = append(results.Entities, hit)
	}
	if err := entityRows.Err(); err != nil {
		return nil, err
	}

	categoryRows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT name FROM categories
		WHERE name LIKE ? COLLATE NOCASE ORDER BY name LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	defer categoryRows.Close()
	for categoryRows.Next() {
		var name string
		if err := categoryRows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category hit: %w", err)
		}
		results.Categories = append(results.Categories, name)
	}
	return results, categoryRows.Err()
}

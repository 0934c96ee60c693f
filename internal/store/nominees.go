package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"garland/internal/award"
)

// InsertNominees stores canonical nomination records. Titles and entities are
// upserted by their external catalog id; an unrecognized id prefix is a hard
// error. The nominee's category label must already be linked to its edition.
func (s *Store) InsertNominees(ctx context.Context, nominees []award.MatchedNominee) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin nominees tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, nominee := range nominees {
		if err := insertNominee(ctx, tx, nominee); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteEditionNominees removes every nominee of one edition together with
// its film and entity links. Titles and entities themselves stay; other
// editions reference them.
func (s *Store) DeleteEditionNominees(ctx context.Context, edition int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const nomineeIDs = "SELECT n.id FROM nominees n JOIN editions e ON e.id = n.edition_id WHERE e.iteration = ?"
	for _, table := range []string{"nominees_titles", "nominees_entities"} {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE nominee_id IN ("+nomineeIDs+")", edition); err != nil {
			return fmt.Errorf("clear %s for edition %d: %w", table, edition, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM nominees WHERE edition_id IN (SELECT id FROM editions WHERE iteration = ?)",
		edition); err != nil {
		return fmt.Errorf("clear nominees for edition %d: %w", edition, err)
	}
	return tx.Commit()
}

func insertNominee(ctx context.Context, tx *sql.Tx, nominee award.MatchedNominee) error {
	var nomineeID int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO nominees (edition_id, category_name_id, statement, is_person, pending, winner, note, official, stat)
		SELECT e.id, cn.id, ?, ?, ?, ?, ?, ?, ?
		FROM editions e
		JOIN editions_category_names ecn ON e.id = ecn.edition_id
		JOIN category_names cn ON cn.id = ecn.category_name_id
		WHERE e.iteration = ? AND LOWER(cn.official_name) = ?
		LIMIT 1
		RETURNING id`,
		nominee.Statement, nominee.IsPerson, nominee.Pending, nominee.Winner,
		nominee.Note, nominee.Official, nominee.Stat,
		nominee.Edition, CategoryNameKey(nominee.CategoryName),
	).Scan(&nomineeID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("category %q is not linked to edition %d", nominee.CategoryName, nominee.Edition)
	}
	if err != nil {
		return fmt.Errorf("insert nominee (edition %d, %q): %w", nominee.Edition, nominee.CategoryName, err)
	}

	for _, film := range nominee.Films {
		var titleID int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO titles (external_id, title) VALUES (?, ?)
			ON CONFLICT(external_id) DO UPDATE SET title = excluded.title
			RETURNING id`,
			film.ID, film.Title,
		).Scan(&titleID)
		if err != nil {
			return fmt.Errorf("upsert title %q: %w", film.ID, err)
		}

		detail, err := json.Marshal(append([]string{}, film.Detail...))
		if err != nil {
			return fmt.Errorf("encode detail for %q: %w", film.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO nominees_titles (nominee_id, title_id, detail, winner) VALUES (?, ?, ?, ?)",
			nomineeID, titleID, string(detail), film.Winner); err != nil {
			return fmt.Errorf("link title %q: %w", film.ID, err)
		}
	}

	for _, person := range nominee.People {
		kind, ok := award.KindOfID(person.ID)
		if !ok {
			return fmt.Errorf("entity id %q has an unrecognized prefix", person.ID)
		}
		var entityID int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO entities (external_id, kind, name) VALUES (?, ?, ?)
			ON CONFLICT(external_id) DO UPDATE SET name = excluded.name
			RETURNING id`,
			person.ID, string(kind), person.Name,
		).Scan(&entityID)
		if err != nil {
			return fmt.Errorf("upsert entity %q: %w", person.ID, err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO nominees_entities (nominee_id, entity_id, name, statement_ind, role) VALUES (?, ?, ?, ?, ?)",
			nomineeID, entityID, person.Name, person.StatementInd, person.Role); err != nil {
			return fmt.Errorf("link entity %q: %w", person.ID, err)
		}
	}
	return nil
}

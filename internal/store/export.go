package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var exportHeader = []string{
	"iteration", "official_year", "ceremony_date",
	"category_group", "category", "official_name", "common_name",
	"nomination_id", "statement", "pending", "winner", "official", "stat",
	"statement_name", "statement_ind",
	"entity_external_id", "entity_kind", "name",
	"title_external_id", "title", "detail", "title_winner", "note",
}

// ExportCSV writes every nomination as denormalized CSV rows, one row per
// nominee/entity/title combination, ordered by edition and category with
// winners first.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			e.iteration, e.official_year, e.ceremony_date,
			cg.name, c.name, cn.official_name, cn.common_name,
			n.id, n.statement, n.pending, n.winner, n.official, n.stat,
			ne.name, ne.statement_ind,
			en.external_id, en.kind, en.name,
			t.external_id, t.title,
			nt.detail, nt.winner, n.note
		FROM category_names cn
		JOIN categories c ON c.id = cn.category_id
		JOIN category_groups cg ON cg.id = c.category_group_id
		JOIN editions_category_names ecn ON ecn.category_name_id = cn.id
		JOIN editions e ON e.id = ecn.edition_id
		JOIN nominees n ON n.edition_id = e.id AND n.category_name_id = cn.id
		LEFT JOIN nominees_entities ne ON ne.nominee_id = n.id
		LEFT JOIN entities en ON en.id = ne.entity_id
		LEFT JOIN nominees_titles nt ON nt.nominee_id = n.id
		LEFT JOIN titles t ON t.id = nt.title_id
		ORDER BY e.iteration, c.id, n.winner DESC, n.id ASC, ne.statement_ind ASC, nt.winner DESC`)
	if err != nil {
		return fmt.Errorf("query export rows: %w", err)
	}
	defer rows.Close()

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for rows.Next() {
		var iteration int
		var officialYear, ceremonyDate string
		var group, category, officialName, commonName string
		var nominationID int64
		var statement, note string
		var pending, winner, official, stat bool
		var statementName, entityID, entityKind, name sql.NullString
		var statementInd sql.NullInt64
		var titleID, title, detail sql.NullString
		var titleWinner sql.NullBool
		err := rows.Scan(
			&iteration, &officialYear, &ceremonyDate,
			&group, &category, &officialName, &commonName,
			&nominationID, &statement, &pending, &winner, &official, &stat,
			&statementName, &statementInd,
			&entityID, &entityKind, &name,
			&titleID, &title,
			&detail, &titleWinner, &note)
		if err != nil {
			return fmt.Errorf("scan export row: %w", err)
		}

		record := []string{
			strconv.Itoa(iteration), officialYear, ceremonyDate,
			group, category, officialName, commonName,
			strconv.FormatInt(nominationID, 10), statement,
			boolField(pending), boolField(winner), boolField(official), boolField(stat),
			statementName.String, nullableInt(statementInd),
			entityID.String, entityKind.String, name.String,
			titleID.String, title.String, detail.String, nullableBool(titleWinner), note,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func boolField(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

func nullableInt(value sql.NullInt64) string {
	if !value.Valid {
		return ""
	}
	return strconv.FormatInt(value.Int64, 10)
}

func nullableBool(value sql.NullBool) string {
	if !value.Valid {
		return ""
	}
	return boolField(value.Bool)
}

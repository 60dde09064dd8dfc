// search.go implements the weighted, tiered relevance search over both
// entities.
//
// The query is compiled into three FTS5 forms (phrase, all-terms,
// any-terms). A phrase match implies an all-terms match implies an
// any-terms match, so a single MATCH on the any-terms form is the complete
// eligibility filter; the other two tiers only add score. Per-field
// weighting (name over description over properties) rides on bm25()'s
// positional column weights, which must line up with the column order
// declared in sql/003_search.sql.
//
// The page and its total are read inside one transaction so the count is
// consistent with the returned slice, and the count query never re-applies
// the limit.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stashhq/stash/internal/search"
	"github.com/stashhq/stash/internal/validate"
)

// Per-field weights inside each tier. A match in the name counts more than
// the same match in the description, which counts more than one in the
// property bag.
const (
	weightName        = 5.0
	weightDescription = 3.0
	weightProperties  = 1.0
)

// Tier multipliers for the final ranking score.
const (
	tierPhrase = 3.0
	tierAll    = 2.0
	tierAny    = 1.0
)

// SearchLocations runs the ranked search over locations. An empty or
// operator-only term matches every location, ordered by name.
func (s *SQLiteStore) SearchLocations(ctx context.Context, term string, offset, limit int) (*LocationPage, error) {
	if err := validate.Page(offset, limit); err != nil {
		return nil, err
	}

	q := search.Compile(search.Sanitize(term))
	page := &LocationPage{}
	cols := "l.id, l.name, l.description, l.parent_id, l.created_at, l.updated_at"

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		if q.Empty() {
			rows, err := tx.QueryContext(ctx, `SELECT id, name, description, parent_id, created_at, updated_at
				FROM locations ORDER BY name COLLATE NOCASE LIMIT ? OFFSET ?`, limit, offset)
			if err != nil {
				return fmt.Errorf("list locations: %w", err)
			}
			defer rows.Close()
			if page.Locations, err = collectLocations(rows); err != nil {
				return err
			}
			return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&page.Total)
		}

		query := rankedQuery("locations_fts", "locations l", cols,
			fmt.Sprintf("%.1f, %.1f", weightName, weightDescription))
		rows, err := tx.QueryContext(ctx, query, q.Any, q.All, q.Phrase, limit, offset)
		if err != nil {
			return fmt.Errorf("search locations: %w", err)
		}
		defer rows.Close()
		if page.Locations, err = collectLocations(rows); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM locations_fts WHERE locations_fts MATCH ?`, q.Any).Scan(&page.Total)
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// SearchItems runs the ranked search over items with identical semantics.
func (s *SQLiteStore) SearchItems(ctx context.Context, term string, offset, limit int) (*ItemPage, error) {
	if err := validate.Page(offset, limit); err != nil {
		return nil, err
	}

	q := search.Compile(search.Sanitize(term))
	page := &ItemPage{}
	cols := "l.id, l.name, l.description, l.location_id, l.properties, l.created_at, l.updated_at"

	err := s.Tx(ctx, func(tx *sql.Tx) error {
		if q.Empty() {
			rows, err := tx.QueryContext(ctx, `SELECT id, name, description, location_id, properties, created_at, updated_at
				FROM items ORDER BY name COLLATE NOCASE LIMIT ? OFFSET ?`, limit, offset)
			if err != nil {
				return fmt.Errorf("list items: %w", err)
			}
			defer rows.Close()
			if page.Items, err = collectItems(rows); err != nil {
				return err
			}
			return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&page.Total)
		}

		query := rankedQuery("items_fts", "items l", cols,
			fmt.Sprintf("%.1f, %.1f, %.1f", weightName, weightDescription, weightProperties))
		rows, err := tx.QueryContext(ctx, query, q.Any, q.All, q.Phrase, limit, offset)
		if err != nil {
			return fmt.Errorf("search items: %w", err)
		}
		defer rows.Close()
		if page.Items, err = collectItems(rows); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM items_fts WHERE items_fts MATCH ?`, q.Any).Scan(&page.Total)
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// rankedQuery builds the tiered ranking SQL for one entity. The any-terms
// subquery is the eligibility filter; the all-terms and phrase subqueries
// LEFT JOIN onto it so a missing tier match scores zero, never NULL. bm25()
// returns better matches as more negative values, hence the negation.
// Placeholders, in order: any, all, phrase, limit, offset.
func rankedQuery(fts, table, cols, weights string) string {
	return fmt.Sprintf(`SELECT %[3]s
		FROM (SELECT rowid, -bm25(%[1]s, %[4]s) AS score
			FROM %[1]s WHERE %[1]s MATCH ?) anyq
		LEFT JOIN (SELECT rowid, -bm25(%[1]s, %[4]s) AS score
			FROM %[1]s WHERE %[1]s MATCH ?) allq ON allq.rowid = anyq.rowid
		LEFT JOIN (SELECT rowid, -bm25(%[1]s, %[4]s) AS score
			FROM %[1]s WHERE %[1]s MATCH ?) phraseq ON phraseq.rowid = anyq.rowid
		JOIN %[2]s ON l.rowid = anyq.rowid
		ORDER BY %[5]f*COALESCE(phraseq.score, 0) + %[6]f*COALESCE(allq.score, 0) + %[7]f*anyq.score DESC,
			l.name COLLATE NOCASE ASC
		LIMIT ? OFFSET ?`,
		fts, table, cols, weights, tierPhrase, tierAll, tierAny)
}

package reference

import (
	"context"
	"fmt"

	"tripsearch/pkg/db"
)

// Store reads reference data from Postgres. Rows are seeded by the
// iata_codes migration.
type Store struct {
	db db.SQLExecutor
}

func NewStore(executor db.SQLExecutor) *Store {
	return &Store{db: executor}
}

func (s *Store) LoadReferenceCodes(ctx context.Context) ([]Pair, error) {
	query := "SELECT code, display_name FROM iata_codes ORDER BY code"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reference codes: %w", err)
	}
	defer rows.Close()

	var pairs []Pair
	for rows.Next() {
		var p Pair
		if err := rows.Scan(&p.Code, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan reference code: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reference codes: %w", err)
	}

	return pairs, nil
}

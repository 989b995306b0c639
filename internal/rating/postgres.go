// internal/rating/postgres.go
package rating

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists ratings in a `team_ratings` table keyed by
// (profile_id, team_name).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool for the given DSN and ensures the
// ratings table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect rating db: %w", err)
	}
	q := `
		CREATE TABLE IF NOT EXISTS team_ratings (
			profile_id TEXT NOT NULL,
			team_name  TEXT NOT NULL,
			rating     DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (profile_id, team_name)
		)
	`
	if _, err := pool.Exec(ctx, q); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure team_ratings table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Load(ctx context.Context, profileID string, teams []string) (map[string]float64, error) {
	q := `SELECT team_name, rating FROM team_ratings WHERE profile_id = $1 AND team_name = ANY($2)`
	rows, err := s.pool.Query(ctx, q, profileID, teams)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var team string
		var rating float64
		if err := rows.Scan(&team, &rating); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		out[team] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Save(ctx context.Context, profileID string, ratings map[string]float64) error {
	q := `
		INSERT INTO team_ratings (profile_id, team_name, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id, team_name) DO UPDATE SET rating = EXCLUDED.rating
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for team, rating := range ratings {
			if _, err := tx.Exec(ctx, q, profileID, team, rating); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save ratings: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

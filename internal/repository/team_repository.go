package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamRepository exposes the team catalog. The redemption workflow never
// consults it; it backs the optional existence check on the lookup surface.
type TeamRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
	CountStaff(ctx context.Context, name string) (int, error)
}

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository constructs the repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Exists(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM teams WHERE name = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *teamRepository) CountStaff(ctx context.Context, name string) (int, error) {
	const query = `
        SELECT COUNT(*)
        FROM staff s
        INNER JOIN teams t ON t.id = s.team_id
        WHERE t.name = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, name).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

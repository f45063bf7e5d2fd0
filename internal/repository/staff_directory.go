package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/redemption-service/internal/domain"
)

// StaffDirectory is a read-only lookup from staff credentials to teams.
// Callers must pass an already-normalized pass ID; the directory never
// mutates shared state.
type StaffDirectory interface {
	ResolveTeam(ctx context.Context, passID string) (string, error)
	GetByPassID(ctx context.Context, passID string) (*domain.Staff, error)
}

type staffDirectory struct {
	pool *pgxpool.Pool
}

// NewStaffDirectory instantiates the directory.
func NewStaffDirectory(pool *pgxpool.Pool) StaffDirectory {
	return &staffDirectory{pool: pool}
}

func (r *staffDirectory) ResolveTeam(ctx context.Context, passID string) (string, error) {
	const query = `
        SELECT t.name
        FROM staff s
        INNER JOIN teams t ON t.id = s.team_id
        WHERE s.pass_id = $1`

	var teamName string
	if err := r.pool.QueryRow(ctx, query, passID).Scan(&teamName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &domain.StaffPassNotFoundError{PassID: passID}
		}
		return "", err
	}
	return teamName, nil
}

func (r *staffDirectory) GetByPassID(ctx context.Context, passID string) (*domain.Staff, error) {
	const query = `
        SELECT s.pass_id, t.name, s.created_at
        FROM staff s
        INNER JOIN teams t ON t.id = s.team_id
        WHERE s.pass_id = $1`

	var staff domain.Staff
	if err := r.pool.QueryRow(ctx, query, passID).Scan(
		&staff.PassID,
		&staff.TeamName,
		&staff.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.StaffPassNotFoundError{PassID: passID}
		}
		return nil, err
	}
	return &staff, nil
}

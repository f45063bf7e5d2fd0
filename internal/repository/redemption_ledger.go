package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/redemption-service/internal/domain"
)

// RedemptionLedger stores at most one redemption record per team.
type RedemptionLedger interface {
	// FindByTeam returns the team's redemption, or nil when absent.
	FindByTeam(ctx context.Context, teamName string) (*domain.Redemption, error)
	// TryClaim atomically creates the team's redemption record. It returns
	// false without error for every caller except the one whose write
	// persisted the row; an error means the store itself failed.
	TryClaim(ctx context.Context, teamName, staffPassID string, at time.Time) (bool, error)
	// ListAll returns every redemption, newest first.
	ListAll(ctx context.Context) ([]domain.Redemption, error)
}

type redemptionLedger struct {
	pool *pgxpool.Pool
}

// NewRedemptionLedger instantiates the ledger.
func NewRedemptionLedger(pool *pgxpool.Pool) RedemptionLedger {
	return &redemptionLedger{pool: pool}
}

func (r *redemptionLedger) FindByTeam(ctx context.Context, teamName string) (*domain.Redemption, error) {
	const query = `
        SELECT team_name, staff_pass_id, redeemed_at
        FROM redemptions WHERE team_name = $1`

	var redemption domain.Redemption
	if err := r.pool.QueryRow(ctx, query, teamName).Scan(
		&redemption.TeamName,
		&redemption.StaffPassID,
		&redemption.RedeemedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &redemption, nil
}

// TryClaim relies on the unique index on redemptions.team_name: the insert
// and the eligibility check are a single statement, so conflicting writers
// for the same team are serialized by the store, across processes.
func (r *redemptionLedger) TryClaim(ctx context.Context, teamName, staffPassID string, at time.Time) (bool, error) {
	const query = `
        INSERT INTO redemptions (team_name, staff_pass_id, redeemed_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (team_name) DO NOTHING`

	cmd, err := r.pool.Exec(ctx, query, teamName, staffPassID, at)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *redemptionLedger) ListAll(ctx context.Context) ([]domain.Redemption, error) {
	const query = `
        SELECT team_name, staff_pass_id, redeemed_at
        FROM redemptions ORDER BY redeemed_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Redemption
	for rows.Next() {
		var redemption domain.Redemption
		if err := rows.Scan(&redemption.TeamName, &redemption.StaffPassID, &redemption.RedeemedAt); err != nil {
			return nil, err
		}
		result = append(result, redemption)
	}
	return result, rows.Err()
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/redemption-service/internal/domain"
	"github.com/spec-kit/redemption-service/internal/passid"
	"github.com/spec-kit/redemption-service/internal/repository"
	apperrors "github.com/spec-kit/redemption-service/pkg/util"
)

// StaffService backs the staff/team lookup surface. It is read-only; the
// underlying rows are populated once at startup by the import.
type StaffService struct {
	directory repository.StaffDirectory
	teams     repository.TeamRepository
	logger    *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(directory repository.StaffDirectory, teams repository.TeamRepository, logger *zap.Logger) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{directory: directory, teams: teams, logger: logger}
}

// LookupStaff validates the credential grammar and returns the staff row.
func (s *StaffService) LookupStaff(ctx context.Context, rawPassID string) (*domain.Staff, error) {
	id, err := passid.Normalize(rawPassID)
	if err != nil {
		return nil, err
	}

	staff, err := s.directory.GetByPassID(ctx, id)
	if err != nil {
		var notFound *domain.StaffPassNotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}
		return nil, apperrors.NewInternalError(err)
	}
	return staff, nil
}

// TeamInfo summarizes a catalog entry.
type TeamInfo struct {
	Name       string
	StaffCount int
}

// GetTeam checks the catalog for the team and reports its staff headcount.
// This existence check is deliberately not part of eligibility.
func (s *StaffService) GetTeam(ctx context.Context, teamName string) (TeamInfo, error) {
	name := normalizeTeamName(teamName)

	exists, err := s.teams.Exists(ctx, name)
	if err != nil {
		return TeamInfo{}, apperrors.NewInternalError(err)
	}
	if !exists {
		return TeamInfo{}, &domain.TeamNotFoundError{Name: name}
	}

	count, err := s.teams.CountStaff(ctx, name)
	if err != nil {
		return TeamInfo{}, apperrors.NewInternalError(err)
	}
	return TeamInfo{Name: name, StaffCount: count}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/redemption-service/internal/cache"
	"github.com/spec-kit/redemption-service/internal/domain"
	"github.com/spec-kit/redemption-service/internal/events"
	"github.com/spec-kit/redemption-service/internal/passid"
	"github.com/spec-kit/redemption-service/internal/repository"
	apperrors "github.com/spec-kit/redemption-service/pkg/util"
)

// RedemptionService orchestrates the redemption workflow: normalize the
// credential, resolve the team, then claim the team's single redemption as
// one atomic ledger operation. There is no in-process locking; correctness
// under concurrent callers comes entirely from the ledger's TryClaim.
type RedemptionService struct {
	directory  repository.StaffDirectory
	ledger     repository.RedemptionLedger
	cache      *cache.RedemptionCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// RedemptionDependencies bundles collaborators for construction.
type RedemptionDependencies struct {
	Directory  repository.StaffDirectory
	Ledger     repository.RedemptionLedger
	Cache      *cache.RedemptionCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewRedemptionService constructs the service.
func NewRedemptionService(deps RedemptionDependencies) *RedemptionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedemptionService{
		directory:  deps.Directory,
		ledger:     deps.Ledger,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// LookupResult describes a resolved staff credential.
type LookupResult struct {
	StaffPassID string
	TeamName    string
}

// EligibilityResult describes whether a team may still redeem.
type EligibilityResult struct {
	TeamName   string
	Eligible   bool
	Detail     string
	Redemption *domain.Redemption
}

// RedemptionResult describes the outcome of a redeem attempt.
type RedemptionResult struct {
	Redeemed   bool
	Detail     string
	Redemption *domain.Redemption
}

// Lookup validates the credential and resolves its team.
// ValidationError and StaffPassNotFoundError propagate unchanged.
func (s *RedemptionService) Lookup(ctx context.Context, rawPassID string) (LookupResult, error) {
	id, err := passid.Normalize(rawPassID)
	if err != nil {
		return LookupResult{}, err
	}

	teamName, err := s.directory.ResolveTeam(ctx, id)
	if err != nil {
		return LookupResult{}, mapDirectoryError(err)
	}
	return LookupResult{StaffPassID: id, TeamName: teamName}, nil
}

// CheckEligibility reports whether the team may still redeem. The check is
// advisory only: state can change between this read and a later Redeem,
// which re-checks atomically. Unknown teams simply read as eligible; team
// existence is not validated here.
func (s *RedemptionService) CheckEligibility(ctx context.Context, teamName string) (EligibilityResult, error) {
	team := normalizeTeamName(teamName)

	if cached := s.cache.Get(ctx, team); cached != nil {
		return ineligibleResult(team, cached), nil
	}

	redemption, err := s.ledger.FindByTeam(ctx, team)
	if err != nil {
		return EligibilityResult{}, apperrors.NewInternalError(err)
	}
	if redemption == nil {
		return EligibilityResult{
			TeamName: team,
			Eligible: true,
			Detail:   fmt.Sprintf("team %s is eligible for redemption", team),
		}, nil
	}

	s.cache.Set(ctx, redemption)
	return ineligibleResult(team, redemption), nil
}

// Redeem performs the full workflow for a raw credential. Exactly one of
// any set of concurrent attempts for the same team observes Redeemed=true;
// every other attempt gets the already-redeemed result built from the
// ledger row the winner committed.
func (s *RedemptionService) Redeem(ctx context.Context, rawPassID string) (RedemptionResult, error) {
	id, err := passid.Normalize(rawPassID)
	if err != nil {
		return RedemptionResult{}, err
	}

	team, err := s.directory.ResolveTeam(ctx, id)
	if err != nil {
		return RedemptionResult{}, mapDirectoryError(err)
	}

	at := s.now().UTC()
	created, err := s.ledger.TryClaim(ctx, team, id, at)
	if err != nil {
		// Store failure, not a lost race; never conflate the two.
		return RedemptionResult{}, apperrors.NewInternalError(err)
	}

	if !created {
		// Re-read after the attempt: a concurrent winner may have just
		// committed, and its row is the authoritative answer.
		existing, err := s.ledger.FindByTeam(ctx, team)
		if err != nil {
			return RedemptionResult{}, apperrors.NewInternalError(err)
		}
		if existing == nil {
			return RedemptionResult{}, apperrors.NewInternalError(
				fmt.Errorf("ledger reported conflict for team %s but no redemption row exists", team))
		}
		s.cache.Set(ctx, existing)
		return RedemptionResult{
			Redeemed:   false,
			Detail:     alreadyRedeemedDetail(existing),
			Redemption: existing,
		}, nil
	}

	redemption := &domain.Redemption{TeamName: team, StaffPassID: id, RedeemedAt: at}
	s.cache.Set(ctx, redemption)
	s.publishRedemptionCreated(ctx, redemption)
	s.logger.Info("redemption recorded",
		zap.String("team", team),
		zap.String("staff_pass_id", id))

	return RedemptionResult{
		Redeemed:   true,
		Detail:     fmt.Sprintf("redemption recorded for team %s", team),
		Redemption: redemption,
	}, nil
}

// ListRedemptions returns every ledger row, newest first.
func (s *RedemptionService) ListRedemptions(ctx context.Context) ([]domain.Redemption, error) {
	redemptions, err := s.ledger.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return redemptions, nil
}

func (s *RedemptionService) publishRedemptionCreated(ctx context.Context, redemption *domain.Redemption) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRedemptionCreated,
		TeamName:  redemption.TeamName,
		Timestamp: redemption.RedeemedAt,
		Payload: events.RedemptionCreatedPayload{
			StaffPassID: redemption.StaffPassID,
			RedeemedAt:  redemption.RedeemedAt,
		},
	})
}

// mapDirectoryError keeps the typed not-found variant intact and wraps
// everything else as an internal error.
func mapDirectoryError(err error) error {
	var notFound *domain.StaffPassNotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	return apperrors.NewInternalError(err)
}

func ineligibleResult(team string, redemption *domain.Redemption) EligibilityResult {
	return EligibilityResult{
		TeamName:   team,
		Eligible:   false,
		Detail:     alreadyRedeemedDetail(redemption),
		Redemption: redemption,
	}
}

func alreadyRedeemedDetail(redemption *domain.Redemption) string {
	return fmt.Sprintf("already redeemed by %s at %s",
		redemption.StaffPassID, redemption.RedeemedAt.Format(time.RFC3339))
}

func normalizeTeamName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

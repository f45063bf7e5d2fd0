package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/redemption-service/internal/domain"
	"github.com/spec-kit/redemption-service/internal/events"
	apperrors "github.com/spec-kit/redemption-service/pkg/util"
)

// memDirectory is an in-memory StaffDirectory.
type memDirectory struct {
	teams map[string]string // pass ID -> team name
}

func (d *memDirectory) ResolveTeam(_ context.Context, passID string) (string, error) {
	if team, ok := d.teams[passID]; ok {
		return team, nil
	}
	return "", &domain.StaffPassNotFoundError{PassID: passID}
}

func (d *memDirectory) GetByPassID(ctx context.Context, passID string) (*domain.Staff, error) {
	team, err := d.ResolveTeam(ctx, passID)
	if err != nil {
		return nil, err
	}
	return &domain.Staff{PassID: passID, TeamName: team}, nil
}

// memLedger is an in-memory RedemptionLedger whose TryClaim performs the
// check-and-insert under one lock, mirroring the store-level atomicity the
// real ledger gets from its unique constraint.
type memLedger struct {
	mu       sync.Mutex
	rows     map[string]domain.Redemption
	claims   atomic.Int32
	findErr  error
	claimErr error
}

func newMemLedger() *memLedger {
	return &memLedger{rows: make(map[string]domain.Redemption)}
}

func (l *memLedger) FindByTeam(_ context.Context, teamName string) (*domain.Redemption, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.findErr != nil {
		return nil, l.findErr
	}
	if row, ok := l.rows[teamName]; ok {
		copied := row
		return &copied, nil
	}
	return nil, nil
}

func (l *memLedger) TryClaim(_ context.Context, teamName, staffPassID string, at time.Time) (bool, error) {
	l.claims.Add(1)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.claimErr != nil {
		return false, l.claimErr
	}
	if _, ok := l.rows[teamName]; ok {
		return false, nil
	}
	l.rows[teamName] = domain.Redemption{TeamName: teamName, StaffPassID: staffPassID, RedeemedAt: at}
	return true, nil
}

func (l *memLedger) ListAll(context.Context) ([]domain.Redemption, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]domain.Redemption, 0, len(l.rows))
	for _, row := range l.rows {
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RedeemedAt.After(result[j].RedeemedAt) })
	return result, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func newTestService(directory *memDirectory, ledger *memLedger, dispatcher events.Dispatcher) *RedemptionService {
	return NewRedemptionService(RedemptionDependencies{
		Directory:  directory,
		Ledger:     ledger,
		Dispatcher: dispatcher,
	})
}

func TestRedeemFirstTime(t *testing.T) {
	directory := &memDirectory{teams: map[string]string{"STAFF_ABCDEFGHIJKL": "DAUNTLESS"}}
	ledger := newMemLedger()
	dispatcher := &recordingDispatcher{}
	svc := newTestService(directory, ledger, dispatcher)

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	result, err := svc.Redeem(context.Background(), "staff_abcdefghijkl")
	require.NoError(t, err)

	assert.True(t, result.Redeemed)
	require.NotNil(t, result.Redemption)
	assert.Equal(t, "DAUNTLESS", result.Redemption.TeamName)
	assert.Equal(t, "STAFF_ABCDEFGHIJKL", result.Redemption.StaffPassID)
	assert.Equal(t, at, result.Redemption.RedeemedAt)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, events.EventRedemptionCreated, dispatcher.events[0].Type)
	assert.Equal(t, "DAUNTLESS", dispatcher.events[0].TeamName)
}

func TestRedeemSecondAttemptSameTeam(t *testing.T) {
	directory := &memDirectory{teams: map[string]string{
		"STAFF_ABCDEFGHIJKL": "DAUNTLESS",
		"BOSS_ABCDEFGHIJKM":  "DAUNTLESS",
	}}
	ledger := newMemLedger()
	svc := newTestService(directory, ledger, nil)

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	_, err := svc.Redeem(context.Background(), "STAFF_ABCDEFGHIJKL")
	require.NoError(t, err)

	svc.now = func() time.Time { return first.Add(time.Hour) }

	result, err := svc.Redeem(context.Background(), "BOSS_ABCDEFGHIJKM")
	require.NoError(t, err)

	assert.False(t, result.Redeemed)
	require.NotNil(t, result.Redemption)
	// The original redeemer and timestamp survive, forever.
	assert.Equal(t, "STAFF_ABCDEFGHIJKL", result.Redemption.StaffPassID)
	assert.Equal(t, first, result.Redemption.RedeemedAt)
	assert.Contains(t, result.Detail, "already redeemed by STAFF_ABCDEFGHIJKL")
}

func TestRedeemValidationErrorNeverTouchesLedger(t *testing.T) {
	ledger := newMemLedger()
	svc := newTestService(&memDirectory{teams: map[string]string{}}, ledger, nil)

	_, err := svc.Redeem(context.Background(), "BOSS1234567890AB")

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.ReasonNoSeparator, vErr.Reason)
	assert.Zero(t, ledger.claims.Load())
}

func TestRedeemUnknownPassID(t *testing.T) {
	ledger := newMemLedger()
	svc := newTestService(&memDirectory{teams: map[string]string{}}, ledger, nil)

	_, err := svc.Redeem(context.Background(), "BOSS_ABCDEFGHIJKL")

	var notFound *domain.StaffPassNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "BOSS_ABCDEFGHIJKL", notFound.PassID)
	assert.Zero(t, ledger.claims.Load())
}

func TestRedeemStorageFailureIsInternalNotConflict(t *testing.T) {
	directory := &memDirectory{teams: map[string]string{"STAFF_ABCDEFGHIJKL": "DAUNTLESS"}}
	ledger := newMemLedger()
	ledger.claimErr = errors.New("connection reset")
	svc := newTestService(directory, ledger, nil)

	_, err := svc.Redeem(context.Background(), "STAFF_ABCDEFGHIJKL")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
}

func TestCheckEligibility(t *testing.T) {
	directory := &memDirectory{teams: map[string]string{"STAFF_ABCDEFGHIJKL": "DAUNTLESS"}}
	ledger := newMemLedger()
	svc := newTestService(directory, ledger, nil)

	result, err := svc.CheckEligibility(context.Background(), "dauntless")
	require.NoError(t, err)
	assert.True(t, result.Eligible)
	assert.Equal(t, "DAUNTLESS", result.TeamName)

	_, err = svc.Redeem(context.Background(), "STAFF_ABCDEFGHIJKL")
	require.NoError(t, err)

	result, err = svc.CheckEligibility(context.Background(), "DAUNTLESS")
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	require.NotNil(t, result.Redemption)
	assert.Contains(t, result.Detail, "STAFF_ABCDEFGHIJKL")
}

func TestCheckEligibilityUnknownTeamReadsEligible(t *testing.T) {
	// Team existence is not validated here; the absence of a ledger row
	// simply reads as eligible.
	svc := newTestService(&memDirectory{teams: map[string]string{}}, newMemLedger(), nil)

	result, err := svc.CheckEligibility(context.Background(), "UNKNOWNTEAM")
	require.NoError(t, err)
	assert.True(t, result.Eligible)
}

func TestRedeemIsolationAcrossTeams(t *testing.T) {
	directory := &memDirectory{teams: map[string]string{
		"STAFF_ABCDEFGHIJKL": "DAUNTLESS",
		"STAFF_MNOPQRSTUVWX": "AMITY",
	}}
	ledger := newMemLedger()
	svc := newTestService(directory, ledger, nil)

	_, err := svc.Redeem(context.Background(), "STAFF_ABCDEFGHIJKL")
	require.NoError(t, err)

	result, err := svc.CheckEligibility(context.Background(), "AMITY")
	require.NoError(t, err)
	assert.True(t, result.Eligible)

	amity, err := svc.Redeem(context.Background(), "STAFF_MNOPQRSTUVWX")
	require.NoError(t, err)
	assert.True(t, amity.Redeemed)
}

// TestConcurrentRedeemSingleWinner launches simultaneous redeem attempts by
// distinct staff of one team and verifies exactly one succeeds while every
// other attempt observes the winner's row.
func TestConcurrentRedeemSingleWinner(t *testing.T) {
	const attempts = 16

	teams := make(map[string]string, attempts)
	passIDs := make([]string, attempts)
	for i := 0; i < attempts; i++ {
		id := "STAFF_ABCDEFGHIJK" + string(rune('A'+i))
		passIDs[i] = id
		teams[id] = "DAUNTLESS"
	}

	ledger := newMemLedger()
	svc := newTestService(&memDirectory{teams: teams}, ledger, nil)

	var wg sync.WaitGroup
	var successCount atomic.Int32
	results := make([]RedemptionResult, attempts)
	errs := make([]error, attempts)

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			result, err := svc.Redeem(context.Background(), passIDs[idx])
			results[idx] = result
			errs[idx] = err
			if result.Redeemed {
				successCount.Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), successCount.Load())

	winner, err := ledger.FindByTeam(context.Background(), "DAUNTLESS")
	require.NoError(t, err)
	require.NotNil(t, winner)

	for _, result := range results {
		require.NotNil(t, result.Redemption)
		assert.Equal(t, winner.StaffPassID, result.Redemption.StaffPassID)
		assert.Equal(t, winner.RedeemedAt, result.Redemption.RedeemedAt)
	}

	all, err := ledger.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLookup(t *testing.T) {
	directory := &memDirectory{teams: map[string]string{"MANAGER_A1B2C3D4E5F6": "CANDOR"}}
	svc := newTestService(directory, newMemLedger(), nil)

	result, err := svc.Lookup(context.Background(), " manager_a1b2c3d4e5f6 ")
	require.NoError(t, err)
	assert.Equal(t, "MANAGER_A1B2C3D4E5F6", result.StaffPassID)
	assert.Equal(t, "CANDOR", result.TeamName)
}

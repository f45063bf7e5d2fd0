package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/redemption-service/internal/domain"
)

type memTeams struct {
	counts map[string]int
}

func (m *memTeams) Exists(_ context.Context, name string) (bool, error) {
	_, ok := m.counts[name]
	return ok, nil
}

func (m *memTeams) CountStaff(_ context.Context, name string) (int, error) {
	return m.counts[name], nil
}

func TestLookupStaff(t *testing.T) {
	directory := &memDirectory{teams: map[string]string{"BOSS_ABCDEFGHIJKL": "DAUNTLESS"}}
	svc := NewStaffService(directory, &memTeams{}, nil)

	staff, err := svc.LookupStaff(context.Background(), "boss_abcdefghijkl")
	require.NoError(t, err)
	assert.Equal(t, "BOSS_ABCDEFGHIJKL", staff.PassID)
	assert.Equal(t, "DAUNTLESS", staff.TeamName)
}

func TestLookupStaffValidatesGrammarFirst(t *testing.T) {
	// The directory is never consulted for a malformed credential.
	svc := NewStaffService(&memDirectory{teams: map[string]string{}}, &memTeams{}, nil)

	_, err := svc.LookupStaff(context.Background(), "MANAGER_123456789012")

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.ReasonSuffixAllNumeric, vErr.Reason)
}

func TestLookupStaffUnknown(t *testing.T) {
	svc := NewStaffService(&memDirectory{teams: map[string]string{}}, &memTeams{}, nil)

	_, err := svc.LookupStaff(context.Background(), "BOSS_ABCDEFGHIJKL")

	var notFound *domain.StaffPassNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetTeam(t *testing.T) {
	svc := NewStaffService(&memDirectory{teams: map[string]string{}}, &memTeams{counts: map[string]int{"DAUNTLESS": 3}}, nil)

	info, err := svc.GetTeam(context.Background(), " dauntless ")
	require.NoError(t, err)
	assert.Equal(t, "DAUNTLESS", info.Name)
	assert.Equal(t, 3, info.StaffCount)
}

func TestGetTeamNotFound(t *testing.T) {
	svc := NewStaffService(&memDirectory{teams: map[string]string{}}, &memTeams{counts: map[string]int{}}, nil)

	_, err := svc.GetTeam(context.Background(), "ERUDITE")

	var notFound *domain.TeamNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ERUDITE", notFound.Name)
}

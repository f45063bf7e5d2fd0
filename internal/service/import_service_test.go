package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStaffRecords(t *testing.T) {
	input := strings.Join([]string{
		"staff_pass_id,team_name,created_at",
		"BOSS_ABCDEFGHIJKL,DAUNTLESS,1620761965320",
		"staff_mnopqrstuvwx, amity ,1620762200000",
	}, "\n")

	records, err := parseStaffRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "BOSS_ABCDEFGHIJKL", records[0].PassID)
	assert.Equal(t, "DAUNTLESS", records[0].TeamName)
	assert.Equal(t, time.UnixMilli(1620761965320).UTC(), records[0].CreatedAt)

	// Values are trimmed and uppercased.
	assert.Equal(t, "STAFF_MNOPQRSTUVWX", records[1].PassID)
	assert.Equal(t, "AMITY", records[1].TeamName)
}

func TestParseStaffRecordsHeaderOrderFree(t *testing.T) {
	input := strings.Join([]string{
		"created_at,team_name,staff_pass_id",
		"1620761965320,EQUINOX,MANAGER_ABCDEFGHIJKL",
	}, "\n")

	records, err := parseStaffRecords(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "MANAGER_ABCDEFGHIJKL", records[0].PassID)
	assert.Equal(t, "EQUINOX", records[0].TeamName)
}

func TestParseStaffRecordsMissingColumn(t *testing.T) {
	input := "staff_pass_id,created_at\nBOSS_ABCDEFGHIJKL,1620761965320"

	_, err := parseStaffRecords(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "team_name")
}

func TestParseStaffRecordsBadTimestamp(t *testing.T) {
	input := strings.Join([]string{
		"staff_pass_id,team_name,created_at",
		"BOSS_ABCDEFGHIJKL,DAUNTLESS,not-a-number",
	}, "\n")

	_, err := parseStaffRecords(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseStaffRecordsEmptyValues(t *testing.T) {
	input := strings.Join([]string{
		"staff_pass_id,team_name,created_at",
		",DAUNTLESS,1620761965320",
	}, "\n")

	_, err := parseStaffRecords(strings.NewReader(input))
	require.Error(t, err)
}

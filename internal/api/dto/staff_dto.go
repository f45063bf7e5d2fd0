package dto

import "time"

// StaffLookupResponse answers GET /api/staff/:staffPassId.
type StaffLookupResponse struct {
	StaffPassID string    `json:"staff_pass_id"`
	TeamName    string    `json:"team_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamResponse answers GET /api/teams/:teamName.
type TeamResponse struct {
	TeamName   string `json:"team_name"`
	StaffCount int    `json:"staff_count"`
}

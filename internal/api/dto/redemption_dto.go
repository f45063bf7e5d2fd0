package dto

import "time"

// RedeemRequest is the body of POST /api/redemptions.
type RedeemRequest struct {
	StaffPassID string `json:"staff_pass_id"`
}

// RedemptionResponse describes a ledger row.
type RedemptionResponse struct {
	TeamName    string    `json:"team_name"`
	StaffPassID string    `json:"staff_pass_id"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}

// EligibilityResponse describes a team's eligibility status.
type EligibilityResponse struct {
	TeamName   string              `json:"team_name"`
	Eligible   bool                `json:"eligible"`
	Detail     string              `json:"detail"`
	Redemption *RedemptionResponse `json:"redemption,omitempty"`
}

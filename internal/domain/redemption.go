package domain

import "time"

// Redemption records a team's single gift redemption. At most one row
// exists per team; once written it is never mutated or deleted.
type Redemption struct {
	TeamName    string
	StaffPassID string
	RedeemedAt  time.Time
}

package domain

import "time"

// Team is the unit of redemption eligibility. Names are stored
// trimmed and uppercased, and are immutable after import.
type Team struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

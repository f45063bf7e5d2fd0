package domain

import "time"

// PassPrefix enumerates the role tags a staff pass ID may start with.
type PassPrefix string

const (
	PassPrefixBoss    PassPrefix = "BOSS"
	PassPrefixManager PassPrefix = "MANAGER"
	PassPrefixStaff   PassPrefix = "STAFF"
)

// AllowedPassPrefixes lists the accepted role tags in display order.
func AllowedPassPrefixes() []PassPrefix {
	return []PassPrefix{PassPrefixBoss, PassPrefixManager, PassPrefixStaff}
}

// IsValidPassPrefix reports whether value is an accepted role tag.
func IsValidPassPrefix(value string) bool {
	switch PassPrefix(value) {
	case PassPrefixBoss, PassPrefixManager, PassPrefixStaff:
		return true
	}
	return false
}

// Staff models a staff member imported from the mapping file.
// Rows are written once at startup and read-only afterwards.
type Staff struct {
	PassID    string
	TeamName  string
	CreatedAt time.Time
}

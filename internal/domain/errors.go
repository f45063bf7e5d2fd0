package domain

import "fmt"

// ValidationReason identifies which rule of the pass ID grammar failed.
// The validator evaluates rules as a priority cascade, so exactly one
// reason is reported per rejected input.
type ValidationReason string

const (
	ReasonEmpty              ValidationReason = "EMPTY"
	ReasonNoSeparator        ValidationReason = "NO_SEPARATOR"
	ReasonSeparatorCount     ValidationReason = "SEPARATOR_COUNT"
	ReasonInvalidPrefix      ValidationReason = "INVALID_PREFIX"
	ReasonSuffixSpecialChars ValidationReason = "SUFFIX_SPECIAL_CHARS"
	ReasonSuffixLength       ValidationReason = "SUFFIX_LENGTH"
	ReasonSuffixAllNumeric   ValidationReason = "SUFFIX_ALL_NUMERIC"
)

// ValidationError reports a malformed staff pass ID. Input carries the
// normalized (trimmed, uppercased) value that was rejected.
type ValidationError struct {
	Input   string
	Reason  ValidationReason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StaffPassNotFoundError reports a well-formed pass ID with no staff row.
type StaffPassNotFoundError struct {
	PassID string
}

func (e *StaffPassNotFoundError) Error() string {
	return fmt.Sprintf("staff pass ID not found: %s", e.PassID)
}

// TeamNotFoundError reports a team name absent from the catalog. The
// redemption workflow never raises this; it belongs to the optional
// catalog check on the lookup surface.
type TeamNotFoundError struct {
	Name string
}

func (e *TeamNotFoundError) Error() string {
	return fmt.Sprintf("team name not found: %s", e.Name)
}

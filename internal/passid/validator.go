// Package passid validates and normalizes staff pass IDs.
package passid

import (
	"fmt"
	"strings"

	"github.com/spec-kit/redemption-service/internal/domain"
)

const (
	separator    = "_"
	suffixLength = 12
)

// Normalize trims and uppercases raw, then checks it against the pass ID
// grammar: PREFIX_SUFFIX where PREFIX is one of the accepted role tags and
// SUFFIX is exactly 12 alphanumeric characters, not all digits.
//
// Rules are evaluated as a priority cascade; the first failing rule
// determines the returned *domain.ValidationError. Normalize is pure and
// safe to call redundantly.
func Normalize(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))

	if id == "" {
		return "", newValidationError(id, domain.ReasonEmpty,
			"staff pass ID cannot be an empty value")
	}

	parts := strings.Split(id, separator)
	switch {
	case len(parts) == 1:
		return "", newValidationError(id, domain.ReasonNoSeparator,
			"staff pass ID does not contain an underscore (_)")
	case len(parts) != 2:
		return "", newValidationError(id, domain.ReasonSeparatorCount,
			fmt.Sprintf("staff pass ID contains %d underscores, expected exactly 1", len(parts)-1))
	}

	prefix, suffix := parts[0], parts[1]

	if !domain.IsValidPassPrefix(prefix) {
		return "", newValidationError(id, domain.ReasonInvalidPrefix,
			fmt.Sprintf("staff pass ID prefix %q is not one of the accepted values (BOSS, MANAGER, STAFF)", prefix))
	}

	switch {
	case !isAlphanumeric(suffix):
		return "", newValidationError(id, domain.ReasonSuffixSpecialChars,
			"staff pass ID suffix contains special characters")
	case len(suffix) != suffixLength:
		return "", newValidationError(id, domain.ReasonSuffixLength,
			fmt.Sprintf("staff pass ID suffix is %d characters, expected exactly %d", len(suffix), suffixLength))
	case isAllDigits(suffix):
		return "", newValidationError(id, domain.ReasonSuffixAllNumeric,
			"staff pass ID suffix must not be purely numeric")
	}

	return id, nil
}

func newValidationError(input string, reason domain.ValidationReason, msg string) *domain.ValidationError {
	return &domain.ValidationError{
		Input:   input,
		Reason:  reason,
		Message: fmt.Sprintf("%s; value provided: %q", msg, input),
	}
}

// isAlphanumeric is vacuously true for an empty suffix so that a bare
// trailing separator is reported as a length problem, not special chars.
func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

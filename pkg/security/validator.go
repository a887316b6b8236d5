package security

import (
	"errors"
	"strings"
	"unicode"
)

const (
	// MaxSearchQueryLength defines the maximum allowed length for name filters
	MaxSearchQueryLength = 100
)

// ValidateSearchQuery checks a name-filter query before it reaches a LIKE
// clause. The query is bound as a parameter and wildcard-escaped downstream,
// so any printable text is a legitimate filter; only oversized input and
// control characters are rejected.
func ValidateSearchQuery(query string) (string, error) {
	if query == "" {
		return "", nil
	}

	if len(query) > MaxSearchQueryLength {
		return "", errors.New("search query too long")
	}

	query = strings.TrimSpace(query)

	for _, char := range query {
		if unicode.IsControl(char) {
			return "", errors.New("search query contains invalid characters")
		}
	}

	return query, nil
}

// SanitizeSearchString prepares a query string for LIKE operations
func SanitizeSearchString(query string) string {
	if query == "" {
		return ""
	}

	// Escape wildcards and other special characters
	query = strings.ReplaceAll(query, "%", "\\%")
	query = strings.ReplaceAll(query, "_", "\\_")

	return query
}

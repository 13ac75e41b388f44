// Package normalize provides helper functions for consistent string
// normalization of flag fields and query parameters.
package normalize

import "strings"

// Team normalizes a team identifier by trimming whitespace.
// Team identifiers are case-sensitive.
func Team(s string) string {
	return strings.TrimSpace(s)
}

// FlagKey normalizes a flag key by trimming whitespace and converting to lowercase.
func FlagKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Email normalizes an email address by trimming whitespace and converting to lowercase.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam normalizes a query parameter by trimming whitespace.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

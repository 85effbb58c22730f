package util

import (
	"strings"
	"unicode"
)

// NormalizeKey folds a config key or gateway name typed by a user into its
// stored form: lowercase, with runs of spaces, underscores and hyphens
// collapsed to one hyphen. "API_Base URL" becomes "api-base-url".
func NormalizeKey(s string) string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	return strings.Join(parts, "-")
}

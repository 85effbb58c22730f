package util

import (
	"fmt"
	"unicode"
)

// ValidateToken checks that a bearer token can be sent in an
// Authorization header: non-empty, no whitespace, printable ASCII only.
func ValidateToken(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	for i, r := range token {
		if unicode.IsSpace(r) {
			return fmt.Errorf("token must not contain whitespace (position %d)", i)
		}
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return fmt.Errorf("token contains a non-printable or non-ASCII character at position %d", i)
		}
	}
	return nil
}

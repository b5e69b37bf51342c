// Package sanitize cleans and validates file base names against the
// [A-Za-z0-9] character policy.
package sanitize

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoValidCharacters means a name had nothing left after cleanup.
	ErrNoValidCharacters = errors.New("filename contains no valid A-Z, a-z, or 0-9 characters after cleanup; please rename this file manually")

	// ErrEmptyName is returned for blank manual input.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNoAlphanumeric is returned when manual input is only spaces.
	ErrNoAlphanumeric = errors.New("name must include at least one letter or number")
)

// InvalidCharactersError lists every distinct offending character of a
// manual name, in the order they first appear.
type InvalidCharactersError struct {
	Chars []rune
}

func (e *InvalidCharactersError) Error() string {
	quoted := make([]string, len(e.Chars))
	for i, r := range e.Chars {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return "invalid character(s) in new name: " + strings.Join(quoted, ", ")
}

func isAlnum(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func hasAlnum(s string) bool {
	return strings.IndexFunc(s, isAlnum) >= 0
}

// Clean replaces every character outside [A-Za-z0-9] with a space and trims
// the edges. Runs of spaces inside the name are kept as they are.
func Clean(base string) (string, error) {
	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		if isAlnum(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" || !hasAlnum(cleaned) {
		return "", ErrNoValidCharacters
	}
	return cleaned, nil
}

// ValidateManual checks a name typed by the user. Unlike Clean it never
// substitutes anything: letters, digits and spaces only.
func ValidateManual(input string) (string, error) {
	candidate := strings.TrimSpace(input)
	if candidate == "" {
		return "", ErrEmptyName
	}

	var invalid []rune
	seen := make(map[rune]struct{})
	for _, r := range candidate {
		if isAlnum(r) || r == ' ' {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		invalid = append(invalid, r)
	}
	if len(invalid) > 0 {
		return "", &InvalidCharactersError{Chars: invalid}
	}

	if !hasAlnum(candidate) {
		return "", ErrNoAlphanumeric
	}
	return candidate, nil
}

package hemis

import "strings"

// SanitizeStudentID strips every non-digit character. Students often
// paste identifiers with spaces or dashes between digit groups.
func SanitizeStudentID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateStudentID reports whether raw contains a well-formed HEMIS
// identifier: 11 or 12 digits after sanitization.
func ValidateStudentID(raw string) bool {
	n := len(SanitizeStudentID(raw))
	return n == 11 || n == 12
}

package hemis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStudentID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"digits only", "12345678901", "12345678901"},
		{"spaces", "998 12 345 6789", "998123456789"},
		{"dashes", "123-456-789-01", "12345678901"},
		{"letters mixed in", "abc12345678901", "12345678901"},
		{"empty", "", ""},
		{"no digits", "hello world", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeStudentID(tt.in))
		})
	}
}

func TestSanitizeStudentIDIdempotent(t *testing.T) {
	for _, in := range []string{"998 12 345 6789", "abc123", "", "12345678901"} {
		once := SanitizeStudentID(in)
		assert.Equal(t, once, SanitizeStudentID(once))
	}
}

func TestValidateStudentID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"12345678901", true},         // 11 digits
		{"123456789012", true},        // 12 digits
		{"998 12 345 6789", true},     // 12 digits after strip
		{"12345", false},              // too short
		{"1234567890123", false},      // too long
		{"abc12345678901", true},      // digit count decides, not prefix
		{"", false},
		{"abcdefghijk", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateStudentID(tt.in), "input %q", tt.in)
	}
}

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FAYZULLAYEV ORZUBEK", "Fayzullayev Orzubek"},
		{"FAYZULLAYEV ORZUBEK KAMALIDDIN O'G'LI", "Fayzullayev Orzubek Kamaliddin O'g'li"},
		{"navoiy alisher", "Navoiy Alisher"},
		{"Navoiy Alisher", "Navoiy Alisher"},
		{"", ""},
		{"A", "A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatName(tt.in), "input %q", tt.in)
	}
}

func TestFormatNameIdempotent(t *testing.T) {
	once := FormatName("NAVOIY ALISHER AHMADOVICH")
	assert.Equal(t, once, FormatName(once))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fresh Milk 500ml", "fresh-milk-500ml"},
		{"  Soda  ", "soda"},
		{"Omo (1kg)", "omo-1kg"},
		{"A--B", "a-b"},
		{"Ugali & Sukuma", "ugali-sukuma"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.input), "input %q", tt.input)
	}
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeProblemCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean code untouched", "FLOW001", "FLOW001"},
		{"slashes replaced", "A/B\\C", "A_B_C"},
		{"consecutive invalid collapse", "A??B", "A_B"},
		{"trimmed", "  ABC  ", "ABC"},
		{"empty falls back", "???", "unknown"},
		{"long code truncated", strings.Repeat("A", 150), strings.Repeat("A", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeProblemCode(tt.in))
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses spaces", "a   b", "a b"},
		{"drops newlines", "a\nb", "ab"},
		{"drops non-ascii", "4★Star", "4Star"},
		{"trims", "  x  ", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestPoolSize(t *testing.T) {
	tests := []struct {
		n, ceiling, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{5, 10, 5},
		{10, 10, 10},
		{50, 10, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PoolSize(tt.n, tt.ceiling), "PoolSize(%d, %d)", tt.n, tt.ceiling)
	}
}

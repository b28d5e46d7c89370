package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "jane doe", Normalize("  Jane Doe  "))
	assert.Equal(t, "", Normalize("   "))
}

func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already clean", "Jane Doe", "Jane Doe"},
		{"leading and trailing", "  Jane Doe  ", "Jane Doe"},
		{"internal runs", "Jane \t\n  Doe", "Jane Doe"},
		{"non-breaking space", "Jane\u00a0Doe", "Jane Doe"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CollapseWhitespace(tt.in))
		})
	}
}

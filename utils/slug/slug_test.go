package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MIT", "mit"},
		{"University of Toronto", "university-of-toronto"},
		{"  ETH Zürich  ", "eth-z-rich"},
		{"St. John's College", "st-john-s-college"},
		{"already-a-slug", "already-a-slug"},
		{"--multiple---hyphens--", "multiple-hyphens"},
		{"42", "42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Make(tt.in), "input %q", tt.in)
	}
}

func TestMakeEmptyInputFallsBack(t *testing.T) {
	got := Make("   !!!   ")
	assert.True(t, strings.HasPrefix(got, "row-"), "got %q", got)
	assert.NotEqual(t, "row-", got)
}

func TestDeriveSourceID(t *testing.T) {
	assert.Equal(t, "us-mit-5", DeriveSourceID("US", "MIT", 5))
	assert.Equal(t, "ca-university-of-toronto-1", DeriveSourceID("ca", "University of Toronto", 1))
}

func TestLegacySourceID(t *testing.T) {
	assert.Equal(t, "us-mit", LegacySourceID("US", "MIT"))
}

package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafetyFilterSoftensAbsolutes(t *testing.T) {
	f := NewSafetyFilter(0)
	got := f.Apply("you must invest in crypto now, guaranteed returns")

	lower := strings.ToLower(got)
	assert.NotContains(t, lower, "must")
	assert.NotContains(t, lower, "guaranteed")
	assert.NotContains(t, lower, "crypto")
	assert.Contains(t, lower, "advisor")
}

func TestSafetyFilterRewriteTable(t *testing.T) {
	f := NewSafetyFilter(0)
	tests := []struct {
		input  string
		banned string
	}{
		{"You should definitely do this", "definitely"},
		{"this always works", "always"},
		{"a risk-free option", "risk-free"},
		{"buy bitcoin today", "bitcoin"},
		{"I guarantee it", "guarantee"},
	}
	for _, tt := range tests {
		got := strings.ToLower(f.Apply(tt.input))
		assert.NotContains(t, got, tt.banned, "input %q", tt.input)
	}
}

func TestSafetyFilterLeavesNormalTextAlone(t *testing.T) {
	f := NewSafetyFilter(0)
	in := "Your savings rate is 20.0%: you keep ₹10,000 of the ₹50,000 you earn each month."
	assert.Equal(t, in, f.Apply(in))
}

func TestSafetyFilterTruncates(t *testing.T) {
	f := NewSafetyFilter(50)
	got := f.Apply(strings.Repeat("numbers and words ", 20))
	assert.LessOrEqual(t, len([]rune(got)), 51)
}

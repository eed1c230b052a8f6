package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		name    string
		s       string
		allowed []string
		want    []Ordering
	}{
		{name: "empty", s: "", want: nil},
		{name: "only commas", s: ",,", want: nil},
		{name: "mixed", s: " -completionRate , studentId", want: []Ordering{{"completionRate", false}, {"studentId", true}}},
		{name: "unknown dropped", s: "-lol,studentId", allowed: []string{"studentId"}, want: []Ordering{{"studentId", true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrdering(tt.s, tt.allowed...))
		})
	}
	assert.Equal(t, "-averageGrade", Ordering{Field: "averageGrade"}.String())
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Cell-1", CleanString("  Cell-1\t"))
	assert.Equal(t, "teacher", CleanString(" Teacher ", true))
	assert.Equal(t, "Teacher", CleanString("Teacher", false))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressSummary(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      string
	}{
		{"no tasks", 0, 0, "No tasks assigned"},
		{"all open", 3, 0, "3 open tasks"},
		{"one open", 3, 2, "1 open task"},
		{"all completed", 3, 3, "0 open tasks"},
		{"completed exceeds total clamps to zero", 2, 5, "0 open tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressSummary(tt.total, tt.completed))
		})
	}
}

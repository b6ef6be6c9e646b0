package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineWithinProject(t *testing.T) {
	projectDue := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	var zero time.Time

	tests := []struct {
		name    string
		taskDue time.Time
		want    bool
	}{
		{"before project deadline", projectDue.Add(-24 * time.Hour), true},
		{"exactly at project deadline", projectDue, true},
		{"after project deadline", projectDue.Add(time.Hour), false},
		{"task without deadline", zero, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeadlineWithinProject(tt.taskDue, projectDue))
		})
	}

	t.Run("project without deadline accepts anything", func(t *testing.T) {
		assert.True(t, DeadlineWithinProject(projectDue.Add(time.Hour), zero))
	})
}

func TestCanCompleteProject(t *testing.T) {
	assert.True(t, CanCompleteProject(0))
	assert.False(t, CanCompleteProject(1))
	assert.False(t, CanCompleteProject(7))
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	var zero time.Time

	tests := []struct {
		name      string
		stored    Status
		startDate time.Time
		dueDate   time.Time
		want      Status
	}{
		{"completed is terminal even past due", StatusCompleted, past, past, StatusCompleted},
		{"past due date becomes overdue", StatusPending, zero, past, StatusOverdue},
		{"in progress ignores overdue when due date passed", StatusInProgress, past, past, StatusOverdue},
		{"within start window becomes in progress", StatusPending, past, future, StatusInProgress},
		{"before start window keeps stored status", StatusPending, future, future, StatusPending},
		{"stored in progress before window stays in progress", StatusInProgress, future, future, StatusInProgress},
		{"no due date never overdue", StatusPending, zero, zero, StatusPending},
		{"no due date keeps in progress", StatusInProgress, zero, zero, StatusInProgress},
		{"empty stored status defaults to pending", "", zero, zero, StatusPending},
		{"task with future deadline keeps stored", StatusInProgress, zero, future, StatusInProgress},
		{"due date exactly now is not overdue", StatusPending, past, now, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveStatus(tt.stored, tt.startDate, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsStorableStatus(t *testing.T) {
	assert.True(t, IsStorableStatus(StatusPending))
	assert.True(t, IsStorableStatus(StatusInProgress))
	assert.True(t, IsStorableStatus(StatusCompleted))
	assert.False(t, IsStorableStatus(StatusOverdue))
	assert.False(t, IsStorableStatus("archived"))
}

func TestIsValidPriority(t *testing.T) {
	assert.True(t, IsValidPriority(PriorityLow))
	assert.True(t, IsValidPriority(PriorityMedium))
	assert.True(t, IsValidPriority(PriorityHigh))
	assert.False(t, IsValidPriority("urgent"))
	assert.False(t, IsValidPriority(""))
}

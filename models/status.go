package models

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in progress"
	StatusCompleted  Status = "completed"
	StatusOverdue    Status = "overdue"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// storableStatuses are the values a client may persist. Overdue is always
// derived from dates and never written to the database.
var storableStatuses = map[Status]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
}

func IsStorableStatus(s Status) bool {
	return storableStatuses[s]
}

func IsValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// EffectiveStatus resolves the lifecycle status visible to clients from the
// stored field and the entity's dates. Completed is terminal. A zero dueDate
// means no deadline constraint. Tasks pass a zero startDate; the in-progress
// window only applies to projects.
func EffectiveStatus(stored Status, startDate, dueDate, now time.Time) Status {
	if stored == StatusCompleted {
		return StatusCompleted
	}
	if !dueDate.IsZero() && dueDate.Before(now) {
		return StatusOverdue
	}
	if !startDate.IsZero() && !dueDate.IsZero() && !now.Before(startDate) && !now.After(dueDate) {
		return StatusInProgress
	}
	if stored == "" {
		return StatusPending
	}
	return stored
}

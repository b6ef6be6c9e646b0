package models

import "time"

// DeadlineWithinProject reports whether a task deadline fits inside its
// project's deadline. A zero date on either side means no constraint.
func DeadlineWithinProject(taskDue, projectDue time.Time) bool {
	if taskDue.IsZero() || projectDue.IsZero() {
		return true
	}
	return !taskDue.After(projectDue)
}

// CanCompleteProject reports whether a project may be marked completed given
// its number of non-completed tasks.
func CanCompleteProject(openTasks int64) bool {
	return openTasks == 0
}

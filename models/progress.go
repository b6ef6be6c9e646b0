package models

import "fmt"

// ProgressSummary builds the human-readable task progress line shown on a
// project card. Open counts are clamped at zero so inconsistent counters never
// produce a negative number.
func ProgressSummary(totalTasks, completedTasks int) string {
	if totalTasks == 0 {
		return "No tasks assigned"
	}

	openTasks := totalTasks - completedTasks
	if openTasks < 0 {
		openTasks = 0
	}

	if openTasks == 1 {
		return "1 open task"
	}
	return fmt.Sprintf("%d open tasks", openTasks)
}

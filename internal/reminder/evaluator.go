package reminder

import (
	"time"

	"task-reminder/internal/model"
)

// ReferenceTime returns the timestamp elapsed time is measured from: the
// last automatic reminder if one ever fired, otherwise creation time.
// Reopening a task does not reset this; a previously reminded task keeps
// measuring from its old lastRemindedAt.
func ReferenceTime(task model.Task) time.Time {
	if task.LastRemindedAt != nil {
		return *task.LastRemindedAt
	}
	return task.CreatedAt
}

// HoursBetween returns the number of whole hours between now and ref,
// truncated. Truncation matters: intervals are whole hours and a task must
// fire exactly at the boundary, never a fractional hour early.
func HoursBetween(now, ref time.Time) int {
	return int(now.Sub(ref).Hours())
}

// NeedsAttention reports whether the task must be escalated. Only WORKING
// tasks are ever escalated; everything else returns false regardless of
// elapsed time.
func NeedsAttention(task model.Task, now time.Time) bool {
	if task.Status != model.StatusWorking {
		return false
	}
	return HoursBetween(now, ReferenceTime(task)) >= task.ReminderInterval
}

package reminder

import (
	"testing"
	"time"

	"task-reminder/internal/model"
)

func TestNeedsAttention_Boundary(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		interval int
		elapsed  time.Duration
		want     bool
	}{
		{
			name:     "one minute before the boundary",
			interval: 24,
			elapsed:  24*time.Hour - time.Minute,
			want:     false,
		},
		{
			name:     "exactly at the boundary",
			interval: 24,
			elapsed:  24 * time.Hour,
			want:     true,
		},
		{
			name:     "well past the boundary",
			interval: 24,
			elapsed:  30 * time.Hour,
			want:     true,
		},
		{
			name:     "fractional hour must not fire early",
			interval: 1,
			elapsed:  59*time.Minute + 59*time.Second,
			want:     false,
		},
		{
			name:     "one hour interval at the boundary",
			interval: 1,
			elapsed:  time.Hour,
			want:     true,
		},
		{
			name:     "freshly created",
			interval: 24,
			elapsed:  0,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := model.Task{
				Status:           model.StatusWorking,
				ReminderInterval: tt.interval,
				CreatedAt:        createdAt,
			}
			if got := NeedsAttention(task, createdAt.Add(tt.elapsed)); got != tt.want {
				t.Errorf("NeedsAttention() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeedsAttention_OnlyWorkingEscalates(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// A week overdue on a 1h interval: still must not fire unless WORKING.
	now := createdAt.Add(7 * 24 * time.Hour)

	for _, status := range []model.TaskStatus{model.StatusInit, model.StatusNeedTakingCare, model.StatusDone} {
		t.Run(status.String(), func(t *testing.T) {
			task := model.Task{
				Status:           status,
				ReminderInterval: 1,
				CreatedAt:        createdAt,
			}
			if NeedsAttention(task, now) {
				t.Errorf("NeedsAttention() = true for status %v", status)
			}
		})
	}
}

func TestReferenceTime(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	remindedAt := createdAt.Add(26 * time.Hour)

	neverReminded := model.Task{CreatedAt: createdAt}
	if got := ReferenceTime(neverReminded); !got.Equal(createdAt) {
		t.Errorf("ReferenceTime() = %v, want createdAt %v", got, createdAt)
	}

	reminded := model.Task{CreatedAt: createdAt, LastRemindedAt: &remindedAt}
	if got := ReferenceTime(reminded); !got.Equal(remindedAt) {
		t.Errorf("ReferenceTime() = %v, want lastRemindedAt %v", got, remindedAt)
	}
}

// A reopened task keeps measuring from its old lastRemindedAt, not from the
// moment it went back to WORKING.
func TestNeedsAttention_ReopenedTaskKeepsOldClock(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	remindedAt := createdAt.Add(24 * time.Hour)

	task := model.Task{
		Status:           model.StatusWorking,
		ReminderInterval: 24,
		CreatedAt:        createdAt,
		LastRemindedAt:   &remindedAt,
	}

	// Back to WORKING two hours after the reminder: 22h of clock already ran.
	if NeedsAttention(task, remindedAt.Add(23*time.Hour)) {
		t.Error("fired before lastRemindedAt + interval")
	}
	if !NeedsAttention(task, remindedAt.Add(24*time.Hour)) {
		t.Error("did not fire at lastRemindedAt + interval")
	}
}

func TestHoursBetween_Truncates(t *testing.T) {
	ref := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{59 * time.Minute, 0},
		{time.Hour, 1},
		{90 * time.Minute, 1},
		{23*time.Hour + 59*time.Minute, 23},
		{24 * time.Hour, 24},
	}
	for _, tt := range tests {
		if got := HoursBetween(ref.Add(tt.elapsed), ref); got != tt.want {
			t.Errorf("HoursBetween(+%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

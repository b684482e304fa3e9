package model

import "time"

// TaskStatus is the position of a task on the board. Stored as a small
// integer; the values are part of the persisted row format and must not be
// reordered.
type TaskStatus int

const (
	StatusInit TaskStatus = iota
	StatusWorking
	StatusNeedTakingCare
	StatusDone
)

// StatusLabels maps statuses to their display names.
var StatusLabels = map[TaskStatus]string{
	StatusInit:           "Init",
	StatusWorking:        "Working",
	StatusNeedTakingCare: "Need Taking Care",
	StatusDone:           "Done",
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s >= StatusInit && s <= StatusDone
}

func (s TaskStatus) String() string {
	if label, ok := StatusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

// DefaultReminderInterval is applied when a task is created without a
// positive interval, in hours.
const DefaultReminderInterval = 24

// Task represents a single item on the board.
//
// LastRemindedAt is set only by the automatic escalation path; manual status
// changes never touch it. The reminder clock measures from LastRemindedAt
// when present, otherwise from CreatedAt.
type Task struct {
	ID               string `gorm:"primaryKey"`
	Name             string
	Description      string // markdown
	URL              string
	JiraID           string
	Status           TaskStatus `gorm:"index"`
	ReminderInterval int        // hours, >= 1
	Color            string
	IsPinned         bool `gorm:"default:false"`
	PinnedAt         *time.Time
	LastRemindedAt   *time.Time
	SortOrder        int `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

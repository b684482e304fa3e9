package server

import (
	"time"

	"task-reminder/internal/model"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// TaskResponse mirrors the task row in the camelCase shape browser clients
// expect.
type TaskResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	URL              string     `json:"url"`
	JiraID           string     `json:"jiraId,omitempty"`
	Status           int        `json:"status"`
	StatusLabel      string     `json:"statusLabel"`
	ReminderInterval int        `json:"reminderInterval"`
	Color            string     `json:"color,omitempty"`
	IsPinned         bool       `json:"isPinned"`
	PinnedAt         *time.Time `json:"pinnedAt"`
	LastRemindedAt   *time.Time `json:"lastRemindedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func toTaskResponse(t model.Task) TaskResponse {
	return TaskResponse{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		URL:              t.URL,
		JiraID:           t.JiraID,
		Status:           int(t.Status),
		StatusLabel:      t.Status.String(),
		ReminderInterval: t.ReminderInterval,
		Color:            t.Color,
		IsPinned:         t.IsPinned,
		PinnedAt:         t.PinnedAt,
		LastRemindedAt:   t.LastRemindedAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toTaskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

// CreateTaskRequest is the POST /api/v1/tasks body.
type CreateTaskRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	URL              string `json:"url"`
	JiraID           string `json:"jiraId"`
	ReminderInterval int    `json:"reminderInterval"`
	Color            string `json:"color"`
}

// UpdateTaskRequest is a partial update; absent fields stay untouched.
type UpdateTaskRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	URL              *string `json:"url"`
	JiraID           *string `json:"jiraId"`
	ReminderInterval *int    `json:"reminderInterval"`
	Color            *string `json:"color"`
}

// StatusRequest is the PUT /api/v1/tasks/:id/status body.
type StatusRequest struct {
	Status int `json:"status"`
}

// PinRequest is the PUT /api/v1/tasks/:id/pin body.
type PinRequest struct {
	Pinned bool `json:"pinned"`
}

// ReorderItem is one card position in a full-board reorder.
type ReorderItem struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
}

// ReorderRequest carries the whole board in its new order.
type ReorderRequest struct {
	Tasks []ReorderItem `json:"tasks"`
}

// TasksChangedMessage is pushed over the WebSocket feed whenever the task
// set changes remotely.
type TasksChangedMessage struct {
	Type  string         `json:"type"`
	Tasks []TaskResponse `json:"tasks"`
}

// VocabularyResponse mirrors one vocabulary row. The structured sections are
// passed through as the stored JSON strings.
type VocabularyResponse struct {
	ID              string     `json:"id"`
	Word            string     `json:"word"`
	IPA             string     `json:"ipa"`
	Meaning         string     `json:"meaning"`
	Usage           string     `json:"usage"`
	CulturalContext string     `json:"culturalContext"`
	IsFavorite      bool       `json:"isFavorite"`
	ReviewCount     int        `json:"reviewCount"`
	LastReviewedAt  *time.Time `json:"lastReviewedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toVocabularyResponse(v model.Vocabulary) VocabularyResponse {
	return VocabularyResponse{
		ID:              v.ID,
		Word:            v.Word,
		IPA:             v.IPA,
		Meaning:         v.Meaning,
		Usage:           v.Usage,
		CulturalContext: v.CulturalContext,
		IsFavorite:      v.IsFavorite,
		ReviewCount:     v.ReviewCount,
		LastReviewedAt:  v.LastReviewedAt,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// CreateVocabularyRequest is the POST /api/v1/vocabulary body.
type CreateVocabularyRequest struct {
	Word            string `json:"word"`
	IPA             string `json:"ipa"`
	Meaning         string `json:"meaning"`
	Usage           string `json:"usage"`
	CulturalContext string `json:"culturalContext"`
}

// GenerateRequest is the POST /api/v1/vocabulary/generate body.
type GenerateRequest struct {
	Word string `json:"word"`
}

// FavoriteRequest is the PUT /api/v1/vocabulary/:id/favorite body.
type FavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

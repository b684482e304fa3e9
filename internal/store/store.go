package store

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-reminder/internal/model"
	"task-reminder/internal/repository"
)

// TaskInput is the data required to create a task.
type TaskInput struct {
	Name             string
	Description      string
	URL              string
	JiraID           string
	ReminderInterval int
	Color            string
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Name             *string
	Description      *string
	URL              *string
	JiraID           *string
	ReminderInterval *int
	Color            *string
}

// Store is the single point of mutation and query for tasks. It keeps an
// optimistic in-memory copy of the task list, persists through the
// repository, and reconciles whenever the repository change feed fires:
// server-confirmed state always supersedes the local copy.
type Store struct {
	repo *repository.TaskRepository

	mu     sync.RWMutex
	tasks  []model.Task
	loaded bool

	subMu   sync.Mutex
	subs    map[int]func([]model.Task)
	nextSub int
}

func New(repo *repository.TaskRepository) *Store {
	return &Store{
		repo: repo,
		subs: make(map[int]func([]model.Task)),
	}
}

// LoadAll fetches the full task set, newest first. Until a load succeeds the
// store reports Loaded() == false and the scheduler must not run.
func (s *Store) LoadAll(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	s.mu.Lock()
	s.tasks = tasks
	s.loaded = true
	s.mu.Unlock()

	return s.snapshot(), nil
}

// Loaded reports whether the initial load has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Tasks returns a copy of the current task list.
func (s *Store) Tasks() []model.Task {
	return s.snapshot()
}

// Create validates the input, assigns id and timestamps, and persists the
// task in its initial status. A non-positive reminder interval is coerced to
// the default rather than rejected.
func (s *Store) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	interval := input.ReminderInterval
	if interval < 1 {
		interval = model.DefaultReminderInterval
	}

	now := time.Now()
	task := model.Task{
		ID:               uuid.NewString(),
		Name:             name,
		Description:      input.Description,
		URL:              input.URL,
		JiraID:           input.JiraID,
		Status:           model.StatusInit,
		ReminderInterval: interval,
		Color:            input.Color,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, &task); err != nil {
		return nil, &PersistenceError{Op: "create task", Err: err}
	}

	// The change-feed refresh for this insert may already have replaced the
	// local list; upsert rather than prepend so the row is never doubled.
	s.upsertLocal(task)

	return &task, nil
}

// Update applies only the provided fields and refreshes updatedAt.
func (s *Store) Update(ctx context.Context, id string, patch TaskPatch) (*model.Task, error) {
	fields := make(map[string]interface{})
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		fields["name"] = name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.URL != nil {
		fields["url"] = *patch.URL
	}
	if patch.JiraID != nil {
		fields["jira_id"] = *patch.JiraID
	}
	if patch.ReminderInterval != nil {
		interval := *patch.ReminderInterval
		if interval < 1 {
			interval = model.DefaultReminderInterval
		}
		fields["reminder_interval"] = interval
	}
	if patch.Color != nil {
		fields["color"] = *patch.Color
	}
	if len(fields) == 0 {
		return nil, &ValidationError{Field: "patch", Reason: "no fields to update"}
	}

	return s.applyUpdate(ctx, "update task", id, fields)
}

// SetStatus is the unconditional manual transition: any status to any
// status, never touching lastRemindedAt.
func (s *Store) SetStatus(ctx context.Context, id string, status model.TaskStatus) (*model.Task, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "unknown status value"}
	}
	return s.applyUpdate(ctx, "set status", id, map[string]interface{}{
		"status": status,
	})
}

// MarkReminded is the only path that sets the attention-needed status and
// lastRemindedAt together. Safe to call more than once; the later call wins.
func (s *Store) MarkReminded(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.MarkReminded(ctx, id, time.Now())
	if err != nil {
		return nil, s.mapError("mark reminded", id, err)
	}
	s.upsertLocal(*task)
	return task, nil
}

// TogglePin sets the pin flag; pinning stamps pinnedAt, unpinning clears it.
func (s *Store) TogglePin(ctx context.Context, id string, pinned bool) (*model.Task, error) {
	fields := map[string]interface{}{
		"is_pinned": pinned,
		"pinned_at": nil,
	}
	if pinned {
		fields["pinned_at"] = time.Now()
	}
	return s.applyUpdate(ctx, "toggle pin", id, fields)
}

// Delete removes a task permanently. Deleting an id that is already gone is
// not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return &PersistenceError{Op: "delete task", Err: err}
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Reorder applies a full-list reorder (and any status changes carried by the
// moved cards) to local state immediately, then persists in the background.
// A persistence failure is logged, not rolled back; the next change-feed
// refresh restores server truth.
func (s *Store) Reorder(tasks []model.Task) {
	ordered := make([]model.Task, len(tasks))
	copy(ordered, tasks)
	for i := range ordered {
		ordered[i].SortOrder = i + 1
	}

	s.mu.Lock()
	s.tasks = ordered
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.repo.SaveOrder(ctx, ordered); err != nil {
			log.Printf("persist reorder: %v", err)
		}
	}()
}

// Subscribe registers a callback invoked with the refreshed full list after
// every remote change. The returned function unsubscribes; it is safe to
// call more than once.
func (s *Store) Subscribe(cb func([]model.Task)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = cb
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// Watch consumes the repository change feed until ctx is cancelled. On every
// event it re-reads the full set, replaces the local copy, and notifies
// subscribers.
func (s *Store) Watch(ctx context.Context) {
	events, cancel := s.repo.Changes()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.refresh(ctx, ev)
		}
	}
}

func (s *Store) refresh(ctx context.Context, ev repository.ChangeEvent) {
	if !s.Loaded() {
		return
	}

	tasks, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Printf("refresh after %s: %v", ev.Kind, err)
		return
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	snapshot := s.snapshot()
	s.subMu.Lock()
	subs := make([]func([]model.Task), 0, len(s.subs))
	for _, cb := range s.subs {
		subs = append(subs, cb)
	}
	s.subMu.Unlock()

	for _, cb := range subs {
		cb(snapshot)
	}
}

func (s *Store) applyUpdate(ctx context.Context, op, id string, fields map[string]interface{}) (*model.Task, error) {
	task, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, s.mapError(op, id, err)
	}
	s.upsertLocal(*task)
	return task, nil
}

func (s *Store) mapError(op, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{ID: id}
	}
	return &PersistenceError{Op: op, Err: err}
}

// upsertLocal replaces one task in the local list with its server-confirmed
// row, keeping the per-task update atomic from a reader's point of view.
func (s *Store) upsertLocal(task model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			return
		}
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
}

func (s *Store) snapshot() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-reminder/internal/model"
)

// TaskRepository handles CRUD for tasks and publishes a change event after
// every successful mutation.
type TaskRepository struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db, notifier: NewNotifier()}
}

// Changes subscribes to the repository change feed.
func (r *TaskRepository) Changes() (<-chan ChangeEvent, func()) {
	return r.notifier.Subscribe()
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	r.notifier.Publish(ChangeEvent{Kind: ChangeInsert, ID: task.ID})
	return nil
}

// ListAll returns every task: pinned first (most recently pinned on top),
// then by board position, then newest first. Reordered tasks carry a positive
// sort order and keep their position ahead of the creation-time rule.
func (r *TaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Order("is_pinned DESC, pinned_at DESC, sort_order ASC, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies the given column set to one row and returns the stored row.
// Returns gorm.ErrRecordNotFound if the id does not exist.
func (r *TaskRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Task, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	task, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.notifier.Publish(ChangeEvent{Kind: ChangeUpdate, ID: id})
	return task, nil
}

// MarkReminded flips the task into the attention-needed status and stamps
// last_reminded_at in the same UPDATE, so the two fields can never diverge.
func (r *TaskRepository) MarkReminded(ctx context.Context, id string, now time.Time) (*model.Task, error) {
	return r.Update(ctx, id, map[string]interface{}{
		"status":           model.StatusNeedTakingCare,
		"last_reminded_at": now,
	})
}

// Delete removes a task. Returns false without error when the row was
// already gone.
func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return false, fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	r.notifier.Publish(ChangeEvent{Kind: ChangeDelete, ID: id})
	return true, nil
}

// SaveOrder persists board positions and statuses for a full-list reorder in
// one transaction. Rows deleted concurrently are skipped.
func (r *TaskRepository) SaveOrder(ctx context.Context, tasks []model.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, task := range tasks {
			res := tx.Model(&model.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
				"sort_order": i + 1,
				"status":     task.Status,
			})
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	r.notifier.Publish(ChangeEvent{Kind: ChangeUpdate})
	return nil
}

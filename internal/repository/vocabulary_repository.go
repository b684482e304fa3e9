package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"task-reminder/internal/model"
)

// VocabularyRepository handles CRUD for vocabulary entries.
type VocabularyRepository struct {
	db *gorm.DB
}

func NewVocabularyRepository(db *gorm.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

func (r *VocabularyRepository) Create(ctx context.Context, entry *model.Vocabulary) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create vocabulary: %w", err)
	}
	return nil
}

// ListAll returns entries newest first, optionally filtered by a substring
// match on the word and by favorite flag.
func (r *VocabularyRepository) ListAll(ctx context.Context, search string, favoritesOnly bool) ([]model.Vocabulary, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if search = strings.TrimSpace(search); search != "" {
		q = q.Where("word LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if favoritesOnly {
		q = q.Where("is_favorite = ?", true)
	}

	var entries []model.Vocabulary
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}
	return entries, nil
}

func (r *VocabularyRepository) FindByID(ctx context.Context, id string) (*model.Vocabulary, error) {
	var entry model.Vocabulary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByWord looks an entry up by its exact word, case-insensitive. Returns
// nil without error when the word is unknown.
func (r *VocabularyRepository) FindByWord(ctx context.Context, word string) (*model.Vocabulary, error) {
	var entry model.Vocabulary
	err := r.db.WithContext(ctx).Where("word = ?", strings.ToLower(strings.TrimSpace(word))).First(&entry).Error
	switch {
	case err == nil:
		return &entry, nil
	case err == gorm.ErrRecordNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("find vocabulary: %w", err)
	}
}

func (r *VocabularyRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Vocabulary, error) {
	res := r.db.WithContext(ctx).Model(&model.Vocabulary{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update vocabulary: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// MarkReviewed bumps the review counter and stamps the review time in one
// UPDATE.
func (r *VocabularyRepository) MarkReviewed(ctx context.Context, id string, now time.Time) (*model.Vocabulary, error) {
	res := r.db.WithContext(ctx).Model(&model.Vocabulary{}).Where("id = ?", id).Updates(map[string]interface{}{
		"review_count":     gorm.Expr("review_count + 1"),
		"last_reviewed_at": now,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("mark reviewed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *VocabularyRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Vocabulary{})
	if res.Error != nil {
		return false, fmt.Errorf("delete vocabulary: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

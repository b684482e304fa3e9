package vocab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-reminder/internal/ai"
	"task-reminder/internal/model"
	"task-reminder/internal/repository"
)

var (
	ErrWordRequired = errors.New("word is required")
	ErrWordExists   = errors.New("word already exists")
)

// Generator produces a structured entry for one word.
type Generator interface {
	Generate(ctx context.Context, word string) (*ai.Entry, error)
}

// Input is a manually entered vocabulary record.
type Input struct {
	Word            string
	IPA             string
	Meaning         string
	Usage           string
	CulturalContext string
}

// Service wraps vocabulary business logic: manual entries, AI generation,
// favorites and review tracking.
type Service struct {
	repo *repository.VocabularyRepository
	gen  Generator
}

func NewService(repo *repository.VocabularyRepository, gen Generator) *Service {
	return &Service{repo: repo, gen: gen}
}

func (s *Service) List(ctx context.Context, search string, favoritesOnly bool) ([]model.Vocabulary, error) {
	return s.repo.ListAll(ctx, search, favoritesOnly)
}

func (s *Service) Get(ctx context.Context, id string) (*model.Vocabulary, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a manually entered word. Duplicate words are rejected before
// hitting the unique index so the caller gets a readable error.
func (s *Service) Create(ctx context.Context, input Input) (*model.Vocabulary, error) {
	word := strings.ToLower(strings.TrimSpace(input.Word))
	if word == "" {
		return nil, ErrWordRequired
	}

	existing, err := s.repo.FindByWord(ctx, word)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%q: %w", word, ErrWordExists)
	}

	entry := model.Vocabulary{
		ID:              uuid.NewString(),
		Word:            word,
		IPA:             input.IPA,
		Meaning:         input.Meaning,
		Usage:           input.Usage,
		CulturalContext: input.CulturalContext,
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Generate returns the stored entry for word if one exists, otherwise asks
// the AI provider and persists the result. The structured sections are
// stored as JSON documents.
func (s *Service) Generate(ctx context.Context, word string) (*model.Vocabulary, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, ErrWordRequired
	}

	existing, err := s.repo.FindByWord(ctx, word)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Printf("[info] vocabulary cache hit word=%q", word)
		return existing, nil
	}

	generated, err := s.gen.Generate(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("generate %q: %w", word, err)
	}

	entry := model.Vocabulary{
		ID:              uuid.NewString(),
		Word:            word,
		IPA:             mustJSON(generated.IPA),
		Meaning:         mustJSON(generated.Meaning),
		Usage:           mustJSON(generated.Usage),
		CulturalContext: mustJSON(generated.CulturalContext),
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	log.Printf("[info] vocabulary generated word=%q id=%s", word, entry.ID)
	return &entry, nil
}

func (s *Service) ToggleFavorite(ctx context.Context, id string, favorite bool) (*model.Vocabulary, error) {
	return s.repo.Update(ctx, id, map[string]interface{}{
		"is_favorite": favorite,
	})
}

func (s *Service) MarkReviewed(ctx context.Context, id string) (*model.Vocabulary, error) {
	return s.repo.MarkReviewed(ctx, id, time.Now())
}

// Delete removes an entry; deleting an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Delete(ctx, id)
	return err
}

func mustJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Only reachable with unmarshalable types, which Entry never holds.
		return "{}"
	}
	return string(data)
}

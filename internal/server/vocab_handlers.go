package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"task-reminder/internal/vocab"
)

// listVocabulary handles GET /api/v1/vocabulary with optional ?search= and
// ?favorites=true filters.
func (s *Server) listVocabulary(c *fiber.Ctx) error {
	entries, err := s.vocab.List(c.UserContext(), c.Query("search"), c.Query("favorites") == "true")
	if err != nil {
		return s.vocabError(c, err)
	}

	out := make([]VocabularyResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toVocabularyResponse(entry))
	}
	return c.JSON(out)
}

// getVocabulary handles GET /api/v1/vocabulary/:id.
func (s *Server) getVocabulary(c *fiber.Ctx) error {
	entry, err := s.vocab.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.vocabError(c, err)
	}
	return c.JSON(toVocabularyResponse(*entry))
}

// createVocabulary handles POST /api/v1/vocabulary for manual entries.
func (s *Server) createVocabulary(c *fiber.Ctx) error {
	var req CreateVocabularyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}

	entry, err := s.vocab.Create(c.UserContext(), vocab.Input{
		Word:            req.Word,
		IPA:             req.IPA,
		Meaning:         req.Meaning,
		Usage:           req.Usage,
		CulturalContext: req.CulturalContext,
	})
	if err != nil {
		return s.vocabError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toVocabularyResponse(*entry))
}

// generateVocabulary handles POST /api/v1/vocabulary/generate. Returns the
// cached entry when the word is already known.
func (s *Server) generateVocabulary(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}

	entry, err := s.vocab.Generate(c.UserContext(), req.Word)
	if err != nil {
		return s.vocabError(c, err)
	}
	return c.JSON(toVocabularyResponse(*entry))
}

// favoriteVocabulary handles PUT /api/v1/vocabulary/:id/favorite.
func (s *Server) favoriteVocabulary(c *fiber.Ctx) error {
	var req FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}

	entry, err := s.vocab.ToggleFavorite(c.UserContext(), c.Params("id"), req.Favorite)
	if err != nil {
		return s.vocabError(c, err)
	}
	return c.JSON(toVocabularyResponse(*entry))
}

// reviewVocabulary handles POST /api/v1/vocabulary/:id/review.
func (s *Server) reviewVocabulary(c *fiber.Ctx) error {
	entry, err := s.vocab.MarkReviewed(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.vocabError(c, err)
	}
	return c.JSON(toVocabularyResponse(*entry))
}

// deleteVocabulary handles DELETE /api/v1/vocabulary/:id.
func (s *Server) deleteVocabulary(c *fiber.Ctx) error {
	if err := s.vocab.Delete(c.UserContext(), c.Params("id")); err != nil {
		return s.vocabError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) vocabError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, vocab.ErrWordRequired):
		return badRequest(c, "validation_error", err.Error())
	case errors.Is(err, vocab.ErrWordExists):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: err.Error(),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Vocabulary entry not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

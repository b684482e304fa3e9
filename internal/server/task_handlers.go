package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"task-reminder/internal/model"
	"task-reminder/internal/store"
)

// listTasks handles GET /api/v1/tasks. Serves from the store's local copy
// once loaded; triggers a load otherwise.
func (s *Server) listTasks(c *fiber.Ctx) error {
	if !s.store.Loaded() {
		if _, err := s.store.LoadAll(c.UserContext()); err != nil {
			return s.taskError(c, err)
		}
	}
	return c.JSON(toTaskResponses(s.store.Tasks()))
}

// createTask handles POST /api/v1/tasks.
func (s *Server) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}

	task, err := s.store.Create(c.UserContext(), store.TaskInput{
		Name:             req.Name,
		Description:      req.Description,
		URL:              req.URL,
		JiraID:           req.JiraID,
		ReminderInterval: req.ReminderInterval,
		Color:            req.Color,
	})
	if err != nil {
		return s.taskError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(*task))
}

// updateTask handles PATCH /api/v1/tasks/:id.
func (s *Server) updateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}

	task, err := s.store.Update(c.UserContext(), c.Params("id"), store.TaskPatch{
		Name:             req.Name,
		Description:      req.Description,
		URL:              req.URL,
		JiraID:           req.JiraID,
		ReminderInterval: req.ReminderInterval,
		Color:            req.Color,
	})
	if err != nil {
		return s.taskError(c, err)
	}
	return c.JSON(toTaskResponse(*task))
}

// setTaskStatus handles PUT /api/v1/tasks/:id/status. Manual transitions
// are unconditional: any status to any status.
func (s *Server) setTaskStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}

	task, err := s.store.SetStatus(c.UserContext(), c.Params("id"), model.TaskStatus(req.Status))
	if err != nil {
		return s.taskError(c, err)
	}
	return c.JSON(toTaskResponse(*task))
}

// pinTask handles PUT /api/v1/tasks/:id/pin.
func (s *Server) pinTask(c *fiber.Ctx) error {
	var req PinRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}

	task, err := s.store.TogglePin(c.UserContext(), c.Params("id"), req.Pinned)
	if err != nil {
		return s.taskError(c, err)
	}
	return c.JSON(toTaskResponse(*task))
}

// deleteTask handles DELETE /api/v1/tasks/:id. Deleting an id that is
// already gone still returns 204.
func (s *Server) deleteTask(c *fiber.Ctx) error {
	if err := s.store.Delete(c.UserContext(), c.Params("id")); err != nil {
		return s.taskError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// reorderTasks handles PUT /api/v1/tasks/reorder. The board sends its full
// card list in the new order; positions and status changes are applied to
// local state immediately and persisted in the background.
func (s *Server) reorderTasks(c *fiber.Ctx) error {
	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid_request", "Invalid request body")
	}
	if len(req.Tasks) == 0 {
		return badRequest(c, "validation_error", "Task list is empty")
	}

	current := make(map[string]model.Task)
	for _, task := range s.store.Tasks() {
		current[task.ID] = task
	}

	ordered := make([]model.Task, 0, len(req.Tasks))
	for _, item := range req.Tasks {
		task, ok := current[item.ID]
		if !ok {
			// Deleted concurrently; skip rather than fail the whole board.
			continue
		}
		if status := model.TaskStatus(item.Status); status.Valid() {
			task.Status = status
		}
		ordered = append(ordered, task)
	}

	s.store.Reorder(ordered)
	return c.JSON(toTaskResponses(s.store.Tasks()))
}

func (s *Server) taskError(c *fiber.Ctx, err error) error {
	var (
		validation *store.ValidationError
		notFound   *store.NotFoundError
		persist    *store.PersistenceError
		load       *store.LoadError
	)
	switch {
	case errors.As(err, &validation):
		return badRequest(c, "validation_error", validation.Error())
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: notFound.Error(),
		})
	case errors.As(err, &persist):
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "persistence_error",
			Message: persist.Error(),
		})
	case errors.As(err, &load):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "load_error",
			Message: load.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   code,
		Message: message,
	})
}

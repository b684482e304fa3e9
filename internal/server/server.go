package server

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"task-reminder/internal/model"
	"task-reminder/internal/store"
	"task-reminder/internal/vocab"
)

// Server exposes the task board and vocabulary features over HTTP, plus a
// WebSocket change feed replacing the original realtime subscription.
type Server struct {
	app   *fiber.App
	store *store.Store
	vocab *vocab.Service
	hub   *Hub
	unsub func()
}

func New(st *store.Store, vs *vocab.Service) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "task-reminder",
			DisableStartupMessage: true,
		}),
		store: st,
		vocab: vs,
		hub:   NewHub(),
	}
	s.setupRoutes()
	return s
}

// Start runs the hub and wires the store subscription into it. The
// subscription is released and the hub drained when ctx is cancelled.
func (s *Server) Start(ctx context.Context) {
	go s.hub.Run(ctx)
	s.unsub = s.store.Subscribe(func(tasks []model.Task) {
		s.hub.Broadcast(TasksChangedMessage{
			Type:  "tasks_changed",
			Tasks: toTaskResponses(tasks),
		})
	})
	go func() {
		<-ctx.Done()
		s.unsub()
	}()
}

// Listen blocks serving HTTP until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Wait blocks until the WebSocket hub has drained after shutdown.
func (s *Server) Wait() {
	s.hub.Wait()
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.health)

	// WebSocket change feed
	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.app.Get("/ws", websocket.New(s.handleWebSocket))

	api := s.app.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.Get("/", s.listTasks)
	tasks.Post("/", s.createTask)
	tasks.Put("/reorder", s.reorderTasks)
	tasks.Patch("/:id", s.updateTask)
	tasks.Put("/:id/status", s.setTaskStatus)
	tasks.Put("/:id/pin", s.pinTask)
	tasks.Delete("/:id", s.deleteTask)

	words := api.Group("/vocabulary")
	words.Get("/", s.listVocabulary)
	words.Post("/", s.createVocabulary)
	words.Post("/generate", s.generateVocabulary)
	words.Get("/:id", s.getVocabulary)
	words.Put("/:id/favorite", s.favoriteVocabulary)
	words.Post("/:id/review", s.reviewVocabulary)
	words.Delete("/:id", s.deleteVocabulary)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"tasks_loaded":      s.store.Loaded(),
			"connected_clients": s.hub.ClientCount(),
		},
	})
}

// handleWebSocket keeps a client registered until it disconnects. The feed
// is write-only; inbound frames are consumed just to detect the close.
func (s *Server) handleWebSocket(conn *websocket.Conn) {
	s.hub.Register(conn)
	defer s.hub.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Murari1104/pharmaAi/internal/assistant"
	"github.com/Murari1104/pharmaAi/internal/config"
	"github.com/Murari1104/pharmaAi/internal/metrics"
	"github.com/Murari1104/pharmaAi/internal/profile"
	"github.com/Murari1104/pharmaAi/internal/schedule"
	"github.com/Murari1104/pharmaAi/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Server handles HTTP API and WebSocket
type Server struct {
	app       *fiber.App
	config    *config.Config
	store     *store.Store
	assistant *assistant.Assistant
	timeline  *schedule.Timeline
	profile   *profile.Service
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// New creates a new API server
func New(cfg *config.Config, st *store.Store, a *assistant.Assistant, tl *schedule.Timeline, prof *profile.Service, m *metrics.Metrics, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	s := &Server{
		app:       app,
		config:    cfg,
		store:     st,
		assistant: a,
		timeline:  tl,
		profile:   prof,
		metrics:   m,
		logger:    logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Middleware
	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(s.config.Security.AllowOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check and metrics
	s.app.Get("/api/health", s.handleHealth)
	s.app.Get("/metrics", s.handleMetricsText)

	api := s.app.Group("/api")
	api.Get("/metrics", s.handleMetricsJSON)

	// Chat
	api.Post("/chat", s.handleChat)

	// Conversations
	api.Get("/conversations", s.handleListConversations)
	api.Get("/conversations/:id/messages", s.handleGetMessages)
	api.Delete("/conversations/:id", s.handleDeleteConversation)

	// Timeline
	api.Get("/timeline", s.handleTimeline)
	api.Get("/timeline/history", s.handleTimelineHistory)
	api.Post("/timeline/entries", s.handleAddEntry)
	api.Post("/timeline/entries/:id/toggle", s.handleToggleEntry)

	// Profile
	api.Get("/profile", s.handleGetProfile)
	api.Put("/profile", s.handleUpdateProfile)
	api.Get("/profile/qr", s.handleProfileQR)

	// WebSocket chat
	s.app.Get("/ws/chat", websocket.New(s.handleWebSocket))
}

// App exposes the underlying fiber app for in-process testing
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Address, s.config.Server.Port)
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(ctx)
}

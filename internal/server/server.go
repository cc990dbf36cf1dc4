package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dialoguebot/internal/config"
	"dialoguebot/internal/handler"
	"dialoguebot/internal/middleware"
	"dialoguebot/internal/repository"
)

// Server is the small admin HTTP surface that runs alongside the bot.
type Server struct {
	router *gin.Engine
	repo   repository.DialogueRepository
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(cfg *config.Config, repo repository.DialogueRepository, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	if s.cfg.Server.AdminToken == "" {
		s.logger.Warn("Admin token not configured, /api routes disabled")
		return
	}

	recordsHandler := handler.NewRecordsHandler(s.repo, s.logger)

	api := s.router.Group("/api")
	api.Use(middleware.TokenAuthMiddleware(s.cfg.Server.AdminToken, s.logger))
	{
		api.GET("/records", recordsHandler.List)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Admin server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Error("Admin server stopped", zap.Error(err))
	}
}

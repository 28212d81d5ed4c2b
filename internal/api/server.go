// Package api exposes the reconciliation review workflow over HTTP. The
// engine itself stays a library; this surface is what the review UI talks
// to: start a batch, inspect and filter it, validate or reject proposals,
// and commit the validated ones back to the ledger.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/logistiga/bank-reconciliation/internal/api/middleware"
	"github.com/logistiga/bank-reconciliation/internal/infrastructure/storage"
	"github.com/logistiga/bank-reconciliation/internal/recon"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP review server. Batches live in memory for the
// duration of the review session; only the commit step touches the ledger.
type Server struct {
	config Config
	router *gin.Engine
	logger *slog.Logger
	repo   storage.Repository

	mu      sync.Mutex
	batches map[string]*batch
}

type batch struct {
	id              string
	createdAt       time.Time
	reconciliations []recon.Reconciliation
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logging(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		config:  cfg,
		router:  router,
		logger:  logger,
		repo:    repo,
		batches: make(map[string]*batch),
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.health)

	api := s.router.Group("/api")
	{
		api.POST("/batches", s.createBatch)
		api.GET("/batches/:id", s.getBatch)
		api.GET("/batches/:id/stats", s.getBatchStats)
		api.POST("/batches/:id/lines/:lineID/validate", s.validateLine)
		api.POST("/batches/:id/lines/:lineID/reject", s.rejectLine)
		api.POST("/batches/:id/commit", s.commitBatch)
	}
}

// Router exposes the underlying handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the server on the configured port.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.Info("starting review API", "addr", addr)
	return s.router.Run(addr)
}

// newBatchID generates the identifier handed back to the review UI.
func newBatchID() string {
	return uuid.NewString()
}

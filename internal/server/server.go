package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/filedeck/backend/internal/api/middleware"
	"github.com/filedeck/backend/internal/config"
	enginehttp "github.com/filedeck/backend/internal/http"
	"github.com/filedeck/backend/internal/infrastructure/monitoring"
	"github.com/filedeck/backend/internal/logging"
	"github.com/filedeck/backend/internal/providers/files"
	"github.com/filedeck/backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	router   *gin.Engine
	srv      *http.Server
	registry *service.Registry
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// New creates a server from configuration
func New(cfg *config.Config, log *logging.Logger) (*Server, error) {
	registry := service.NewRegistry()
	metrics := monitoring.NewMetrics()

	filesProvider := files.NewProvider(log)
	if err := registry.Register(filesProvider); err != nil {
		return nil, fmt.Errorf("register files provider: %w", err)
	}
	log.Info("registered providers", zap.Any("stats", registry.Stats()))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := enginehttp.NewHandlers(registry, metrics, log)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		router:   router,
		srv:      srv,
		registry: registry,
		metrics:  metrics,
		log:      log,
	}, nil
}

// Run starts the server and blocks until it stops
func (s *Server) Run() error {
	s.log.Info("starting server", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	return s.srv.Shutdown(ctx)
}

// Router exposes the gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

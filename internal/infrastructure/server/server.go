package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/BlueprintStudio/internal/api/http"
	"github.com/GriffinCanCode/BlueprintStudio/internal/api/middleware"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/blueprint"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/history"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/workspace"
	"github.com/GriffinCanCode/BlueprintStudio/internal/infrastructure/config"
	"github.com/GriffinCanCode/BlueprintStudio/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BlueprintStudio/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BlueprintStudio/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/BlueprintStudio/internal/providers/storage"
)

// MaxBodySize bounds request bodies; blueprints inflate far beyond their encoded size
const MaxBodySize = 8 << 20

//go:embed templates/*.html
var templates embed.FS

// Server wraps the HTTP server and dependencies
type Server struct {
	router    *gin.Engine
	http      *http.Server
	workspace *workspace.Workspace
	store     storage.Store
	logger    *logging.Logger
	config    *config.Config
	metrics   *monitoring.Metrics
}

// Option customises NewServer
type Option func(*options)

type options struct {
	store  storage.Store
	logger *logging.Logger
}

// WithStore uses store instead of opening the configured backend
func WithStore(store storage.Store) Option {
	return func(o *options) { o.store = store }
}

// WithLogger uses logger instead of building one from the config
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewServer creates a new server instance.
// The history is loaded before the editor is created and before any route is served.
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		if cfg.Logging.Development {
			logger = logging.NewDevelopment()
		} else {
			logger = logging.NewDefault()
		}
		if err := logger.SetLevel(cfg.Logging.Level); err != nil {
			logger.Warn("Ignoring log level", zap.Error(err))
		}
	}

	logger.Info("Initializing Blueprint Studio",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Backend),
	)

	metrics := monitoring.NewMetrics()

	store := o.store
	if store == nil {
		var err error
		store, err = storage.Open(storage.Config{
			Backend:   cfg.Storage.Backend,
			Path:      cfg.Storage.Path,
			Namespace: cfg.Storage.Namespace,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
	}

	breakerLog := logger.Component("storage")
	guarded := storage.NewGuard(store, resilience.Settings{
		Threshold: cfg.Storage.BreakerFailures,
		Cooldown:  cfg.Storage.BreakerCooldown,
		OnStateChange: func(name string, from, to resilience.State) {
			breakerLog.Warn("Storage circuit breaker changed state",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
			metrics.SetBreakerState(to)
		},
	})

	hist := history.NewStore(guarded, logger.Component("history"),
		history.WithCapacity(cfg.History.Capacity),
		history.WithMetrics(metrics),
	)
	ws := workspace.New(context.Background(), blueprint.NewCodec(), hist, logger.Component("workspace"),
		workspace.WithMetrics(metrics),
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	page, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(page)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig.Origins = cfg.Server.CORSOrigins
	}
	router.Use(middleware.CORS(corsConfig))
	router.Use(middleware.BodyLimit(MaxBodySize))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := api.NewHandlers(ws, metrics, logger.Component("api"))
	router.GET("/", handlers.Page)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	api.RegisterRoutes(router, handlers)

	logger.Info("Server initialized successfully")

	return &Server{
		router:    router,
		workspace: ws,
		store:     store,
		logger:    logger,
		config:    cfg,
		metrics:   metrics,
	}, nil
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Workspace returns the shared workspace
func (s *Server) Workspace() *workspace.Workspace {
	return s.workspace
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
		}
	}
	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}
	if err := s.logger.Sync(); err != nil {
		errs = append(errs, fmt.Errorf("failed to sync logger: %w", err))
	}

	s.logger.Info("Server shutdown complete")
	return errors.Join(errs...)
}

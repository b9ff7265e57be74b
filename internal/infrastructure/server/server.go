package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hostbridge/internal/api/bridge"
	bridgehttp "github.com/GriffinCanCode/hostbridge/internal/api/http"
	"github.com/GriffinCanCode/hostbridge/internal/api/middleware"
	"github.com/GriffinCanCode/hostbridge/internal/api/ws"
	"github.com/GriffinCanCode/hostbridge/internal/domain/classify"
	"github.com/GriffinCanCode/hostbridge/internal/domain/lifecycle"
	"github.com/GriffinCanCode/hostbridge/internal/domain/syscall"
	"github.com/GriffinCanCode/hostbridge/internal/domain/vpath"
	"github.com/GriffinCanCode/hostbridge/internal/domain/workspace"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/hostbridge/internal/platform"
)

const readHeaderTimeout = 10 * time.Second

// Option customizes a Server.
type Option func(*options)

type options struct {
	logger   *logging.Logger
	platform platform.Platform
	homeDir  func() (string, error)
}

// WithLogger replaces the logger built from config.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPlatform replaces the native platform.
func WithPlatform(p platform.Platform) Option {
	return func(o *options) { o.platform = p }
}

// WithHomeDir overrides home directory discovery for the home workspace.
func WithHomeDir(fn func() (string, error)) Option {
	return func(o *options) { o.homeDir = fn }
}

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	dispatcher *syscall.Dispatcher
	intents    *lifecycle.Handler
	ws         *ws.Handler
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
	appsDir    string

	quit     chan struct{}
	quitOnce sync.Once
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
		})
		if err != nil {
			logger, _ = logging.New(logging.Config{Development: cfg.Logging.Development})
			logger.Warn("Invalid log level, using info", zap.Error(err))
		}
	}

	appsDir, err := filepath.Abs(cfg.Bridge.AppsPath)
	if err != nil {
		return nil, fmt.Errorf("resolve apps path: %w", err)
	}
	if err := os.MkdirAll(appsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create apps directory: %w", err)
	}

	plat := o.platform
	if plat == nil {
		plat = platform.Native()
	}

	logger.Info("Initializing host bridge",
		zap.String("addr", cfg.Addr()),
		zap.String("apps", appsDir),
		zap.String("platform", plat.Name()),
	)

	metrics := monitoring.NewMetrics()

	store := workspace.NewStore(appsDir, cfg.AppsURL(), logger.Component("workspace"),
		workspace.WithFileName(cfg.Bridge.ConfigFile),
		workspace.WithHomeDir(o.homeDir),
	)
	resolver := vpath.NewResolver(plat.Style(), func() vpath.Table { return store.Workspaces() })

	dispatcher := syscall.NewDispatcher(syscall.Deps{
		Resolver:   resolver,
		Store:      store,
		Classifier: classify.New(cfg.Bridge.BinaryScanLimit),
		Platform:   plat,
		Logger:     logger.Component("syscall"),
		RunTimeout: cfg.Bridge.RunTimeout,
	})

	s := &Server{
		dispatcher: dispatcher,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
		appsDir:    appsDir,
		quit:       make(chan struct{}),
	}
	s.intents = lifecycle.NewHandler(s.requestShutdown, logger.Component("lifecycle"))

	processor := bridge.NewProcessor(dispatcher, s.intents, metrics, logger.Component("bridge"))
	guard := middleware.NewOriginGuard(cfg.Origins(), metrics, logger.Component("origin"))
	s.ws = ws.NewHandler(processor, guard.CheckOrigin, metrics, logger.Component("ws"))
	handlers := bridgehttp.NewHandlers(processor, metrics, plat.Name(), logger.Component("http"))

	logger.Info("Origin guard configured", zap.Strings("origins", guard.Prefixes()))

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(guard)))

	syscallChain := []gin.HandlerFunc{guard.Middleware()}
	bridgeChain := []gin.HandlerFunc{}
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limit := middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			Metrics:           metrics,
		}
		syscallChain = append(syscallChain, middleware.RateLimit(limit))
		bridgeChain = append(bridgeChain, middleware.GlobalRateLimit(limit))
	}

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.POST("/syscall", append(syscallChain, handlers.Syscall)...)
	router.GET("/bridge", append(bridgeChain, s.ws.HandleConnection)...)

	// Front-end bundle
	router.Static("/apps", appsDir)

	s.router = router
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Quit is closed when a quit intent arrives.
func (s *Server) Quit() <-chan struct{} {
	return s.quit
}

func (s *Server) requestShutdown() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// Run listens on the configured address and serves until ctx is done or a
// quit intent arrives.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done or a quit intent arrives, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	srv.RegisterOnShutdown(s.ws.Shutdown)

	s.logger.Info("Starting HTTP server",
		zap.String("addr", ln.Addr().String()),
		zap.String("apps_url", s.config.AppsURL()),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutdown signal received")
	case <-s.quit:
		s.logger.Info("Quit intent received")
	}

	grace := s.config.Server.ShutdownTimeout
	if grace <= 0 {
		grace = config.Default().Server.ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	<-errCh
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

// Close flushes the logger.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	_ = s.logger.Sync()
	return nil
}

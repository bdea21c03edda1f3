package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsgateway/internal/api/middleware"
	"github.com/GriffinCanCode/fsgateway/internal/fsys"
	"github.com/GriffinCanCode/fsgateway/internal/gateway"
	"github.com/GriffinCanCode/fsgateway/internal/infrastructure/config"
	"github.com/GriffinCanCode/fsgateway/internal/infrastructure/logging"
	"github.com/GriffinCanCode/fsgateway/internal/infrastructure/monitoring"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	gateway *gateway.Gateway
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing filesystem gateway",
		zap.String("root", cfg.Gateway.Root),
		zap.String("prefix", cfg.Gateway.Prefix),
		zap.String("mode", cfg.Gateway.Mode),
	)

	metrics := monitoring.NewMetrics()

	gw, err := gateway.New(gateway.Config{Root: cfg.Gateway.Root}, fsys.NewOS(), logger.Component("gateway"))
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}
	gw.WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	// the bare prefix is dispatched from NoRoute instead of redirected
	router.RedirectTrailingSlash = false

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	s := &Server{
		router:  router,
		gateway: gw,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}

	fallback, err := s.fallbackHandler()
	if err != nil {
		return nil, err
	}

	api := gw.Handler()
	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", s.metricsJSON)
	router.Any(cfg.Gateway.Prefix+"/*"+gateway.RouteParam, api)
	router.NoRoute(func(c *gin.Context) {
		if c.Request.URL.Path == cfg.Gateway.Prefix {
			api(c)
			return
		}
		fallback(c)
	})

	logger.Info("Server initialized successfully", zap.String("root", gw.Root()))
	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
}

// Run listens on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully, letting in-flight requests finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Close flushes buffered logs
func (s *Server) Close() error {
	_ = s.logger.Sync()
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"root":   s.gateway.Root(),
	})
}

func (s *Server) metricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) fallbackHandler() (gin.HandlerFunc, error) {
	if s.config.Gateway.Mode != config.ModeStatic {
		return notFound, nil
	}
	static, err := newStaticHandler(s.config.Gateway.StaticDir, s.logger.Component("static"))
	if err != nil {
		return nil, fmt.Errorf("failed to set up static files: %w", err)
	}
	return static.serve, nil
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
}

// Package server serves the PDF generation API and the navigation endpoint.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamops/dashboard/access"
	"github.com/teamops/dashboard/concurrency/worker"
	"github.com/teamops/dashboard/config"
	"github.com/teamops/dashboard/display"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/net/resp"
	"github.com/teamops/dashboard/pdf"
	"github.com/teamops/dashboard/security/jwt"
	"github.com/teamops/dashboard/structs"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	config   *config.Config
	logger   *logger.Logger
	registry *pdf.Registry
	pool     *worker.Pool
	tokens   *jwt.TokenManager
	engine   *gin.Engine
}

// NewServer creates a server rendering templates from registry on a
// worker pool sized by cfg.PDF.
func NewServer(cfg *config.Config, log *logger.Logger, registry *pdf.Registry) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if registry == nil {
		registry = pdf.Default()
	}
	pdfCfg := cfg.PDF
	if pdfCfg == nil {
		pdfCfg = &config.PDF{Workers: 4, QueueSize: 64}
	}
	secret := ""
	if cfg.Auth != nil && cfg.Auth.JWT != nil {
		secret = cfg.Auth.JWT.Secret
	}
	if secret == "" {
		log.Warn(context.Background(), "auth.jwt.secret is not set, bearer tokens will be accepted without signature verification")
	}

	pool := worker.NewPool(&worker.Config{
		MaxWorkers:  pdfCfg.Workers,
		QueueSize:   pdfCfg.QueueSize,
		TaskTimeout: pdfCfg.Timeout,
	})
	pool.Start()

	return &Server{
		config:   cfg,
		logger:   log,
		registry: registry,
		pool:     pool,
		tokens:   jwt.NewTokenManager(secret),
	}, nil
}

// SetupRouter builds the gin engine.
func (s *Server) SetupRouter() *gin.Engine {
	switch {
	case gin.Mode() == gin.TestMode:
	case s.config.IsRelease():
		gin.SetMode(gin.ReleaseMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(s.traceMiddleware())
	r.Use(s.recoveryMiddleware())
	r.Use(s.loggerMiddleware())

	r.GET("/health", func(c *gin.Context) {
		resp.Success(c.Writer, map[string]string{"status": "healthy"})
	})

	api := r.Group("/api")
	api.POST("/pdf/generate", s.handleGenerate)
	api.GET("/pdf/generate", s.handleTemplates)
	api.GET("/pdf/stats", s.handleStats)
	api.GET("/navigation", access.Authenticate(s.tokens), s.handleNavigation)

	s.engine = r
	return r
}

// Handler returns the router wrapped with OpenTelemetry instrumentation.
func (s *Server) Handler() http.Handler {
	if s.engine == nil {
		s.SetupRouter()
	}
	return otelhttp.NewHandler(s.engine, s.config.AppName)
}

// Cleanup stops the render pool.
func (s *Server) Cleanup(ctx context.Context) {
	s.pool.Stop(ctx)
}

func (s *Server) handleStats(c *gin.Context) {
	resp.Success(c.Writer, map[string]any{"pool": s.pool.GetMetrics(), "busy": s.pool.IsBusy()})
}

func (s *Server) handleNavigation(c *gin.Context) {
	role := access.CurrentRole(c)
	resp.Success(c.Writer, map[string]any{
		"role":      role,
		"roleLabel": display.RoleLabel(structs.ParseRole(role)),
		"links":     access.LinksFor(role),
	})
}

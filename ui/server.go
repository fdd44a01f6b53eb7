// Package ui serves the JSON API over gin.
package ui

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"sheetviz/app"
	"sheetviz/domain/chart"
	"sheetviz/domain/core"
	"sheetviz/domain/dataset"
	"sheetviz/domain/tabular"
	"sheetviz/internal"
	"sheetviz/internal/series"
	"sheetviz/ui/middleware"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is allowed on top of the file limit for the form envelope.
const multipartOverhead = 64 * 1024

// FileService is the upload side of the application
type FileService interface {
	Upload(ctx context.Context, req app.UploadRequest) (*app.UploadResult, error)
	GetFile(ctx context.Context, id core.ID) (*dataset.UploadedFile, error)
	ListFiles(ctx context.Context, limit, offset int) ([]*dataset.UploadedFile, error)
	DeleteFile(ctx context.Context, id core.ID) error
}

// ChartService is the chart side of the application
type ChartService interface {
	BuildSeries(ctx context.Context, fileID core.ID, req series.Request) (*tabular.SeriesData, error)
	SaveChart(ctx context.Context, req app.SaveChartRequest) (*chart.Chart, error)
	GetChart(ctx context.Context, id core.ID) (*chart.Chart, error)
	ListCharts(ctx context.Context, fileID core.ID, limit, offset int) ([]*chart.Chart, error)
	DeleteChart(ctx context.Context, id core.ID) error
}

// Config holds the HTTP layer settings
type Config struct {
	GinMode        string
	MaxUploadBytes int64
}

// Server represents the API server
type Server struct {
	router         *gin.Engine
	mu             sync.Mutex
	httpServer     *http.Server
	files          FileService
	charts         ChartService
	maxUploadBytes int64
	logger         *internal.Logger
}

// NewServer creates a new API server with its routes registered
func NewServer(files FileService, charts ChartService, config Config, logger *internal.Logger) *Server {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:         gin.New(),
		files:          files,
		charts:         charts,
		maxUploadBytes: config.MaxUploadBytes,
		logger:         logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.logger))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	files := api.Group("/files")
	files.POST("", middleware.BodyLimit(s.maxUploadBytes+multipartOverhead), s.handleUpload)
	files.GET("", s.handleListFiles)
	files.GET("/:id", s.handleGetFile)
	files.DELETE("/:id", s.handleDeleteFile)
	files.POST("/:id/series", s.handleBuildSeries)

	charts := api.Group("/charts")
	charts.POST("", s.handleSaveChart)
	charts.GET("", s.handleListCharts)
	charts.GET("/:id", s.handleGetChart)
	charts.DELETE("/:id", s.handleDeleteChart)

	api.GET("/chart-types", s.handleChartTypes)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server and blocks until it stops
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting sheetviz API on http://%s", addr)
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

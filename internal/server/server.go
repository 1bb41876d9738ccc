// Package server exposes the scoring core over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"NewsTrust/internal/domain"
	"NewsTrust/internal/metrics"
	"NewsTrust/internal/outcome"
	"NewsTrust/internal/ports"
)

const pingTimeout = 2 * time.Second

// Resolver is the single entry point the transport needs from the core.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*domain.Report, error)
}

// Server builds the gin router around the resolver.
type Server struct {
	resolver Resolver
	repo     ports.Repository
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New wires the transport dependencies.
func New(resolver Resolver, repo ports.Repository, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{resolver: resolver, repo: repo, metrics: m, logger: logger}
}

// Router assembles routes and middleware.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	api := router.Group("/api")
	api.GET("/score", s.handleScore)
	api.GET("/ping", s.handlePing)
	api.GET("/metrics", s.handleMetrics)

	return router
}

func (s *Server) handleScore(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"data":   gin.H{"message": "No URL provided"},
		})
		return
	}

	report, err := s.resolver.Resolve(c.Request.Context(), url)
	if err != nil {
		s.writeOutcome(c, url, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   report,
	})
}

// writeOutcome maps classified outcomes onto the wire format. Internal causes
// are logged, never serialized.
func (s *Server) writeOutcome(c *gin.Context, url string, err error) {
	var classified *outcome.Outcome
	if !errors.As(err, &classified) {
		s.logger.Error("unclassified resolve failure", "url", url, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"data":   gin.H{"message": "An error occurred while computing the score."},
		})
		return
	}

	if cause := classified.Unwrap(); cause != nil {
		s.logger.Error("resolve failed", "url", url, "level", classified.Level.Status(), "cause", cause)
	} else {
		s.logger.Info("resolve ended early", "url", url, "level", classified.Level.Status(), "message", classified.Message)
	}

	c.JSON(httpStatus(classified.Level), gin.H{
		"status": classified.Level.Status(),
		"data":   gin.H{"message": classified.Message},
	})
}

func (s *Server) handlePing(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := s.repo.Ping(ctx); err != nil {
		s.logger.Error("liveness check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "dead"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Stats())
}

func httpStatus(level outcome.Level) int {
	switch level {
	case outcome.LevelError:
		return http.StatusInternalServerError
	case outcome.LevelCritical:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/loci-planner/internal/pkg/cache"
	"github.com/FACorreiaa/loci-planner/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	caches *cache.CacheManager
	router http.Handler
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:    cfg,
		logger: logger,
		caches: cache.NewCacheManager(cfg.Itinerary.CacheTTL, logger),
	}
}

// HTTPServer creates and configures the HTTP server. The write timeout has to
// outlast a full itinerary generation.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.cfg.ServerPort,
		Handler:           s.router,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      s.cfg.Itinerary.HTTPTimeout + 30*time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

func (s *Server) Caches() *cache.CacheManager {
	return s.caches
}

// GetLogger returns the logger instance
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetConfig returns the configuration
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}

// Close releases the caches and logs what they served.
func (s *Server) Close() {
	for name, m := range s.caches.GetAllMetrics() {
		s.logger.Info("Cache statistics",
			zap.String("cache", name),
			zap.Int64("hits", m.Hits),
			zap.Int64("misses", m.Misses),
		)
	}
	s.caches.Close()
}

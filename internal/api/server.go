package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wikirace/wikirace/internal/backingstore"
	"github.com/wikirace/wikirace/internal/engine"
	"github.com/wikirace/wikirace/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// Version is the API's semantic version, surfaced on /health.
const Version = "1.0.0"

// Server wraps a gin.Engine and the search engine it exposes over HTTP.
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server

	engine  *engine.Engine
	metrics telemetry.Sink
	store   *backingstore.Store // optional, for cache-stats; nil if unconfigured

	config Config
}

// New builds a Server around eng. metrics and store may be nil.
func New(eng *engine.Engine, metrics telemetry.Sink, store *backingstore.Store, cfg Config) *Server {
	if metrics == nil {
		metrics = telemetry.NullSink{}
	}

	s := &Server{
		engine:  eng,
		metrics: metrics,
		store:   store,
		config:  cfg,
	}
	s.setupRouter()
	return s
}

// Router exposes the underlying gin.Engine for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until ctx is cancelled or ListenAndServe fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the HTTP server, bounded by ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

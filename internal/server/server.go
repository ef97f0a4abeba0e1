// Package server exposes the content operations over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
	"github.com/fivetwenty-io/cms-content/pkg/content"
)

// Server holds the router and the content service it serves.
type Server struct {
	service *content.Service
	metrics *cms.MetricsCollector
	logger  zerolog.Logger
	router  chi.Router
}

// New builds a Server. metrics may be nil, in which case /metrics is not
// mounted.
func New(service *content.Service, metrics *cms.MetricsCollector, logger zerolog.Logger) *Server {
	s := &Server{
		service: service,
		metrics: metrics,
		logger:  logger.With().Str("component", "server").Logger(),
	}
	s.router = s.buildRouter()

	return s
}

// Router returns the underlying chi.Router so it can be used by http.Server.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	if s.metrics != nil {
		r.Get("/metrics", s.handleMetrics)
	}

	r.Get("/members", s.handleListMembers)

	r.Get("/news", s.handleListNews)
	r.Get("/news/{id}", s.handleNewsDetail)
	r.Get("/categories/{id}", s.handleCategoryDetail)

	// Get-all lives outside the detail namespaces so that every content ID,
	// "all" included, stays addressable.
	r.Route("/all", func(r chi.Router) {
		r.Get("/news", s.handleAllNews)
		r.Get("/categories", s.handleAllCategories)
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", addr).Bool("cms_available", s.service.Available()).Msg("listening")

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serving HTTP: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	s.logger.Info().Msg("stopped")

	return nil
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"cms_available": s.service.Available()})
}

type cacheReport struct {
	cms.CacheStats
	HitRate float64 `json:"hit_rate"`
}

type metricsReport struct {
	Endpoints map[string]cms.Metrics `json:"endpoints"`
	Cache     *cacheReport           `json:"cache,omitempty"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	report := metricsReport{Endpoints: s.metrics.Snapshot()}

	if stats, ok := s.service.CacheStats(); ok {
		report.Cache = &cacheReport{CacheStats: stats, HitRate: stats.GetHitRate()}
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListMembers(r.Context(), cms.ParseQuery(r.URL.Query())))
}

func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListNews(r.Context(), cms.ParseQuery(r.URL.Query())))
}

func (s *Server) handleAllNews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.GetAllNews(r.Context(), cms.ParseQuery(r.URL.Query())))
}

func (s *Server) handleAllCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.GetAllCategories(r.Context(), cms.ParseQuery(r.URL.Query())))
}

func (s *Server) handleNewsDetail(w http.ResponseWriter, r *http.Request) {
	news, err := s.service.GetNewsDetail(r.Context(), chi.URLParam(r, "id"), cms.ParseQuery(r.URL.Query()))
	if err != nil {
		s.writeDetailError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, news)
}

func (s *Server) handleCategoryDetail(w http.ResponseWriter, r *http.Request) {
	category, err := s.service.GetCategoryDetail(r.Context(), chi.URLParam(r, "id"), cms.ParseQuery(r.URL.Query()))
	if err != nil {
		s.writeDetailError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, category)
}

// writeDetailError maps a propagated detail error to a status code.
func (s *Server) writeDetailError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway

	switch {
	case cms.IsUnavailable(err):
		status = http.StatusServiceUnavailable
	case cms.IsNotFound(err):
		status = http.StatusNotFound
	}

	if status == http.StatusBadGateway {
		s.logger.Warn().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("content request failed")
	}

	writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

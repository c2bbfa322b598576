// Package api exposes the scraping pipeline over four read-only HTTP
// endpoints. Resolver failures surface as {status, message} JSON with the
// response code mirroring the outcome; the process never terminates from here
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"chef-scraper/pkg/chefapi"
	"chef-scraper/pkg/config"
	"chef-scraper/pkg/contest"
	"chef-scraper/pkg/models"
	"chef-scraper/pkg/profile"
)

// Server holds the handlers' collaborators
type Server struct {
	resolver *profile.Resolver
	chef     *chefapi.Client
	contests *contest.Scraper
	baseURL  string
	log      *logrus.Logger
}

// NewServer creates the API server
func NewServer(resolver *profile.Resolver, chef *chefapi.Client, contests *contest.Scraper,
	cfg *config.AppConfig, log *logrus.Logger) *Server {
	return &Server{
		resolver: resolver,
		chef:     chef,
		contests: contests,
		baseURL:  cfg.BaseURL,
		log:      log,
	}
}

// Handler builds the chi router with the standard middleware stack
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	s.routes(r)
	return r
}

// requestLogger logs one line per request through logrus
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
		}).Info("Request handled")
	})
}

// writeJSON encodes v with the given status code
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("Encode response failed: %v", err)
	}
}

// failureBody is the uniform error contract consumed by API clients
type failureBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// writeFailure maps a failure outcome kind to its JSON body and status code
func (s *Server) writeFailure(w http.ResponseWriter, kind models.OutcomeKind, message string) {
	s.writeJSON(w, kind.HTTPStatus(), failureBody{Status: kind.HTTPStatus(), Message: message})
}

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"chef-scraper/pkg/models"
)

func (s *Server) routes(r chi.Router) {
	r.Get("/", s.handleRoot)

	// Each resource accepts the username either as a path parameter or, for
	// POST, as a request header
	r.Get("/user-stats/{username}", s.handleUserStats)
	r.Post("/user-stats", s.handleUserStats)
	r.Get("/solved/{username}", s.handleSolved)
	r.Post("/solved", s.handleSolved)
	r.Get("/submission-details/{problem}/{username}", s.handleSubmissionDetails)
	r.Post("/submission-details/{problem}", s.handleSubmissionDetails)
	r.Get("/contest-details/{username}", s.handleContestDetails)
	r.Post("/contest-details", s.handleContestDetails)
}

// username resolves the target user from the path or the username header
func username(r *http.Request) string {
	if u := chi.URLParam(r, "username"); u != "" {
		return u
	}
	return r.Header.Get("username")
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "CodeChef scraping API, for educational purpose only",
		"endpoints": map[string]string{
			"user-stats/{username}":                   "user profile details",
			"solved/{username}":                       "all solved problem links",
			"submission-details/{problem}/{username}": "submission list for one problem",
			"contest-details/{username}":              "contest participation details",
		},
	})
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	user := username(r)
	if user == "" {
		s.writeFailure(w, models.OutcomeNotFound, "username required")
		return
	}

	outcome := s.resolver.Stats(r.Context(), user)
	if !outcome.IsOk() {
		s.writeFailure(w, outcome.Kind, outcome.Message)
		return
	}
	s.writeJSON(w, http.StatusOK, outcome.Value)
}

func (s *Server) handleSolved(w http.ResponseWriter, r *http.Request) {
	user := username(r)
	if user == "" {
		s.writeFailure(w, models.OutcomeNotFound, "username required")
		return
	}

	outcome := s.resolver.SolvedLinks(r.Context(), user)
	if !outcome.IsOk() {
		s.writeFailure(w, outcome.Kind, outcome.Message)
		return
	}

	// The resolver returns relative references; absolutize with the site base
	urls := make([]string, 0, len(outcome.Value))
	for _, link := range outcome.Value {
		href := link.Href
		if strings.HasPrefix(href, "/") {
			href = s.baseURL + href
		}
		urls = append(urls, href)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"total_solved": len(urls),
		"solved_links": urls,
	})
}

func (s *Server) handleSubmissionDetails(w http.ResponseWriter, r *http.Request) {
	user := username(r)
	problem := chi.URLParam(r, "problem")
	if user == "" || problem == "" {
		s.writeFailure(w, models.OutcomeNotFound, "problem and username required")
		return
	}

	subs := s.chef.Submissions(r.Context(), problem, user)
	if subs == nil {
		s.writeFailure(w, models.OutcomeServerError, "Internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, subs)
}

func (s *Server) handleContestDetails(w http.ResponseWriter, r *http.Request) {
	user := username(r)
	if user == "" {
		s.writeFailure(w, models.OutcomeNotFound, "username required")
		return
	}

	outcome := s.contests.ContestsFor(r.Context(), user)
	if !outcome.IsOk() {
		s.writeFailure(w, outcome.Kind, outcome.Message)
		return
	}
	s.writeJSON(w, http.StatusOK, outcome.Value)
}

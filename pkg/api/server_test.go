package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chef-scraper/pkg/chefapi"
	"chef-scraper/pkg/config"
	"chef-scraper/pkg/contest"
	"chef-scraper/pkg/fetch"
	"chef-scraper/pkg/identity"
	"chef-scraper/pkg/profile"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// The upstream pages and feeds every handler test runs against
const (
	upstreamProfile = `<html><body>
<ul class="side-nav">
  <li><label>Username:</label><span>someuser</span></li>
</ul>
<div class="rating-header text-center"><div>1800?</div><div>Div 2</div></div>
<div class="rating-ranks"><strong>123</strong><strong>45</strong></div>
<section class="rating-data-section problems-solved">
  <h5>Fully Solved (1)</h5>
  <a href="/problems/FLOW001">FLOW001</a>
  <h5>Partially Solved (0)</h5>
  <article>
    <p>Contest History</p>
    <p><strong>START100:</strong></p>
  </article>
</section>
</body></html>`

	upstreamSubmissions = `{
  "data": {
    "content": [{"id": 111, "language": "PYTH 3", "result": "accepted", "time": "0.01", "memory": "5.2M"}]
  }
}`

	upstreamRankings = `{
  "contest_info": {"contest_code": "START100"},
  "contest_name": "Starters 100",
  "list": [{"rank": 42, "score": "100.00 (1)", "problems_status": {"P1": {"score": 100}}}],
  "problems": [{"code": "P1", "name": "First"}]
}`
)

// testHandler builds the full handler stack against a fake upstream
func testHandler(t *testing.T) http.Handler {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/users/"):
			io.WriteString(w, upstreamProfile)
		case strings.HasPrefix(r.URL.Path, "/api/submissions/PRACTICE/"):
			io.WriteString(w, upstreamSubmissions)
		case strings.HasPrefix(r.URL.Path, "/api/rankings/"):
			io.WriteString(w, upstreamRankings)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	cfg := config.Default()
	cfg.BaseURL = upstream.URL
	cfg.MaxAttempts = 1
	cfg.MinRetryDelay = time.Millisecond
	cfg.MaxRetryDelay = 2 * time.Millisecond
	cfg.MaxWorkers = 2

	fetcher := fetch.NewFetcher(&http.Client{Timeout: 10 * time.Second}, identity.NewPool(nil), cfg, testLogger())
	resolver := profile.NewResolver(fetcher, cfg, testLogger())
	chef := chefapi.NewClient(fetcher, cfg, testLogger())
	contests := contest.NewScraper(resolver, chef, cfg, testLogger())
	return NewServer(resolver, chef, contests, cfg, testLogger()).Handler()
}

// do performs one request against the handler and decodes the JSON body
func do(t *testing.T, handler http.Handler, method, target string, headers map[string]string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestRoot(t *testing.T) {
	status, body := do(t, testHandler(t), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["message"], "CodeChef")
	endpoints, ok := body["endpoints"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, endpoints, 4)
}

func TestUserStats(t *testing.T) {
	status, body := do(t, testHandler(t), http.MethodGet, "/user-stats/someuser", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1800), body["rating"])
	assert.Equal(t, "Div 2", body["division"])
	assert.Equal(t, float64(123), body["global_rank"])
	assert.Equal(t, float64(1), body["problem_fully_solved"])
	assert.Equal(t, float64(1), body["contest_participate"])
}

func TestUserStats_PostWithHeader(t *testing.T) {
	status, body := do(t, testHandler(t), http.MethodPost, "/user-stats",
		map[string]string{"username": "someuser"})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1800), body["rating"])
}

func TestUserStats_MissingUsername(t *testing.T) {
	status, body := do(t, testHandler(t), http.MethodPost, "/user-stats", nil)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "username required", body["message"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
}

func TestSolved(t *testing.T) {
	handler := testHandler(t)
	status, body := do(t, handler, http.MethodGet, "/solved/someuser", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total_solved"])

	links, ok := body["solved_links"].([]any)
	require.True(t, ok)
	require.Len(t, links, 1)
	// Relative hrefs come back absolutized against the site base
	link, _ := links[0].(string)
	assert.True(t, strings.HasPrefix(link, "http"), "link %q should be absolute", link)
	assert.True(t, strings.HasSuffix(link, "/problems/FLOW001"))
}

func TestSubmissionDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/submission-details/FLOW001/someuser", nil)
	rec := httptest.NewRecorder()
	testHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var subs []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "111", subs[0]["id"])
	assert.Equal(t, "PYTH 3", subs[0]["language"])
	assert.Equal(t, "accepted", subs[0]["verdict"])
}

func TestContestDetails(t *testing.T) {
	status, body := do(t, testHandler(t), http.MethodGet, "/contest-details/someuser", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total_contest"])
	assert.Equal(t, float64(1), body["total_scraped"])

	details, ok := body["contest_details"].([]any)
	require.True(t, ok)
	require.Len(t, details, 1)
	first, _ := details[0].(map[string]any)
	assert.Equal(t, "START100", first["contest_code"])
	assert.Equal(t, float64(42), first["rank"])
}

func TestFailure_InvalidUsernameMapsTo404(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html><body><p>no such user</p></body></html>")
	}))
	t.Cleanup(upstream.Close)

	cfg := config.Default()
	cfg.BaseURL = upstream.URL
	cfg.MaxAttempts = 1
	cfg.MinRetryDelay = time.Millisecond
	cfg.MaxRetryDelay = 2 * time.Millisecond

	fetcher := fetch.NewFetcher(&http.Client{Timeout: 10 * time.Second}, identity.NewPool(nil), cfg, testLogger())
	resolver := profile.NewResolver(fetcher, cfg, testLogger())
	chef := chefapi.NewClient(fetcher, cfg, testLogger())
	contests := contest.NewScraper(resolver, chef, cfg, testLogger())
	handler := NewServer(resolver, chef, contests, cfg, testLogger()).Handler()

	status, body := do(t, handler, http.MethodGet, "/solved/nosuchuser", nil)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Invalid username", body["message"])
}

func TestFailure_UpstreamDownMapsTo500(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	cfg := config.Default()
	cfg.BaseURL = upstream.URL
	cfg.MaxAttempts = 1
	cfg.MinRetryDelay = time.Millisecond
	cfg.MaxRetryDelay = 2 * time.Millisecond

	fetcher := fetch.NewFetcher(&http.Client{}, identity.NewPool(nil), cfg, testLogger())
	resolver := profile.NewResolver(fetcher, cfg, testLogger())
	chef := chefapi.NewClient(fetcher, cfg, testLogger())
	contests := contest.NewScraper(resolver, chef, cfg, testLogger())
	handler := NewServer(resolver, chef, contests, cfg, testLogger()).Handler()

	status, body := do(t, handler, http.MethodGet, "/user-stats/someuser", nil)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Max retries reached", body["message"])

	status, _ = do(t, handler, http.MethodGet, "/submission-details/FLOW001/someuser", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
}

// Package chefapi queries the upstream site's structured (JSON) data
// endpoints: per-problem submission listings and per-contest rankings.
// Both require a static session cookie on top of the rotating identity
package chefapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"chef-scraper/pkg/config"
	"chef-scraper/pkg/fetch"
	"chef-scraper/pkg/models"
	"chef-scraper/pkg/utils"
)

// Client wraps the structured endpoints
type Client struct {
	fetcher       *fetch.Fetcher
	baseURL       string
	sessionCookie string
	csrfToken     string
	log           *logrus.Entry
}

// NewClient creates a structured-endpoint client
func NewClient(f *fetch.Fetcher, cfg *config.AppConfig, log *logrus.Logger) *Client {
	return &Client{
		fetcher:       f,
		baseURL:       cfg.BaseURL,
		sessionCookie: cfg.SessionCookie,
		csrfToken:     cfg.CSRFToken,
		log:           log.WithField("component", "chefapi"),
	}
}

// submissionsResponse mirrors the submission listing feed shape
type submissionsResponse struct {
	Data struct {
		Content []struct {
			ID       json.Number `json:"id"`
			Language string      `json:"language"`
			Result   string      `json:"result"`
			Time     string      `json:"time"`
			Memory   string      `json:"memory"`
		} `json:"content"`
	} `json:"data"`
}

// Submissions returns the user's practice submissions for one problem in
// upstream order (most recent first, not re-sorted). Returns nil when the
// fetch failed or the feed shape didn't match; callers treat nil as "nothing
// to archive" and carry on
func (c *Client) Submissions(ctx context.Context, problem, username string) []models.SubmissionRecord {
	path := fmt.Sprintf("/api/submissions/PRACTICE/%s?limit=20&page=0&language=All&status=All&usernames=%s",
		url.PathEscape(problem), url.QueryEscape(username))

	var resp submissionsResponse
	if err := c.fetcher.FetchJSON(ctx, c.baseURL+path, c.apiHeaders(path), &resp); err != nil {
		c.log.WithFields(logrus.Fields{"problem": problem, "username": username}).
			Errorf("Submission listing failed: %v (%s)", err, utils.CategorizeError(err))
		return nil
	}

	if len(resp.Data.Content) == 0 {
		return nil
	}

	records := make([]models.SubmissionRecord, 0, len(resp.Data.Content))
	for _, entry := range resp.Data.Content {
		records = append(records, models.SubmissionRecord{
			ID:       entry.ID.String(),
			Language: entry.Language,
			Verdict:  entry.Result,
			Time:     entry.Time,
			Memory:   entry.Memory,
		})
	}
	return records
}

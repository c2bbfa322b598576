// Package profile parses a user's profile page: solved-problem links, the
// flat stats record and the contest-history block. Structural absence is an
// expected outcome in scraping code, so every lookup is checked explicitly
// and surfaces as a typed Outcome instead of a panic
package profile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"chef-scraper/pkg/config"
	"chef-scraper/pkg/fetch"
	"chef-scraper/pkg/models"
	"chef-scraper/pkg/utils"
)

// Fixed structural markers on the profile page. A site layout change breaks
// these; that surfaces as a server-error outcome, not a crash
const (
	solvedSectionSelector = "section.rating-data-section.problems-solved"
	sideNavSelector       = "ul.side-nav"
)

const (
	msgInvalidUsername = "Invalid username"
	msgInternalError   = "Internal server error"
	msgUnavailable     = "Max retries reached"
)

// Resolver extracts data from user profile pages
type Resolver struct {
	fetcher *fetch.Fetcher
	baseURL string
	log     *logrus.Entry
}

// NewResolver creates a profile Resolver
func NewResolver(f *fetch.Fetcher, cfg *config.AppConfig, log *logrus.Logger) *Resolver {
	return &Resolver{
		fetcher: f,
		baseURL: cfg.BaseURL,
		log:     log.WithField("component", "profile"),
	}
}

func (r *Resolver) profilePage(ctx context.Context, username string) (*goquery.Document, *models.OutcomeKind) {
	doc, err := r.fetcher.FetchMarkup(ctx, fmt.Sprintf("%s/users/%s", r.baseURL, username), nil)
	if err != nil {
		r.log.WithField("username", username).
			Errorf("Profile fetch failed: %v (%s)", err, utils.CategorizeError(err))
		kind := models.OutcomeServerError
		if fetch.Unavailable(err) {
			kind = models.OutcomeUnavailable
		}
		return nil, &kind
	}
	return doc, nil
}

func failure[T any](kind models.OutcomeKind) models.Outcome[T] {
	switch kind {
	case models.OutcomeNotFound:
		return models.NotFound[T](msgInvalidUsername)
	case models.OutcomeUnavailable:
		return models.Unavailable[T](msgUnavailable)
	default:
		return models.ServerError[T](msgInternalError)
	}
}

// SolvedLinks returns every solved-problem link listed on the user's profile.
// A missing solved-problems section means the username is invalid (404);
// the caller alone decides whether that aborts the process
func (r *Resolver) SolvedLinks(ctx context.Context, username string) models.Outcome[[]models.SolvedLink] {
	doc, failKind := r.profilePage(ctx, username)
	if failKind != nil {
		return failure[[]models.SolvedLink](*failKind)
	}

	section := doc.Find(solvedSectionSelector)
	if section.Length() == 0 {
		return models.NotFound[[]models.SolvedLink](msgInvalidUsername)
	}

	var links []models.SolvedLink
	section.Find("a").Each(func(_ int, a *goquery.Selection) {
		links = append(links, models.SolvedLink{
			Code: strings.TrimSpace(a.Text()),
			Href: a.AttrOr("href", ""),
		})
	})
	return models.Ok(links)
}

// FilterScraped drops links whose problem already has a subdirectory under
// solutionsDir. This is what makes repeated runs incremental. A missing
// directory filters nothing
func FilterScraped(links []models.SolvedLink, solutionsDir string) []models.SolvedLink {
	entries, err := os.ReadDir(solutionsDir)
	if err != nil {
		return links
	}

	archived := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		archived[e.Name()] = struct{}{}
	}

	remaining := make([]models.SolvedLink, 0, len(links))
	for _, link := range links {
		if _, ok := archived[utils.SanitizeProblemCode(link.Code)]; ok {
			continue
		}
		remaining = append(remaining, link)
	}
	return remaining
}

// ContestCodes returns the codes of every contest in the user's history
// block, in page order. An absent history block is tolerated and yields an
// empty list
func (r *Resolver) ContestCodes(ctx context.Context, username string) models.Outcome[[]string] {
	doc, failKind := r.profilePage(ctx, username)
	if failKind != nil {
		return failure[[]string](*failKind)
	}

	section := doc.Find(solvedSectionSelector)
	if section.Length() == 0 {
		return models.NotFound[[]string](msgInvalidUsername)
	}

	article := section.Find("article")
	if article.Length() == 0 {
		return models.Ok([]string{})
	}

	var codes []string
	article.Find("p").Each(func(i int, p *goquery.Selection) {
		if i == 0 {
			// First entry is the block heading, not a contest
			return
		}
		code := strings.TrimSpace(strings.ReplaceAll(p.Find("strong").Text(), ":", ""))
		if code != "" {
			codes = append(codes, code)
		}
	})
	return models.Ok(codes)
}

// Package contest fans per-contest rankings lookups out across a bounded
// worker pool, one task per contest the user entered
package contest

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"chef-scraper/pkg/chefapi"
	"chef-scraper/pkg/config"
	"chef-scraper/pkg/models"
	"chef-scraper/pkg/profile"
	"chef-scraper/pkg/utils"
)

// Scraper aggregates a user's contest participation records
type Scraper struct {
	resolver   *profile.Resolver
	chef       *chefapi.Client
	maxWorkers int
	log        *logrus.Entry
}

// NewScraper creates a contest Scraper
func NewScraper(resolver *profile.Resolver, chef *chefapi.Client, cfg *config.AppConfig, log *logrus.Logger) *Scraper {
	return &Scraper{
		resolver:   resolver,
		chef:       chef,
		maxWorkers: cfg.MaxWorkers,
		log:        log.WithField("component", "contest"),
	}
}

// ContestsFor resolves the user's contest history and queries the rankings
// endpoint for each entry concurrently. Failed per-contest lookups yield no
// record and don't count toward TotalScraped; they never abort siblings
func (s *Scraper) ContestsFor(ctx context.Context, username string) models.Outcome[models.ContestReport] {
	codesOutcome := s.resolver.ContestCodes(ctx, username)
	if !codesOutcome.IsOk() {
		return models.Outcome[models.ContestReport]{Kind: codesOutcome.Kind, Message: codesOutcome.Message}
	}

	codes := codesOutcome.Value
	report := models.ContestReport{
		ContestDetails: []models.ContestRecord{},
		TotalContests:  len(codes),
	}
	if len(codes) == 0 {
		return models.Ok(report)
	}

	type result struct {
		record models.ContestRecord
		ok     bool
	}

	// One slot per contest, filled out of order but read back in page order
	results := make([]result, len(codes))
	sem := semaphore.NewWeighted(int64(utils.PoolSize(len(codes), s.maxWorkers)))
	var wg sync.WaitGroup

	for i, code := range codes {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				s.log.WithField("contest", code).Warnf("Pool acquire aborted: %v", err)
				return
			}
			defer sem.Release(1)

			record, ok := s.chef.Rankings(ctx, code, username)
			results[i] = result{record: record, ok: ok}
		}(i, code)
	}
	wg.Wait()

	for _, res := range results {
		if !res.ok {
			continue
		}
		report.ContestDetails = append(report.ContestDetails, res.record)
		report.TotalScraped++
	}

	s.log.WithFields(logrus.Fields{
		"username": username,
		"total":    report.TotalContests,
		"scraped":  report.TotalScraped,
	}).Info("Contest fan-out finished")
	return models.Ok(report)
}

// Package orchestrate drives a full scraping run: resolve the user's
// unscraped solved problems, fan submission lookups out across a bounded
// worker pool and archive each submission's source, aggregating a
// success/failure count as results arrive
package orchestrate

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"chef-scraper/pkg/archive"
	"chef-scraper/pkg/chefapi"
	"chef-scraper/pkg/config"
	"chef-scraper/pkg/models"
	"chef-scraper/pkg/profile"
	"chef-scraper/pkg/utils"
)

// RunOutcome classifies how a scraping run ended
type RunOutcome int

const (
	RunNoSolutions    RunOutcome = iota // Profile lists no solved problems at all
	RunAlreadyScraped                   // Every solved problem is already archived
	RunAllScraped                       // Every unscraped problem archived this run
	RunPartial                          // Some archived, some failed
	RunNoneScraped                      // Nothing could be archived
)

// String implements fmt.Stringer for reports and logging
func (o RunOutcome) String() string {
	switch o {
	case RunNoSolutions:
		return "no_solutions_found"
	case RunAlreadyScraped:
		return "already_scraped"
	case RunAllScraped:
		return "all_scraped"
	case RunPartial:
		return "partial"
	case RunNoneScraped:
		return "none_scraped"
	}
	return "unknown"
}

// RunReport summarizes one scraping run
type RunReport struct {
	RunID    string     `json:"run_id"`
	Username string     `json:"username"`
	Total    int        `json:"total"`   // Unscraped problems found at run start
	Scraped  int        `json:"scraped"` // Problems that produced at least one archived file
	Outcome  RunOutcome `json:"-"`
}

// Orchestrator wires the resolver, submission enumerator and archiver into a
// single run. Work is partitioned one problem per task, so no two workers
// ever write into the same problem directory; the archiver's append-only
// numbering depends on that
type Orchestrator struct {
	resolver     *profile.Resolver
	chef         *chefapi.Client
	archiver     *archive.Archiver
	solutionsDir string
	maxWorkers   int
	progress     io.Writer
	log          *logrus.Entry
}

// NewOrchestrator creates an Orchestrator. progress receives the running
// "scraped X/Y" counter; pass io.Discard to silence it
func NewOrchestrator(resolver *profile.Resolver, chef *chefapi.Client, archiver *archive.Archiver,
	cfg *config.AppConfig, progress io.Writer, log *logrus.Logger) *Orchestrator {
	if progress == nil {
		progress = io.Discard
	}
	return &Orchestrator{
		resolver:     resolver,
		chef:         chef,
		archiver:     archiver,
		solutionsDir: cfg.SolutionsDir,
		maxWorkers:   cfg.MaxWorkers,
		progress:     progress,
		log:          log.WithField("component", "orchestrator"),
	}
}

// Run archives all unscraped solved problems for username. Resolver failures
// propagate as the matching failure outcome; the caller (CLI or API layer)
// decides what to do with them
func (o *Orchestrator) Run(ctx context.Context, username string) models.Outcome[RunReport] {
	report := RunReport{
		RunID:    uuid.NewString(),
		Username: username,
	}
	runLog := o.log.WithFields(logrus.Fields{"run_id": report.RunID, "username": username})

	linksOutcome := o.resolver.SolvedLinks(ctx, username)
	if !linksOutcome.IsOk() {
		return models.Outcome[RunReport]{Kind: linksOutcome.Kind, Message: linksOutcome.Message}
	}

	all := linksOutcome.Value
	if len(all) == 0 {
		report.Outcome = RunNoSolutions
		runLog.Info("No solutions found")
		return models.Ok(report)
	}

	unscraped := profile.FilterScraped(all, o.solutionsDir)
	if len(unscraped) == 0 {
		report.Outcome = RunAlreadyScraped
		runLog.Info("All solutions already scraped")
		return models.Ok(report)
	}

	report.Total = len(unscraped)
	runLog.WithField("total", report.Total).Info("Starting scrape run")
	fmt.Fprintf(o.progress, "total solutions found: %d\n", report.Total)

	// Fan out one task per problem, fan results back in over a channel and
	// aggregate counts as they arrive; completion order is irrelevant
	sem := semaphore.NewWeighted(int64(utils.PoolSize(report.Total, o.maxWorkers)))
	results := make(chan bool)
	var wg sync.WaitGroup

	for _, link := range unscraped {
		wg.Add(1)
		go func(problem string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				runLog.WithField("problem", problem).Warnf("Pool acquire aborted: %v", err)
				results <- false
				return
			}
			defer sem.Release(1)
			results <- o.scrapeProblem(ctx, username, problem)
		}(link.Code)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	fmt.Fprintf(o.progress, "\r scraped %d/%d", report.Scraped, report.Total)
	for ok := range results {
		if ok {
			report.Scraped++
		}
		fmt.Fprintf(o.progress, "\r scraped %d/%d", report.Scraped, report.Total)
	}
	fmt.Fprintln(o.progress)

	switch {
	case report.Scraped == report.Total:
		report.Outcome = RunAllScraped
	case report.Scraped > 0:
		report.Outcome = RunPartial
	default:
		report.Outcome = RunNoneScraped
	}

	runLog.WithFields(logrus.Fields{
		"scraped": report.Scraped,
		"total":   report.Total,
		"outcome": report.Outcome.String(),
	}).Info("Scrape run finished")
	return models.Ok(report)
}

// scrapeProblem enumerates one problem's submissions and archives each of
// them. Mirrors the per-item failure policy: any error is absorbed here and
// reported as false, never propagated into the pool
func (o *Orchestrator) scrapeProblem(ctx context.Context, username, problem string) bool {
	subs := o.chef.Submissions(ctx, problem, username)
	if len(subs) == 0 {
		return false
	}

	archived := false
	for _, sub := range subs {
		archived = o.archiver.Archive(ctx, problem, sub)
	}
	return archived
}

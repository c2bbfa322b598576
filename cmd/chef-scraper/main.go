package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"chef-scraper/pkg/api"
	"chef-scraper/pkg/archive"
	"chef-scraper/pkg/chefapi"
	"chef-scraper/pkg/config"
	"chef-scraper/pkg/contest"
	"chef-scraper/pkg/fetch"
	"chef-scraper/pkg/identity"
	"chef-scraper/pkg/models"
	"chef-scraper/pkg/orchestrate"
	"chef-scraper/pkg/profile"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "scrape":
		runScrape(os.Args[2:])
	case "stats":
		runStats(os.Args[2:])
	case "contests":
		runContests(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "version":
		fmt.Printf("chef-scraper %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `chef-scraper - CodeChef profile and solution scraper

Usage:
  chef-scraper <command> [options]

Commands:
  scrape      Archive all unscraped solutions for a user
  stats       Print a user's profile stats as JSON
  contests    Print a user's contest participation details as JSON
  serve       Start the read-only HTTP API
  validate    Validate configuration file
  version     Show version info

Run 'chef-scraper <command> -h' for command-specific help.`)
}

// commonFlags registers the flags every subcommand shares
func commonFlags(fs *flag.FlagSet) (configFile, logLevel *string) {
	configFile = fs.String("config", "", "Path to YAML config file (optional)")
	logLevel = fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")
	return configFile, logLevel
}

// app bundles the wired-up pipeline components
type app struct {
	cfg          *config.AppConfig
	log          *logrus.Logger
	resolver     *profile.Resolver
	chef         *chefapi.Client
	archiver     *archive.Archiver
	contests     *contest.Scraper
	orchestrator *orchestrate.Orchestrator
}

// buildApp loads config (plus .env credentials) and wires every component
func buildApp(configFile, logLevel string, progress io.Writer) (*app, error) {
	// .env is optional; the session cookie may come from the real environment
	_ = godotenv.Load()

	log := logrus.New()
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	log.SetLevel(level)

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := fetch.NewClient(cfg.HTTPClientSettings, log)
	fetcher := fetch.NewFetcher(client, identity.NewPool(nil), cfg, log)

	resolver := profile.NewResolver(fetcher, cfg, log)
	chef := chefapi.NewClient(fetcher, cfg, log)
	archiver := archive.NewArchiver(fetcher, cfg, log)

	return &app{
		cfg:          cfg,
		log:          log,
		resolver:     resolver,
		chef:         chef,
		archiver:     archiver,
		contests:     contest.NewScraper(resolver, chef, cfg, log),
		orchestrator: orchestrate.NewOrchestrator(resolver, chef, archiver, cfg, progress, log),
	}, nil
}

// exitOnFailure is the interactive path's contract: a failed resolution
// terminates the process here, and only here
func exitOnFailure[T any](outcome models.Outcome[T]) T {
	if !outcome.IsOk() {
		fmt.Fprintln(os.Stderr, outcome.Message)
		os.Exit(1)
	}
	return outcome.Value
}

func runScrape(args []string) {
	fs := flag.NewFlagSet("scrape", flag.ExitOnError)
	configFile, logLevel := commonFlags(fs)
	user := fs.String("user", "", "CodeChef username (required)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *user == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		os.Exit(1)
	}

	a, err := buildApp(*configFile, *logLevel, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := exitOnFailure(a.orchestrator.Run(context.Background(), *user))

	switch report.Outcome {
	case orchestrate.RunNoSolutions:
		fmt.Println("No solutions found")
	case orchestrate.RunAlreadyScraped:
		fmt.Println("All solutions already scraped")
	case orchestrate.RunAllScraped:
		fmt.Println("All solutions scraped")
	case orchestrate.RunPartial:
		fmt.Println("Unable to scrape all solutions")
	case orchestrate.RunNoneScraped:
		fmt.Println("Unable to scrape")
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configFile, logLevel := commonFlags(fs)
	user := fs.String("user", "", "CodeChef username (required)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *user == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		os.Exit(1)
	}

	a, err := buildApp(*configFile, *logLevel, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	record := exitOnFailure(a.resolver.Stats(context.Background(), *user))
	printJSON(record)
}

func runContests(args []string) {
	fs := flag.NewFlagSet("contests", flag.ExitOnError)
	configFile, logLevel := commonFlags(fs)
	user := fs.String("user", "", "CodeChef username (required)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *user == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required")
		os.Exit(1)
	}

	a, err := buildApp(*configFile, *logLevel, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := exitOnFailure(a.contests.ContestsFor(context.Background(), *user))
	printJSON(report)
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configFile, logLevel := commonFlags(fs)
	addr := fs.String("addr", "", "Listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	a, err := buildApp(*configFile, *logLevel, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		a.cfg.ListenAddr = *addr
	}

	server := &http.Server{
		Addr:    a.cfg.ListenAddr,
		Handler: api.NewServer(a.resolver, a.chef, a.contests, a.cfg, a.log).Handler(),
	}

	// Shut down cleanly on SIGINT/SIGTERM
	done := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		a.log.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.log.Errorf("Shutdown error: %v", err)
		}
		close(done)
	}()

	a.log.Infof("Listening on %s", a.cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Fatalf("Server error: %v", err)
	}
	<-done
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile, _ := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Configuration is valid")
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/profile-harvester/internal/config"
	"github.com/jonathan/profile-harvester/internal/input"
	"github.com/jonathan/profile-harvester/internal/navigation"
	"github.com/jonathan/profile-harvester/internal/observability"
	"github.com/jonathan/profile-harvester/internal/output"
	"github.com/jonathan/profile-harvester/internal/pipeline"
	"github.com/jonathan/profile-harvester/internal/session"
	"github.com/jonathan/profile-harvester/internal/store"
	"github.com/jonathan/profile-harvester/internal/types"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a batch of profile URLs into a CSV",
	Long:  "Reads profile URLs from the first column of a CSV file, logs in once, processes every target in order, and writes one output row per input row. Failures are recorded as data; a bad target never aborts the batch.",
	RunE:  runScrape,
}

var (
	scrapeConfigPath string
	scrapeInput      string
	scrapeOutput     string
	scrapeLogFile    string
	scrapeHeadless   bool
	scrapeWorkers    int
	scrapeVerbose    bool
	scrapeDBURL      string
)

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeConfigPath, "config", "c", "", "Path to JSON config file")
	scrapeCmd.Flags().StringVarP(&scrapeInput, "input", "i", "", "CSV file with profile URLs in the first column")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "Output CSV file")
	scrapeCmd.Flags().StringVar(&scrapeLogFile, "log-file", "", "Duplicate log output to this file")
	scrapeCmd.Flags().BoolVar(&scrapeHeadless, "headless", true, "Run the browser headless")
	scrapeCmd.Flags().IntVar(&scrapeWorkers, "workers", 0, "Independent sessions to run (default 1, sequential)")
	scrapeCmd.Flags().BoolVarP(&scrapeVerbose, "verbose", "v", false, "Log per-section extraction verdicts")
	scrapeCmd.Flags().StringVar(&scrapeDBURL, "database-url", "", "Optional PostgreSQL URL for the audit store")

	rootCmd.AddCommand(scrapeCmd)
}

// defaultConfig holds the built-in behavior when neither flags nor a config
// file say otherwise.
var defaultConfig = config.Config{
	Output:         "scraped_output.csv",
	BaseURL:        "https://www.linkedin.com",
	LoginURL:       "https://www.linkedin.com/login",
	Workers:        1,
	ReadyTimeoutMs: 10000,
	SettleDelayMs:  2000,
	RetryBackoffMs: 5000,
	TargetDelayMs:  3000,
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{
		Input:       scrapeInput,
		Output:      scrapeOutput,
		LogFile:     scrapeLogFile,
		Workers:     scrapeWorkers,
		DatabaseURL: scrapeDBURL,
	}

	fileVerbose := false
	if scrapeConfigPath != "" {
		fileCfg, err := config.LoadConfig(scrapeConfigPath)
		if err != nil {
			return err
		}
		fileVerbose = fileCfg.Verbose
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(defaultConfig)
	headless := resolveHeadless(cmd.Flags().Changed("headless"), scrapeHeadless, cfg.Headless)
	cfg.Headless = &headless
	cfg.Verbose = scrapeVerbose || fileVerbose

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Input == "" {
		return fmt.Errorf("input file required: set --input or the config 'input' field")
	}

	logger, cleanup, err := observability.NewLogger(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	identifier, secret, err := config.CredentialsFromEnv()
	if err != nil {
		return err
	}

	targets, err := input.ReadTargets(cfg.Input)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets found in %s", cfg.Input)
	}

	runID := uuid.New()
	log := logger.WithField("run_id", runID)
	log.WithFields(logrus.Fields{
		"targets": len(targets),
		"workers": cfg.Workers,
	}).Info("starting batch")

	ctx := cmd.Context()
	results, err := runBatch(ctx, cfg, targets, session.Credentials{Identifier: identifier, Secret: secret}, log)
	if err != nil {
		return err
	}

	if err := output.WriteCSV(cfg.Output, results); err != nil {
		return err
	}
	log.WithField("output", cfg.Output).Info("batch written")

	persistResults(ctx, cfg, runID, results, log)

	var failed int
	for _, rec := range results {
		if rec.Status == types.StatusFailed {
			failed++
		}
	}
	log.WithFields(logrus.Fields{
		"total":  len(results),
		"failed": failed,
	}).Info("batch complete")

	return nil
}

// resolveHeadless picks the headless setting: an explicit flag wins, then the
// config file, then the flag default.
func resolveHeadless(flagChanged, flagValue bool, fileValue *bool) bool {
	if flagChanged || fileValue == nil {
		return flagValue
	}
	return *fileValue
}

// runBatch opens one session per worker, runs the pipeline, and guarantees
// every session is released however the batch ends. A login failure is fatal:
// no target can be processed without a session.
func runBatch(ctx context.Context, cfg config.Config, targets []string, creds session.Credentials, log *logrus.Entry) (types.BatchResult, error) {
	sessOpts := session.Options{
		LoginURL:     cfg.LoginURL,
		Headless:     cfg.Headless == nil || *cfg.Headless,
		LoginTimeout: 30 * time.Second,
	}
	navOpts := navigation.Options{
		BaseURL:      cfg.BaseURL,
		ReadyTimeout: time.Duration(cfg.ReadyTimeoutMs) * time.Millisecond,
		PollInterval: 500 * time.Millisecond,
		SettleDelay:  time.Duration(cfg.SettleDelayMs) * time.Millisecond,
		RetryBackoff: time.Duration(cfg.RetryBackoffMs) * time.Millisecond,
	}
	targetDelay := time.Duration(cfg.TargetDelayMs) * time.Millisecond

	var sessions []*session.Session
	defer func() {
		for _, s := range sessions {
			s.Close()
		}
	}()

	procs := make([]pipeline.Processor, 0, cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		sess, err := session.Open(ctx, creds, sessOpts)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
		log.WithField("worker", w).Info("session established")

		nav := navigation.New(sess, navOpts, log.WithField("worker", w))
		procs = append(procs, pipeline.NewOrchestrator(nav, log.WithField("worker", w)))
	}

	if len(procs) == 1 {
		return pipeline.NewRunner(procs[0], targetDelay, log).Run(ctx, targets), nil
	}
	return pipeline.RunParallel(ctx, targets, procs, targetDelay, log), nil
}

// persistResults writes the batch to the audit store when one is configured.
// Store trouble only warns: the CSV is already on disk at this point.
func persistResults(ctx context.Context, cfg config.Config, runID uuid.UUID, results types.BatchResult, log *logrus.Entry) {
	if cfg.DatabaseURL == "" {
		return
	}

	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Warn("audit store unavailable, continuing without persistence")
		return
	}
	defer st.Close()

	if err := st.CreateRun(ctx, runID, cfg.Input, len(results)); err != nil {
		log.WithError(err).Warn("failed to create audit run")
		return
	}

	status := "completed"
	for i, rec := range results {
		if err := st.SaveRecord(ctx, runID, i, rec); err != nil {
			log.WithError(err).WithField("target", rec.Target).Warn("failed to persist record")
			status = "completed_with_errors"
		}
	}
	if err := st.CompleteRun(ctx, runID, status); err != nil {
		log.WithError(err).Warn("failed to complete audit run")
	}
	log.Info("batch persisted to audit store")
}

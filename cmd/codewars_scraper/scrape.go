package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/codewars-scraper/internal/auth"
	"github.com/jonathan/codewars-scraper/internal/browser"
	"github.com/jonathan/codewars-scraper/internal/config"
	"github.com/jonathan/codewars-scraper/internal/loading"
	"github.com/jonathan/codewars-scraper/internal/observability"
	"github.com/jonathan/codewars-scraper/internal/pipeline"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Sign in and download every completed solution",
	Long: "Signs in with Codewars or GitHub credentials, scrolls the completed solutions listing until it stops growing, " +
		"and writes <output>/<problem_name>/solution.<ext> for each solution. Existing problem directories are left untouched.",
	RunE: runScrape,
}

var (
	scrapeCodewars       bool
	scrapeGitHub         bool
	scrapeUsername       string
	scrapeEmail          string
	scrapePassword       string
	scrapeOutput         string
	scrapeVerbose        bool
	scrapeDebug          bool
	scrapeConfigPath     string
	scrapeHeaded         bool
	scrapeScrollDelayMs  int
	scrapeMaxScrolls     int
	scrapeStableReadings int
	scrapeTimeoutSeconds int
	scrapeManifest       bool
	scrapeBaseURL        string
)

func init() {
	flags := scrapeCmd.Flags()
	flags.BoolVarP(&scrapeCodewars, "codewars", "c", false, "Sign in with Codewars email and password")
	flags.BoolVarP(&scrapeGitHub, "github", "g", false, "Sign in through GitHub")
	flags.StringVarP(&scrapeUsername, "username", "u", "", "Codewars username whose solutions are downloaded")
	flags.StringVarP(&scrapeEmail, "email", "e", "", "Sign-in email (overrides "+config.EnvEmail+")")
	flags.StringVarP(&scrapePassword, "password", "p", "", "Sign-in password (overrides "+config.EnvPassword+")")
	flags.StringVarP(&scrapeOutput, "output", "o", "", "Output directory (default: ~/"+config.DefaultOutputDirName+")")
	flags.BoolVarP(&scrapeVerbose, "verbose", "v", false, "Log progress")
	flags.BoolVarP(&scrapeDebug, "debug", "d", false, "Show the browser window and log every browser step")
	flags.StringVar(&scrapeConfigPath, "config", "", "Path to a JSON config file")
	flags.BoolVar(&scrapeHeaded, "headed", false, "Show the browser window without debug logging")
	flags.IntVar(&scrapeScrollDelayMs, "scroll-delay", int(loading.DefaultDelay/time.Millisecond), "Milliseconds to wait after each growing scroll")
	flags.IntVar(&scrapeMaxScrolls, "max-scrolls", loading.DefaultMaxIterations, "Maximum growing scrolls before giving up (0: no limit)")
	flags.IntVar(&scrapeStableReadings, "stable-readings", loading.DefaultStableReadings, "Unchanged height readings required before the listing counts as loaded")
	flags.IntVar(&scrapeTimeoutSeconds, "timeout", int(browser.DefaultTimeout/time.Second), "Per-step browser timeout in seconds")
	flags.BoolVar(&scrapeManifest, "manifest", false, "Also write manifest.json to the output directory")
	flags.StringVar(&scrapeBaseURL, "base-url", "", "Codewars base URL (default: https://www.codewars.com)")

	rootCmd.AddCommand(scrapeCmd)
}

// resolveConfig merges flags over the config file over the environment
// over defaults, and validates the result.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var fileCfg config.Config
	if scrapeConfigPath != "" {
		loaded, err := config.LoadConfig(scrapeConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	mode, err := config.ResolveMode(scrapeCodewars, scrapeGitHub, fileCfg.Mode)
	if err != nil {
		return config.Config{}, err
	}

	flagCfg := config.Config{
		Mode:     mode.String(),
		Username: scrapeUsername,
		Email:    scrapeEmail,
		Password: scrapePassword,
		Output:   scrapeOutput,
		Manifest: scrapeManifest,
		BaseURL:  scrapeBaseURL,
		Headed:   scrapeHeaded,
		Verbose:  scrapeVerbose,
		Debug:    scrapeDebug,
	}
	// Only explicitly set numeric flags override the config file
	flags := cmd.Flags()
	if flags.Changed("scroll-delay") {
		flagCfg.ScrollDelayMs = &scrapeScrollDelayMs
	}
	if flags.Changed("max-scrolls") {
		flagCfg.MaxScrolls = &scrapeMaxScrolls
	}
	if flags.Changed("stable-readings") {
		flagCfg.StableReadings = scrapeStableReadings
	}
	if flags.Changed("timeout") {
		flagCfg.TimeoutSeconds = scrapeTimeoutSeconds
	}

	merged := flagCfg.MergeWithDefaults(fileCfg)
	merged = merged.MergeWithDefaults(config.FromEnv())
	merged = merged.MergeWithDefaults(config.Config{Output: config.DefaultOutputDir()})

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(observability.LoggerOptions{
		Verbose: cfg.Verbose,
		Debug:   cfg.Debug,
		Color:   observability.IsTerminal(os.Stderr),
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	browserOpts := cfg.BrowserOptions()
	browserOpts.Logger = logger
	openSession := func(ctx context.Context) (browser.Session, error) {
		session, err := browser.Open(ctx, browserOpts)
		if err != nil {
			return nil, err
		}
		return session, nil
	}
	onProgress := func(event pipeline.ProgressEvent) {
		logger.Info(event.Message, zap.String("step", event.Step), zap.String("category", event.Category))
	}

	summary, err := pipeline.Run(ctx, pipeline.Options{
		Credentials:   cfg.Credentials(),
		Endpoints:     cfg.Endpoints(),
		Resolver:      &auth.PromptResolver{In: os.Stdin, Out: os.Stdout},
		Loading:       cfg.LoadingOptions(),
		OutputDir:     cfg.Output,
		WriteManifest: cfg.Manifest,
		OpenSession:   openSession,
		Logger:        logger,
		OnProgress:    onProgress,
	})
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintSummary(summary.View())
	return nil
}

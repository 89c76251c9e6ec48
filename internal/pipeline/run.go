// Package pipeline provides the high-level orchestration for a scrape: sign in,
// load the solutions listing, extract it, close the browser and write files.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/codewars-scraper/internal/auth"
	"github.com/jonathan/codewars-scraper/internal/browser"
	"github.com/jonathan/codewars-scraper/internal/extraction"
	"github.com/jonathan/codewars-scraper/internal/loading"
	"github.com/jonathan/codewars-scraper/internal/output"
	"github.com/jonathan/codewars-scraper/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// SessionOpener starts a browser session. The pipeline owns the returned
// session and closes it.
type SessionOpener func(ctx context.Context) (browser.Session, error)

// Options holds configuration for running the pipeline
type Options struct {
	Credentials types.Credentials
	// Zero-valued endpoints and selectors fall back to the production defaults.
	Endpoints        auth.Endpoints
	AuthSelectors    auth.Selectors
	ListingSelectors extraction.Selectors
	Classifier       auth.Classifier
	Resolver         auth.ChallengeResolver

	// A zero Loading uses loading.DefaultOptions.
	Loading loading.Options
	Clock   loading.Clock

	OutputDir     string
	WriteManifest bool

	OpenSession SessionOpener
	Logger      *zap.Logger
	OnProgress  ProgressCallback
	// Now stamps the manifest; defaults to time.Now.
	Now func() time.Time
}

// Summary is everything a run produced.
type Summary struct {
	RunID        string
	Username     string
	Auth         *auth.Result
	Loading      *loading.Result
	Items        int
	Records      []types.SolutionRecord
	Failures     []*extraction.ExtractionError
	Report       *output.Report
	ManifestPath string
	// DisabledSteps are optional steps that did not run.
	DisabledSteps []string
}

// ListingPath returns the path of username's completed solutions page.
func ListingPath(username string) string {
	return "/users/" + url.PathEscape(username) + "/completed_solutions"
}

type runner struct {
	opts  Options
	runID string
	log   *zap.Logger
}

// emit calls the progress callback if configured
func (r *runner) emit(step, message string, content any) {
	if r.opts.OnProgress == nil {
		return
	}
	r.opts.OnProgress(ProgressEvent{
		Step:     step,
		Category: categoryOf(step),
		Message:  message,
		RunID:    r.runID,
		Content:  content,
	})
}

// sessionGuard closes a session at most once.
type sessionGuard struct {
	once    sync.Once
	session browser.Session
	err     error
}

func (g *sessionGuard) Close() error {
	g.once.Do(func() {
		g.err = g.session.Close()
	})
	return g.err
}

// Run executes one scrape. The browser session is closed exactly once on
// every path, before any file is written.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.OpenSession == nil {
		return nil, errors.New("pipeline: OpenSession is required")
	}
	if err := opts.Credentials.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}
	if opts.OutputDir == "" {
		return nil, errors.New("pipeline: OutputDir is required")
	}
	applyDefaults(&opts)

	r := &runner{opts: opts, runID: uuid.New().String(), log: opts.Logger}
	r.log = r.log.With(zap.String("run_id", r.runID))
	summary := &Summary{RunID: r.runID, Username: opts.Credentials.Username, DisabledSteps: disabledSteps(opts)}

	r.emit(StepOpenBrowser, "Starting browser...", nil)
	session, err := opts.OpenSession(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to start browser: %w", err)
	}
	guard := &sessionGuard{session: session}
	defer func() {
		if closeErr := guard.Close(); closeErr != nil {
			r.log.Debug("browser close failed", zap.Error(closeErr))
		}
	}()

	if err := r.scrape(ctx, session, summary); err != nil {
		return summary, err
	}

	r.emit(StepCloseBrowser, "Closing browser...", nil)
	if err := guard.Close(); err != nil {
		r.log.Warn("failed to close browser cleanly", zap.Error(err))
	}

	return summary, r.persist(summary)
}

func applyDefaults(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Endpoints == (auth.Endpoints{}) {
		opts.Endpoints = auth.DefaultEndpoints()
	}
	if opts.AuthSelectors == (auth.Selectors{}) {
		opts.AuthSelectors = auth.DefaultSelectors()
	}
	if opts.ListingSelectors == (extraction.Selectors{}) {
		opts.ListingSelectors = extraction.DefaultSelectors()
	}
	if opts.Loading == (loading.Options{}) {
		opts.Loading = loading.DefaultOptions()
	}
	if opts.Clock == nil {
		opts.Clock = loading.RealClock{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
}

// scrape runs every step that needs the browser.
func (r *runner) scrape(ctx context.Context, session browser.Session, summary *Summary) error {
	opts := r.opts

	r.emit(StepAuthenticate, fmt.Sprintf("Signing in with %s...", opts.Credentials.Mode), nil)
	flow := auth.NewFlow(opts.Resolver, r.log)
	flow.Endpoints = opts.Endpoints
	flow.Selectors = opts.AuthSelectors
	flow.Classify = opts.Classifier
	authResult, err := flow.Authenticate(ctx, session, opts.Credentials)
	summary.Auth = authResult
	if err != nil {
		return err
	}
	r.emit(StepAuthenticate, "Signed in", authResult)

	listingURL := opts.Endpoints.URL(ListingPath(opts.Credentials.Username))
	r.emit(StepOpenListing, "Opening "+listingURL, nil)
	if err := session.Navigate(ctx, listingURL, browser.WaitDOMContentLoaded); err != nil {
		return fmt.Errorf("failed to open solutions listing %s: %w", listingURL, err)
	}

	r.emit(StepLoadListing, "Scrolling until all solutions are loaded...", nil)
	exhauster := loading.NewExhauster(opts.Loading, r.log)
	exhauster.Clock = opts.Clock
	loadResult, err := exhauster.Exhaust(ctx, session)
	summary.Loading = loadResult
	if err != nil {
		return err
	}
	r.emit(StepLoadListing, fmt.Sprintf("Listing loaded after %d scrolls", loadResult.Scrolls), loadResult)

	r.emit(StepExtract, "Extracting solutions...", nil)
	extractor := extraction.NewExtractor(r.log)
	extractor.Selectors = opts.ListingSelectors
	extracted, err := extractor.Extract(ctx, session)
	if err != nil {
		return err
	}
	summary.Items = extracted.Items
	summary.Records = extracted.Records
	summary.Failures = extracted.Failures
	r.emit(StepExtract, fmt.Sprintf("Extracted %d solutions", len(extracted.Records)), nil)
	return nil
}

// persist writes the extracted records and the optional manifest.
func (r *runner) persist(summary *Summary) error {
	opts := r.opts

	r.emit(StepWrite, "Writing solutions to "+opts.OutputDir, nil)
	report, err := output.NewWriter(opts.OutputDir, r.log).Write(summary.Records)
	summary.Report = report
	if err != nil {
		return err
	}
	r.emit(StepWrite, fmt.Sprintf("Wrote %d problems", len(report.Written)), report)

	if !stepEnabled(StepManifest, opts) {
		return nil
	}
	r.emit(StepManifest, "Writing manifest...", nil)
	manifest := output.NewManifest(r.runID, opts.Credentials.Username, report, opts.Now())
	path, err := output.WriteManifest(report.Root, manifest)
	if err != nil {
		return err
	}
	summary.ManifestPath = path
	r.emit(StepManifest, "Manifest written", path)
	return nil
}

package browser

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds each navigation and settle wait.
	DefaultTimeout = 50 * time.Second
	// DefaultElementTimeout bounds how long we wait for a form element to appear.
	DefaultElementTimeout = 10 * time.Second
)

// Options configures a Chrome session.
type Options struct {
	Headless       bool
	Timeout        time.Duration
	ElementTimeout time.Duration
	Logger         *zap.Logger
}

// DefaultOptions returns the options the CLI starts from. The browser runs
// without a window unless debugging.
func DefaultOptions() Options {
	return Options{
		Headless:       true,
		Timeout:        DefaultTimeout,
		ElementTimeout: DefaultElementTimeout,
	}
}

// ChromeSession drives a single Chrome tab through chromedp.
// Requires Chrome/Chromium to be installed on the system.
type ChromeSession struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	timeout        time.Duration
	elementTimeout time.Duration
	logger         *zap.Logger

	life    *lifecycle
	navMark int

	closeOnce sync.Once
	closeErr  error
}

var _ Session = (*ChromeSession)(nil)

// Open launches Chrome and returns a session attached to its first tab.
func Open(ctx context.Context, opts Options) (*ChromeSession, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ElementTimeout <= 0 {
		opts.ElementTimeout = DefaultElementTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.WindowSize(1280, 900),
		)...,
	)

	sugar := logger.Sugar()
	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithDebugf(sugar.Debugf))

	s := &ChromeSession{
		ctx:            browserCtx,
		cancel:         cancel,
		allocCancel:    allocCancel,
		timeout:        opts.Timeout,
		elementTimeout: opts.ElementTimeout,
		logger:         logger,
		life:           newLifecycle(),
	}

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok {
			s.life.observe(e)
		}
	})

	// The first Run starts the browser; it must use the NewContext context directly.
	err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := page.Enable().Do(ctx); err != nil {
			return err
		}
		if err := page.SetLifecycleEventsEnabled(true).Do(ctx); err != nil {
			return err
		}
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		s.life.setMainFrame(tree.Frame.ID)
		return nil
	}))
	if err != nil {
		cancel()
		allocCancel()
		return nil, &Error{Message: "failed to start browser", Cause: err}
	}

	logger.Debug("browser started", zap.Bool("headless", opts.Headless))
	return s, nil
}

// runContext derives a context from the browser context that also ends when
// the caller's ctx does.
func (s *ChromeSession) runContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Navigate implements Session.
func (s *ChromeSession) Navigate(ctx context.Context, url string, policy WaitPolicy) error {
	runCtx, cancel := s.runContext(ctx, s.timeout)
	defer cancel()

	s.navMark = s.life.mark()
	s.logger.Debug("navigating", zap.String("url", url), zap.String("wait", string(policy)))

	// chromedp.Navigate returns after the load event, which covers DOMContentLoaded too.
	err := chromedp.Run(runCtx, chromedp.Navigate(url))
	if err == nil && policy == WaitNetworkIdle {
		err = s.life.wait(runCtx, string(policy), s.navMark)
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if isTimeout(err) || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return &NavigationTimeoutError{URL: url, Policy: policy, Cause: err}
		}
		return &Error{Message: "navigation to " + url + " failed", Cause: err}
	}
	return nil
}

// TypeInto implements Session.
func (s *ChromeSession) TypeInto(ctx context.Context, selector, text string) error {
	runCtx, cancel := s.runContext(ctx, s.elementTimeout)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, text, chromedp.ByQuery),
	)
	return s.elementError(ctx, runCtx, selector, err)
}

// Click implements Session.
func (s *ChromeSession) Click(ctx context.Context, selector string) error {
	runCtx, cancel := s.runContext(ctx, s.elementTimeout)
	defer cancel()

	s.navMark = s.life.mark()
	err := chromedp.Run(runCtx, chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible))
	return s.elementError(ctx, runCtx, selector, err)
}

func (s *ChromeSession) elementError(ctx, runCtx context.Context, selector string, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if isTimeout(err) || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &ElementNotFoundError{Selector: selector, Cause: err}
	}
	return &Error{Message: "interaction with " + selector + " failed", Cause: err}
}

// WaitForNavigationSettle implements Session.
func (s *ChromeSession) WaitForNavigationSettle(ctx context.Context, policy WaitPolicy) error {
	runCtx, cancel := s.runContext(ctx, s.timeout)
	defer cancel()

	if err := s.life.wait(runCtx, string(policy), s.navMark); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &NavigationTimeoutError{Policy: policy, Cause: err}
	}
	return nil
}

// CurrentURL implements Session.
func (s *ChromeSession) CurrentURL(ctx context.Context) (string, error) {
	runCtx, cancel := s.runContext(ctx, s.elementTimeout)
	defer cancel()

	var url string
	if err := chromedp.Run(runCtx, chromedp.Location(&url)); err != nil {
		return "", &Error{Message: "failed to read current URL", Cause: err}
	}
	return url, nil
}

// Evaluate implements Session.
func (s *ChromeSession) Evaluate(ctx context.Context, expression string, out any) error {
	runCtx, cancel := s.runContext(ctx, s.timeout)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Evaluate(expression, out)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &Error{Message: "script evaluation failed", Cause: err}
	}
	return nil
}

// Close shuts the tab and the browser process. Later calls return the first result.
func (s *ChromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.ctx)
		s.cancel()
		s.allocCancel()
		s.logger.Debug("browser closed")
	})
	return s.closeErr
}

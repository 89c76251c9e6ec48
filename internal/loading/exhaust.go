// Package loading forces an infinite-scroll listing to load all of its content.
package loading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/codewars-scraper/internal/browser"
)

const (
	// ScrollHeightScript measures the document's total scrollable height.
	ScrollHeightScript = `document.body.scrollHeight`
	// ScrollToBottomScript scrolls the window to the current bottom of the document.
	ScrollToBottomScript = `window.scroll(0, document.body.scrollHeight)`

	// DefaultDelay is how long to let new content arrive after each scroll.
	DefaultDelay = 1500 * time.Millisecond
	// DefaultMaxIterations bounds the number of growing scrolls.
	DefaultMaxIterations = 1000
	// DefaultStableReadings is the number of unchanged readings that end the loop.
	DefaultStableReadings = 1
)

// Options configures an Exhauster.
type Options struct {
	Delay time.Duration
	// MaxIterations caps growing scrolls; 0 disables the cap.
	MaxIterations int
	// StableReadings is how many consecutive non-growing readings end the loop.
	// Values above 1 wait longer than the original single-reading rule.
	StableReadings int
}

// DefaultOptions returns the single-stable-reading behaviour with a 1.5s delay.
func DefaultOptions() Options {
	return Options{
		Delay:          DefaultDelay,
		MaxIterations:  DefaultMaxIterations,
		StableReadings: DefaultStableReadings,
	}
}

// Result describes a finished exhaust loop.
type Result struct {
	// Height is the last measured document height.
	Height int64
	// Scrolls counts scrolls that followed growth.
	Scrolls int
	// Readings counts height measurements.
	Readings int
}

// Exhauster scrolls a page until its height stops growing. There is no
// server-side "last page" signal, so a slow response can end the loop early.
type Exhauster struct {
	Options Options
	Clock   Clock
	Logger  *zap.Logger
}

// NewExhauster returns an Exhauster using the real clock.
func NewExhauster(opts Options, logger *zap.Logger) *Exhauster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exhauster{Options: opts, Clock: RealClock{}, Logger: logger}
}

// Exhaust blocks until page has loaded all progressively-loaded content.
func (e *Exhauster) Exhaust(ctx context.Context, page browser.Evaluator) (*Result, error) {
	opts := e.Options
	if opts.StableReadings < 1 {
		opts.StableReadings = DefaultStableReadings
	}
	clock := e.Clock
	if clock == nil {
		clock = RealClock{}
	}
	log := e.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.StableReadings > 1 {
		log.Info("waiting for multiple stable readings before stopping", zap.Int("stable_readings", opts.StableReadings))
	}

	result := &Result{}
	stable := 0
	for {
		var current int64
		if err := page.Evaluate(ctx, ScrollHeightScript, &current); err != nil {
			return result, evalError("failed to measure page height", err)
		}
		result.Readings++

		if current > result.Height {
			if opts.MaxIterations > 0 && result.Scrolls >= opts.MaxIterations {
				return result, &ContentLoadError{
					Kind:    KindExhausted,
					Message: fmt.Sprintf("page still growing after %d scrolls (height %d)", result.Scrolls, current),
				}
			}
			result.Height = current
			result.Scrolls++
			stable = 0
			log.Debug("page grew", zap.Int64("height", current), zap.Int("scrolls", result.Scrolls))
		} else {
			stable++
			if stable >= opts.StableReadings {
				log.Info("listing fully loaded", zap.Int64("height", result.Height), zap.Int("scrolls", result.Scrolls))
				return result, nil
			}
		}

		if err := page.Evaluate(ctx, ScrollToBottomScript, nil); err != nil {
			return result, evalError("failed to scroll page", err)
		}
		if err := clock.Sleep(ctx, opts.Delay); err != nil {
			return result, err
		}
	}
}

func evalError(message string, err error) error {
	if ctxErr := contextError(err); ctxErr != nil {
		return ctxErr
	}
	return &ContentLoadError{Kind: KindEvaluationFailed, Message: message, Cause: err}
}

func contextError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

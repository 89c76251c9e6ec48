// Package browser defines the page-automation capability the scraper needs and
// provides a chromedp-backed implementation of it.
package browser

import "context"

// WaitPolicy names the lifecycle milestone a navigation wait blocks on.
type WaitPolicy string

const (
	// WaitDOMContentLoaded returns once the document has been parsed
	WaitDOMContentLoaded WaitPolicy = "DOMContentLoaded"
	// WaitLoad returns once the load event has fired
	WaitLoad WaitPolicy = "load"
	// WaitNetworkIdle returns once the page has had no network activity for a short window
	WaitNetworkIdle WaitPolicy = "networkIdle"
)

// Session is an open rendering context. Implementations are not safe for
// concurrent use; the pipeline drives a single session sequentially.
type Session interface {
	// Navigate loads url and waits for the given milestone.
	Navigate(ctx context.Context, url string, policy WaitPolicy) error
	// TypeInto types text into the first element matching selector.
	TypeInto(ctx context.Context, selector, text string) error
	// Click clicks the first element matching selector.
	Click(ctx context.Context, selector string) error
	// WaitForNavigationSettle blocks until a navigation started after the most
	// recent Click or Navigate reaches the given milestone.
	WaitForNavigationSettle(ctx context.Context, policy WaitPolicy) error
	// CurrentURL returns the URL of the top-level document.
	CurrentURL(ctx context.Context) (string, error)
	// Evaluate runs a JavaScript expression in the page and decodes its result into out.
	Evaluate(ctx context.Context, expression string, out any) error
	// Close releases the session and everything it owns.
	Close() error
}

// Evaluator is the subset of Session needed to read from a loaded page.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string, out any) error
}

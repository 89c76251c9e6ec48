// Package browsertest provides an in-memory browser.Session for tests.
package browsertest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/codewars-scraper/internal/browser"
)

// Call is one recorded Session method invocation.
type Call struct {
	Method string
	Args   []string
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Method, c.Args)
}

// Session is a scriptable browser.Session. Zero values behave like a page
// that accepts every interaction; hooks override individual methods.
type Session struct {
	mu    sync.Mutex
	calls []Call

	// URL is reported by CurrentURL unless URLAfterSettle rewrites it.
	URL string
	// URLAfterSettle, when non-empty, is consumed one entry per settle wait
	// and becomes the new URL.
	URLAfterSettle []string

	// Missing marks selectors that TypeInto and Click report as absent.
	Missing map[string]bool

	NavigateErr error
	SettleErr   error
	CloseErr    error

	// EvaluateFunc answers Evaluate. Use SetResult to populate out.
	EvaluateFunc func(expression string) (any, error)

	closeCount int
}

var _ browser.Session = (*Session)(nil)

// New returns an empty fake session.
func New() *Session {
	return &Session{Missing: make(map[string]bool)}
}

func (s *Session) record(method string, args ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Method: method, Args: args})
}

// Calls returns the recorded invocations in order.
func (s *Session) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Methods returns just the method names of the recorded invocations.
func (s *Session) Methods() []string {
	calls := s.Calls()
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Method)
	}
	return out
}

// Typed returns the text typed into selector, or "" if none.
func (s *Session) Typed(selector string) string {
	for _, c := range s.Calls() {
		if c.Method == "TypeInto" && c.Args[0] == selector {
			return c.Args[1]
		}
	}
	return ""
}

// CloseCount reports how many times Close was called.
func (s *Session) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCount
}

// Navigate implements browser.Session.
func (s *Session) Navigate(ctx context.Context, url string, policy browser.WaitPolicy) error {
	s.record("Navigate", url, string(policy))
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.NavigateErr != nil {
		return s.NavigateErr
	}
	s.mu.Lock()
	s.URL = url
	s.mu.Unlock()
	return nil
}

// TypeInto implements browser.Session.
func (s *Session) TypeInto(_ context.Context, selector, text string) error {
	s.record("TypeInto", selector, text)
	if s.Missing[selector] {
		return &browser.ElementNotFoundError{Selector: selector, Cause: context.DeadlineExceeded}
	}
	return nil
}

// Click implements browser.Session.
func (s *Session) Click(_ context.Context, selector string) error {
	s.record("Click", selector)
	if s.Missing[selector] {
		return &browser.ElementNotFoundError{Selector: selector, Cause: context.DeadlineExceeded}
	}
	return nil
}

// WaitForNavigationSettle implements browser.Session.
func (s *Session) WaitForNavigationSettle(_ context.Context, policy browser.WaitPolicy) error {
	s.record("WaitForNavigationSettle", string(policy))
	if s.SettleErr != nil {
		return s.SettleErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.URLAfterSettle) > 0 {
		s.URL = s.URLAfterSettle[0]
		s.URLAfterSettle = s.URLAfterSettle[1:]
	}
	return nil
}

// CurrentURL implements browser.Session.
func (s *Session) CurrentURL(_ context.Context) (string, error) {
	s.record("CurrentURL")
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.URL, nil
}

// Evaluate implements browser.Session.
func (s *Session) Evaluate(ctx context.Context, expression string, out any) error {
	s.record("Evaluate", expression)
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.EvaluateFunc == nil {
		return fmt.Errorf("browsertest: no EvaluateFunc for %q", expression)
	}
	v, err := s.EvaluateFunc(expression)
	if err != nil {
		return err
	}
	return SetResult(out, v)
}

// Close implements browser.Session.
func (s *Session) Close() error {
	s.record("Close")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCount++
	return s.CloseErr
}

// SetResult copies v into out the way a JSON-decoded evaluation result would arrive.
func SetResult(out any, v any) error {
	if out == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// Heights returns an EvaluateFunc body that yields each height once and then
// repeats the last one.
func Heights(values ...int64) func() int64 {
	var mu sync.Mutex
	i := 0
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		if len(values) == 0 {
			return 0
		}
		v := values[min(i, len(values)-1)]
		i++
		return v
	}
}

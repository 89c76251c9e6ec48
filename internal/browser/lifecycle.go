package browser

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
)

// lifecycle tracks main-frame lifecycle events so that settle waits can tell
// a fresh navigation apart from milestones the previous document already hit.
type lifecycle struct {
	mu        sync.Mutex
	mainFrame cdp.FrameID
	seq       int
	reached   map[string]int
	changed   chan struct{}
}

func newLifecycle() *lifecycle {
	return &lifecycle{
		reached: make(map[string]int),
		changed: make(chan struct{}),
	}
}

func (l *lifecycle) setMainFrame(id cdp.FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mainFrame = id
}

// observe records a lifecycle event. Each "init" on the main frame starts a new document.
func (l *lifecycle) observe(ev *page.EventLifecycleEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mainFrame != "" && ev.FrameID != l.mainFrame {
		return
	}
	if ev.Name == "init" {
		l.seq++
	}
	l.reached[ev.Name] = l.seq

	close(l.changed)
	l.changed = make(chan struct{})
}

// mark returns the current document sequence number.
func (l *lifecycle) mark() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// wait blocks until a document newer than after reaches the named milestone.
func (l *lifecycle) wait(ctx context.Context, name string, after int) error {
	for {
		l.mu.Lock()
		if l.reached[name] > after {
			l.mu.Unlock()
			return nil
		}
		ch := l.changed
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}

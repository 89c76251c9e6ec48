package browser

import (
	"context"
	"testing"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lifecycleEvent(frame, name string) *page.EventLifecycleEvent {
	return &page.EventLifecycleEvent{FrameID: cdpFrame(frame), Name: name}
}

func TestLifecycle_WaitReturnsAfterNewDocumentMilestone(t *testing.T) {
	l := newLifecycle()
	l.setMainFrame(cdpFrame("main"))

	l.observe(lifecycleEvent("main", "init"))
	l.observe(lifecycleEvent("main", "networkIdle"))

	mark := l.mark()
	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		done <- l.wait(ctx, "networkIdle", mark)
	}()

	// The previous document's networkIdle must not satisfy the wait.
	select {
	case err := <-done:
		t.Fatalf("wait returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	l.observe(lifecycleEvent("main", "init"))
	l.observe(lifecycleEvent("main", "DOMContentLoaded"))
	l.observe(lifecycleEvent("main", "networkIdle"))

	require.NoError(t, <-done)
}

func TestLifecycle_IgnoresOtherFrames(t *testing.T) {
	l := newLifecycle()
	l.setMainFrame(cdpFrame("main"))

	mark := l.mark()
	l.observe(lifecycleEvent("iframe", "init"))
	l.observe(lifecycleEvent("iframe", "load"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := l.wait(ctx, "load", mark)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLifecycle_MarkCountsDocuments(t *testing.T) {
	l := newLifecycle()
	assert.Equal(t, 0, l.mark())

	l.observe(lifecycleEvent("main", "init"))
	l.observe(lifecycleEvent("main", "load"))
	l.observe(lifecycleEvent("main", "init"))
	assert.Equal(t, 2, l.mark())
}

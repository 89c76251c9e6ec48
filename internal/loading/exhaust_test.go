package loading

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/codewars-scraper/internal/browser/browsertest"
)

// recordingClock counts sleeps without waiting.
type recordingClock struct {
	sleeps []time.Duration
}

func (c *recordingClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	return nil
}

// scrollingPage serves a scripted height sequence and counts scrolls.
func scrollingPage(heights ...int64) (*browsertest.Session, *int) {
	next := browsertest.Heights(heights...)
	scrolls := 0
	s := browsertest.New()
	s.EvaluateFunc = func(expr string) (any, error) {
		switch expr {
		case ScrollHeightScript:
			return next(), nil
		case ScrollToBottomScript:
			scrolls++
			return nil, nil
		}
		return nil, errors.New("unexpected script")
	}
	return s, &scrolls
}

func newTestExhauster(opts Options) (*Exhauster, *recordingClock) {
	clock := &recordingClock{}
	return &Exhauster{Options: opts, Clock: clock, Logger: zap.NewNop()}, clock
}

func TestExhaust_StopsOneCycleAfterGrowthEnds(t *testing.T) {
	tests := []struct {
		name       string
		heights    []int64
		wantSleeps int
		wantHeight int64
		wantReads  int
	}{
		{name: "no growth after first reading", heights: []int64{900, 900}, wantSleeps: 1, wantHeight: 900, wantReads: 2},
		{name: "grows twice", heights: []int64{900, 1800, 2700, 2700}, wantSleeps: 3, wantHeight: 2700, wantReads: 4},
		{name: "shrink counts as stable", heights: []int64{900, 1800, 1700}, wantSleeps: 2, wantHeight: 1800, wantReads: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, scrolls := scrollingPage(tt.heights...)
			e, clock := newTestExhauster(DefaultOptions())

			result, err := e.Exhaust(context.Background(), page)
			require.NoError(t, err)

			assert.Len(t, clock.sleeps, tt.wantSleeps)
			assert.Equal(t, tt.wantSleeps, *scrolls)
			assert.Equal(t, tt.wantHeight, result.Height)
			assert.Equal(t, tt.wantReads, result.Readings)
			for _, d := range clock.sleeps {
				assert.Equal(t, DefaultDelay, d)
			}
		})
	}
}

func TestExhaust_MultipleStableReadings(t *testing.T) {
	// Growth resumes after one flat reading; a threshold of 2 keeps going.
	page, _ := scrollingPage(900, 1800, 1800, 2700, 2700, 2700)

	opts := DefaultOptions()
	opts.StableReadings = 2
	e, clock := newTestExhauster(opts)

	result, err := e.Exhaust(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, int64(2700), result.Height)
	assert.Equal(t, 3, result.Scrolls)
	assert.Equal(t, 6, result.Readings)
	assert.Len(t, clock.sleeps, 5)
}

func TestExhaust_SingleStableReadingStopsEarly(t *testing.T) {
	// Same page as above: the default rule stops at the first flat reading.
	page, _ := scrollingPage(900, 1800, 1800, 2700, 2700, 2700)
	e, _ := newTestExhauster(DefaultOptions())

	result, err := e.Exhaust(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), result.Height)
}

func TestExhaust_MaxIterations(t *testing.T) {
	page, _ := scrollingPage(100, 200, 300, 400, 500, 600)

	opts := DefaultOptions()
	opts.MaxIterations = 3
	e, _ := newTestExhauster(opts)

	result, err := e.Exhaust(context.Background(), page)
	require.Error(t, err)

	var loadErr *ContentLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, KindExhausted, loadErr.Kind)
	assert.Equal(t, 3, result.Scrolls)
}

func TestExhaust_UnlimitedIterations(t *testing.T) {
	heights := make([]int64, 0, 50)
	for i := int64(1); i <= 49; i++ {
		heights = append(heights, i*100)
	}
	heights = append(heights, 4900)
	page, _ := scrollingPage(heights...)

	opts := DefaultOptions()
	opts.MaxIterations = 0
	e, _ := newTestExhauster(opts)

	result, err := e.Exhaust(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, 49, result.Scrolls)
}

func TestExhaust_EvaluationFailure(t *testing.T) {
	s := browsertest.New()
	s.EvaluateFunc = func(string) (any, error) {
		return nil, errors.New("target closed")
	}
	e, _ := newTestExhauster(DefaultOptions())

	_, err := e.Exhaust(context.Background(), s)
	var loadErr *ContentLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, KindEvaluationFailed, loadErr.Kind)
}

func TestExhaust_ContextCancelled(t *testing.T) {
	page, _ := scrollingPage(100, 200, 300)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, _ := newTestExhauster(DefaultOptions())
	_, err := e.Exhaust(ctx, page)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRealClock_Sleep(t *testing.T) {
	start := time.Now()
	require.NoError(t, RealClock{}.Sleep(context.Background(), 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, RealClock{}.Sleep(ctx, time.Hour), context.Canceled)
}

package result

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_CompletesOnce(t *testing.T) {
	t.Parallel()
	r := New()

	assert.False(t, r.IsDone())
	assert.False(t, r.IsSuccess())

	assert.True(t, r.Succeed())
	assert.False(t, r.Fail(errors.New("late")))

	assert.True(t, r.IsDone())
	assert.True(t, r.IsSuccess())
	assert.NoError(t, r.Err())
}

func TestResult_FailWithoutCause(t *testing.T) {
	t.Parallel()
	r := New()
	r.Fail(nil)

	assert.False(t, r.IsSuccess())
	assert.ErrorIs(t, r.Err(), ErrFailed)
}

func TestResult_WhenCompleteRunsExactlyOnce(t *testing.T) {
	t.Parallel()
	r := New()

	var calls atomic.Int32
	r.WhenComplete(func() { calls.Add(1) })

	r.Succeed()
	r.Succeed()
	r.Fail(errors.New("ignored"))

	assert.Equal(t, int32(1), calls.Load())
}

func TestResult_WhenCompleteOnCompletedResultRunsImmediately(t *testing.T) {
	t.Parallel()
	r := Failure(errors.New("boom"))

	ran := false
	r.WhenComplete(func() { ran = true })

	assert.True(t, ran)
}

func TestResult_ContinuationObservesOutcome(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")
	r := New()

	var seen error
	r.WhenComplete(func() { seen = r.Err() })
	r.Fail(cause)

	assert.ErrorIs(t, seen, cause)
}

func TestResult_Wait(t *testing.T) {
	t.Parallel()
	r := New()
	go func() {
		time.Sleep(10 * time.Millisecond)
		r.Succeed()
	}()

	require.NoError(t, r.Wait(context.Background()))
}

func TestResult_WaitHonoursContext(t *testing.T) {
	t.Parallel()
	r := New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
	assert.False(t, r.IsDone())
}

func TestAll_Empty(t *testing.T) {
	t.Parallel()
	assert.True(t, All().IsSuccess())
}

func TestAll_CompletesAfterEveryInputInAnyOrder(t *testing.T) {
	t.Parallel()
	inputs := []*Result{New(), New(), New()}
	agg := All(inputs...)

	inputs[2].Succeed()
	inputs[0].Succeed()
	assert.False(t, agg.IsDone())

	inputs[1].Succeed()
	assert.True(t, agg.IsSuccess())
}

func TestAll_FailsIfAnyInputFailed(t *testing.T) {
	t.Parallel()
	cause := errors.New("export failed")
	a, b := New(), New()
	agg := All(a, b, Success())

	a.Fail(cause)
	assert.False(t, agg.IsDone())
	b.Succeed()

	assert.True(t, agg.IsDone())
	assert.ErrorIs(t, agg.Err(), cause)
}

func TestAll_ConcurrentCompletion(t *testing.T) {
	t.Parallel()
	const n = 200
	inputs := make([]*Result, n)
	for i := range inputs {
		inputs[i] = New()
	}
	agg := All(inputs...)

	var wg sync.WaitGroup
	for _, r := range inputs {
		wg.Add(1)
		go func(r *Result) {
			defer wg.Done()
			r.Succeed()
		}(r)
	}
	wg.Wait()

	assert.True(t, agg.IsSuccess())
}

func TestGo(t *testing.T) {
	t.Parallel()
	cause := errors.New("write failed")

	ok := Go(func() error { return nil })
	failed := Go(func() error { return cause })
	panicked := Go(func() error { panic("kaboom") })

	ctx := context.Background()
	assert.NoError(t, ok.Wait(ctx))
	assert.ErrorIs(t, failed.Wait(ctx), cause)
	assert.ErrorIs(t, panicked.Wait(ctx), ErrPanic)
}

func TestResult_Complete(t *testing.T) {
	t.Parallel()
	cause := errors.New("nope")

	ok, failed := New(), New()
	assert.True(t, ok.Complete(nil))
	assert.True(t, failed.Complete(cause))

	assert.True(t, ok.IsSuccess())
	assert.ErrorIs(t, failed.Err(), cause)
}

func TestThen(t *testing.T) {
	t.Parallel()
	first := New()
	second := New()
	ran := false

	out := Then(first, func() *Result {
		ran = true
		return second
	})
	assert.False(t, ran)

	first.Fail(errors.New("ignored"))
	assert.True(t, ran)
	assert.False(t, out.IsDone())

	second.Succeed()
	assert.True(t, out.IsSuccess())
}

func TestThen_NilNext(t *testing.T) {
	t.Parallel()

	out := Then(Success(), func() *Result { return nil })

	assert.ErrorIs(t, out.Err(), ErrFailed)
}

func TestTracker(t *testing.T) {
	t.Parallel()
	var tr Tracker
	a, b := New(), New()

	tr.Track(a)
	tr.Track(b)
	assert.Equal(t, 2, tr.Len())
	assert.True(t, tr.Contains(a))

	settled := tr.Settled()
	late := tr.Track(New())

	a.Fail(errors.New("lost"))
	assert.False(t, settled.IsDone())
	b.Succeed()

	assert.True(t, settled.IsSuccess(), "failures of tracked results do not fail Settled")
	assert.False(t, tr.Contains(a))
	assert.Equal(t, 1, tr.Len())
	assert.Same(t, late, tr.Snapshot()[0])
}

func TestTracker_CompletedResultIsNotKept(t *testing.T) {
	t.Parallel()
	var tr Tracker

	tr.Track(Success())

	assert.Zero(t, tr.Len())
	assert.True(t, tr.Settled().IsSuccess())
}

package result

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
)

// Result is the outcome of an asynchronous operation. The zero value is not
// usable; create one with New, Success or Failure.
type Result struct {
	mu        sync.Mutex
	done      chan struct{}
	completed bool
	err       error
	callbacks []func()
}

// New returns a pending Result.
func New() *Result {
	return &Result{done: make(chan struct{})}
}

// Success returns a Result that has already succeeded.
func Success() *Result {
	r := New()
	r.Succeed()
	return r
}

// Failure returns a Result that has already failed with err.
func Failure(err error) *Result {
	r := New()
	r.Fail(err)
	return r
}

// Succeed completes the Result successfully. It reports whether this call
// completed the Result.
func (r *Result) Succeed() bool {
	return r.complete(nil)
}

// Fail completes the Result with err, or ErrFailed when err is nil. It reports
// whether this call completed the Result.
func (r *Result) Fail(err error) bool {
	if err == nil {
		err = ErrFailed
	}
	return r.complete(err)
}

// Complete succeeds the Result when err is nil and fails it otherwise.
func (r *Result) Complete(err error) bool {
	return r.complete(err)
}

func (r *Result) complete(err error) bool {
	r.mu.Lock()
	if r.completed {
		r.mu.Unlock()
		return false
	}
	r.completed = true
	r.err = err
	callbacks := r.callbacks
	r.callbacks = nil
	close(r.done)
	r.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return true
}

// WhenComplete registers fn to run once the Result completes. If the Result is
// already complete, fn runs before WhenComplete returns.
func (r *Result) WhenComplete(fn func()) *Result {
	r.mu.Lock()
	if !r.completed {
		r.callbacks = append(r.callbacks, fn)
		r.mu.Unlock()
		return r
	}
	r.mu.Unlock()

	fn()
	return r
}

// Done returns a channel that is closed when the Result completes.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// IsDone reports whether the Result has completed.
func (r *Result) IsDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// IsSuccess reports whether the Result completed without an error.
// A pending Result is not successful.
func (r *Result) IsSuccess() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed && r.err == nil
}

// Err returns the failure cause, or nil while pending or after success.
func (r *Result) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Wait blocks until the Result completes or ctx is done.
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// All returns a Result that completes once every input has completed. It
// succeeds only if all inputs succeeded; otherwise it fails with the combined
// errors of the failed inputs. All with no inputs has already succeeded.
func All(results ...*Result) *Result {
	if len(results) == 0 {
		return Success()
	}

	aggregate := New()

	var (
		mu        sync.Mutex
		errs      error
		remaining atomic.Int64
	)
	remaining.Store(int64(len(results)))

	for _, res := range results {
		res := res
		res.WhenComplete(func() {
			if err := res.Err(); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			if remaining.Add(-1) != 0 {
				return
			}

			mu.Lock()
			err := errs
			mu.Unlock()
			if err != nil {
				aggregate.Fail(err)
				return
			}
			aggregate.Succeed()
		})
	}

	return aggregate
}

// Go runs fn on a new goroutine and returns a Result completed with its
// error. A panic in fn fails the Result with ErrPanic.
func Go(fn func() error) *Result {
	r := New()
	go func() {
		defer func() {
			if p := recover(); p != nil {
				r.Fail(fmt.Errorf("%w: %v", ErrPanic, p))
			}
		}()
		r.Complete(fn())
	}()
	return r
}

// Then returns a Result that completes like the one fn returns. fn runs once r
// has completed, whatever its outcome.
func Then(r *Result, fn func() *Result) *Result {
	out := New()
	r.WhenComplete(func() {
		next := fn()
		if next == nil {
			out.Fail(ErrFailed)
			return
		}
		next.WhenComplete(func() { out.Complete(next.Err()) })
	})
	return out
}

package result

import "sync"

// Tracker keeps the Results of operations that have not completed yet.
// The zero value is ready to use.
type Tracker struct {
	pending sync.Map
}

// Track adds r until it completes and returns r.
func (t *Tracker) Track(r *Result) *Result {
	t.pending.Store(r, struct{}{})
	r.WhenComplete(func() { t.pending.Delete(r) })
	return r
}

// Contains reports whether r is tracked and has not completed.
func (t *Tracker) Contains(r *Result) bool {
	_, ok := t.pending.Load(r)
	return ok
}

// Len returns the number of tracked Results that have not completed.
func (t *Tracker) Len() int {
	n := 0
	t.pending.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Snapshot returns the Results pending at the time of the call.
func (t *Tracker) Snapshot() []*Result {
	var out []*Result
	t.pending.Range(func(key, _ any) bool {
		out = append(out, key.(*Result))
		return true
	})
	return out
}

// Settled returns a Result that succeeds once every Result pending at the
// time of the call has completed, regardless of their outcome.
func (t *Tracker) Settled() *Result {
	done := New()
	All(t.Snapshot()...).WhenComplete(func() { done.Succeed() })
	return done
}

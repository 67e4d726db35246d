// Package result provides Result, a completion handle for asynchronous
// operations such as span exports, flushes and shutdowns.
//
// A Result starts pending and is completed exactly once, either successfully
// or with an error. Callers observe completion by registering continuations
// with WhenComplete, by selecting on Done, or by blocking in Wait.
//
// # Basic Usage
//
//	res := result.New()
//	go func() {
//		if err := send(); err != nil {
//			res.Fail(err)
//			return
//		}
//		res.Succeed()
//	}()
//
//	res.WhenComplete(func() {
//		if !res.IsSuccess() {
//			log.Printf("send failed: %v", res.Err())
//		}
//	})
//
// # Aggregation
//
// All combines several results into one that completes when every input has
// completed and succeeds only if every input succeeded:
//
//	flushed := result.All(pending...)
//	if err := flushed.Wait(ctx); err != nil {
//		return err
//	}
//
// # Thread Safety
//
// All methods are safe for concurrent use. Continuations run on the goroutine
// that completes the Result, or on the registering goroutine if the Result is
// already complete; no goroutines are started on their behalf.
package result

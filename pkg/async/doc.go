// Package async runs a function in the background and exposes its eventual
// result as a Future.
//
// A Future is completed exactly once. Callers wait for it with Await, which
// honours context cancellation without affecting the running function.
//
//	f := async.Go(ctx, func(ctx context.Context) (Result, error) {
//	    return gateway.FireEvent(ctx, req)
//	})
//	res, err := f.Await(waitCtx)
//
// The background function receives the context given to Go. Cancelling the
// context passed to Await only stops the wait.
package async

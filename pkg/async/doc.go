// Package async provides generic helpers for running computations
// asynchronously and waiting for their completion.
//
// The package is centred around the generic Future type returned by Async,
// which starts the supplied function in its own goroutine. Callers wait with
// Await or AwaitWithTimeout. Multiple futures are coordinated with SettleAll
// (wait for every one, collect all errors; the settle-all discipline the
// notification fan-out depends on) or WaitAll (fail on the first error).
//
//	future := async.Async(ctx, target, sender.Send)
//	result, err := future.Await()
package async

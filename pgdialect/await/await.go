// Package await is the bridge that lets synchronous-looking code drive a
// pending asynchronous computation to completion.
//
// A Future holds exactly one computation. Await runs it on a private,
// single-use runner, blocking the calling goroutine for precisely that
// computation and nothing else. The computation's result comes back as an
// ordinary return value; its error comes back with unchanged identity, so
// error classification above the bridge keeps seeing the native error types.
// Suspension happens only inside Await; callers above it never observe it.
package await

import (
	"context"
	"sync"
)

// Void is the result type for computations that only report an error.
type Void = struct{}

// Future is one pending asynchronous computation producing a T. The
// computation does not start until the future is awaited, and runs at most
// once; a second Await returns the memoized outcome.
type Future[T any] struct {
	fn   func(ctx context.Context) (T, error)
	once sync.Once

	value    T
	err      error
	panicked *panicValue
}

type panicValue struct {
	val any
}

type outcome[T any] struct {
	value    T
	err      error
	panicked *panicValue
}

// New creates a future from a pending computation. The computation receives
// the context passed to Await; the bridge itself adds no cancellation.
func New[T any](fn func(ctx context.Context) (T, error)) *Future[T] {
	return &Future[T]{fn: fn}
}

// Resolved creates an already-completed future carrying a value.
func Resolved[T any](value T) *Future[T] {
	f := &Future[T]{}
	f.once.Do(func() { f.value = value })
	return f
}

// Failed creates an already-completed future carrying an error.
func Failed[T any](err error) *Future[T] {
	f := &Future[T]{}
	f.once.Do(func() { f.err = err })
	return f
}

// Await drives the future's computation to completion and blocks the caller
// until it resolves. Each call gets its own runner goroutine, which never
// outlives the call. Errors propagate with unchanged identity; a panic
// inside the computation is rethrown on the calling goroutine. The bridge
// performs no retries.
func Await[T any](ctx context.Context, f *Future[T]) (T, error) {
	f.once.Do(func() {
		if f.fn == nil {
			return
		}

		done := make(chan outcome[T], 1)

		go func() {
			var out outcome[T]

			defer func() {
				if r := recover(); r != nil {
					out.panicked = &panicValue{val: r}
				}
				done <- out
			}()

			out.value, out.err = f.fn(ctx)
		}()

		out := <-done
		f.value = out.value
		f.err = out.err
		f.panicked = out.panicked
	})

	if f.panicked != nil {
		// rethrow with the original panic value
		panic(f.panicked.val)
	}

	return f.value, f.err
}

package asset

import (
	"context"
	"fmt"
)

// Future is the result of a load running on a background goroutine. The value is
// only handed over through Poll or Wait, so the loader never touches state owned
// by the render thread.
type Future[T any] struct {
	name string
	done chan struct{}
	val  T
	err  error
}

// Go starts fn on its own goroutine.
func Go[T any](name string, fn func() (T, error)) *Future[T] {
	f := &Future[T]{name: name, done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("load %s: panic: %v", name, r)
			}
		}()
		f.val, f.err = fn()
	}()
	return f
}

func (f *Future[T]) Name() string {
	return f.name
}

// Poll reports the result without blocking. ok is false while the load is running.
func (f *Future[T]) Poll() (v T, ok bool, err error) {
	select {
	case <-f.done:
		return f.val, true, f.err
	default:
		return v, false, nil
	}
}

// Wait blocks until the load completes or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

package iopool

import "context"

// Result is the outcome of a job.
type Result[T any] struct {
	Value T
	Err   error
}

// Future receives the single result of a job.
type Future[T any] struct {
	ch   chan Result[T]
	done bool
}

// Run submits fn to p. The returned future reports ErrDisconnected when the
// pool is closed or fn panics.
func Run[T any](p *Pool, fn func() (T, error)) *Future[T] {
	f := &Future[T]{ch: make(chan Result[T], 1)}
	err := p.Submit(func() {
		sent := false
		defer func() {
			if !sent {
				f.ch <- Result[T]{Err: ErrDisconnected}
			}
		}()
		v, err := fn()
		f.ch <- Result[T]{Value: v, Err: err}
		sent = true
	})
	if err != nil {
		f.ch <- Result[T]{Err: ErrDisconnected}
	}
	return f
}

// Poll returns the result if it is ready. A ready result stays available until
// it is polled; after that Poll always reports false.
func (f *Future[T]) Poll() (Result[T], bool) {
	if f == nil || f.done {
		return Result[T]{}, false
	}
	select {
	case r := <-f.ch:
		f.done = true
		return r, true
	default:
		return Result[T]{}, false
	}
}

// Done reports whether the result has already been taken.
func (f *Future[T]) Done() bool { return f == nil || f.done }

// Wait blocks for the result. It is meant for headless callers.
func (f *Future[T]) Wait(ctx context.Context) (Result[T], error) {
	if f.done {
		return Result[T]{}, ErrDisconnected
	}
	select {
	case r := <-f.ch:
		f.done = true
		return r, nil
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	}
}

package stream

import (
	"context"
)

// Iterate sends the values of next until it returns false or ctx is done.
// next is only ever called from a single goroutine.
func Iterate[T any](ctx context.Context, next func() (T, bool)) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for {
			if ctx.Err() != nil {
				return
			}
			element, ok := next()
			if !ok {
				return
			}
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

// Collect drains in into a slice. It stops early once ctx is done,
// leaving the rest of in undrained.
func Collect[T any](ctx context.Context, in <-chan T) []T {
	out := []T{}
	for {
		select {
		case <-ctx.Done():
			return out
		case element, ok := <-in:
			if !ok {
				return out
			}
			out = append(out, element)
		}
	}
}

package reactive

import (
	"context"
	"iter"
)

// A Publisher pushes elements to emit until it completes, fails, or emit returns an error.
//
// Publish returns nil on completion.
// An error returned by emit stops the Publisher and is returned from Publish.
// Implementations ought to stop once ctx is done.
type Publisher[T any] interface {
	Publish(ctx context.Context, emit func(T) error) error
}

// A Flux is a Publisher of zero or more elements.
type Flux[T any] func(ctx context.Context, emit func(T) error) error

// Publish implements Publisher.
// A nil Flux completes immediately.
func (f Flux[T]) Publish(ctx context.Context, emit func(T) error) error {
	if f == nil {
		return nil
	}

	return f(ctx, emit)
}

// FromPublisher adapts any Publisher into a Flux.
func FromPublisher[T any](p Publisher[T]) Flux[T] {
	if f, ok := p.(Flux[T]); ok {
		return f
	}

	return p.Publish
}

// FromSlice emits each item in order.
func FromSlice[T any](items ...T) Flux[T] {
	return func(ctx context.Context, emit func(T) error) error {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := emit(item); err != nil {
				return err
			}
		}

		return nil
	}
}

// FromChannel emits every value received on ch until ch closes.
func FromChannel[T any](ch <-chan T) Flux[T] {
	return func(ctx context.Context, emit func(T) error) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case item, ok := <-ch:
				if !ok {
					return nil
				}

				if err := emit(item); err != nil {
					return err
				}
			}
		}
	}
}

// FromSeq emits the values seq yields.
// The sequence is consumed lazily, one value per emit.
func FromSeq[T any](seq iter.Seq[T]) Flux[T] {
	return func(ctx context.Context, emit func(T) error) error {
		var err error
		seq(func(item T) bool {
			if err = ctx.Err(); err != nil {
				return false
			}

			err = emit(item)
			return err == nil
		})

		return err
	}
}

// FromSeq2 emits the values seq yields, stopping at the first non-nil error it yields.
func FromSeq2[T any](seq iter.Seq2[T, error]) Flux[T] {
	return func(ctx context.Context, emit func(T) error) error {
		var err error
		seq(func(item T, e error) bool {
			if e != nil {
				err = e
				return false
			}

			if err = ctx.Err(); err != nil {
				return false
			}

			err = emit(item)
			return err == nil
		})

		return err
	}
}

// Defer calls fn each time the Flux is published to, publishing the Publisher it returns.
func Defer[T any](fn func() Publisher[T]) Flux[T] {
	return func(ctx context.Context, emit func(T) error) error {
		p := fn()
		if p == nil {
			return nil
		}

		return p.Publish(ctx, emit)
	}
}

// Map transforms every element p emits with fn.
// An error from fn fails the Flux.
func Map[T, R any](p Publisher[T], fn func(T) (R, error)) Flux[R] {
	return func(ctx context.Context, emit func(R) error) error {
		return p.Publish(ctx, func(item T) error {
			mapped, err := fn(item)
			if err != nil {
				return err
			}

			return emit(mapped)
		})
	}
}

// Collect gathers every element p emits.
func Collect[T any](ctx context.Context, p Publisher[T]) ([]T, error) {
	items := make([]T, 0)
	err := p.Publish(ctx, func(item T) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Erase converts p into a Flux emitting its elements as any.
func Erase[T any](p Publisher[T]) Flux[any] {
	if f, ok := any(p).(Flux[any]); ok {
		return f
	}

	return func(ctx context.Context, emit func(any) error) error {
		return p.Publish(ctx, func(item T) error { return emit(item) })
	}
}

package reactive

import "context"

// A Mono is a Publisher of at most one element.
type Mono[T any] func(ctx context.Context, emit func(T) error) error

// Publish implements Publisher.
// A nil Mono completes empty.
func (m Mono[T]) Publish(ctx context.Context, emit func(T) error) error {
	if m == nil {
		return nil
	}

	return m(ctx, emit)
}

// Await blocks until m produces its element.
// See AwaitSingle.
func (m Mono[T]) Await(ctx context.Context) (T, error) { return AwaitSingle[T](ctx, m) }

// Flux views m as a Flux.
func (m Mono[T]) Flux() Flux[T] { return Flux[T](m) }

// single marks a Mono for the Registry.
func (Mono[T]) single() {}

// Just emits v.
func Just[T any](v T) Mono[T] {
	return func(ctx context.Context, emit func(T) error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return emit(v)
	}
}

// Empty completes without emitting.
func Empty[T any]() Mono[T] {
	return func(context.Context, func(T) error) error { return nil }
}

// Error fails with err without emitting.
func Error[T any](err error) Mono[T] {
	return func(context.Context, func(T) error) error { return err }
}

// FromFunc calls fn on every subscription, emitting its result.
func FromFunc[T any](fn func(context.Context) (T, error)) Mono[T] {
	return func(ctx context.Context, emit func(T) error) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}

		return emit(v)
	}
}

// MapMono transforms the element of m with fn.
func MapMono[T, R any](m Mono[T], fn func(T) (R, error)) Mono[R] {
	return Mono[R](Map[T, R](m, fn))
}

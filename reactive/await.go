package reactive

import "context"

// AwaitSingle publishes p and blocks until it produces exactly one element.
//
// AwaitSingle fails with:
//   - the error p returns
//   - ErrNoElements when p completes empty
//   - ErrTooManyElements when p emits a second element, which also stops p
//   - ctx.Err() when ctx is done before p finishes
//
// p runs in its own goroutine with a context derived from ctx;
// that context is cancelled once AwaitSingle returns.
func AwaitSingle[T any](ctx context.Context, p Publisher[T]) (T, error) {
	var zero T
	if p == nil {
		return zero, ErrNoElements
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		val T
		err error
	}

	done := make(chan result, 1)
	go func() {
		var (
			val   T
			count int
		)

		err := p.Publish(ctx, func(item T) error {
			count++
			if count > 1 {
				return ErrTooManyElements
			}

			val = item
			return nil
		})
		switch {
		case count > 1:
			err = ErrTooManyElements
		case err == nil && count == 0:
			err = ErrNoElements
		}

		done <- result{val: val, err: err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return zero, res.err
		}

		return res.val, nil
	}
}

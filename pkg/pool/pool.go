package pool

import (
	"context"
	"errors"
	"sync"
)

// WorkerFunc processes a single item and may return an error.
type WorkerFunc[T any] func(ctx context.Context, item T) error

// Run processes items with numWorkers concurrent workers. It stops feeding
// new items once ctx is cancelled and returns the joined errors of all
// failed items, or nil if everything succeeded.
func Run[T any](ctx context.Context, items []T, numWorkers int, fn WorkerFunc[T]) error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	tasks := make(chan T)
	errChan := make(chan error, len(items))

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				select {
				case <-ctx.Done():
					return
				default:
					if err := fn(ctx, item); err != nil {
						errChan <- err
					}
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case tasks <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)
	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

package databus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/databus/core/logger"
)

// Decorator wraps a handler function to add cross-cutting behavior.
// Decorators are opt-in; Publish itself never recovers panics or retries.
type Decorator[T any] func(HandlerFunc[T]) HandlerFunc[T]

// ApplyDecorators wraps fn with the given decorators. The first decorator in
// the list becomes the outermost wrapper and runs first.
//
// Example:
//
//	handler := databus.ApplyDecorators(
//		sendEmail,
//		databus.Logging[Order](log),
//		databus.Recover[Order](),
//		databus.Timeout[Order](5*time.Second),
//	)
//
// Execution order: Logging -> Recover -> Timeout -> sendEmail
func ApplyDecorators[T any](fn HandlerFunc[T], decorators ...Decorator[T]) HandlerFunc[T] {
	for i := len(decorators) - 1; i >= 0; i-- {
		fn = decorators[i](fn)
	}
	return fn
}

// Recover converts a handler panic into an error wrapping ErrHandlerPanic.
func Recover[T any]() Decorator[T] {
	return func(next HandlerFunc[T]) HandlerFunc[T] {
		return func(ctx context.Context, payload T) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
				}
			}()
			return next(ctx, payload)
		}
	}
}

// Timeout gives the handler a context that expires after d. The handler still
// runs on the publishing goroutine and must observe ctx to stop early.
func Timeout[T any](d time.Duration) Decorator[T] {
	return func(next HandlerFunc[T]) HandlerFunc[T] {
		return func(ctx context.Context, payload T) error {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()

			err := next(ctx, payload)
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("handler timeout after %s: %w", d, err)
			}
			return err
		}
	}
}

// Retry re-invokes a failing handler up to maxRetries extra times.
// It stops early if ctx is done. The last error is returned wrapped.
func Retry[T any](maxRetries int) Decorator[T] {
	return func(next HandlerFunc[T]) HandlerFunc[T] {
		return func(ctx context.Context, payload T) error {
			var lastErr error
			for attempt := 0; attempt <= maxRetries; attempt++ {
				if attempt > 0 && ctx.Err() != nil {
					return ctx.Err()
				}

				err := next(ctx, payload)
				if err == nil {
					return nil
				}
				lastErr = err
			}
			return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
		}
	}
}

// Logging records handler completion or failure with timing. The error is
// logged and then returned unchanged.
func Logging[T any](log *slog.Logger) Decorator[T] {
	return func(next HandlerFunc[T]) HandlerFunc[T] {
		return func(ctx context.Context, payload T) error {
			start := time.Now()
			err := next(ctx, payload)

			if err != nil {
				log.ErrorContext(ctx, "handler failed",
					logger.Key(keyValue(ctx)),
					logger.Elapsed(start),
					logger.Error(err))
			} else {
				log.DebugContext(ctx, "handler completed",
					logger.Key(keyValue(ctx)),
					logger.Elapsed(start))
			}
			return err
		}
	}
}

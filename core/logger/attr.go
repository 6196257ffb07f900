package logger

import (
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info("msg", logger.Error(err)) without explicit nil checks.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Error Handling
// ============================================================================

// Errors groups multiple non-nil errors under the key "errors".
// Uses index-based keys to preserve error order. Returns empty Attr for all nil errors.
func Errors(errs ...error) slog.Attr {
	count := 0
	for _, err := range errs {
		if err != nil {
			count++
		}
	}
	if count == 0 {
		return slog.Attr{}
	}

	as := make([]slog.Attr, 0, count)
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Panic creates an attribute for a recovered panic value.
// Returns empty Attr for nil.
func Panic(v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any("panic", v)
}

// ============================================================================
// Timing
// ============================================================================

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ============================================================================
// Registry and Dispatch
// ============================================================================

// Key creates an attribute for a channel key. Keys that implement fmt.Stringer
// are logged by their string form. Returns empty Attr for nil.
func Key(key any) slog.Attr {
	switch k := key.(type) {
	case nil:
		return slog.Attr{}
	case string:
		return slog.String("key", k)
	case fmt.Stringer:
		return slog.String("key", k.String())
	default:
		return slog.Any("key", k)
	}
}

// Registry creates an attribute naming a registry instance.
func Registry(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("registry", name)
}

// Discipline creates an attribute for a slot discipline name.
func Discipline(name string) slog.Attr {
	return slog.String("discipline", name)
}

// SubscriberID creates an attribute for a subscriber identifier.
func SubscriberID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("subscriber_id", id)
}

// Handlers creates an attribute for the number of handlers bound to a slot.
func Handlers(n int) slog.Attr {
	return slog.Int("handlers", n)
}

// ============================================================================
// Generic Attributes
// ============================================================================

// Component creates an attribute naming the emitting component.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute naming what happened.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Count creates a count attribute with a custom key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// RetryCount creates an attribute for the retry attempt number.
func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}

// ============================================================================
// Debugging
// ============================================================================

// Caller creates an attribute with the file and line of the caller.
func Caller() slog.Attr {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return slog.Attr{}
	}
	return slog.String("caller", file+":"+strconv.Itoa(line))
}

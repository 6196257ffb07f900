package databus

import (
	"log/slog"
)

type options struct {
	name      string
	logger    *slog.Logger
	capacity  int
	normalize any // func(K) K, checked against the key type in New
}

// Option configures a Registry.
type Option func(*options)

// WithLogger sets the logger used for debug-level lifecycle records.
// If not set, logging is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName names the registry in log records.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithCapacity pre-sizes registry storage for the expected number of keys.
// Negative values are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.capacity = n
		}
	}
}

// WithNormalizer canonicalizes keys before every lookup, e.g. case folding.
// The function must be idempotent. Its key type must match the registry's key
// type; New panics otherwise.
//
// Example:
//
//	reg := databus.NewSingle[topic.Topic, int](databus.WithNormalizer(topic.Normalize))
func WithNormalizer[K comparable](fn func(K) K) Option {
	return func(o *options) {
		if fn != nil {
			o.normalize = fn
		}
	}
}

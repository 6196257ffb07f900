package databus

import (
	"context"
)

// Publisher invokes the handlers bound to one key. It resolves its slot once,
// at construction, and may be created before any subscriber for the key exists.
//
// A Publisher does not own its slot and must not outlive its registry.
type Publisher[K comparable, T any] struct {
	registry *Registry[K, T]
	slot     *Slot[K, T]
}

// NewPublisher creates a publisher for key, creating the key's slot if needed.
// It fails with ErrBadKey only when the key implements KeyValidator and is invalid.
//
// Example:
//
//	pub, err := databus.NewPublisher("orders", reg)
//	if err != nil {
//		return err
//	}
//	err = pub.Publish(ctx, order)
func NewPublisher[K comparable, T any](key K, r *Registry[K, T]) (*Publisher[K, T], error) {
	key = r.normalizeKey(key)
	if err := validateKey(key); err != nil {
		return nil, err
	}

	return &Publisher[K, T]{
		registry: r,
		slot:     r.resolve(key),
	}, nil
}

// MustPublisher is like NewPublisher but panics on error.
func MustPublisher[K comparable, T any](key K, r *Registry[K, T]) *Publisher[K, T] {
	p, err := NewPublisher(key, r)
	if err != nil {
		panic(err)
	}
	return p
}

// Publish invokes the slot's handlers synchronously on the calling goroutine,
// in subscription order. With no handler bound it is a no-op and returns nil.
//
// The first handler error is returned unchanged and the remaining handlers are
// not invoked. Panics are not recovered; wrap handlers with Recover for that.
// Handlers subscribed while Publish runs are not invoked by that call.
func (p *Publisher[K, T]) Publish(ctx context.Context, payload T) error {
	return p.slot.publish(ctx, payload)
}

// Key returns the normalized key the publisher is bound to.
func (p *Publisher[K, T]) Key() K {
	return p.slot.key
}

// Slot returns the slot the publisher is bound to.
func (p *Publisher[K, T]) Slot() *Slot[K, T] {
	return p.slot
}

// Registry returns the registry the publisher was created from.
func (p *Publisher[K, T]) Registry() *Registry[K, T] {
	return p.registry
}

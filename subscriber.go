package databus

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/databus/core/logger"
)

// KeyValidator is implemented by key types that can be malformed.
// Publishers and subscribers reject such keys with ErrBadKey.
type KeyValidator interface {
	Validate() error
}

// Subscriber binds one handler to the slot of one key.
//
// There is no unsubscription: the handler stays bound for the lifetime of the
// registry, whether or not the Subscriber value is kept.
type Subscriber[K comparable, T any] struct {
	id       uuid.UUID
	registry *Registry[K, T]
	slot     *Slot[K, T]
}

// NewSubscriber resolves key and binds fn to its slot.
//
// On a Single registry it fails with ErrRedundantKey if the slot already has a
// handler; the existing handler is left in place. On a Multi registry fn is
// appended after the handlers already bound.
//
// Example:
//
//	sub, err := databus.NewSubscriber("orders", func(ctx context.Context, o Order) error {
//		return ship(ctx, o)
//	}, reg)
//	if errors.Is(err, databus.ErrRedundantKey) {
//		// someone already owns "orders"
//	}
func NewSubscriber[K comparable, T any](key K, fn HandlerFunc[T], r *Registry[K, T]) (*Subscriber[K, T], error) {
	if fn == nil {
		return nil, ErrNilHandler
	}

	key = r.normalizeKey(key)
	if err := validateKey(key); err != nil {
		return nil, err
	}

	slot := r.resolve(key)
	if err := slot.bind(fn); err != nil {
		r.logger.Warn("handler bind rejected",
			logger.Registry(r.name),
			logger.Key(key),
			logger.Error(err))
		return nil, fmt.Errorf("%w: %v", err, key)
	}

	s := &Subscriber[K, T]{
		id:       uuid.New(),
		registry: r,
		slot:     slot,
	}

	r.logger.Debug("handler bound",
		logger.Registry(r.name),
		logger.Key(key),
		logger.SubscriberID(s.id.String()),
		logger.Handlers(slot.Len()))

	return s, nil
}

// MustSubscribe is like NewSubscriber but panics on error.
// Intended for wiring done once at startup.
func MustSubscribe[K comparable, T any](key K, fn HandlerFunc[T], r *Registry[K, T]) *Subscriber[K, T] {
	s, err := NewSubscriber(key, fn, r)
	if err != nil {
		panic(err)
	}
	return s
}

// ID returns the identifier assigned to the subscription.
func (s *Subscriber[K, T]) ID() uuid.UUID {
	return s.id
}

// Key returns the normalized key the subscriber is bound to.
func (s *Subscriber[K, T]) Key() K {
	return s.slot.key
}

// Slot returns the slot the subscriber is bound to.
func (s *Subscriber[K, T]) Slot() *Slot[K, T] {
	return s.slot
}

// Registry returns the registry the subscriber was created from.
func (s *Subscriber[K, T]) Registry() *Registry[K, T] {
	return s.registry
}

func validateKey[K comparable](key K) error {
	v, ok := any(key).(KeyValidator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadKey, err)
	}
	return nil
}

package databus

import (
	"context"
)

// HandlerFunc is a type-safe handler bound by a Subscriber and invoked by a Publisher.
// A nil HandlerFunc is an absent handler.
type HandlerFunc[T any] func(ctx context.Context, payload T) error

// Slot is the per-key storage of a Registry. Slots are allocated individually
// and never move or get removed, so a *Slot stays valid for the lifetime of
// its registry regardless of how many keys are added later.
type Slot[K comparable, T any] struct {
	key      K
	value    slotValue[T]
	registry *Registry[K, T]
}

// Key returns the key the slot was created for, after normalization.
func (s *Slot[K, T]) Key() K {
	return s.key
}

// Len returns the number of handlers bound to the slot.
func (s *Slot[K, T]) Len() int {
	s.registry.mu.RLock()
	defer s.registry.mu.RUnlock()
	return len(s.value.handlers())
}

// Bound reports whether at least one handler is bound to the slot.
func (s *Slot[K, T]) Bound() bool {
	return s.Len() > 0
}

func (s *Slot[K, T]) bind(fn HandlerFunc[T]) error {
	s.registry.mu.Lock()
	defer s.registry.mu.Unlock()
	return s.value.bind(fn)
}

// publish invokes the bound handlers synchronously, in subscription order,
// stopping at the first error. The lock is only held while taking the snapshot,
// so handlers may resolve keys or subscribe without deadlocking.
func (s *Slot[K, T]) publish(ctx context.Context, payload T) error {
	s.registry.mu.RLock()
	fns := s.value.handlers()
	s.registry.mu.RUnlock()

	s.registry.published.Add(1)
	if len(fns) == 0 {
		return nil
	}

	ctx = withKey(ctx, s.key)
	for _, fn := range fns {
		if err := fn(ctx, payload); err != nil {
			s.registry.failed.Add(1)
			return err
		}
		s.registry.delivered.Add(1)
	}
	return nil
}

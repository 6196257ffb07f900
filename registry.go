package databus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/databus/core/logger"
)

// Registry owns the mapping from keys to slots. It is the only place where
// slots are created; publishers and subscribers cache the slot they resolved.
//
// Registry is safe for concurrent use. One read-write lock guards the key index
// and every slot's handlers. Handlers run outside the lock.
type Registry[K comparable, T any] struct {
	mu      sync.RWMutex
	index   map[K]*Slot[K, T]
	entries []*Slot[K, T]

	discipline Discipline
	newValue   func() slotValue[T]
	normalize  func(K) K

	name   string
	logger *slog.Logger

	published atomic.Int64
	delivered atomic.Int64
	failed    atomic.Int64
}

// Stats is a point-in-time snapshot of registry activity.
type Stats struct {
	Keys      int   // number of slots
	Handlers  int   // handlers bound across all slots
	Published int64 // Publish calls, including those with no handler
	Delivered int64 // handler invocations that returned nil
	Failed    int64 // handler invocations that returned an error
}

// New creates an empty registry whose slots follow the given discipline.
// It panics if the discipline is unknown or a normalizer was given for a
// different key type; both are programming errors.
//
// Example:
//
//	reg := databus.New[string, Order](databus.Multi, databus.WithLogger(log))
func New[K comparable, T any](d Discipline, opts ...Option) *Registry[K, T] {
	newValue, err := valueFactory[T](d)
	if err != nil {
		panic(fmt.Sprintf("databus: %v", err))
	}

	o := &options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	r := &Registry[K, T]{
		index:      make(map[K]*Slot[K, T], o.capacity),
		entries:    make([]*Slot[K, T], 0, o.capacity),
		discipline: d,
		newValue:   newValue,
		name:       o.name,
		logger:     o.logger,
	}

	if o.normalize != nil {
		fn, ok := o.normalize.(func(K) K)
		if !ok {
			var zero K
			panic(fmt.Sprintf("databus: normalizer %T does not match key type %T", o.normalize, zero))
		}
		r.normalize = fn
	}

	return r
}

// NewSingle creates a registry with the Single discipline.
func NewSingle[K comparable, T any](opts ...Option) *Registry[K, T] {
	return New[K, T](Single, opts...)
}

// NewMulti creates a registry with the Multi discipline.
func NewMulti[K comparable, T any](opts ...Option) *Registry[K, T] {
	return New[K, T](Multi, opts...)
}

// Discipline returns the slot discipline the registry was created with.
func (r *Registry[K, T]) Discipline() Discipline {
	return r.discipline
}

// Resolve returns the slot for key, creating an empty one if the key is new.
// It never fails, and repeated calls with the same key return the same slot.
func (r *Registry[K, T]) Resolve(key K) *Slot[K, T] {
	return r.resolve(r.normalizeKey(key))
}

// Lookup returns the slot for key without creating it.
func (r *Registry[K, T]) Lookup(key K) (*Slot[K, T], bool) {
	key = r.normalizeKey(key)

	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.index[key]
	return s, ok
}

// Keys returns the registered keys in the order their slots were created.
func (r *Registry[K, T]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]K, len(r.entries))
	for i, s := range r.entries {
		keys[i] = s.key
	}
	return keys
}

// Len returns the number of slots.
func (r *Registry[K, T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Stats returns current registry statistics.
func (r *Registry[K, T]) Stats() Stats {
	r.mu.RLock()
	keys := len(r.entries)
	handlers := 0
	for _, s := range r.entries {
		handlers += len(s.value.handlers())
	}
	r.mu.RUnlock()

	return Stats{
		Keys:      keys,
		Handlers:  handlers,
		Published: r.published.Load(),
		Delivered: r.delivered.Load(),
		Failed:    r.failed.Load(),
	}
}

func (r *Registry[K, T]) normalizeKey(key K) K {
	if r.normalize != nil {
		return r.normalize(key)
	}
	return key
}

// resolve expects an already normalized key.
func (r *Registry[K, T]) resolve(key K) *Slot[K, T] {
	r.mu.RLock()
	s, ok := r.index[key]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	if s, ok := r.index[key]; ok {
		r.mu.Unlock()
		return s
	}
	s = &Slot[K, T]{
		key:      key,
		value:    r.newValue(),
		registry: r,
	}
	r.index[key] = s
	r.entries = append(r.entries, s)
	n := len(r.entries)
	r.mu.Unlock()

	r.logger.Debug("slot created",
		logger.Registry(r.name),
		logger.Key(key),
		logger.Discipline(r.discipline.String()),
		logger.Count("keys", n))

	return s
}

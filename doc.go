// Package databus provides a key-addressed, in-process publish/subscribe registry.
//
// A Registry maps comparable keys to slots. Each slot holds either one
// optional handler (Single discipline) or an ordered list of handlers (Multi
// discipline). The discipline is chosen once, when the registry is created.
//
// Publisher and Subscriber are handles bound to one key. Creating either one
// resolves the key against the registry, creating its slot on first use, and
// keeps a pointer to that slot. Later calls go straight to the slot.
//
// # Basic Usage
//
//	reg := databus.NewSingle[string, int]()
//
//	// Publishers may exist before any subscriber. Publishing to an unbound
//	// slot is a no-op.
//	pub, _ := databus.NewPublisher("temperature", reg)
//	_ = pub.Publish(ctx, 18)
//
//	_, err := databus.NewSubscriber("temperature", func(ctx context.Context, v int) error {
//		fmt.Println("got", v)
//		return nil
//	}, reg)
//
//	_ = pub.Publish(ctx, 21) // prints "got 21"
//
// # Disciplines
//
// With Single, a second subscriber for a bound key fails with ErrRedundantKey
// and the first handler stays bound:
//
//	_, err := databus.NewSubscriber("temperature", other, reg)
//	errors.Is(err, databus.ErrRedundantKey) // true
//
// With Multi, every subscriber is appended and Publish calls all of them in
// subscription order:
//
//	reg := databus.NewMulti[string, Order]()
//	databus.MustSubscribe("orders", reserveStock, reg)
//	databus.MustSubscribe("orders", sendReceipt, reg)
//
// # Dispatch Semantics
//
// Publish runs handlers synchronously on the caller's goroutine. The first
// handler error is returned as is and the remaining handlers are skipped.
// Panics propagate to the caller. The handler context carries the key, see
// KeyFromContext. Decorators such as Recover, Retry, Timeout and Logging can
// be applied to individual handlers with ApplyDecorators.
//
// There is no unsubscription. Slots and handlers live as long as the registry.
//
// # Keys
//
// Any comparable type can be a key. Keys implementing KeyValidator are checked
// when a publisher or subscriber is created and rejected with ErrBadKey.
// WithNormalizer canonicalizes keys before lookup. Package topic provides a
// validated, case-folded string key:
//
//	reg := databus.NewMulti[topic.Topic, Order](databus.WithNormalizer(topic.Normalize))
//
// # Storage and Concurrency
//
// Slots are allocated individually and never move, so the slot pointer held by
// a handle stays valid however many keys are added afterwards.
//
// A Registry is safe for concurrent use. One read-write lock guards key
// resolution and handler binding. Publish holds the read lock only to take a
// snapshot of the slot's handlers and runs them unlocked, so handlers may
// subscribe or publish themselves. A subscription made during a Publish call is
// not seen by that call.
//
// # Configuration
//
// Config can be loaded from the environment:
//
//	cfg, err := databus.LoadConfig() // DATABUS_DISCIPLINE, DATABUS_CAPACITY, ...
//	reg, err := databus.NewFromConfig[string, Order](cfg)
package databus

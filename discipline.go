package databus

import (
	"fmt"
	"strings"
)

// Discipline selects how a slot stores handlers. It is fixed when a Registry
// is created and applies to every slot of that registry.
type Discipline uint8

const (
	// Single allows at most one handler per key. A second bind fails with ErrRedundantKey.
	Single Discipline = iota + 1

	// Multi allows any number of handlers per key. All of them are invoked on publish,
	// in subscription order.
	Multi
)

// String returns the discipline name.
func (d Discipline) String() string {
	switch d {
	case Single:
		return "single"
	case Multi:
		return "multi"
	default:
		return fmt.Sprintf("discipline(%d)", uint8(d))
	}
}

// ParseDiscipline parses a discipline name. Matching is case-insensitive.
func ParseDiscipline(s string) (Discipline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return Single, nil
	case "multi":
		return Multi, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDiscipline, s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so a Discipline can be
// read straight from the environment.
func (d *Discipline) UnmarshalText(text []byte) error {
	parsed, err := ParseDiscipline(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Discipline) MarshalText() ([]byte, error) {
	if d != Single && d != Multi {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDiscipline, uint8(d))
	}
	return []byte(d.String()), nil
}

// valueFactory returns the constructor of the slot storage for the discipline.
// It is resolved once per registry, so dispatch never branches on the discipline.
func valueFactory[T any](d Discipline) (func() slotValue[T], error) {
	switch d {
	case Single:
		return func() slotValue[T] { return &singleValue[T]{} }, nil
	case Multi:
		return func() slotValue[T] { return &multiValue[T]{} }, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownDiscipline, uint8(d))
	}
}

// slotValue is the per-key handler storage. Implementations are not
// synchronized; the owning registry's lock guards them.
type slotValue[T any] interface {
	// bind installs fn, or returns ErrRedundantKey if the discipline refuses it.
	bind(fn HandlerFunc[T]) error

	// handlers returns the bound handlers in subscription order. The returned
	// slice is never written to again, so it may be used after the lock is released.
	handlers() []HandlerFunc[T]
}

// singleValue holds one optional handler.
// Once bound, fn[0] is never written again.
type singleValue[T any] struct {
	fn [1]HandlerFunc[T]
	n  int
}

func (v *singleValue[T]) bind(fn HandlerFunc[T]) error {
	if v.n == 1 {
		return ErrRedundantKey
	}
	v.fn[0] = fn
	v.n = 1
	return nil
}

func (v *singleValue[T]) handlers() []HandlerFunc[T] {
	return v.fn[:v.n:v.n]
}

// multiValue holds an append-only sequence of handlers.
// Elements below len(fns) are never rewritten, which keeps snapshots valid.
type multiValue[T any] struct {
	fns []HandlerFunc[T]
}

func (v *multiValue[T]) bind(fn HandlerFunc[T]) error {
	v.fns = append(v.fns, fn)
	return nil
}

func (v *multiValue[T]) handlers() []HandlerFunc[T] {
	return v.fns[:len(v.fns):len(v.fns)]
}

// Package handlers provides an ordered list of plugin functions.
//
// Handlers run highest order first. Among handlers with the same order, the
// most recently added runs first.
package handlers

import (
	"cmp"
	"slices"
	"sync"
)

// ID identifies a registered handler for removal.
type ID uint64

// Option configures a handler registration.
type Option func(*entryOptions)

type entryOptions struct {
	order int
}

// WithOrder sets the handler priority. Higher values run earlier. The
// default is 0.
func WithOrder(order int) Option {
	return func(o *entryOptions) {
		o.order = order
	}
}

type entry[T any] struct {
	id    ID
	order int
	fn    T
}

// List holds handlers of type T. The zero value is ready to use.
type List[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
	nextID  ID
}

// Add registers fn and returns its ID.
func (l *List[T]) Add(fn T, opts ...Option) ID {
	var o entryOptions
	for _, opt := range opts {
		opt(&o)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	l.entries = append(l.entries, entry[T]{id: l.nextID, order: o.order, fn: fn})
	// IDs grow with insertion, so sorting by ID descending puts the most
	// recent handler first among equals.
	slices.SortStableFunc(l.entries, func(a, b entry[T]) int {
		if c := cmp.Compare(b.order, a.order); c != 0 {
			return c
		}
		return cmp.Compare(b.id, a.id)
	})

	return l.nextID
}

// Remove unregisters the handler with the given ID. It reports whether a
// handler was removed.
func (l *List[T]) Remove(id ID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.entries)
	l.entries = slices.DeleteFunc(l.entries, func(e entry[T]) bool {
		return e.id == id
	})
	return len(l.entries) != n
}

// Len returns the number of registered handlers.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Handlers returns the handlers in execution order.
func (l *List[T]) Handlers() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]T, len(l.entries))
	for i, e := range l.entries {
		result[i] = e.fn
	}
	return result
}

// First calls call with each handler in execution order and returns the first
// value for which call reports ok. The list is snapshotted before the first
// call, so handlers may add or remove handlers.
func First[T, R any](l *List[T], call func(fn T) (R, bool, error)) (R, bool, error) {
	var zero R
	for _, fn := range l.Handlers() {
		result, ok, err := call(fn)
		if err != nil {
			return zero, false, err
		}
		if ok {
			return result, true, nil
		}
	}
	return zero, false, nil
}

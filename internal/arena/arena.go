// SPDX-License-Identifier: Unlicense OR MIT

// Package arena implements a generation checked slot table. Handles
// issued by an Arena stay unique across slot reuse: removing a value
// bumps the slot generation, so every handle to the old value stops
// resolving even after the slot is handed out again.
package arena

import "fmt"

// Handle identifies a value in an Arena. The zero Handle never refers to
// a value.
type Handle struct {
	index uint32
	gen   uint32
}

type slot[T any] struct {
	value T
	gen   uint32
	used  bool
}

// Arena is a slot table of T values. The zero Arena is empty and ready
// to use.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	len   int
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

func (h Handle) String() string {
	if h.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%d:%d", h.index, h.gen)
}

// Insert stores v and returns its handle. A free slot is reused when
// available.
func (a *Arena[T]) Insert(v T) Handle {
	a.len++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.used = true
		return Handle{index: idx, gen: s.gen}
	}
	idx := uint32(len(a.slots))
	// Generations start at 1 to keep the zero Handle invalid.
	a.slots = append(a.slots, slot[T]{value: v, gen: 1, used: true})
	return Handle{index: idx, gen: 1}
}

func (a *Arena[T]) lookup(h Handle) *slot[T] {
	if int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.used || s.gen != h.gen {
		return nil
	}
	return s
}

// Get returns the value for h. It reports false if h is stale or was
// never issued by a.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	if s := a.lookup(h); s != nil {
		return s.value, true
	}
	var zero T
	return zero, false
}

// Contains reports whether h refers to a live value.
func (a *Arena[T]) Contains(h Handle) bool {
	return a.lookup(h) != nil
}

// Set replaces the value for h and reports whether h is live.
func (a *Arena[T]) Set(h Handle, v T) bool {
	s := a.lookup(h)
	if s == nil {
		return false
	}
	s.value = v
	return true
}

// Remove deletes the value for h and returns it. The slot becomes
// available for reuse under a new generation.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	s := a.lookup(h)
	if s == nil {
		return zero, false
	}
	v := s.value
	s.value = zero
	s.used = false
	s.gen++
	a.len--
	// A slot whose generation wrapped around is retired for good.
	if s.gen != 0 {
		a.free = append(a.free, h.index)
	}
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.len
}

// Range calls fn for every live value in slot order until fn returns
// false.
func (a *Arena[T]) Range(fn func(h Handle, v T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.used {
			continue
		}
		if !fn(Handle{index: uint32(i), gen: s.gen}, s.value) {
			return
		}
	}
}

// Clear removes every value. Handles issued before Clear never resolve
// again.
func (a *Arena[T]) Clear() {
	var zero T
	a.free = a.free[:0]
	for i := range a.slots {
		s := &a.slots[i]
		if s.used {
			s.used = false
			s.gen++
		}
		s.value = zero
		if s.gen != 0 {
			a.free = append(a.free, uint32(i))
		}
	}
	a.len = 0
}

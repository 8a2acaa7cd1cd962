// Package depot provides slot-based entity storage addressed by typed,
// generation-checked handles.
package depot

import "fmt"

// Handle identifies a value stored in a Depot[T]. The zero Handle is never
// issued and means "no entity".
type Handle[T any] struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle[T]) IsZero() bool { return h.gen == 0 }

// Index returns the slot index of h.
func (h Handle[T]) Index() uint32 { return h.index }

// String renders h as "#index.gen".
func (h Handle[T]) String() string {
	if h.IsZero() {
		return "#none"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type slot[T any] struct {
	gen   uint32
	live  bool
	value T
}

// Depot owns every value of one entity kind. Slot indices never shift;
// removing a value bumps the slot generation so outstanding handles to it
// go stale instead of aliasing the slot's next occupant.
type Depot[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// New returns an empty depot.
func New[T any]() *Depot[T] {
	return &Depot[T]{}
}

// Push stores v and returns its handle.
//
// Postcondition: Get(returned handle) yields v until Take is called on it.
func (d *Depot[T]) Push(v T) Handle[T] {
	d.live++
	if n := len(d.free); n > 0 {
		idx := d.free[n-1]
		d.free = d.free[:n-1]
		s := &d.slots[idx]
		s.gen++
		s.live = true
		s.value = v
		return Handle[T]{index: idx, gen: s.gen}
	}
	d.slots = append(d.slots, slot[T]{gen: 1, live: true, value: v})
	return Handle[T]{index: uint32(len(d.slots) - 1), gen: 1}
}

func (d *Depot[T]) slot(h Handle[T]) (*slot[T], bool) {
	if h.IsZero() || int(h.index) >= len(d.slots) {
		return nil, false
	}
	s := &d.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return s, true
}

func (d *Depot[T]) mustSlot(h Handle[T]) *slot[T] {
	s, ok := d.slot(h)
	if !ok {
		panic(fmt.Sprintf("GURU MEDITATION: stale or invalid handle %s", h))
	}
	return s
}

// Valid reports whether h currently resolves to a live value.
func (d *Depot[T]) Valid(h Handle[T]) bool {
	_, ok := d.slot(h)
	return ok
}

// Get returns a copy of the value for h. It panics when h is stale.
func (d *Depot[T]) Get(h Handle[T]) T {
	return d.mustSlot(h).value
}

// GetMut returns a pointer to the stored value for h. It panics when h is
// stale. The pointer must not be kept across calls that may remove
// entities from this depot.
func (d *Depot[T]) GetMut(h Handle[T]) *T {
	return &d.mustSlot(h).value
}

// Lookup is the non-panicking form of GetMut, for loops over handle
// snapshots that must tolerate entities removed earlier in the loop.
func (d *Depot[T]) Lookup(h Handle[T]) (*T, bool) {
	s, ok := d.slot(h)
	if !ok {
		return nil, false
	}
	return &s.value, true
}

// Take removes the value for h and returns it. It panics when h is stale.
//
// Precondition: every stored reference to h has already been unlinked.
func (d *Depot[T]) Take(h Handle[T]) T {
	s := d.mustSlot(h)
	v := s.value
	var zero T
	s.value = zero
	s.live = false
	d.free = append(d.free, h.index)
	d.live--
	return v
}

// Handles returns a snapshot of all live handles in slot order.
func (d *Depot[T]) Handles() []Handle[T] {
	out := make([]Handle[T], 0, d.live)
	for i := range d.slots {
		if d.slots[i].live {
			out = append(out, Handle[T]{index: uint32(i), gen: d.slots[i].gen})
		}
	}
	return out
}

// Len returns the number of live values.
func (d *Depot[T]) Len() int { return d.live }

// Clear removes every value. Generations are preserved so handles issued
// before Clear stay stale.
func (d *Depot[T]) Clear() {
	d.free = d.free[:0]
	for i := range d.slots {
		var zero T
		d.slots[i].value = zero
		d.slots[i].live = false
		d.free = append(d.free, uint32(len(d.slots)-1-i))
	}
	d.live = 0
}

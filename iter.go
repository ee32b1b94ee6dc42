package genvec

import "iter"

// Values yields each live value in position order, skipping free slots.
// Do not mutate occupancy while ranging.
func (v *VectorOf[T, G]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range v.slots {
			if v.slots[i].occupied && !yield(v.slots[i].value) {
				return
			}
		}
	}
}

// Refs yields a pointer to each live value in position order for
// in-place mutation. Pushing or removing while ranging invalidates the
// walk; the vector must not be mutated through anything but the yielded
// pointers until the loop finishes.
func (v *VectorOf[T, G]) Refs() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range v.slots {
			if v.slots[i].occupied && !yield(&v.slots[i].value) {
				return
			}
		}
	}
}

// All yields each live value together with a handle that resolves to it,
// in position order.
func (v *VectorOf[T, G]) All() iter.Seq2[Handle[G], T] {
	return func(yield func(Handle[G], T) bool) {
		for i := range v.slots {
			s := &v.slots[i]
			if s.occupied && !yield(Handle[G]{index: i, generation: s.generation}, s.value) {
				return
			}
		}
	}
}

// Drain empties the vector, yielding each live value exactly once from
// the highest position downward. Note the order: reverse position order,
// which matches insertion order only while no position has ever been
// recycled. Each drained slot is freed like a Remove: its generation is
// bumped and its position recycled, so every handle issued for a drained
// value is stale afterwards and can never alias a later occupant.
// Stopping the loop early keeps the not-yet-reached lower positions
// live and usable.
func (v *VectorOf[T, G]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := len(v.slots) - 1; i >= 0; i-- {
			s := &v.slots[i]
			if !s.occupied {
				continue
			}

			value := s.value
			var zero T
			s.value = zero
			s.occupied = false
			s.generation = nextGeneration(s.generation)
			v.free = append(v.free, i)
			v.count--

			if !yield(value) {
				return
			}
		}
	}
}

// Collect drains the vector into a plain slice. See Drain for ordering.
func (v *VectorOf[T, G]) Collect() []T {
	out := make([]T, 0, v.count)
	for value := range v.Drain() {
		out = append(out, value)
	}
	return out
}

// FromSeq builds a vector from any value sequence, with the default
// generation width.
func FromSeq[T any](seq iter.Seq[T]) *Vector[T] {
	return FromSeqOf[T, uint32](seq)
}

// FromSeqOf builds a vector from any value sequence. Handles for the
// loaded values are the same ones Push would have issued: position in
// encounter order, first generation.
func FromSeqOf[T any, G Generation](seq iter.Seq[T]) *VectorOf[T, G] {
	v := NewOf[T, G]()
	for value := range seq {
		v.Push(value)
	}
	return v
}

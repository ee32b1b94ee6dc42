// Package genvec provides a growable vector whose elements are addressed
// through generational handles instead of raw indices. Freed positions
// are recycled without moving live elements, and each recycling bumps the
// slot's generation counter so that handles issued for the previous
// occupant stop resolving.
//
// The vector is not safe for concurrent use. Mutating operations require
// exclusive access; guard the vector with a sync.RWMutex if it must cross
// goroutines.
package genvec

// slot is one storage cell. Positions are stable for the lifetime of the
// vector: a slot is never moved or destroyed, only its occupancy cycles.
type slot[T any, G Generation] struct {
	value      T
	generation G
	occupied   bool
}

// VectorOf is a generational vector with a caller-chosen generation
// counter width. Most code wants the uint32 default; see Vector.
type VectorOf[T any, G Generation] struct {
	slots []slot[T, G]
	free  []int
	count int
}

// Vector is a generational vector with the default uint32 generation
// counter, enough for four billion reuses of a single position.
type Vector[T any] = VectorOf[T, uint32]

// New returns an empty vector with the default generation width.
func New[T any]() *Vector[T] {
	return NewOf[T, uint32]()
}

// WithCapacity returns an empty vector with room for n values before the
// first reallocation.
func WithCapacity[T any](n int) *Vector[T] {
	return WithCapacityOf[T, uint32](n)
}

// FromSlice bulk-loads values into a fresh vector. See FromSliceOf.
func FromSlice[T any](values []T) *Vector[T] {
	return FromSliceOf[T, uint32](values)
}

// NewOf returns an empty vector with a caller-chosen generation width.
func NewOf[T any, G Generation]() *VectorOf[T, G] {
	return &VectorOf[T, G]{}
}

// WithCapacityOf returns an empty vector with room for n values before
// the first reallocation.
func WithCapacityOf[T any, G Generation](n int) *VectorOf[T, G] {
	return &VectorOf[T, G]{slots: make([]slot[T, G], 0, n)}
}

// FromSliceOf bulk-loads values into a fresh vector. Each value lands at
// its index in the input with the first generation, so the handles are
// identical to those a series of Push calls on an empty vector would
// have issued: position i, generation 1.
func FromSliceOf[T any, G Generation](values []T) *VectorOf[T, G] {
	v := WithCapacityOf[T, G](len(values))
	for _, value := range values {
		v.slots = append(v.slots, slot[T, G]{
			value:      value,
			generation: firstGeneration[G](),
			occupied:   true,
		})
	}
	v.count = len(values)
	return v
}

// Push stores value and returns a handle for it. Freed positions are
// reused before the underlying storage grows, most recently freed first.
// Growth never moves live values or changes their positions.
func (v *VectorOf[T, G]) Push(value T) Handle[G] {
	if n := len(v.free); n > 0 {
		index := v.free[n-1]
		v.free = v.free[:n-1]

		s := &v.slots[index]
		if s.occupied {
			panic("genvec: free list corrupted: recycled slot is occupied")
		}
		s.value = value
		s.occupied = true
		v.count++
		return Handle[G]{index: index, generation: s.generation}
	}

	index := len(v.slots)
	gen := firstGeneration[G]()
	v.slots = append(v.slots, slot[T, G]{value: value, generation: gen, occupied: true})
	v.count++
	return Handle[G]{index: index, generation: gen}
}

// Get returns the value addressed by h. The second return is false when
// the handle's position is out of range, its slot is free, or the slot
// has since been reused for a newer occupancy.
func (v *VectorOf[T, G]) Get(h Handle[G]) (T, bool) {
	if h.index < 0 || h.index >= len(v.slots) {
		var zero T
		return zero, false
	}
	s := &v.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Ref returns a pointer to the value addressed by h for in-place
// mutation, or nil under exactly the conditions Get reports false.
// The pointer stays valid until the next Push grows the vector or the
// slot is removed.
func (v *VectorOf[T, G]) Ref(h Handle[G]) *T {
	if h.index < 0 || h.index >= len(v.slots) {
		return nil
	}
	s := &v.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil
	}
	return &s.value
}

// RemoveResult reports the outcome of a Remove call. The two failure
// modes are deliberately distinct: a caller doing optimistic bookkeeping
// needs to tell "already gone" apart from "someone else lives here now".
type RemoveResult int

const (
	// RemoveOK means the handle resolved and its value was removed.
	RemoveOK RemoveResult = iota

	// RemoveNotFound means the slot was already free.
	RemoveNotFound

	// RemoveStaleHandle means the slot holds a newer occupancy than the
	// handle's generation. Nothing was changed: the current occupant
	// stays in place.
	RemoveStaleHandle
)

// Valid reports whether the call was a well-formed removal attempt, that
// is anything except a stale handle hitting a reused slot.
func (r RemoveResult) Valid() bool {
	return r != RemoveStaleHandle
}

func (r RemoveResult) String() string {
	switch r {
	case RemoveOK:
		return "ok"
	case RemoveNotFound:
		return "not found"
	case RemoveStaleHandle:
		return "stale handle"
	default:
		return "unknown"
	}
}

// Remove frees the slot addressed by h and recycles its position. On
// success the slot's generation is bumped, so every handle issued for
// the removed occupancy is stale from this point on.
//
// Remove trusts h's position: unlike Get it does not bounds-check, and a
// handle this vector never issued may panic on an out-of-range position.
// Validate handles of untrusted provenance with Get first.
func (v *VectorOf[T, G]) Remove(h Handle[G]) RemoveResult {
	s := &v.slots[h.index]
	if !s.occupied {
		return RemoveNotFound
	}
	if s.generation != h.generation {
		return RemoveStaleHandle
	}

	var zero T
	s.value = zero
	s.occupied = false
	s.generation = nextGeneration(s.generation)
	v.free = append(v.free, h.index)
	v.count--
	return RemoveOK
}

// Len returns the number of live values.
func (v *VectorOf[T, G]) Len() int {
	return v.count
}

// IsEmpty reports whether the vector holds no live values.
func (v *VectorOf[T, G]) IsEmpty() bool {
	return v.count == 0
}

// NumFree returns the number of freed positions waiting to be reused.
func (v *VectorOf[T, G]) NumFree() int {
	return len(v.free)
}

// Cap returns the number of slots the vector can hold without
// reallocating. It never shrinks through Remove.
func (v *VectorOf[T, G]) Cap() int {
	return cap(v.slots)
}

package genvec

import "fmt"

// Handle addresses one occupancy of a slot in a vector. It pairs the
// slot's position with the generation the slot had when the value was
// stored, so a handle held across a remove-and-reuse of its position
// stops resolving instead of silently pointing at the new occupant.
//
// Handles are plain comparable values: copy them freely, use them as map
// keys, compare them with ==. A handle carries no reference to the
// vector that issued it and must be presented back to that vector.
type Handle[G Generation] struct {
	index      int
	generation G
}

// Index returns the slot position this handle addresses.
func (h Handle[G]) Index() int {
	return h.index
}

// Generation returns the occupancy generation this handle was issued for.
func (h Handle[G]) Generation() G {
	return h.generation
}

func (h Handle[G]) String() string {
	return fmt.Sprintf("%d@g%d", h.index, uint64(h.generation))
}

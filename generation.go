package genvec

// Generation constrains the type used for a slot's generation counter.
// Wider types allow more reuses of a single position before the counter
// is exhausted; narrower types keep handles small. Generation zero is
// reserved: no handle is ever issued with it, so the zero Handle value
// never resolves.
type Generation interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// firstGeneration is the counter value a freshly grown slot starts with.
func firstGeneration[G Generation]() G {
	return G(1)
}

// nextGeneration bumps a slot's counter after its value is removed.
// A wraparound back to zero would let an old handle alias a future
// occupant of the same position, so it is treated as exhaustion of the
// slot rather than silently wrapping.
func nextGeneration[G Generation](g G) G {
	g++
	if g == 0 {
		panic("genvec: generation counter overflow")
	}
	return g
}

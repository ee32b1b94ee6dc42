package genvec_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/plus3/genvec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsEmpty(t *testing.T) {
	v := genvec.New[string]()

	assert.Equal(t, 0, v.Len())
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 0, v.NumFree())
}

func TestWithCapacity(t *testing.T) {
	v := genvec.WithCapacity[int](10)

	assert.Equal(t, 0, v.Len())
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 10, v.Cap())
}

func TestPushGet(t *testing.T) {
	v := genvec.New[string]()

	a := v.Push("a")
	b := v.Push("b")
	c := v.Push("c")

	got, ok := v.Get(a)
	assert.True(t, ok)
	assert.Equal(t, "a", got)

	got, ok = v.Get(b)
	assert.True(t, ok)
	assert.Equal(t, "b", got)

	got, ok = v.Get(c)
	assert.True(t, ok)
	assert.Equal(t, "c", got)

	assert.Equal(t, 3, v.Len())
	assert.False(t, v.IsEmpty())
	assert.Equal(t, 0, v.NumFree())
}

// Handles must keep resolving across growth reallocations.
func TestPositionsStableAcrossGrowth(t *testing.T) {
	v := genvec.New[int]()

	handles := make([]genvec.Handle[uint32], 0, 10_000)
	for i := 0; i < 10_000; i++ {
		handles = append(handles, v.Push(i))
	}

	for i, h := range handles {
		assert.Equal(t, i, h.Index())
		got, ok := v.Get(h)
		require.True(t, ok)
		require.Equal(t, i, got)
	}
}

func TestRemove(t *testing.T) {
	v := genvec.New[string]()

	a := v.Push("a")
	v.Push("b")
	v.Push("c")
	capBefore := v.Cap()

	assert.Equal(t, genvec.RemoveOK, v.Remove(a))

	_, ok := v.Get(a)
	assert.False(t, ok)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 1, v.NumFree())

	// Storage stays expanded.
	assert.Equal(t, capBefore, v.Cap())
}

func TestRemoveTwiceNotFound(t *testing.T) {
	v := genvec.New[string]()

	a := v.Push("a")
	b := v.Push("b")

	assert.Equal(t, genvec.RemoveOK, v.Remove(a))
	assert.Equal(t, genvec.RemoveOK, v.Remove(b))
	assert.Equal(t, genvec.RemoveNotFound, v.Remove(b))
	assert.Equal(t, 0, v.Len())
}

func TestReuseBumpsGeneration(t *testing.T) {
	v := genvec.New[string]()

	a := v.Push("a")
	v.Push("b")
	v.Push("c")

	v.Remove(a)
	d := v.Push("d")

	// Element "a"'s position was re-assigned to "d", but under a newer
	// generation, so the two handles do not compare equal.
	assert.Equal(t, a.Index(), d.Index())
	assert.Less(t, a.Generation(), d.Generation())
	assert.NotEqual(t, a, d)

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 0, v.NumFree())
}

func TestStaleRemoveKeepsNewOccupant(t *testing.T) {
	v := genvec.New[string]()

	a := v.Push("a")
	b := v.Push("b")

	require.Equal(t, genvec.RemoveOK, v.Remove(a))
	c := v.Push("c") // reuses a's position

	assert.Equal(t, genvec.RemoveStaleHandle, v.Remove(a))

	got, ok := v.Get(c)
	assert.True(t, ok)
	assert.Equal(t, "c", got)

	got, ok = v.Get(b)
	assert.True(t, ok)
	assert.Equal(t, "b", got)

	assert.Equal(t, 2, v.Len())
}

func TestStaleGetAbsent(t *testing.T) {
	v := genvec.New[string]()

	a := v.Push("a")
	v.Remove(a)

	_, ok := v.Get(a)
	assert.False(t, ok)

	v.Push("z") // reuses the position
	_, ok = v.Get(a)
	assert.False(t, ok)
}

func TestRecyclingIsLIFO(t *testing.T) {
	v := genvec.New[string]()

	a := v.Push("a")
	b := v.Push("b")
	v.Push("c")

	require.Equal(t, genvec.RemoveOK, v.Remove(a))
	require.Equal(t, genvec.RemoveOK, v.Remove(b))

	// The most recently freed position is reused first.
	d := v.Push("d")
	e := v.Push("e")
	assert.Equal(t, b.Index(), d.Index())
	assert.Equal(t, a.Index(), e.Index())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 0, v.NumFree())
}

func TestRemoveAllThenReinsert(t *testing.T) {
	v := genvec.New[string]()

	a := v.Push("a")
	b := v.Push("b")
	c := v.Push("c")

	v.Remove(a)
	v.Remove(b)
	v.Remove(c)

	assert.Equal(t, 0, v.Len())
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 3, v.NumFree())

	d := v.Push("d")
	e := v.Push("e")

	// Last freed, first reused.
	assert.Equal(t, c.Index(), d.Index())
	assert.Equal(t, b.Index(), e.Index())
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 1, v.NumFree())
}

func TestRemoveResultValid(t *testing.T) {
	assert.True(t, genvec.RemoveOK.Valid())
	assert.True(t, genvec.RemoveNotFound.Valid())
	assert.False(t, genvec.RemoveStaleHandle.Valid())
}

func TestRemoveResultString(t *testing.T) {
	assert.Equal(t, "ok", genvec.RemoveOK.String())
	assert.Equal(t, "not found", genvec.RemoveNotFound.String())
	assert.Equal(t, "stale handle", genvec.RemoveStaleHandle.String())
}

// Get tolerates handles from anywhere; Remove trusts the position and
// panics when it was never issued by this vector.
func TestForeignHandle(t *testing.T) {
	small := genvec.New[string]()
	small.Push("only")

	big := genvec.New[string]()
	for i := 0; i < 5; i++ {
		big.Push("x")
	}
	foreign := big.Push("y") // position 5, out of range for small

	_, ok := small.Get(foreign)
	assert.False(t, ok)

	require.Panics(t, func() {
		small.Remove(foreign)
	})
}

func TestZeroHandleNeverResolves(t *testing.T) {
	v := genvec.New[string]()
	v.Push("a")

	var zero genvec.Handle[uint32]
	_, ok := v.Get(zero)
	assert.False(t, ok)
}

func TestFromSlice(t *testing.T) {
	v := genvec.FromSlice([]string{"a", "b", "c"})

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 0, v.NumFree())
}

// Bulk-loading must issue the same handles as pushing one by one;
// callers round-trip plain slices through that equivalence.
func TestFromSliceMatchesIncrementalHandles(t *testing.T) {
	values := []string{"a", "b", "c", "d"}

	bulk := genvec.FromSlice(values)
	incremental := genvec.New[string]()

	for i, value := range values {
		h := incremental.Push(value)
		assert.Equal(t, i, h.Index())

		got, ok := bulk.Get(h)
		require.True(t, ok, "bulk-loaded vector must accept handle %v", h)
		assert.Equal(t, value, got)
	}
}

func TestScenario(t *testing.T) {
	v := genvec.New[string]()

	a := v.Push("a")
	b := v.Push("b")
	c := v.Push("c")
	assert.Equal(t, 0, a.Index())
	assert.Equal(t, uint32(1), a.Generation())
	assert.Equal(t, 1, b.Index())
	assert.Equal(t, 2, c.Index())

	require.Equal(t, genvec.RemoveOK, v.Remove(a))
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 1, v.NumFree())

	d := v.Push("d")
	assert.Equal(t, 0, d.Index())
	assert.Equal(t, uint32(2), d.Generation())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 0, v.NumFree())

	_, ok := v.Get(a)
	assert.False(t, ok)
	got, ok := v.Get(d)
	assert.True(t, ok)
	assert.Equal(t, "d", got)
}

// Len must track the number of currently resolvable handles through any
// interleaving of pushes and removes.
func TestLenMatchesResolvableHandles(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := genvec.New[int]()
	live := make(map[genvec.Handle[uint32]]int)

	for op := 0; op < 5000; op++ {
		if len(live) == 0 || rng.Intn(3) != 0 {
			value := rng.Int()
			live[v.Push(value)] = value
		} else {
			for h := range live {
				require.Equal(t, genvec.RemoveOK, v.Remove(h))
				delete(live, h)
				break
			}
		}

		require.Equal(t, len(live), v.Len())
	}

	for h, want := range live {
		got, ok := v.Get(h)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestHandleString(t *testing.T) {
	v := genvec.New[string]()
	a := v.Push("a")
	v.Remove(a)
	d := v.Push("d")

	assert.Equal(t, "0@g1", fmt.Sprint(a))
	assert.Equal(t, "0@g2", d.String())
}

// Handles are comparable values and work as map keys.
func TestHandleAsMapKey(t *testing.T) {
	v := genvec.New[string]()
	seen := map[genvec.Handle[uint32]]string{}

	a := v.Push("a")
	b := v.Push("b")
	seen[a] = "a"
	seen[b] = "b"

	assert.Len(t, seen, 2)
	assert.Equal(t, "a", seen[a])
	assert.Equal(t, "b", seen[b])
}

// SPDX-License-Identifier: Unlicense OR MIT

package arena

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGetRemove(t *testing.T) {
	var a Arena[string]
	h1 := a.Insert("one")
	h2 := a.Insert("two")
	assert.NotEqual(t, h1, h2)
	assert.False(t, h1.IsZero())

	v, ok := a.Get(h1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	v, ok = a.Remove(h1)
	require.True(t, ok)
	assert.Equal(t, "one", v)
	_, ok = a.Get(h1)
	assert.False(t, ok)
	_, ok = a.Remove(h1)
	assert.False(t, ok)
	assert.Equal(t, 1, a.Len())
}

func TestZeroHandle(t *testing.T) {
	var a Arena[int]
	a.Insert(42)
	_, ok := a.Get(Handle{})
	assert.False(t, ok)
	assert.Equal(t, "none", Handle{}.String())
}

func TestStaleHandleAfterReuse(t *testing.T) {
	var a Arena[string]
	old := a.Insert("old")
	a.Remove(old)
	fresh := a.Insert("new")
	// The slot is reused under a new generation.
	assert.Equal(t, old.index, fresh.index)
	assert.NotEqual(t, old, fresh)
	_, ok := a.Get(old)
	assert.False(t, ok)
	assert.False(t, a.Set(old, "clobbered"))
	v, ok := a.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestOutOfRange(t *testing.T) {
	var a Arena[int]
	_, ok := a.Get(Handle{index: 10, gen: 1})
	assert.False(t, ok)
}

func TestGenerationWrapRetiresSlot(t *testing.T) {
	var a Arena[int]
	h := a.Insert(1)
	a.slots[h.index].gen = ^uint32(0)
	h.gen = ^uint32(0)
	_, ok := a.Remove(h)
	require.True(t, ok)
	h2 := a.Insert(2)
	assert.NotEqual(t, h.index, h2.index)
}

func TestRangeAndClear(t *testing.T) {
	var a Arena[int]
	var hs []Handle
	for i := 0; i < 5; i++ {
		hs = append(hs, a.Insert(i))
	}
	a.Remove(hs[2])
	sum := 0
	a.Range(func(h Handle, v int) bool {
		sum += v
		return true
	})
	assert.Equal(t, 0+1+3+4, sum)

	a.Clear()
	assert.Equal(t, 0, a.Len())
	for _, h := range hs {
		assert.False(t, a.Contains(h))
	}
	h := a.Insert(7)
	assert.True(t, a.Contains(h))
}

// TestRandomOps checks that a handle resolves exactly until it is
// removed, for arbitrary insert/remove sequences.
func TestRandomOps(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	var a Arena[int]
	live := make(map[Handle]int)
	var dead []Handle
	for i := 0; i < 5000; i++ {
		if len(live) == 0 || rnd.Intn(3) > 0 {
			h := a.Insert(i)
			_, dup := live[h]
			require.False(t, dup, "handle %v issued twice", h)
			live[h] = i
			continue
		}
		for h := range live {
			v, ok := a.Remove(h)
			require.True(t, ok)
			require.Equal(t, live[h], v)
			delete(live, h)
			dead = append(dead, h)
			break
		}
	}
	require.Equal(t, len(live), a.Len())
	for h, want := range live {
		v, ok := a.Get(h)
		require.True(t, ok)
		require.Equal(t, want, v)
	}
	for _, h := range dead {
		require.False(t, a.Contains(h), "stale handle %v resolved", h)
	}
}

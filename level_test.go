package bloomstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testHashFamily(n int) []HashFunction {
	family := make([]HashFunction, n)
	for i, m := range hashMultipliers[:n] {
		family[i] = NewHashFunction(m)
	}
	return family
}

func TestNewLevelAllUnset(t *testing.T) {
	t.Parallel()

	level := newBloomLevel(64)
	assert.Len(t, level.BitArray, 64)
	for i, bit := range level.BitArray {
		assert.False(t, bit, "bit %d set on a fresh level", i)
	}
}

func TestLevelInsertSetsExpectedBits(t *testing.T) {
	t.Parallel()

	family := testHashFamily(3)
	level := newBloomLevel(100)
	level.insert("test", family, 100)

	// Indices follow from the fixed multipliers 31, 37, 41.
	for _, idx := range []int{98, 88, 48} {
		assert.True(t, level.BitArray[idx], "expected bit %d set", idx)
	}

	set := 0
	for _, bit := range level.BitArray {
		if bit {
			set++
		}
	}
	assert.Equal(t, 3, set)
}

func TestLevelQuery(t *testing.T) {
	t.Parallel()

	family := testHashFamily(3)
	level := newBloomLevel(100)

	assert.False(t, level.query("test", family, 100))
	level.insert("test", family, 100)
	assert.True(t, level.query("test", family, 100))
	assert.False(t, level.query("nonexistent", family, 100))
}

func TestLevelInsertIdempotent(t *testing.T) {
	t.Parallel()

	family := testHashFamily(4)
	once := newBloomLevel(128)
	twice := newBloomLevel(128)

	once.insert("repeat", family, 128)
	twice.insert("repeat", family, 128)
	twice.insert("repeat", family, 128)

	assert.Equal(t, once.BitArray, twice.BitArray)
}

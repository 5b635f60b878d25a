package bloomstack

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := New(0, 100, 3)
	assert.ErrorIs(t, err, ErrZeroLevels)

	_, err = New(1, 0, 3)
	assert.ErrorIs(t, err, ErrZeroArraySize)

	_, err = New(1, 100, 0)
	assert.ErrorIs(t, err, ErrZeroHashFunctions)
}

func TestNewTooManyHashFunctions(t *testing.T) {
	t.Parallel()

	_, err := New(1, 100, 11)
	require.Error(t, err)

	var invalidErr *InvalidHashFunctionsError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, 11, invalidErr.Requested)
	assert.Equal(t, 10, invalidErr.Available)
	assert.Contains(t, err.Error(), "requested 11, available 10")
}

func TestNewGeometry(t *testing.T) {
	t.Parallel()

	bf, err := New(4, 256, 5)
	require.NoError(t, err)

	assert.Equal(t, 4, bf.NumLevels())
	assert.Equal(t, 256, bf.ArraySize)
	require.Len(t, bf.HashFunctions, 5)
	// The family is the pool prefix, in pool order.
	for i, hf := range bf.HashFunctions {
		assert.Equal(t, hashMultipliers[i], hf.Multiplier)
	}
	for _, level := range bf.Levels {
		assert.Len(t, level.BitArray, 256)
	}
}

func TestInsertAndQuery(t *testing.T) {
	t.Parallel()

	bf, err := New(1, 100, 3)
	require.NoError(t, err)

	bf.Insert("test")
	assert.True(t, bf.Query("test", 1))
	assert.False(t, bf.Query("nonexistent", 1))
}

func TestQueryAcrossLevels(t *testing.T) {
	t.Parallel()

	bf, err := New(2, 50, 2)
	require.NoError(t, err)

	bf.Insert("alpha")
	assert.True(t, bf.Query("alpha", 1))
	assert.True(t, bf.Query("alpha", 2))
	assert.False(t, bf.Query("beta", 2))
}

func TestQueryClampsLevelCount(t *testing.T) {
	t.Parallel()

	bf, err := New(2, 100, 3)
	require.NoError(t, err)

	bf.Insert("clamped")
	assert.True(t, bf.Query("clamped", 1000))
	assert.False(t, bf.Query("clamped", 0))
}

func TestQueryMonotonicInSearchDepth(t *testing.T) {
	t.Parallel()

	bf, err := New(5, 80, 3)
	require.NoError(t, err)

	items := []string{"one", "two", "three", "four"}
	for _, item := range items {
		bf.Insert(item)
	}

	probes := append(items, "missing-a", "missing-b")
	for _, item := range probes {
		hit := false
		for n := 1; n <= bf.NumLevels(); n++ {
			found := bf.Query(item, n)
			if hit {
				assert.True(t, found, "query(%q, %d) regressed after a hit at a shallower depth", item, n)
			}
			hit = hit || found
		}
	}
}

func TestNoFalseNegatives(t *testing.T) {
	t.Parallel()

	bf, err := New(3, 512, 4)
	require.NoError(t, err)

	items := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		items = append(items, fmt.Sprintf("item-%04d", i))
	}
	for _, item := range items {
		bf.Insert(item)
	}
	for _, item := range items {
		for n := 1; n <= bf.NumLevels(); n++ {
			assert.True(t, bf.Query(item, n), "false negative for %q at depth %d", item, n)
		}
	}
}

func TestInsertIdempotent(t *testing.T) {
	t.Parallel()

	once, err := New(2, 100, 3)
	require.NoError(t, err)
	twice, err := New(2, 100, 3)
	require.NoError(t, err)

	once.Insert("dup")
	twice.Insert("dup")
	twice.Insert("dup")

	assert.Equal(t, once.Levels, twice.Levels)
}

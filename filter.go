package bloomstack

import (
	"errors"
	"fmt"
)

var (
	ErrZeroLevels        = errors.New("bloomstack: number of levels must be positive")
	ErrZeroArraySize     = errors.New("bloomstack: array size must be positive")
	ErrZeroHashFunctions = errors.New("bloomstack: number of hash functions must be positive")
)

// InvalidHashFunctionsError is returned when a construction request asks for
// more hash functions than the multiplier pool can supply.
type InvalidHashFunctionsError struct {
	Requested int
	Available int
}

func (e *InvalidHashFunctionsError) Error() string {
	return fmt.Sprintf("bloomstack: invalid number of hash functions: requested %d, available %d", e.Requested, e.Available)
}

// BloomFilter is a stack of independent bit-array levels populated by one
// shared hash-function family. Insert touches every level; Query searches a
// caller-bounded prefix of them. The filter is not safe for concurrent use;
// callers that share one must serialize access themselves.
type BloomFilter struct {
	Levels        []*BloomLevel  `json:"levels"`         // Ordered levels, oldest first.
	HashFunctions []HashFunction `json:"hash_functions"` // Shared family, fixed at construction.
	ArraySize     int            `json:"array_size"`     // Bit count of every level.
}

// New builds a filter with numLevels levels of arraySize bits each, hashed
// by the first numHashFunctions multipliers from the fixed pool. All three
// counts must be positive, and numHashFunctions may not exceed the pool
// size.
func New(numLevels, arraySize, numHashFunctions int) (*BloomFilter, error) {
	if numLevels <= 0 {
		return nil, ErrZeroLevels
	}
	if arraySize <= 0 {
		return nil, ErrZeroArraySize
	}
	if numHashFunctions <= 0 {
		return nil, ErrZeroHashFunctions
	}
	if numHashFunctions > len(hashMultipliers) {
		return nil, &InvalidHashFunctionsError{
			Requested: numHashFunctions,
			Available: len(hashMultipliers),
		}
	}

	hashFunctions := make([]HashFunction, numHashFunctions)
	for i, multiplier := range hashMultipliers[:numHashFunctions] {
		hashFunctions[i] = NewHashFunction(multiplier)
	}

	levels := make([]*BloomLevel, numLevels)
	for i := range levels {
		levels[i] = newBloomLevel(arraySize)
	}

	return &BloomFilter{
		Levels:        levels,
		HashFunctions: hashFunctions,
		ArraySize:     arraySize,
	}, nil
}

// Insert adds the item to every level of the filter.
func (bf *BloomFilter) Insert(item string) {
	for _, level := range bf.Levels {
		level.insert(item, bf.HashFunctions, bf.ArraySize)
	}
}

// Query reports whether the item may be present in any of the first
// numLevelsToSearch levels. The count is clamped to the number of levels,
// so over-large requests are tolerated. Searching more levels can only turn
// a miss into a hit, never the reverse.
func (bf *BloomFilter) Query(item string, numLevelsToSearch int) bool {
	levelsToSearch := numLevelsToSearch
	if levelsToSearch > len(bf.Levels) {
		levelsToSearch = len(bf.Levels)
	}
	for i := 0; i < levelsToSearch; i++ {
		if bf.Levels[i].query(item, bf.HashFunctions, bf.ArraySize) {
			return true
		}
	}
	return false
}

// NumLevels returns how many levels the filter holds.
func (bf *BloomFilter) NumLevels() int {
	return len(bf.Levels)
}

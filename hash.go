package bloomstack

// hashMultipliers is the fixed pool of multipliers the filter draws its hash
// family from. The order is part of the format: two filters built with the
// same hash-function count always get the same family, and a persisted
// snapshot hashes identically after a reload.
var hashMultipliers = []uint64{31, 37, 41, 43, 47, 53, 59, 61, 67, 71}

// HashFunction is a deterministic string hash parameterized by a single
// multiplier. It carries no other state.
type HashFunction struct {
	Multiplier uint64 `json:"multiplier"`
}

// NewHashFunction returns a hash function with the given multiplier. The
// multiplier is not validated here; selecting a valid family is the filter
// constructor's job.
func NewHashFunction(multiplier uint64) HashFunction {
	return HashFunction{Multiplier: multiplier}
}

// Sum folds the item's bytes left to right: acc = acc*multiplier + byte,
// wrapping at 64 bits. Overflow is intentional, it is what spreads long
// inputs across the full range.
func (h HashFunction) Sum(item string) uint64 {
	var acc uint64
	for i := 0; i < len(item); i++ {
		acc = acc*h.Multiplier + uint64(item[i])
	}
	return acc
}

package bloomstack

// BloomLevel is a single bit array within the filter. Bits only ever flip
// from false to true; there is no way to unset one.
type BloomLevel struct {
	BitArray []bool `json:"bit_array"` // Fixed-length bitset, one flag per slot.
}

// newBloomLevel allocates a level of arraySize bits, all unset.
func newBloomLevel(arraySize int) *BloomLevel {
	return &BloomLevel{
		BitArray: make([]bool, arraySize),
	}
}

// insert sets the bit for every hash function in the family. Re-inserting
// the same item is a no-op on bits that are already set.
func (l *BloomLevel) insert(item string, hashFunctions []HashFunction, arraySize int) {
	for _, hf := range hashFunctions {
		l.BitArray[hf.Sum(item)%uint64(arraySize)] = true
	}
}

// query reports whether the item may be present in this level. A false
// return means definitely absent; a true return means possibly present,
// since unrelated items can collide on every probed bit.
func (l *BloomLevel) query(item string, hashFunctions []HashFunction, arraySize int) bool {
	for _, hf := range hashFunctions {
		if !l.BitArray[hf.Sum(item)%uint64(arraySize)] {
			return false
		}
	}
	return true
}

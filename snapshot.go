package bloomstack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spaolacci/murmur3"
)

var (
	ErrSnapshotChecksum = errors.New("bloomstack: snapshot checksum mismatch")
	ErrSnapshotGeometry = errors.New("bloomstack: snapshot geometry inconsistent")
)

// snapshot is the on-disk envelope. The checksum is always taken over the
// compact form of the filter document, so the file can be pretty-printed
// without invalidating it.
type snapshot struct {
	Checksum uint64          `json:"checksum"`
	Filter   json.RawMessage `json:"filter"`
}

// Save writes the whole filter to path as a JSON snapshot, overwriting any
// existing file. The envelope carries a murmur3 checksum of the encoded
// filter document so Load can reject corrupt files before decoding them.
// The in-memory filter is untouched whether or not the write succeeds.
func (bf *BloomFilter) Save(path string) error {
	document, err := json.Marshal(bf)
	if err != nil {
		return fmt.Errorf("bloomstack: encoding snapshot: %w", err)
	}

	encoded, err := json.MarshalIndent(snapshot{
		Checksum: murmur3.Sum64(document),
		Filter:   document,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("bloomstack: encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("bloomstack: writing snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot written by Save and returns the filter it holds. It
// decodes and validates fully before returning, so a failed load never
// yields a partial structure: the caller's existing filter, if any, stays
// usable.
func Load(path string) (*BloomFilter, error) {
	encoded, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bloomstack: reading snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(encoded, &snap); err != nil {
		return nil, fmt.Errorf("bloomstack: decoding snapshot: %w", err)
	}

	// Strip the indentation MarshalIndent added before checking.
	var document bytes.Buffer
	if err := json.Compact(&document, snap.Filter); err != nil {
		return nil, fmt.Errorf("bloomstack: decoding snapshot: %w", err)
	}
	if murmur3.Sum64(document.Bytes()) != snap.Checksum {
		return nil, ErrSnapshotChecksum
	}

	bf := &BloomFilter{}
	if err := json.Unmarshal(snap.Filter, bf); err != nil {
		return nil, fmt.Errorf("bloomstack: decoding snapshot: %w", err)
	}
	if err := bf.validate(); err != nil {
		return nil, err
	}
	return bf, nil
}

// validate checks the invariants a freshly decoded filter must satisfy. A
// well-formed JSON document can still describe an unusable filter, e.g. a
// zero array size that would mean modulo-by-zero on the first insert.
func (bf *BloomFilter) validate() error {
	if len(bf.Levels) == 0 {
		return ErrZeroLevels
	}
	if bf.ArraySize <= 0 {
		return ErrZeroArraySize
	}
	if len(bf.HashFunctions) == 0 {
		return ErrZeroHashFunctions
	}
	if len(bf.HashFunctions) > len(hashMultipliers) {
		return &InvalidHashFunctionsError{
			Requested: len(bf.HashFunctions),
			Available: len(hashMultipliers),
		}
	}
	for i, level := range bf.Levels {
		if level == nil || len(level.BitArray) != bf.ArraySize {
			return fmt.Errorf("%w: level %d has %d bits, expected %d",
				ErrSnapshotGeometry, i, levelBits(level), bf.ArraySize)
		}
	}
	return nil
}

func levelBits(l *BloomLevel) int {
	if l == nil {
		return 0
	}
	return len(l.BitArray)
}

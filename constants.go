package bloomstack

const (
	DefaultNumLevels        = 3    // Default number of levels for the CLI.
	DefaultArraySize        = 1000 // Default bits per level.
	DefaultNumHashFunctions = 3    // Default hash-family size.
	MaxHashFunctions        = 10   // Size of the multiplier pool.
	DefaultSnapshotPath     = "bloom.json"
)

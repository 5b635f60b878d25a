package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"bloomstack"
)

type Config struct {
	Filter   FilterConfig   `yaml:"filter"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type FilterConfig struct {
	NumLevels        int `yaml:"num_levels"`
	ArraySize        int `yaml:"array_size"`
	NumHashFunctions int `yaml:"num_hash_functions"`
}

type SnapshotConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Filter: FilterConfig{
			NumLevels:        bloomstack.DefaultNumLevels,
			ArraySize:        bloomstack.DefaultArraySize,
			NumHashFunctions: bloomstack.DefaultNumHashFunctions,
		},
		Snapshot: SnapshotConfig{
			Path: bloomstack.DefaultSnapshotPath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the yaml config at path. A missing file is not an error, the
// defaults are used instead. Environment variables override either.
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			applyEnv(config)
			return config, nil
		}
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	applyEnv(config)
	return config, nil
}

func applyEnv(config *Config) {
	if path := os.Getenv("BLOOMSTACK_SNAPSHOT_PATH"); path != "" {
		config.Snapshot.Path = path
	}
	if level := os.Getenv("BLOOMSTACK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if levels := os.Getenv("BLOOMSTACK_NUM_LEVELS"); levels != "" {
		if n, err := strconv.Atoi(levels); err == nil {
			config.Filter.NumLevels = n
		}
	}
}

package core

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/BurntSushi/toml"
)

// DefaultMaxRange is the largest static xrange() bound rewritten to the
// builtin range without importing the six.moves alias. Materializing a
// list of this size on the old runtime is considered acceptable.
const DefaultMaxRange = 1024

// Config carries every knob of an engine run. Values merge in three
// layers: built-in defaults, the optional .sixer.toml project file, then
// environment variables.
type Config struct {
	// ApplicationModules extends the import classifier's application
	// table; imports of these modules mark a group as application-level.
	ApplicationModules []string `toml:"app_modules"`
	// ThirdPartyPrefixes extends the classifier's third-party prefix
	// table.
	ThirdPartyPrefixes []string `toml:"third_party"`
	// Exclude holds glob patterns (doublestar syntax) for files to skip
	// while walking directories.
	Exclude []string `toml:"exclude"`

	MaxRange int `toml:"max_range"`
	// Workers bounds the number of files patched concurrently.
	Workers int `toml:"workers"`
	// DiffContext is the number of unchanged lines around each diff hunk.
	DiffContext int `toml:"diff_context"`

	// Write applies changes in place; without it the run is a dry run
	// rendering diffs.
	Write bool `toml:"-"`
	// ToStdout writes patched content to stdout instead of the files.
	ToStdout bool `toml:"-"`
	Quiet    bool `toml:"-"`

	// DatabaseURL enables the audit store when non-empty.
	DatabaseURL string `toml:"database_url"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxRange:    DefaultMaxRange,
		Workers:     runtime.NumCPU(),
		DiffContext: 3,
	}
}

// LoadConfig builds the effective configuration: defaults, then the TOML
// file at path when it exists, then environment overrides. An empty path
// means "use .sixer.toml when present".
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	optional := path == ""
	if optional {
		path = ".sixer.toml"
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !(optional && os.IsNotExist(err)) {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if url := os.Getenv("SIXER_DB_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	if v := os.Getenv("SIXER_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid SIXER_WORKERS %q", v)
		}
		cfg.Workers = n
	}

	if cfg.MaxRange < 0 {
		return nil, fmt.Errorf("max_range must not be negative, got %d", cfg.MaxRange)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}

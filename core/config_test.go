package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test; stand-in for
// t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultMaxRange, cfg.MaxRange)
	assert.Equal(t, 3, cfg.DiffContext)
	assert.Greater(t, cfg.Workers, 0)
}

func TestLoadConfigMissingOptionalFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxRange, cfg.MaxRange)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadConfigFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sixer.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_range = 50
workers = 2
app_modules = ["myapp"]
third_party = ["numpy"]
exclude = ["*_pb2.py"]
database_url = "audit.db"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxRange)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, []string{"myapp"}, cfg.ApplicationModules)
	assert.Equal(t, []string{"numpy"}, cfg.ThirdPartyPrefixes)
	assert.Equal(t, []string{"*_pb2.py"}, cfg.Exclude)
	assert.Equal(t, "audit.db", cfg.DatabaseURL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SIXER_DB_URL", "env.db")
	t.Setenv("SIXER_WORKERS", "7")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DatabaseURL)
	assert.Equal(t, 7, cfg.Workers)
}

func TestLoadConfigInvalidWorkersEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SIXER_WORKERS", "zero")

	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigNegativeMaxRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sixer.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_range = -1\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/sixer/core"
	"github.com/termfx/sixer/rules"
)

func TestOperationList(t *testing.T) {
	list := operationList()
	for _, name := range rules.Names() {
		assert.Contains(t, list, name+":")
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{
		"--app=myapp",
		"--third-party=numpy",
		"--max-range=10",
		"--workers=2",
		"--to-stdout",
	}))

	opts := &options{
		appModules: []string{"myapp"},
		thirdParty: []string{"numpy"},
		maxRange:   10,
		workers:    2,
		toStdout:   true,
	}
	cfg := core.DefaultConfig()
	applyFlags(cmd, opts, cfg)

	assert.Equal(t, []string{"myapp"}, cfg.ApplicationModules)
	assert.Equal(t, []string{"numpy"}, cfg.ThirdPartyPrefixes)
	assert.Equal(t, 10, cfg.MaxRange)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.ToStdout)
	assert.True(t, cfg.Quiet, "to-stdout implies quiet")
}

func TestApplyFlagsDefaultsUntouched(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse(nil))

	cfg := core.DefaultConfig()
	cfg.MaxRange = 99
	applyFlags(cmd, &options{maxRange: core.DefaultMaxRange}, cfg)

	assert.Equal(t, 99, cfg.MaxRange, "unset flags must not override config values")
}

func TestRootCmdRequiresArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"long"})
	err := cmd.Execute()
	require.Error(t, err)
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/config"
)

func TestRootCmdDocumentsHeaderRows(t *testing.T) {
	cmd := newRootCmd()

	assert.Contains(t, cmd.Long, "--header-rows 0")
	flag := cmd.Flags().Lookup("header-rows")
	require.NotNil(t, flag)
	assert.Equal(t, "1", flag.DefValue)
	assert.Contains(t, cmd.UsageString(), "--header-rows")
}

func TestApplyFlagsHeaderRows(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cmd := newRootCmd()
	applyFlags(cmd, cfg)
	assert.Equal(t, 1, cfg.Policy.HeaderRows, "unset flag keeps the configured value")

	cfg.Policy.HeaderRows = 3
	applyFlags(cmd, cfg)
	assert.Equal(t, 3, cfg.Policy.HeaderRows)

	require.NoError(t, cmd.Flags().Set("header-rows", "0"))
	applyFlags(cmd, cfg)
	assert.Equal(t, 0, cfg.Policy.HeaderRows)
	assert.NoError(t, cfg.Validate())
}

func TestApplyFlagsOverridesConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Set("format", "yaml"))
	require.NoError(t, cmd.Flags().Set("compact", "true"))
	require.NoError(t, cmd.Flags().Set("sheet", "Form"))
	applyFlags(cmd, cfg)

	assert.Equal(t, "yaml", cfg.Format)
	assert.False(t, cfg.Pretty)
	assert.Equal(t, "Form", cfg.Sheet)
	assert.Equal(t, "info", cfg.LogLevel)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.MaxDepth)
	assert.ElementsMatch(t, []string{"size", "string", "number", "boolean", "round"}, cfg.Functions)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jslt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 32\nfunctions: [size, string]\n"), 0o600))

	cfg, err := loadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.MaxDepth)
	assert.Equal(t, []string{"size", "string"}, cfg.Functions)
}

func TestLoadConfig_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jslt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: -1\n"), 0o600))

	_, err := loadConfig(path, nil)
	assert.Error(t, err)
}

func TestLoadConfig_FlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jslt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_depth: 32\n"), 0o600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max_depth", 0, "")
	require.NoError(t, flags.Set("max_depth", "8"))

	cfg, err := loadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxDepth)
}

func TestGenerateConfigSchema(t *testing.T) {
	data, err := generateConfigSchema()
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_depth")
}

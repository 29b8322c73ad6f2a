// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfxt/chatfxt-tui/internal/config"
)

func TestHandleConfig_Path(t *testing.T) {
	home := isolate(t)
	env, out := newTestEnv(t, nil)

	require.NoError(t, HandleConfig(env, Args{Subcommand: "path"}))
	assert.Equal(t, filepath.Join(home, ".chatfxt", "config.toml")+"\n", out.String())
}

func TestHandleConfig_Show(t *testing.T) {
	isolate(t)
	env, out := newTestEnv(t, nil)

	require.NoError(t, HandleConfig(env, Args{Subcommand: "show"}))
	assert.Contains(t, out.String(), "[remote]")
	assert.Contains(t, out.String(), "chat_url")
}

func TestHandleConfig_Init(t *testing.T) {
	isolate(t)
	env, out := newTestEnv(t, nil)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, HandleConfig(env, Args{Subcommand: "init", ConfigPath: path}))
	assert.Contains(t, out.String(), path)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// Second init refuses without --force.
	err = HandleConfig(env, Args{Subcommand: "init", ConfigPath: path})
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))

	require.NoError(t, HandleConfig(env, Args{Subcommand: "init", ConfigPath: path, Force: true}))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfxt/chatfxt-tui/internal/cli"
	"github.com/openfxt/chatfxt-tui/internal/config"
	"github.com/openfxt/chatfxt-tui/internal/ui/styles"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{"CHATFXT_ENDPOINT", "CHATFXT_PING_URL", "CHATFXT_TIMEOUT", "CHATFXT_NO_PING", "CHATFXT_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	return home
}

func runArgs(argv ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(argv, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_HelpAndVersion(t *testing.T) {
	code, out, _ := runArgs("help")
	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, out, "Usage:")

	code, out, _ = runArgs("--version")
	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, out, "chatfxt "+Version)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, errOut := runArgs("frobnicate")
	assert.Equal(t, cli.ExitUsageError, code)
	assert.Contains(t, errOut, "unknown command")
}

func TestRun_InvalidFlag(t *testing.T) {
	isolate(t)
	code, _, errOut := runArgs("config", "show", "--endpoint", "not a url")
	assert.Equal(t, cli.ExitConfigError, code)
	assert.Contains(t, errOut, "remote.chat_url")
}

func TestRun_ConfigInitAndShow(t *testing.T) {
	home := isolate(t)

	code, out, _ := runArgs("config", "path")
	require.Equal(t, cli.ExitSuccess, code)
	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(home, ".chatfxt", "config.toml"), path)

	code, _, _ = runArgs("config", "init")
	require.Equal(t, cli.ExitSuccess, code)
	_, err := os.Stat(path)
	require.NoError(t, err)

	code, out, _ = runArgs("config", "--timeout", "5s")
	require.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, out, `timeout = "5s"`)
}

func TestNewClient(t *testing.T) {
	cfg := config.Default()
	cfg.Remote.ChatURL = "http://localhost:1/chat"
	cfg.Remote.PingEnabled = false

	client := newClient(cfg, nil)
	assert.Equal(t, "http://localhost:1/chat", client.ChatURL())
	assert.Equal(t, cfg.Remote.Timeout.Duration, client.Timeout())
}

func TestMarkdownStyle(t *testing.T) {
	theme := styles.ThemeFor("notty")
	assert.Equal(t, "notty", markdownStyle("auto", theme))
	assert.Equal(t, "dark", markdownStyle("dark", theme))
}

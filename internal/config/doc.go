// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatfxt.
//
// Supports both TOML and JSON configuration formats, with defaults matching
// the hosted service, environment variable overrides, and validation.
//
// # Configuration Precedence
//
//   - Command-line flags (applied by the caller)
//   - Environment variables (CHATFXT_*)
//   - ~/.chatfxt/config.toml
//   - ~/.chatfxt/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := remote.NewClientWithConfig(&remote.ClientConfig{
//	    ChatURL: cfg.Remote.ChatURL,
//	    Timeout: cfg.Remote.Timeout.Duration,
//	})
package config

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the chatfxt command-line surface: argument
// parsing, the one-shot ask command, the line-mode chat REPL and the
// config subcommands. The full-screen TUI lives in internal/ui/chat and is
// started from main.
package cli

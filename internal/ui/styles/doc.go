// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chatfxt TUI.
//
// Colors are lipgloss AdaptiveColors so the same palette works on light and
// dark terminals. Theme bundles the styles the chat view needs.
package styles

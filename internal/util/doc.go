// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small file helpers shared across the application.
//
//	// Write files atomically to prevent torn config files
//	err := util.AtomicWriteFile(path, data, 0600)
package util

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

// ReplyMsg carries the outcome of a submission back to the update loop.
type ReplyMsg struct {
	Text string
	Err  error
}

// PingDoneMsg reports the startup analytics ping. Only logged.
type PingDoneMsg struct {
	Err error
}

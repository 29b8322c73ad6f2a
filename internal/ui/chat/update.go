// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openfxt/chatfxt-tui/internal/remote"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// SubmitCmd sends text and reports the outcome as a ReplyMsg. The call runs
// on the Bubble Tea command goroutine, never on the update loop.
func SubmitCmd(sender remote.Sender, text string) tea.Cmd {
	return func() tea.Msg {
		if sender == nil {
			return ReplyMsg{Err: remote.ErrConnection}
		}
		reply, err := sender.Send(context.Background(), text)
		return ReplyMsg{Text: reply, Err: err}
	}
}

// PingCmd fires the analytics ping. Returns nil when pinger is nil.
func PingCmd(pinger remote.Pinger) tea.Cmd {
	if pinger == nil {
		return nil
	}
	return func() tea.Msg {
		return PingDoneMsg{Err: pinger.Ping(context.Background())}
	}
}

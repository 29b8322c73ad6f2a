// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat view for the chatfxt TUI.

The chat package implements a terminal chat interface using the Bubble Tea
framework. It shows the transcript held by a session.Session, sends prompts
through a remote.Sender and renders replies as markdown.

# Key Components

## Model (model.go)

The Model struct is the Bubble Tea model:
  - Session (transcript, input buffer, busy state)
  - Multi-line textarea input, disabled while a reply is pending
  - Viewport for the message list, pinned to the bottom on every change
  - Spinner shown on the pending row

## Update Loop (update.go)

  - Enter submits, Alt+Enter / Ctrl+J insert a newline
  - SubmitCmd runs the network call off the update loop and returns ReplyMsg
  - ReplyMsg settles the session

## View Rendering (view.go)

  - Header with brand, status and links
  - One row per message, styled by role, with a distinct waiting style
  - Input box with character count and key help footer

# Usage

	sess := session.New(session.Options{})
	m := chat.New(chat.Options{Session: sess, Sender: client, Pinger: client})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
*/
package chat

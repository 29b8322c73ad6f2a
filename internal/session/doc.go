// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the chat state: transcript, input buffer and the
// idle/awaiting-reply state machine.
//
// A submission is split into Begin and Settle so the TUI can run the network
// call off its update loop:
//
//	text, err := s.Begin()      // idle -> awaiting-reply, user message appended
//	reply, err := sender.Send(ctx, text)
//	s.Settle(reply, err)        // reply or FailureText appended, back to idle
//
// Submit does all three synchronously for the line-mode CLI.
package session

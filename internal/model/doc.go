// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// # Key Types
//
//   - Message: a single immutable entry with a role and text
//   - Transcript: append-only, ordered list of messages
//   - HistoryPair: the latest prompt/reply texts derived from a transcript
//   - Role: message author (user or assistant)
//
// # Usage
//
//	t := model.Seeded(model.DefaultGreeting)
//	t.Append(model.NewUserMessage("hello"))
//	t.Append(model.NewAssistantMessage("hi!"))
//	if pair, ok := t.Pair(); ok {
//	    fmt.Println(pair.Prompt, "->", pair.Reply)
//	}
package model

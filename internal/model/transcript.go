// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// DefaultGreeting is the assistant message every new transcript starts with.
const DefaultGreeting = "Hello, this is ChatFXT, the AI chatbot service built and maintained by `OpenFXT`!"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the append-only, ordered list of messages shown in the chat
// view. Insertion order is chronological order is render order.
//
// A Transcript is not safe for concurrent use; it is owned by a single
// session and mutated from one goroutine.
type Transcript struct {
	messages []Message
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{messages: make([]Message, 0, 8)}
}

// Seeded creates a transcript holding a single assistant greeting.
// An empty greeting yields an empty transcript.
func Seeded(greeting string) *Transcript {
	t := NewTranscript()
	if greeting != "" {
		t.Append(NewAssistantMessage(greeting))
	}
	return t
}

// Append adds msg to the end of the transcript.
func (t *Transcript) Append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// At returns the message at index i. It panics if i is out of range.
func (t *Transcript) At(i int) Message {
	return t.messages[i]
}

// Last returns the most recent message and false if the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Messages returns a copy of the messages in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// =============================================================================
// HISTORY PAIR
// =============================================================================

// HistoryPair holds the texts of the two most recent messages: the last
// prompt and the reply it received.
type HistoryPair struct {
	Prompt string `json:"prompt"`
	Reply  string `json:"reply"`
}

// Pair derives the latest prompt/reply pair. It needs at least three
// messages (greeting, prompt, reply) and is recomputed on every call.
func (t *Transcript) Pair() (HistoryPair, bool) {
	n := len(t.messages)
	if n < 3 {
		return HistoryPair{}, false
	}
	return HistoryPair{
		Prompt: t.messages[n-2].Text,
		Reply:  t.messages[n-1].Text,
	}, true
}

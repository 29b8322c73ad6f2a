// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openfxt/chatfxt-tui/internal/model"
	"github.com/openfxt/chatfxt-tui/internal/remote"
)

// FailureText is appended as the assistant reply whenever the remote call
// does not succeed.
const FailureText = "Oops! There seems to be an error. Please try again."

var (
	// ErrEmptyInput is returned when the input is empty after trimming.
	ErrEmptyInput = errors.New("input is empty")

	// ErrBusy is returned when a reply is still pending.
	ErrBusy = errors.New("a reply is still pending")
)

// =============================================================================
// STATE
// =============================================================================

// State is the submission state.
type State int

const (
	StateIdle          State = iota // Accepting input
	StateAwaitingReply              // One request outstanding
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting-reply"
	default:
		return "unknown"
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Session holds the chat state for one user. It is not safe for concurrent
// use: all methods must be called from the goroutine that owns it (the Bubble
// Tea update loop, or the CLI loop).
type Session struct {
	id         string
	transcript *model.Transcript
	input      string
	state      State
	pendingAt  time.Time
	logger     *slog.Logger
}

// Options configures a new session.
type Options struct {
	// Greeting seeds the transcript (default: model.DefaultGreeting).
	Greeting string

	// Logger for state transitions (default: slog.Default()).
	Logger *slog.Logger
}

// New creates an idle session seeded with the greeting.
func New(opts Options) *Session {
	greeting := opts.Greeting
	if greeting == "" {
		greeting = model.DefaultGreeting
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New().String()
	return &Session{
		id:         id,
		transcript: model.Seeded(greeting),
		state:      StateIdle,
		logger:     logger.With("component", "session", "session_id", id),
	}
}

// ID returns the session id used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Busy reports whether a reply is pending.
func (s *Session) Busy() bool {
	return s.state == StateAwaitingReply
}

// Input returns the current input buffer.
func (s *Session) Input() string {
	return s.input
}

// SetInput replaces the input buffer. It is ignored while busy, since the
// input is disabled until the reply settles.
func (s *Session) SetInput(text string) {
	if s.Busy() {
		return
	}
	s.input = text
}

// Transcript returns the transcript. Callers must treat it as read-only.
func (s *Session) Transcript() *model.Transcript {
	return s.transcript
}

// Pair returns the latest prompt/reply pair, if any.
func (s *Session) Pair() (model.HistoryPair, bool) {
	return s.transcript.Pair()
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Begin starts a submission from the current input. On success the user
// message is appended, the session is awaiting a reply and the raw input text
// is returned for sending. Empty input and busy sessions are no-ops.
func (s *Session) Begin() (string, error) {
	if s.Busy() {
		s.logger.Debug("submit rejected", "reason", "busy")
		return "", ErrBusy
	}
	if strings.TrimSpace(s.input) == "" {
		s.logger.Debug("submit rejected", "reason", "empty")
		return "", ErrEmptyInput
	}

	text := s.input
	s.transcript.Append(model.NewUserMessage(text))
	s.state = StateAwaitingReply
	s.pendingAt = time.Now()

	s.logger.Info("submit", "prompt_bytes", len(text), "transcript_len", s.transcript.Len())
	return text, nil
}

// Settle completes the pending submission. A nil err appends reply; any
// error appends FailureText instead. Either way the input is cleared and the
// session returns to idle. Settle reports false if nothing was pending.
func (s *Session) Settle(reply string, err error) bool {
	if !s.Busy() {
		s.logger.Warn("settle without pending submission")
		return false
	}

	elapsed := time.Since(s.pendingAt)
	if err != nil {
		s.logger.Warn("reply failed", "error", err, "elapsed", elapsed)
		reply = FailureText
	} else {
		s.logger.Info("reply", "reply_bytes", len(reply), "elapsed", elapsed)
	}

	s.transcript.Append(model.NewAssistantMessage(reply))
	s.input = ""
	s.state = StateIdle
	s.pendingAt = time.Time{}
	return true
}

// Submit runs a whole submission synchronously: Begin, Send, Settle.
// Remote failures never surface here; they become FailureText in the
// transcript. Only ErrEmptyInput and ErrBusy are returned.
func (s *Session) Submit(ctx context.Context, sender remote.Sender) error {
	text, err := s.Begin()
	if err != nil {
		return err
	}

	reply, sendErr := sender.Send(ctx, text)
	s.Settle(reply, sendErr)
	return nil
}

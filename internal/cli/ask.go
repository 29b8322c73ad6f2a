// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/openfxt/chatfxt-tui/internal/session"
)

// maxStdinQuestion bounds a question read from a pipe.
const maxStdinQuestion = 64 * 1024

// HandleAsk sends one question and prints the reply. The question comes
// from the arguments or, when none are given, from piped stdin.
//
// The reply goes through the same session path as the TUI, so a failed
// request prints the standard failure text. The request error is then
// returned so scripts see a non-zero exit.
func HandleAsk(ctx context.Context, env *Env, args Args) error {
	question := args.Query
	if strings.TrimSpace(question) == "" && env.Stdin != nil {
		data, err := io.ReadAll(io.LimitReader(env.Stdin, maxStdinQuestion))
		if err != nil {
			return NewCommandError("ask", "read", "could not read question from stdin", err)
		}
		question = string(data)
	}
	if strings.TrimSpace(question) == "" {
		return NewValidationErrorWithExample("question", "", "a question is required",
			`chatfxt ask "What is OpenFXT?"`)
	}
	if n := utf8.RuneCountInString(strings.TrimRight(question, "\r\n")); n > env.Config.UI.MaxInput {
		return NewValidationError("question", "",
			fmt.Sprintf("question is %d characters, limit is %d", n, env.Config.UI.MaxInput))
	}

	sess := session.New(session.Options{
		Greeting: env.Config.UI.Greeting,
		Logger:   env.Logger,
	})

	rec := &recordingSender{next: env.Sender}
	sess.SetInput(question)
	if err := sess.Submit(ctx, rec); err != nil {
		return NewCommandError("ask", "submit", "question was not sent", err)
	}

	reply, _ := sess.Transcript().Last()
	displayResponse(env, reply.Text)

	if rec.err != nil {
		return NewCommandError("ask", "send", "request failed", rec.err)
	}
	return nil
}

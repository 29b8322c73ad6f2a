// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/openfxt/chatfxt-tui/internal/model"
	"github.com/openfxt/chatfxt-tui/internal/remote"
	"github.com/openfxt/chatfxt-tui/internal/session"
)

const (
	chatPrompt = "you> "

	cmdQuit    = "/quit"
	cmdExit    = "/exit"
	cmdHistory = "/last"
	cmdHelp    = "/help"
)

// =============================================================================
// LINE INPUT
// =============================================================================

// Prompter reads one line of input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// ChatCLI wraps liner for line editing. History stays in memory for the
// life of the process.
type ChatCLI struct {
	line *liner.State
}

// NewChatCLI puts the terminal in line-editing mode. Call Close to
// restore it.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(true)
	return &ChatCLI{line: line}
}

// Prompt implements Prompter.
func (c *ChatCLI) Prompt(prompt string) (string, error) {
	return c.line.Prompt(prompt)
}

// AppendHistory implements Prompter.
func (c *ChatCLI) AppendHistory(item string) {
	c.line.AppendHistory(item)
}

// Close restores the terminal.
func (c *ChatCLI) Close() error {
	return c.line.Close()
}

// =============================================================================
// CHAT LOOP
// =============================================================================

// HandleChat runs the line-mode chat on the terminal.
func HandleChat(ctx context.Context, env *Env) error {
	cli := NewChatCLI()
	defer cli.Close()

	sess := session.New(session.Options{
		Greeting: env.Config.UI.Greeting,
		Logger:   env.Logger,
	})
	return RunChatLoop(ctx, env, sess, cli)
}

// RunChatLoop prints the transcript as it grows and reads prompts until
// EOF, Ctrl+C or /quit.
func RunChatLoop(ctx context.Context, env *Env, sess *session.Session, in Prompter) error {
	for _, msg := range sess.Transcript().Messages() {
		printMessage(env, msg)
	}
	fmt.Fprintln(env.Stdout, RenderConditional(DimStyle, "Type /help for commands, /quit to leave."))

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := in.Prompt(chatPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(env.Stdout)
				return nil
			}
			return NewCommandError("chat", "read", "could not read input", err)
		}

		switch strings.TrimSpace(input) {
		case cmdQuit, cmdExit:
			return nil
		case cmdHelp:
			printChatHelp(env)
			continue
		case cmdHistory:
			printPair(env, sess)
			continue
		}

		if len([]rune(input)) > env.Config.UI.MaxInput {
			fmt.Fprintf(env.Stdout, "%s input is limited to %d characters\n",
				RenderConditional(ErrorStyle, "[!]"), env.Config.UI.MaxInput)
			continue
		}

		sess.SetInput(input)
		if err := sess.Submit(ctx, env.Sender); err != nil {
			if errors.Is(err, session.ErrEmptyInput) {
				continue
			}
			return NewCommandError("chat", "submit", "message was not sent", err)
		}
		in.AppendHistory(input)

		if reply, ok := sess.Transcript().Last(); ok {
			printMessage(env, reply)
		}
	}
}

func printMessage(env *Env, msg model.Message) {
	if msg.IsUser() {
		return
	}
	fmt.Fprintln(env.Stdout, RenderConditional(BrandStyle, msg.Role.DisplayName()+":"))
	displayResponse(env, msg.Text)
}

func printPair(env *Env, sess *session.Session) {
	pair, ok := sess.Pair()
	if !ok {
		fmt.Fprintln(env.Stdout, RenderConditional(DimStyle, "No exchange yet."))
		return
	}
	fmt.Fprintf(env.Stdout, "prompt: %s\nreply:  %s\n",
		model.NewUserMessage(pair.Prompt).Preview(env.wrapWidth()-8),
		model.NewAssistantMessage(pair.Reply).Preview(env.wrapWidth()-8))
}

func printChatHelp(env *Env) {
	fmt.Fprintln(env.Stdout, "Commands:")
	fmt.Fprintf(env.Stdout, "  %-8s show the last prompt and reply\n", cmdHistory)
	fmt.Fprintf(env.Stdout, "  %-8s leave the chat\n", cmdQuit)
}

// =============================================================================
// SENDER WRAPPER
// =============================================================================

// recordingSender forwards to next and remembers the last error, which the
// session otherwise replaces with the failure text.
type recordingSender struct {
	next remote.Sender
	err  error
}

func (r *recordingSender) Send(ctx context.Context, text string) (string, error) {
	if r.next == nil {
		r.err = remote.ErrConnection
		return "", r.err
	}
	reply, err := r.next.Send(ctx, text)
	r.err = err
	return reply, err
}

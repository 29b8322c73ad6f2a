// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfxt/chatfxt-tui/internal/model"
	"github.com/openfxt/chatfxt-tui/internal/session"
	"github.com/openfxt/chatfxt-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeSender struct {
	reply string
	err   error
	calls []string
}

func (f *fakeSender) Send(_ context.Context, text string) (string, error) {
	f.calls = append(f.calls, text)
	return f.reply, f.err
}

type fakePinger struct {
	err   error
	count int
}

func (f *fakePinger) Ping(context.Context) error {
	f.count++
	return f.err
}

func newTestModel(t *testing.T, sender *fakeSender) Model {
	t.Helper()
	m := New(Options{
		Session:       session.New(session.Options{}),
		Sender:        sender,
		Theme:         styles.NewThemeWithProfile(termenv.Ascii, true),
		MarkdownStyle: "notty",
	})
	return resize(m, 120, 40)
}

func resize(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findReply(t *testing.T, msgs []tea.Msg) ReplyMsg {
	t.Helper()
	for _, msg := range msgs {
		if r, ok := msg.(ReplyMsg); ok {
			return r
		}
	}
	require.FailNow(t, "no ReplyMsg produced")
	return ReplyMsg{}
}

// roundTrip types text, presses Enter and delivers the reply.
func roundTrip(t *testing.T, m Model, text string) Model {
	t.Helper()
	m = typeText(m, text)
	m, cmd := press(m, enter())
	require.NotNil(t, cmd)
	reply := findReply(t, collect(cmd))
	next, _ := m.Update(reply)
	return next.(Model)
}

// =============================================================================
// TESTS
// =============================================================================

func TestNew_Defaults(t *testing.T) {
	m := New(Options{Sender: &fakeSender{}, Theme: styles.NewThemeWithProfile(termenv.Ascii, true)})

	assert.Equal(t, "Loading...", m.View())
	assert.True(t, m.InputFocused())
	assert.Equal(t, IdlePlaceholder, m.input.Placeholder)
	assert.Equal(t, DefaultMaxInput, m.input.CharLimit)
	assert.Equal(t, 1, m.Session().Transcript().Len())
}

func TestView_ShowsGreetingAndChrome(t *testing.T) {
	m := newTestModel(t, &fakeSender{})

	view := m.View()
	assert.Contains(t, view, "Hello, this is ChatFXT")
	assert.Contains(t, view, "ChatFXT")
	assert.Contains(t, view, footerTag)
	assert.Contains(t, view, "0/512")
}

func TestView_HeaderAndFooterLinks(t *testing.T) {
	links := Links{
		Home:    "https://example.com/home",
		APIDocs: "https://example.com/docs",
		GitHub:  "https://example.com/gh",
	}

	m := resize(New(Options{
		Sender:        &fakeSender{},
		Theme:         styles.NewThemeWithProfile(termenv.ANSI, true),
		MarkdownStyle: "notty",
		Links:         links,
	}), 120, 40)

	view := m.View()
	assert.Contains(t, view, termenv.OSC+"8;;"+links.APIDocs+termenv.ST)
	assert.Contains(t, view, termenv.OSC+"8;;"+links.GitHub+termenv.ST)
	assert.Contains(t, view, termenv.Hyperlink(links.Home, footerTag))
}

func TestView_PlainThemeSkipsLinks(t *testing.T) {
	m := resize(New(Options{
		Sender:        &fakeSender{},
		Theme:         styles.NewThemeWithProfile(termenv.Ascii, true),
		MarkdownStyle: "notty",
		Links:         Links{Home: "https://example.com/home"},
	}), 120, 40)

	view := m.View()
	assert.Contains(t, view, footerTag)
	assert.NotContains(t, view, termenv.OSC+"8;;")
}

func TestSubmit_HelloRoundTrip(t *testing.T) {
	sender := &fakeSender{reply: "Hi there!"}
	m := newTestModel(t, sender)

	m = typeText(m, "hello")
	m, cmd := press(m, enter())
	require.NotNil(t, cmd)

	// Pending: user row appended, input disabled.
	assert.True(t, m.Session().Busy())
	assert.False(t, m.InputFocused())
	assert.Equal(t, BusyPlaceholder, m.input.Placeholder)
	assert.Equal(t, 2, m.Session().Transcript().Len())
	assert.Contains(t, m.View(), "waiting for reply")

	reply := findReply(t, collect(cmd))
	assert.Equal(t, "Hi there!", reply.Text)
	assert.Equal(t, []string{"hello"}, sender.calls)

	next, _ := m.Update(reply)
	m = next.(Model)

	tr := m.Session().Transcript()
	require.Equal(t, 3, tr.Len())
	assert.Equal(t, model.NewUserMessage("hello"), tr.At(1))
	assert.Equal(t, model.NewAssistantMessage("Hi there!"), tr.At(2))
	assert.False(t, m.Session().Busy())
	assert.True(t, m.InputFocused())
	assert.Empty(t, m.InputValue())
	assert.Equal(t, IdlePlaceholder, m.input.Placeholder)

	view := m.View()
	assert.Contains(t, view, "Hi there!")
	assert.NotContains(t, view, "waiting for reply")
}

func TestSubmit_EnterOnEmptyIsNoOp(t *testing.T) {
	sender := &fakeSender{}
	m := newTestModel(t, sender)

	m, cmd := press(m, enter())
	assert.Nil(t, cmd)
	assert.Empty(t, m.InputValue(), "enter must not insert a newline")
	assert.Equal(t, 1, m.Session().Transcript().Len())
	assert.Empty(t, sender.calls)
}

func TestSubmit_WhitespaceOnlyIsNoOp(t *testing.T) {
	sender := &fakeSender{}
	m := newTestModel(t, sender)

	m = typeText(m, "   ")
	m, cmd := press(m, enter())
	assert.Nil(t, cmd)
	assert.False(t, m.Session().Busy())
	assert.Equal(t, 1, m.Session().Transcript().Len())
	assert.Empty(t, sender.calls)
}

func TestNewlineKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"alt+enter", tea.KeyMsg{Type: tea.KeyEnter, Alt: true}},
		{"ctrl+j", tea.KeyMsg{Type: tea.KeyCtrlJ}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &fakeSender{})
			m = typeText(m, "a")
			m, _ = press(m, tt.key)
			m = typeText(m, "b")

			assert.Equal(t, "a\nb", m.InputValue())
			assert.Equal(t, "a\nb", m.Session().Input())
			assert.False(t, m.Session().Busy())
		})
	}
}

func TestSubmit_MultilineSentRaw(t *testing.T) {
	sender := &fakeSender{reply: "ok"}
	m := newTestModel(t, sender)

	m = typeText(m, "  line one")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlJ})
	m = typeText(m, "line two")
	_, cmd := press(m, enter())
	collect(cmd)

	require.Len(t, sender.calls, 1)
	assert.Equal(t, "  line one\nline two", sender.calls[0])
}

func TestSubmit_RejectedWhileBusy(t *testing.T) {
	sender := &fakeSender{reply: "ok"}
	m := newTestModel(t, sender)

	m = typeText(m, "first")
	m, cmd := press(m, enter())
	require.NotNil(t, cmd)

	// Keystrokes and a second Enter are ignored while pending.
	m = typeText(m, "second")
	assert.Equal(t, "first", m.InputValue())
	m, again := press(m, enter())
	assert.Nil(t, again)
	assert.Equal(t, 2, m.Session().Transcript().Len())
}

func TestReply_FailureText(t *testing.T) {
	sender := &fakeSender{err: errors.New("boom")}
	m := newTestModel(t, sender)

	m = roundTrip(t, m, "hello")

	last, ok := m.Session().Transcript().Last()
	require.True(t, ok)
	assert.Equal(t, model.RoleAssistant, last.Role)
	assert.Equal(t, session.FailureText, last.Text)
	assert.Empty(t, m.InputValue())
	assert.True(t, m.InputFocused())
	assert.Contains(t, m.View(), "Oops! There seems to be an error.")
}

func TestReply_IgnoredWhenIdle(t *testing.T) {
	m := newTestModel(t, &fakeSender{})

	next, cmd := m.Update(ReplyMsg{Text: "stray"})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Session().Transcript().Len())
}

func TestViewport_PinnedToBottom(t *testing.T) {
	sender := &fakeSender{reply: strings.Repeat("a long reply line\n\n", 10)}
	m := newTestModel(t, sender)
	m = resize(m, 80, 16)

	for i := 0; i < 5; i++ {
		m = roundTrip(t, m, "question")
		assert.True(t, m.viewport.AtBottom(), "after reply %d", i)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.False(t, m.viewport.AtBottom())

	// A resize pins the view again.
	m = resize(m, 90, 18)
	assert.True(t, m.viewport.AtBottom())
}

func TestInput_CharLimit(t *testing.T) {
	m := newTestModel(t, &fakeSender{})

	m = typeText(m, strings.Repeat("x", 600))
	assert.Len(t, m.InputValue(), DefaultMaxInput)
	assert.Contains(t, m.View(), "512/512")
}

func TestOnPair(t *testing.T) {
	var pairs []model.HistoryPair
	m := New(Options{
		Session:       session.New(session.Options{}),
		Sender:        &fakeSender{reply: "pong"},
		Theme:         styles.NewThemeWithProfile(termenv.Ascii, true),
		MarkdownStyle: "notty",
		OnPair:        func(p model.HistoryPair) { pairs = append(pairs, p) },
	})
	m = resize(m, 100, 30)

	roundTrip(t, m, "ping")

	require.Len(t, pairs, 1)
	assert.Equal(t, model.HistoryPair{Prompt: "ping", Reply: "pong"}, pairs[0])
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m := newTestModel(t, &fakeSender{})
		_, cmd := press(m, k)
		require.NotNil(t, cmd, k.String())
		assert.Equal(t, tea.QuitMsg{}, cmd(), k.String())
	}
}

func TestPingCmd(t *testing.T) {
	assert.Nil(t, PingCmd(nil))

	p := &fakePinger{err: errors.New("offline")}
	msg := PingCmd(p)()
	assert.Equal(t, PingDoneMsg{Err: p.err}, msg)
	assert.Equal(t, 1, p.count)

	m := newTestModel(t, &fakeSender{})
	next, cmd := m.Update(msg)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, next.(Model).Session().Transcript().Len())
}

func TestSubmitCmd_NilSender(t *testing.T) {
	msg := SubmitCmd(nil, "hello")()
	reply, ok := msg.(ReplyMsg)
	require.True(t, ok)
	assert.Error(t, reply.Err)
}

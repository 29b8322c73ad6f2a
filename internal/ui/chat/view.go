// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/openfxt/chatfxt-tui/internal/model"
	"github.com/openfxt/chatfxt-tui/internal/ui/styles"
)

const (
	brandName = "ChatFXT"
	footerTag = "Powered by OpenFXT"

	apiDocsLink = "API Docs"
	githubLink  = "GitHub"
)

// View renders the chat view.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderInput(),
		m.renderFooter(),
	)
}

// renderHeader draws the brand, status indicator and links on one line.
func (m Model) renderHeader() string {
	status := m.theme.Ready.Render(styles.StatusIndicators.Ready + " ready")
	if m.session.Busy() {
		status = m.theme.Pending.Render(styles.StatusIndicators.Pending + " " + m.spinner.View() + " waiting")
	}

	left := m.theme.HeaderBrand.Render(brandName) + "  " + status
	links := m.link(m.theme.HeaderLink.Render(apiDocsLink), m.links.APIDocs) + "  " +
		m.link(m.theme.HeaderLink.Render(githubLink), m.links.GitHub)

	inner := m.width - m.theme.Header.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(links)
	line := left
	if gap >= 2 {
		line = left + strings.Repeat(" ", gap) + links
	}

	return m.theme.Header.Width(m.width).MaxWidth(m.width).MaxHeight(headerHeight).Render(line)
}

// link wraps label in an OSC 8 hyperlink. Plain-text themes keep the bare
// label.
func (m Model) link(label, url string) string {
	if url == "" || m.theme.ColorProfile == termenv.Ascii {
		return label
	}
	return termenv.Hyperlink(url, label)
}

// renderMessages renders the full transcript in insertion order.
func (m *Model) renderMessages() string {
	msgs := m.session.Transcript().Messages()
	waitingIdx := -1
	if m.session.Busy() && len(msgs) > 0 && msgs[len(msgs)-1].IsUser() {
		waitingIdx = len(msgs) - 1
	}

	var b strings.Builder
	for i, msg := range msgs {
		b.WriteString(m.renderMessage(msg, i == waitingIdx))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMessage renders one transcript row.
func (m *Model) renderMessage(msg model.Message, waiting bool) string {
	rowStyle := m.theme.AssistantRow
	if msg.IsUser() {
		rowStyle = m.theme.UserRow
		if waiting {
			rowStyle = m.theme.UserRowWaiting
		}
	}

	label := m.theme.RoleLabel.Render(msg.Role.DisplayName())
	if waiting {
		label += " " + m.spinner.View() + " waiting for reply"
	}

	rowWidth := m.width - rowStyle.GetHorizontalMargins() - rowStyle.GetHorizontalBorderSize()
	body := m.markdown.Render(msg.Text, rowWidth-rowStyle.GetHorizontalPadding())

	return rowStyle.Width(rowWidth).Render(label + "\n" + body)
}

// renderInput draws the input box and character count.
func (m Model) renderInput() string {
	box := m.theme.InputBox
	if m.session.Busy() {
		box = m.theme.InputBoxBusy
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		box.Render(m.input.View()),
		m.renderCharCount(),
	)
}

// renderCharCount shows used/limit, highlighted once the limit is reached.
func (m Model) renderCharCount() string {
	n := len([]rune(m.input.Value()))
	style := m.theme.CharCount
	if n >= m.maxInput {
		style = m.theme.CharCountFull
	}
	text := fmt.Sprintf("%d/%d", n, m.maxInput)
	pad := m.width - lipgloss.Width(text) - 1
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + style.Render(text)
}

// renderFooter draws key help and the footer tag.
func (m Model) renderFooter() string {
	tag := m.link(footerTag, m.links.Home)
	helpWidth := m.width - lipgloss.Width(tag) - m.theme.Footer.GetHorizontalFrameSize() - 2
	h := m.help
	h.Width = max(helpWidth, 0)
	helpView := h.View(m.keys)

	gap := m.width - m.theme.Footer.GetHorizontalFrameSize() - lipgloss.Width(helpView) - lipgloss.Width(tag)
	if gap < 1 {
		gap = 1
	}
	return m.theme.Footer.Render(helpView + strings.Repeat(" ", gap) + tag)
}

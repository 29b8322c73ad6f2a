// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/openfxt/chatfxt-tui/internal/ui/styles"
)

// markdownRenderer renders message text with glamour. Renderers are bound
// to a wrap width, so one is rebuilt on resize, and output is cached by
// text since transcript messages never change.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdownRenderer(style string) *markdownRenderer {
	return &markdownRenderer{
		style: style,
		cache: make(map[string]string),
	}
}

// Render returns text rendered for the given wrap width. On any renderer
// failure the raw text is returned.
func (r *markdownRenderer) Render(text string, width int) string {
	if width < 10 {
		width = 10
	}
	if width != r.width || r.renderer == nil {
		r.width = width
		r.renderer = r.build(width)
		r.cache = make(map[string]string)
	}
	if out, ok := r.cache[text]; ok {
		return out
	}
	if r.renderer == nil {
		return text
	}

	out, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	out = trimBlankLines(out)
	r.cache[text] = out
	return out
}

func (r *markdownRenderer) build(width int) *glamour.TermRenderer {
	tr, err := styles.NewMarkdownRenderer(r.style, width)
	if err != nil {
		return nil
	}
	return tr
}

// trimBlankLines drops the leading and trailing blank lines glamour pads
// documents with.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

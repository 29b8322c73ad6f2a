// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/openfxt/chatfxt-tui/internal/ui/styles"
)

// renderMarkdown renders content for terminal display. Returns the original
// content if the renderer cannot be built or fails.
func renderMarkdown(content, style string, width int) string {
	r, err := styles.NewMarkdownRenderer(style, width)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a reply, rendered as markdown when env asks for it.
// Piped output stays raw.
func displayResponse(env *Env, response string) {
	if env.Markdown {
		fmt.Fprint(env.Stdout, renderMarkdown(response, env.Config.UI.Theme, env.wrapWidth()))
		return
	}
	fmt.Fprint(env.Stdout, response)
	if !strings.HasSuffix(response, "\n") {
		fmt.Fprintln(env.Stdout)
	}
}

func (e *Env) wrapWidth() int {
	if e.Width > 0 {
		return e.Width
	}
	return DefaultTerminalWidth
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the chat view.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Header and footer
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderLink  lipgloss.Style
	Footer      lipgloss.Style

	// Message rows
	RoleLabel      lipgloss.Style
	UserRow        lipgloss.Style
	UserRowWaiting lipgloss.Style
	AssistantRow   lipgloss.Style

	// Input area
	InputBox      lipgloss.Style
	InputBoxBusy  lipgloss.Style
	CharCount     lipgloss.Style
	CharCountFull lipgloss.Style

	// Status
	Ready   lipgloss.Style
	Pending lipgloss.Style
	Spinner lipgloss.Style
}

// NewTheme creates a theme for the current terminal.
func NewTheme() *Theme {
	return NewThemeWithProfile(termenv.ColorProfile(), termenv.HasDarkBackground())
}

// NewThemeWithProfile creates a theme for an explicit color profile. Tests
// use termenv.Ascii for stable output.
func NewThemeWithProfile(profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// ThemeFor returns the theme for a configured theme name: "dark" and
// "light" force the background, "notty" disables color, anything else
// detects the terminal.
func ThemeFor(name string) *Theme {
	switch strings.ToLower(name) {
	case "dark":
		return NewThemeWithProfile(termenv.ColorProfile(), true)
	case "light":
		return NewThemeWithProfile(termenv.ColorProfile(), false)
	case "notty":
		return NewThemeWithProfile(termenv.Ascii, true)
	default:
		return NewTheme()
	}
}

// Apply makes the default lipgloss renderer agree with the theme, so
// adaptive colors follow a forced background or a disabled profile.
func (t *Theme) Apply() {
	lipgloss.SetColorProfile(t.ColorProfile)
	lipgloss.SetHasDarkBackground(t.IsDark)
}

// MarkdownStyle returns the glamour standard style name matching the
// terminal.
func (t *Theme) MarkdownStyle() string {
	if t.ColorProfile == termenv.Ascii {
		return "notty"
	}
	if t.IsDark {
		return "dark"
	}
	return "light"
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderLink = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Underline(true)

	t.Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	t.RoleLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.UserRow = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(UserRowBorder).
		PaddingLeft(1).
		MarginTop(1)

	// Dimmed, with its own border, while the reply is pending.
	t.UserRowWaiting = t.UserRow.
		BorderForeground(UserRowWaitingBorder).
		Faint(true)

	t.AssistantRow = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(AssistantRowBorder).
		PaddingLeft(1).
		MarginTop(1)

	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.InputBoxBusy = t.InputBox.
		BorderForeground(Overlay)

	t.CharCount = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CharCountFull = lipgloss.NewStyle().
		Foreground(Rose)

	t.Ready = lipgloss.NewStyle().
		Foreground(Emerald)

	t.Pending = lipgloss.NewStyle().
		Foreground(Amber)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)
}

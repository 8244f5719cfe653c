// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/keydesk/keydesk/internal/model"
	"github.com/keydesk/keydesk/internal/notify"
	"github.com/keydesk/keydesk/internal/tui/frame"
)

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // A nice teal/cyan
	colorSpecial   = lipgloss.Color("208") // An orange for special attention
	colorError     = lipgloss.Color("196") // A bright red
	colorSuccess   = lipgloss.Color("40")  // A nice green
	colorWarning   = lipgloss.Color("220") // Amber
	colorWhite     = lipgloss.Color("231")
)

var (
	docStyle = lipgloss.NewStyle().Margin(0, 2)

	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	specialStyle = lipgloss.NewStyle().Foreground(colorSpecial)

	mainTitleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(1, 1, 0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	paneTitleStyle = lipgloss.NewStyle().Bold(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 2)

	// Tabs
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(colorSubtle)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(colorWhite).Background(colorHighlight).Bold(true)

	// Modal Dialogs
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorHighlight).
			Padding(1, 2).
			Width(64)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("237")). // Dark gray
			Padding(0, 2).
			MarginRight(1)

	activeButtonStyle = buttonStyle.
				Background(colorHighlight).
				Underline(true)

	codeStyle = lipgloss.NewStyle().
			Foreground(colorSpecial).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	// Toasts
	toastStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorWhite)
)

// statusStyle colors a key status by its class.
func statusStyle(class model.StatusClass) lipgloss.Style {
	switch class {
	case model.StatusActive:
		return successStyle
	case model.StatusPaused:
		return lipgloss.NewStyle().Foreground(colorWarning)
	case model.StatusExpired:
		return errorStyle
	default:
		return helpStyle
	}
}

// statusGlyph marks a status in places that cannot carry color.
func statusGlyph(class model.StatusClass) string {
	switch class {
	case model.StatusActive:
		return "●"
	case model.StatusPaused:
		return "‖"
	case model.StatusExpired:
		return "✕"
	default:
		return "○"
	}
}

func toastKindStyle(kind notify.Kind) lipgloss.Style {
	switch kind {
	case notify.KindSuccess:
		return toastStyle.Background(lipgloss.Color("28"))
	case notify.KindError:
		return toastStyle.Background(lipgloss.Color("160"))
	case notify.KindWarning:
		return toastStyle.Background(lipgloss.Color("172"))
	default:
		return toastStyle.Background(lipgloss.Color("25"))
	}
}

func toastIcon(kind notify.Kind) string {
	switch kind {
	case notify.KindSuccess:
		return "✔"
	case notify.KindError:
		return "✖"
	case notify.KindWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// iconGlyphs maps button icons to terminal glyphs.
var iconGlyphs = map[string]string{
	"eye":   "◉",
	"pause": "⏸",
	"play":  "▶",
	"undo":  "↺",
	"trash": "✖",
	"copy":  "⧉",
}

// confirmDialogStyles draws confirmations in the warning colours.
func confirmDialogStyles() frame.DialogStyles {
	return frame.DialogStyles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorWarning).
			Padding(0, 2),
		Title:        titleStyle.Foreground(colorWarning),
		Message:      lipgloss.NewStyle().Foreground(colorWhite).Padding(1, 0),
		Button:       buttonStyle,
		ActiveButton: activeButtonStyle.Background(colorError),
	}
}

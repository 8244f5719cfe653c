// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package frame holds layout primitives shared by the terminal views.
package frame

import (
	"github.com/charmbracelet/lipgloss"
)

// DialogStyles is the look of a Dialog. The caller supplies its palette.
type DialogStyles struct {
	Box          lipgloss.Style
	Title        lipgloss.Style
	Message      lipgloss.Style
	Button       lipgloss.Style
	ActiveButton lipgloss.Style
}

// DefaultDialogStyles is a neutral look used until SetStyles is called.
func DefaultDialogStyles() DialogStyles {
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).Background(lipgloss.Color("237"))
	return DialogStyles{
		Box:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Title:        lipgloss.NewStyle().Bold(true),
		Message:      lipgloss.NewStyle().PaddingTop(1).PaddingBottom(1),
		Button:       button,
		ActiveButton: button.Reverse(true),
	}
}

// Dialog is a yes/no question box. Focus sits on one of the two answers.
type Dialog struct {
	title   string
	message string
	answers [2]string
	right   bool
	width   int
	styles  DialogStyles
}

// NewDialog creates a dialog with the affirmative answer on the left.
func NewDialog(title, message, yes, no string) *Dialog {
	return &Dialog{
		title:   title,
		message: message,
		answers: [2]string{yes, no},
		width:   60,
		styles:  DefaultDialogStyles(),
	}
}

// SetWidth sets the outer width of the box, borders excluded.
func (d *Dialog) SetWidth(width int) { d.width = width }

// SetStyles replaces the dialog's look.
func (d *Dialog) SetStyles(s DialogStyles) { d.styles = s }

// Message returns the question.
func (d *Dialog) Message() string { return d.message }

// FocusRight focuses the negative answer.
func (d *Dialog) FocusRight() { d.right = true }

// FocusLeft focuses the affirmative answer.
func (d *Dialog) FocusLeft() { d.right = false }

// Toggle moves focus to the other answer.
func (d *Dialog) Toggle() { d.right = !d.right }

// IsFocusedRight reports whether the negative answer has focus.
func (d *Dialog) IsFocusedRight() bool { return d.right }

// Render draws the box: title, wrapped question, answers aligned right.
func (d *Dialog) Render() string {
	inner := max(d.width-d.styles.Box.GetHorizontalPadding(), 1)
	body := lipgloss.JoinVertical(lipgloss.Left,
		d.styles.Title.Width(inner).Render(d.title),
		d.styles.Message.Width(inner).Render(d.message),
		lipgloss.PlaceHorizontal(inner, lipgloss.Right, d.answerRow()),
	)
	return d.styles.Box.Width(d.width).Render(body)
}

func (d *Dialog) answerRow() string {
	cells := make([]string, len(d.answers))
	for i, label := range d.answers {
		style := d.styles.Button
		if (i == 1) == d.right {
			style = d.styles.ActiveButton
		}
		cells[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

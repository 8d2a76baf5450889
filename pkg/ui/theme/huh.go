package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// HuhTheme converts t into a form theme.
func HuhTheme(t *Theme) *huh.Theme {
	h := huh.ThemeBase()

	accent := t.SelectedStyle.GetForeground()
	subtle := t.SubtleStyle.GetForeground()

	h.Focused.Base = h.Focused.Base.BorderForeground(accent)
	h.Focused.Card = h.Focused.Base
	h.Focused.Title = h.Focused.Title.Foreground(accent).Bold(true)
	h.Focused.Description = h.Focused.Description.Foreground(t.SelectedSubtleStyle.GetForeground())
	h.Focused.ErrorIndicator = h.Focused.ErrorIndicator.Foreground(t.ErrorStyle.GetForeground())
	h.Focused.ErrorMessage = h.Focused.ErrorMessage.Foreground(t.ErrorStyle.GetForeground())
	h.Focused.SelectSelector = h.Focused.SelectSelector.Foreground(accent)
	h.Focused.NextIndicator = h.Focused.NextIndicator.Foreground(accent)
	h.Focused.PrevIndicator = h.Focused.PrevIndicator.Foreground(accent)
	h.Focused.Option = h.Focused.Option.Foreground(t.TextStyle.GetForeground())
	h.Focused.SelectedOption = h.Focused.SelectedOption.Foreground(accent)
	h.Focused.UnselectedOption = h.Focused.UnselectedOption.Foreground(t.TextStyle.GetForeground())
	h.Focused.TextInput.Cursor = h.Focused.TextInput.Cursor.Foreground(accent)
	h.Focused.TextInput.Placeholder = h.Focused.TextInput.Placeholder.Foreground(subtle)
	h.Focused.TextInput.Prompt = h.Focused.TextInput.Prompt.Foreground(accent)

	h.Blurred = h.Focused
	h.Blurred.Base = h.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	h.Blurred.Card = h.Blurred.Base
	h.Blurred.NextIndicator = lipgloss.NewStyle()
	h.Blurred.PrevIndicator = lipgloss.NewStyle()

	return h
}

package ui

import "github.com/charmbracelet/lipgloss"

// RenderNotice centers a modal message over a width x height area.
func RenderNotice(text string, isErr bool, width, height int) string {
	box := StyleNotice
	if isErr {
		box = StyleNoticeError
	}
	content := text + "\n\n" + StyleHelp.Render("[enter] dismiss")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(content))
}

// RenderDialog centers an embedded form, such as a confirmation prompt.
func RenderDialog(form string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, StyleNotice.Render(form))
}

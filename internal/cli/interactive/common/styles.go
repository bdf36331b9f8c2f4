package common

import (
	"github.com/charmbracelet/lipgloss"
)

func HighlightStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
}

// SelectedRowStyle returns the style for the selected table row (bold blue)
func SelectedRowStyle() lipgloss.Style {
	return HighlightStyle()
}

func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Underline(true)
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
}

func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

// StatusStyle renders the short-lived status toast
func StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("6")).
		Padding(0, 1)
}

// DialogStyle frames modal dialogs drawn over the table
func DialogStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(lipgloss.Color("6")).
		Padding(1, 2)
}

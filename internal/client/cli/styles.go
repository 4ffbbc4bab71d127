package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// field печатает строку "label: value" с выравниванием
func field(label, value string) string {
	return labelStyle.Render(padRight(label+":", 18)) + value
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

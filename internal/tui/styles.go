package tui

import (
	"github.com/charmbracelet/lipgloss"

	"moviekit/internal/media/stream"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#93C5FD")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF476F")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#06D6A0"))
	skipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	videoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))
	audioStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE"))
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E879F9"))
)

// StreamLine renders one stream in its class colour.
func StreamLine(s stream.Stream) string {
	switch s.Type {
	case stream.KindVideo:
		return videoStyle.Render(s.String())
	case stream.KindAudio:
		return audioStyle.Render(s.String())
	case stream.KindSubtitle:
		return subtitleStyle.Render(s.String())
	}
	return s.String()
}

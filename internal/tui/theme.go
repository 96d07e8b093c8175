package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, trimmed to what the dashboard uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	nameStyle      = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
	priceStyle     = lipgloss.NewStyle().Foreground(colorPeach)
	availableStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	soldOutStyle   = lipgloss.NewStyle().Foreground(colorError)
	footerStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	statusOKStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)
	searchStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	dialogStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBrand).
			Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext0).Width(16)
	ruleStyle  = lipgloss.NewStyle().Foreground(colorSurface1)
)

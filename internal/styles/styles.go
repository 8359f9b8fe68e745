package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/lessonbridge/internal/lesson"
)

// Palette, Monokai Pro
const (
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	Red    = "#FF6188"
	Orange = "#FC9867"
	Yellow = "#FFD866"
	Green  = "#A9DC76"
	Cyan   = "#78DCE8"
	Purple = "#AB9DF2"

	Comment = "#727072"
	Border  = "#5B595C"
)

var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Red))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Red))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Background)).
			Background(lipgloss.Color(Yellow))

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border)).
			Padding(0, 1)
)

// Success prefixes msg with a green check
func Success(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

// Failure prefixes msg with a red cross
func Failure(msg string) string {
	return ErrorStyle.Render("✗ " + msg)
}

// Warning prefixes msg with an orange bang
func Warning(msg string) string {
	return WarningStyle.Render("! " + msg)
}

// DayType colors a day's type label
func DayType(t lesson.DayType) string {
	color := Cyan
	switch t {
	case lesson.Introduction:
		color = Green
	case lesson.Review:
		color = Purple
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(t))
}

package ui

import (
	"github.com/charmbracelet/lipgloss"

	"remont/internal/models"
)

var badgeColors = map[string]lipgloss.Color{
	models.ColorGray:    lipgloss.Color("245"),
	models.ColorBlue:    lipgloss.Color("33"),
	models.ColorPurple:  lipgloss.Color("135"),
	models.ColorOrange:  lipgloss.Color("208"),
	models.ColorGreen:   lipgloss.Color("34"),
	models.ColorEmerald: lipgloss.Color("36"),
	models.ColorRed:     lipgloss.Color("196"),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
)

// BadgeColor maps a badge color name to a terminal color
func BadgeColor(name string) lipgloss.Color {
	if c, ok := badgeColors[name]; ok {
		return c
	}
	return badgeColors[models.ColorGray]
}

// RenderBadge draws a status badge as colored inverse text
func RenderBadge(b models.Badge) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("231")).
		Background(BadgeColor(b.Color)).
		Padding(0, 1).
		Render(b.Label)
}

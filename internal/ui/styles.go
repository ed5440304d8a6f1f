package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/skalibog/benzboard/internal/format"
)

// Стили UI
var (
	// Основные цвета
	primaryColor   = lipgloss.Color("#0077cc")
	secondaryColor = lipgloss.Color("#333333")
	errorColor     = lipgloss.Color("#ef4444")
	successColor   = lipgloss.Color("#22c55e")
	warningColor   = lipgloss.Color("#eab308")
	infoColor      = lipgloss.Color("#38bdf8")
	mutedColor     = lipgloss.Color("#999999")

	appStyle = lipgloss.NewStyle().
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(primaryColor).
			Padding(0, 1)
	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffffff")).
				Background(secondaryColor).
				Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1).
			Width(cardWidth)
	liveCardStyle = cardStyle.
			BorderForeground(successColor)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)
	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(1, 4).
			Align(lipgloss.Center)
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#222222"))
	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)
	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)
)

// classStyles сопоставляет классы цвета из format со стилями терминала
var classStyles = map[string]lipgloss.Style{
	format.TagRed:    lipgloss.NewStyle().Foreground(errorColor).Bold(true),
	format.TagGreen:  lipgloss.NewStyle().Foreground(successColor).Bold(true),
	format.TagYellow: lipgloss.NewStyle().Foreground(warningColor).Bold(true),

	format.TextSuccess:   lipgloss.NewStyle().Foreground(successColor),
	format.TextDanger:    lipgloss.NewStyle().Foreground(errorColor),
	format.TextWarning:   lipgloss.NewStyle().Foreground(warningColor),
	format.TextInfo:      lipgloss.NewStyle().Foreground(infoColor),
	format.TextSecondary: lipgloss.NewStyle().Foreground(mutedColor),

	format.BadgeSuccess:   lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(successColor).Padding(0, 1),
	format.BadgeDanger:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(errorColor).Padding(0, 1),
	format.BadgeSecondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(secondaryColor).Padding(0, 1),
}

// styled рисует текст стилем класса; неизвестный класс оставляет текст как есть
func styled(class, text string) string {
	if style, ok := classStyles[class]; ok {
		return style.Render(text)
	}
	return text
}

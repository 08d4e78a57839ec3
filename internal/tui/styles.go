package tui

import "github.com/charmbracelet/lipgloss"

// Streak tiers, from a fresh reset to a month or more of peace.
var (
	tierReset  = lipgloss.Color("#E74C3C")
	tierEarly  = lipgloss.Color("#FF8C42")
	tierSteady = lipgloss.Color("#F1C40F")
	tierLong   = lipgloss.Color("#2ECC71")
)

var (
	colorBrand = lipgloss.Color("#6C63FF")
	colorText  = lipgloss.Color("#C0CAF5")
	colorDim   = lipgloss.Color("#666666")
	colorEdge  = lipgloss.Color("#414868")
	colorValue = lipgloss.Color("#7AA2F7")
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 2)
	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(colorBrand).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorBrand)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorEdge).
			Padding(1, 2)
	counterPanelStyle = panelStyle.BorderForeground(colorBrand)
	ackPanelStyle     = panelStyle.Border(lipgloss.ThickBorder()).BorderForeground(tierReset)

	// counter panel lines are all centred
	centered       = lipgloss.NewStyle().Align(lipgloss.Center)
	bigNumberStyle = centered.Bold(true)
	headlineStyle  = centered.Bold(true).Foreground(colorText)
	subjectStyle   = centered.Bold(true).Foreground(colorBrand)
	captionStyle   = centered.Foreground(colorDim)

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	textStyle   = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorDim)
	valueStyle  = lipgloss.NewStyle().Foreground(colorValue)
	recordStyle = lipgloss.NewStyle().Foreground(tierLong)
	errorStyle  = lipgloss.NewStyle().Foreground(tierReset)

	// header and footer rows
	barStyle = lipgloss.NewStyle().Padding(0, 1)
)

package main

import "github.com/charmbracelet/lipgloss"

const (
	rowTextFGColor         = "#c0c0c0"
	rowSelectedTextFGColor = "#e0e0e0"
	rowSelectedBGColor     = "#3a3a3a"
	searchHighlightBGColor = "#f5c542"
	searchHighlightFGColor = "#000000"

	majorRegressionFG  = "#ff5f5f"
	regressionFG       = "#ffaf5f"
	improvementFG      = "#87d787"
	majorImprovementFG = "#5fd75f"
	groupHeaderFG      = "#87afd7"
)

var (
	appstyle    = lipgloss.NewStyle().Margin(1, 2)
	headerStyle = lipgloss.NewStyle().BorderStyle(lipgloss.Border{
		Left:  " ",
		Right: " ",
	}).BorderLeft(true).BorderRight(true).Bold(true)
	rowStyle         = lipgloss.NewStyle()
	rowSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color(rowSelectedBGColor))

	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	linkStyle        = lipgloss.NewStyle().Underline(true)
	groupHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(groupHeaderFG)).Bold(true)
	tableStyle       = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(lipgloss.Color("124")).
				Padding(1, 2)

	selectedMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	defaultMarker  = " " // replaces pillMarker on rows that are not selected
	pillMarker     = "▐"

	timeWindowArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 0).BorderLeft(true)

	searchHighlight = lipgloss.NewStyle().
			Background(lipgloss.Color(searchHighlightBGColor)).
			Foreground(lipgloss.Color(searchHighlightFGColor))
)

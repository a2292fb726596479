package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// selectable via the ColorScheme config key
var colorschemes = map[string]tview.Theme{
	"default": {
		PrimitiveBackgroundColor:    tcell.ColorDefault,
		ContrastBackgroundColor:     tcell.ColorGray,
		MoreContrastBackgroundColor: tcell.ColorSteelBlue,
		BorderColor:                 tcell.ColorGray,
		TitleColor:                  tcell.ColorRed,
		GraphicsColor:               tcell.ColorBlue,
		PrimaryTextColor:            tcell.ColorLightGray,
		SecondaryTextColor:          tcell.ColorYellow,
		TertiaryTextColor:           tcell.ColorOrange,
		InverseTextColor:            tcell.ColorPurple,
		ContrastSecondaryTextColor:  tcell.ColorLime,
	},
	"gruvbox": {
		PrimitiveBackgroundColor:    tcell.NewHexColor(0x282828),
		ContrastBackgroundColor:     tcell.ColorDarkGoldenrod,
		MoreContrastBackgroundColor: tcell.ColorDarkSlateGray,
		BorderColor:                 tcell.ColorLightGray,
		TitleColor:                  tcell.ColorRed,
		GraphicsColor:               tcell.ColorDarkCyan,
		PrimaryTextColor:            tcell.ColorLightGray,
		SecondaryTextColor:          tcell.ColorYellow,
		TertiaryTextColor:           tcell.ColorOrange,
		InverseTextColor:            tcell.ColorWhite,
		ContrastSecondaryTextColor:  tcell.ColorLightGreen,
	},
	"dracula": {
		PrimitiveBackgroundColor:    tcell.NewHexColor(0x282a36),
		ContrastBackgroundColor:     tcell.ColorDarkMagenta,
		MoreContrastBackgroundColor: tcell.ColorDarkGray,
		BorderColor:                 tcell.ColorLightGray,
		TitleColor:                  tcell.ColorRed,
		GraphicsColor:               tcell.ColorDarkCyan,
		PrimaryTextColor:            tcell.ColorWhite,
		SecondaryTextColor:          tcell.ColorYellow,
		TertiaryTextColor:           tcell.ColorOrange,
		InverseTextColor:            tcell.ColorWhite,
		ContrastSecondaryTextColor:  tcell.ColorLightGreen,
	},
}

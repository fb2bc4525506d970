package tui

import "github.com/rgehrsitz/herdemi/internal/tui/tuistyles"

// Re-exported so scene code and the root model share one palette.
var (
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	BorderStyle    = tuistyles.BorderStyle
	ErrorStyle     = tuistyles.ErrorStyle
	HintStyle      = tuistyles.HintStyle
)

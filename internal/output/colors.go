package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for the widget's terminal output
type ColorScheme struct {
	Icon  *color.Color
	Title *color.Color
	Temp  *color.Color
	Stale *color.Color
	Error *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Icon:  color.New(color.FgYellow, color.Bold),
		Title: color.New(color.FgCyan),
		Temp:  color.New(color.FgWhite, color.Bold),
		Stale: color.New(color.FgHiBlack),
		Error: color.New(color.FgRed),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	scheme.Icon.DisableColor()
	scheme.Title.DisableColor()
	scheme.Temp.DisableColor()
	scheme.Stale.DisableColor()
	scheme.Error.DisableColor()
	return scheme
}

// IsTerminal reports whether stdout is an interactive terminal; color is
// disabled automatically when it isn't.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

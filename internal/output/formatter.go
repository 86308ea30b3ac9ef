// Package output renders fetched conditions as a one-line terminal
// widget, standing in for the X11 icon window of the original program.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/wxterm/wxterm/internal/weather"
)

// glyphs maps each icon to its terminal rendition.
var glyphs = map[weather.Icon]string{
	weather.IconSun:    "☀", // ☀
	weather.IconClouds: "☁", // ☁
	weather.IconMoon:   "☾", // ☾
	weather.IconRain:   "☂", // ☂
	weather.IconSnow:   "❄", // ❄
}

// Formatter is responsible for formatting conditions for display
type Formatter struct {
	NoColor bool
	scheme  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(noColor bool) *Formatter {
	f := &Formatter{NoColor: noColor}
	if noColor {
		f.scheme = NoColorScheme()
	} else {
		f.scheme = DefaultColorScheme()
	}
	return f
}

// FormatConditions renders the icon glyph and title line for a fetch.
func (f *Formatter) FormatConditions(cond *weather.Conditions) string {
	return fmt.Sprintf("%s  %s\n",
		f.scheme.Icon.Sprint(Glyph(cond.Icon())),
		f.scheme.Title.Sprint(cond.Title()))
}

// FormatStale re-renders the last good conditions after a failed refresh,
// annotated with their age.
func (f *Formatter) FormatStale(cond *weather.Conditions, age time.Duration) string {
	return fmt.Sprintf("%s  %s %s\n",
		f.scheme.Icon.Sprint(Glyph(cond.Icon())),
		f.scheme.Title.Sprint(cond.Title()),
		f.scheme.Stale.Sprintf("(stale, %s old)", age.Round(time.Second)))
}

// FormatError renders a fetch failure.
func (f *Formatter) FormatError(err error) string {
	return f.scheme.Error.Sprintf("weather fetch failed: %v", err) + "\n"
}

// Glyph returns the terminal glyph for an icon.
func Glyph(icon weather.Icon) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return "?"
}

// FormatTitle pads a title to a fixed width so successive refreshes
// overwrite cleanly when rendered with a carriage return.
func FormatTitle(title string, width int) string {
	if len(title) >= width {
		return title
	}
	return title + strings.Repeat(" ", width-len(title))
}

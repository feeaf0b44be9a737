package common

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/idursun/mandelbrot/internal/config"
)

// Palette resolves space separated selectors such as "status paused" to a
// style that inherits from every shorter prefix ("status").
type Palette struct {
	styles map[string]lipgloss.Style
	cache  map[string]lipgloss.Style
}

func NewPalette(colors map[string]config.Color) *Palette {
	p := &Palette{
		styles: make(map[string]lipgloss.Style, len(colors)),
		cache:  make(map[string]lipgloss.Style),
	}
	for key, c := range colors {
		p.styles[strings.Join(strings.Fields(key), " ")] = createStyleFrom(c)
	}
	return p
}

func (p *Palette) Get(selector string) lipgloss.Style {
	if style, ok := p.cache[selector]; ok {
		return style
	}
	fields := strings.Fields(selector)
	finalStyle := lipgloss.NewStyle()
	for end := len(fields); end > 0; end-- {
		if style, ok := p.styles[strings.Join(fields[:end], " ")]; ok {
			finalStyle = finalStyle.Inherit(style)
		}
	}
	p.cache[selector] = finalStyle
	return finalStyle
}

func createStyleFrom(c config.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.Fg != "" {
		style = style.Foreground(parseColor(c.Fg))
	}
	if c.Bg != "" {
		style = style.Background(parseColor(c.Bg))
	}
	if c.Bold != nil {
		style = style.Bold(*c.Bold)
	}
	return style
}

var namedColors = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright black":   "8",
	"bright red":     "9",
	"bright green":   "10",
	"bright yellow":  "11",
	"bright blue":    "12",
	"bright magenta": "13",
	"bright cyan":    "14",
	"bright white":   "15",
}

func parseColor(c string) color.Color {
	if len(c) == 7 && c[0] == '#' {
		return lipgloss.Color(c)
	}
	if v, err := strconv.Atoi(c); err == nil && v >= 0 && v <= 255 {
		return lipgloss.Color(c)
	}
	if code, ok := namedColors[c]; ok {
		return lipgloss.Color(code)
	}
	return lipgloss.NoColor{}
}

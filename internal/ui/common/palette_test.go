package common

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/idursun/mandelbrot/internal/config"
)

func TestPalette_InheritsFromPrefix(t *testing.T) {
	bold := true
	p := NewPalette(map[string]config.Color{
		"status":        {Fg: "252", Bg: "236"},
		"status paused": {Fg: "214", Bold: &bold},
	})

	paused := p.Get("status paused")
	assert.Equal(t, lipgloss.Color("214"), paused.GetForeground())
	assert.Equal(t, lipgloss.Color("236"), paused.GetBackground(), "background comes from status")
	assert.True(t, paused.GetBold())

	plain := p.Get("status")
	assert.Equal(t, lipgloss.Color("252"), plain.GetForeground())
	assert.False(t, plain.GetBold())
}

func TestPalette_UnknownSelector(t *testing.T) {
	p := NewPalette(nil)
	assert.Equal(t, lipgloss.NewStyle().Render("x"), p.Get("nothing here").Render("x"))
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#ff8800"), parseColor("#ff8800"))
	assert.Equal(t, lipgloss.Color("42"), parseColor("42"))
	assert.Equal(t, lipgloss.Color("9"), parseColor("bright red"))
	assert.Equal(t, lipgloss.NoColor{}, parseColor("chartreuse-ish"))
}

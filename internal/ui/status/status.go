package status

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/idursun/mandelbrot/internal/state"
	"github.com/idursun/mandelbrot/internal/ui/common"
	"github.com/idursun/mandelbrot/internal/view"
)

type expireMsg struct {
	id int
}

// Model is the one-line status bar under the canvas. The left side shows the
// latest message, the right side the render state and the window centre.
type Model struct {
	text    string
	id      int
	timeout time.Duration
	state   state.State
	window  view.Window
	width   int
	styles  styles
}

type styles struct {
	normal lipgloss.Style
	paused lipgloss.Style
	done   lipgloss.Style
}

func New(palette *common.Palette, timeout time.Duration) *Model {
	return &Model{
		timeout: timeout,
		window:  view.Default,
		styles: styles{
			normal: palette.Get("status"),
			paused: palette.Get("status paused"),
			done:   palette.Get("status done"),
		},
	}
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m *Model) SetFrame(s state.State, w view.Window) {
	m.state = s
	m.window = w
}

func (m *Model) Text() string {
	return m.text
}

// SetMessage shows text until it expires or is replaced. Hidden messages
// clear the line.
func (m *Model) SetMessage(text string, visible bool) tea.Cmd {
	m.id++
	if !visible {
		m.text = ""
		return nil
	}
	m.text = text
	if m.timeout <= 0 {
		return nil
	}
	id := m.id
	return tea.Tick(m.timeout, func(time.Time) tea.Msg {
		return expireMsg{id: id}
	})
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(expireMsg); ok && msg.id == m.id {
		m.text = ""
	}
	return nil
}

func (m *Model) View() string {
	style := m.styles.normal
	switch m.state {
	case state.Paused:
		style = m.styles.paused
	case state.Done:
		style = m.styles.done
	}

	cx, cy := m.window.Center()
	right := fmt.Sprintf(" %s  %.10g%+.10gi  2^%d ", m.state, cx, cy, m.window.ZoomExponent)
	left := " " + m.text

	if m.width <= 0 {
		return style.Render(left + right)
	}
	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		left = ansi.Truncate(left, max(m.width-ansi.StringWidth(right)-1, 0), "…")
		gap = m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	}
	line := left + strings.Repeat(" ", max(gap, 0)) + right
	return style.Render(ansi.Truncate(line, m.width, ""))
}

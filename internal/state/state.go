package state

import (
	"fmt"
	"image"

	"github.com/idursun/mandelbrot/internal/progressive"
	"github.com/idursun/mandelbrot/internal/view"
)

type State int

const (
	Ready State = iota
	Running
	Paused
	Done
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const (
	PausedText         = "Paused"
	PrecisionLimitText = "Precision limit reached"
)

// Message is a status line update emitted on a state transition.
type Message struct {
	Text    string
	Visible bool
}

func ZoomText(exponent int) string {
	return fmt.Sprintf("Zoom level %d", exponent)
}

// Machine coordinates the view transform and the progressive renderer. It is
// not safe for concurrent use; callers serialise access.
type Machine struct {
	transform *view.Transform
	renderer  *progressive.Renderer
	state     State
	atHome    bool
	complete  bool
	outbox    []Message
}

func New(t *view.Transform, r *progressive.Renderer) *Machine {
	return &Machine{transform: t, renderer: r, state: Ready}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Transform() *view.Transform {
	return m.transform
}

func (m *Machine) Renderer() *progressive.Renderer {
	return m.renderer
}

// Messages drains the messages emitted since the previous call.
func (m *Machine) Messages() []Message {
	out := m.outbox
	m.outbox = nil
	return out
}

func (m *Machine) set(s State) {
	text := ZoomText(m.transform.Window().ZoomExponent)
	if s == Paused {
		text = PausedText
	}
	m.setWithText(s, text)
}

func (m *Machine) setWithText(s State, text string) {
	m.state = s
	m.outbox = append(m.outbox, Message{Text: text, Visible: true})
}

func (m *Machine) restart() {
	m.atHome = false
	m.complete = false
	m.renderer.Reset()
	m.set(Ready)
}

// GoHome switches to the default window at once. The next seed finishes
// without drawing when the default window is already fully on screen.
func (m *Machine) GoHome() {
	if m.transform.Reset() {
		m.complete = false
	}
	m.atHome = m.complete
	m.renderer.Reset()
	m.set(Ready)
}

// ZoomIn zooms on a plane coordinate. At the precision limit the window is
// left alone and rendering is declared done.
func (m *Machine) ZoomIn(cr, ci float64) {
	changed, limited := m.transform.ZoomIn(cr, ci)
	if limited {
		m.setWithText(Done, PrecisionLimitText)
		return
	}
	if changed {
		m.restart()
	}
}

func (m *Machine) ZoomOut() {
	if m.transform.ZoomOut() {
		m.restart()
	}
}

func (m *Machine) Pan(fx, fy float64) {
	if m.transform.Pan(fx, fy) {
		m.restart()
	}
}

func (m *Machine) Goto(cx, cy, size float64) {
	if m.transform.Goto(cx, cy, size) {
		m.restart()
	}
}

// Pause suspends a render in progress, including one that has not been
// seeded yet.
func (m *Machine) Pause() {
	if m.state == Running || m.state == Ready {
		m.set(Paused)
	}
}

func (m *Machine) Resume() {
	if m.state == Paused {
		m.set(Running)
	}
}

// Invalidate discards progress after the canvas changed size. A paused
// machine stays paused and reseeds on resume.
func (m *Machine) Invalidate() {
	if m.state == Paused {
		m.atHome = false
		m.complete = false
		m.renderer.Reset()
		return
	}
	m.restart()
}

// Restore installs a persisted window and parks the machine in Paused with
// progress pending, so nothing is drawn until the next resume.
func (m *Machine) Restore(w view.Window) {
	m.transform.Restore(w)
	m.atHome = false
	m.complete = false
	m.renderer.Reset()
	m.set(Paused)
}

// Tick performs one unit of work on fb and reports whether any pixel may
// have changed.
func (m *Machine) Tick(fb *image.RGBA) bool {
	switch m.state {
	case Ready:
		return m.renderView(fb)
	case Running:
		if !m.renderer.Cursor().Seeded() {
			return m.renderView(fb)
		}
		if m.renderer.Step(fb, m.transform) {
			m.finish()
		}
		return true
	}
	return false
}

func (m *Machine) finish() {
	m.complete = true
	m.set(Done)
}

func (m *Machine) renderView(fb *image.RGBA) bool {
	if m.atHome {
		m.atHome = false
		m.set(Done)
		return false
	}
	m.complete = false
	m.set(Running)
	if m.renderer.Seed(fb, m.transform) || m.renderer.Step(fb, m.transform) {
		m.finish()
	}
	return true
}

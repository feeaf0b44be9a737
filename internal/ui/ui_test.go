package ui

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/mandelbrot/internal/config"
	"github.com/idursun/mandelbrot/internal/state"
	"github.com/idursun/mandelbrot/internal/ui/input"
	"github.com/idursun/mandelbrot/internal/view"
	"github.com/idursun/mandelbrot/internal/worker"
	"github.com/idursun/mandelbrot/test"
)

type fakeRenderer struct {
	calls  []string
	events chan worker.Event
	frame  *worker.Frame
	window view.Window
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		events: make(chan worker.Event, 4),
		frame: &worker.Frame{
			Image:  image.NewRGBA(image.Rect(0, 0, 1, 1)),
			Seq:    1,
			State:  state.Ready,
			Window: view.Default,
		},
		window: view.Default,
	}
}

func (f *fakeRenderer) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeRenderer) Events() <-chan worker.Event { return f.events }
func (f *fakeRenderer) Frame() *worker.Frame        { return f.frame }
func (f *fakeRenderer) ZoomIn(x, y int)             { f.record("zoomIn %d %d", x, y) }
func (f *fakeRenderer) ZoomOut()                    { f.record("zoomOut") }
func (f *fakeRenderer) GoHome()                     { f.record("goHome") }
func (f *fakeRenderer) Pause()                      { f.record("pause") }
func (f *fakeRenderer) Resume()                     { f.record("resume") }
func (f *fakeRenderer) Pan(fx, fy float64)          { f.record("pan %g %g", fx, fy) }
func (f *fakeRenderer) Goto(cx, cy, size float64)   { f.record("goto %g %g %g", cx, cy, size) }
func (f *fakeRenderer) Save() view.Window           { return f.window }
func (f *fakeRenderer) Resize(width, height int) {
	f.record("resize %d %d", width, height)
	f.frame = &worker.Frame{
		Image:  image.NewRGBA(image.Rect(0, 0, width, height)),
		Seq:    f.frame.Seq + 1,
		State:  state.Ready,
		Window: f.window,
	}
}

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: string(r), Code: r}
}

func newSizedModel(t *testing.T) (*Model, *fakeRenderer) {
	t.Helper()
	r := newFakeRenderer()
	m := NewUI(r, Options{SessionPath: filepath.Join(t.TempDir(), "state.toml")})
	require.Nil(t, m.Update(tea.WindowSizeMsg{Width: 80, Height: 18}))
	require.Equal(t, []string{"resize 32 32"}, r.calls)
	r.calls = nil
	return m, r
}

func TestResize_FirstSizeAppliesImmediately(t *testing.T) {
	m, r := newSizedModel(t)
	assert.Equal(t, 32, m.side)
	assert.Equal(t, uint64(2), m.frame.Seq)
	assert.Empty(t, r.calls)
}

func TestResize_LaterSizesAreDebounced(t *testing.T) {
	m, r := newSizedModel(t)

	first := m.Update(tea.WindowSizeMsg{Width: 200, Height: 100})
	require.NotNil(t, first)
	second := m.Update(tea.WindowSizeMsg{Width: 200, Height: 70})
	require.NotNil(t, second)
	assert.Empty(t, r.calls)

	m.Update(resizeMsg{tag: 1, side: 128})
	assert.Empty(t, r.calls, "superseded resize is dropped")

	m.Update(resizeMsg{tag: 2, side: 128})
	assert.Equal(t, []string{"resize 128 128"}, r.calls)

	assert.Nil(t, m.Update(tea.WindowSizeMsg{Width: 200, Height: 70}), "same side does nothing")
}

func TestKeys_DriveRenderer(t *testing.T) {
	m, r := newSizedModel(t)

	for _, msg := range []tea.KeyPressMsg{
		press('h'),
		{Code: tea.KeyEnter},
		press('o'),
		press('p'),
		press('s'),
		{Code: tea.KeyUp},
		{Code: tea.KeyLeft},
		{Code: tea.KeyRight, Mod: tea.ModShift},
		{Code: tea.KeyUp, Mod: tea.ModShift},
		{Code: tea.KeyDown, Mod: tea.ModShift},
	} {
		m.Update(msg)
	}

	assert.Equal(t, []string{
		"goHome",
		"zoomIn 16 16",
		"zoomOut",
		"pause",
		"resume",
		"resume",
		"pan -0.25 0",
		"pan 0.25 0",
		"pan 0 0.25",
		"pan 0 -0.25",
	}, r.calls)
}

func TestQuit(t *testing.T) {
	m, _ := newSizedModel(t)
	cmd := m.Update(press('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMouse_ClickZoomsOnPixel(t *testing.T) {
	m, r := newSizedModel(t)

	m.Update(tea.MouseClickMsg{X: 5, Y: 3, Button: tea.MouseLeft})
	m.Update(tea.MouseClickMsg{X: 40, Y: 3, Button: tea.MouseLeft})
	m.Update(tea.MouseClickMsg{X: 5, Y: 16, Button: tea.MouseLeft})
	m.Update(tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseRight})
	m.Update(tea.MouseWheelMsg{X: 2, Y: 2, Button: tea.MouseWheelUp})

	assert.Equal(t, []string{"zoomIn 5 6", "zoomOut", "zoomIn 2 4"}, r.calls)
}

func TestBlur_Pauses(t *testing.T) {
	m, r := newSizedModel(t)
	m.Update(tea.BlurMsg{})
	assert.Equal(t, []string{"pause"}, r.calls)
}

func TestEvents_UpdateStatusLine(t *testing.T) {
	m, r := newSizedModel(t)

	cmd := m.Update(eventMsg{Kind: worker.StatusEvent, Text: "Precision limit reached", Visible: true})
	require.NotNil(t, cmd)
	assert.Contains(t, test.Plain(m.View()), "Precision limit reached")

	r.events <- worker.Event{Kind: worker.StatusEvent, Text: "Paused", Visible: true}
	assert.Equal(t, eventMsg{Kind: worker.StatusEvent, Text: "Paused", Visible: true}, listen(r.events)())

	close(r.events)
	assert.Nil(t, listen(r.events)())
}

func TestGotoPrompt(t *testing.T) {
	m, r := newSizedModel(t)

	m.Update(press('g'))
	require.NotNil(t, m.prompt)
	assert.Contains(t, test.Plain(m.View()), "go to>")

	for _, c := range "seahorse" {
		m.Update(press(c))
	}
	assert.Empty(t, r.calls, "keys go to the prompt while it is open")

	cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	selected, ok := cmd().(input.SelectedMsg)
	require.True(t, ok)

	m.Update(selected)
	assert.Nil(t, m.prompt)
	assert.Equal(t, []string{"goto -0.75 0.1 0.1"}, r.calls)
	assert.Contains(t, test.Plain(m.View()), "Going to seahorse valley")
}

func TestGotoPrompt_Cancel(t *testing.T) {
	m, r := newSizedModel(t)
	m.Update(press('g'))
	cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEsc})
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Nil(t, m.prompt)
	assert.Empty(t, r.calls)
}

func TestSave_WritesSession(t *testing.T) {
	m, r := newSizedModel(t)
	r.window = view.Window{Left: -1, Top: 0.5, Width: 0.5, Height: 0.5, ZoomExponent: 3}

	cmd := m.Update(press('w'))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, savedMsg{}, msg)
	m.Update(msg)
	assert.Contains(t, test.Plain(m.View()), "View saved")

	got, ok, err := config.LoadSession(m.sessionPath)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, r.window, got)
}

func findMsg[T tea.Msg](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	switch msg := cmd().(type) {
	case T:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if found, ok := findMsg[T](c); ok {
				return found, true
			}
		}
	}
	return zero, false
}

func TestExport_StopsWithContext(t *testing.T) {
	m, _ := newSizedModel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.ctx = ctx
	m.exportDir = t.TempDir()

	exported, ok := findMsg[exportedMsg](m.Update(press('x')))
	require.True(t, ok)
	assert.ErrorIs(t, exported.err, context.Canceled)
	assert.NoFileExists(t, exported.path)

	m.Update(exported)
	assert.Contains(t, test.Plain(m.View()), "Export failed")
}

func TestHelp_Toggles(t *testing.T) {
	m, _ := newSizedModel(t)
	assert.NotContains(t, test.Plain(m.View()), "pan left")

	m.Update(press('?'))
	assert.Contains(t, test.Plain(m.View()), "pan left")

	m.Update(press('?'))
	assert.NotContains(t, test.Plain(m.View()), "pan left")
}

func TestView_LaysOutCanvasStatusAndHelp(t *testing.T) {
	m, _ := newSizedModel(t)
	lines := test.Lines(m.View())

	require.Len(t, lines, 18)
	assert.Equal(t, strings.Repeat("▀", 32), lines[0])
	assert.Contains(t, lines[16], "ready")
	assert.Contains(t, lines[17], "zoom in")
}

func TestWrapper_PollsFrames(t *testing.T) {
	r := newFakeRenderer()
	w := New(r, Options{}).(*wrapper)
	w.Init()
	w.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	w.View()

	_, cmd := w.Update(frameTickMsg{})
	assert.NotNil(t, cmd)
	assert.False(t, w.render, "no new frame")

	r.frame = &worker.Frame{Image: r.frame.Image, Seq: r.frame.Seq + 1, State: state.Done, Window: view.Default}
	w.Update(frameTickMsg{})
	assert.True(t, w.render)
	w.View()
	assert.Contains(t, test.Plain(w.cachedFrame), "done")
}

package ui

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/idursun/mandelbrot/internal/config"
	"github.com/idursun/mandelbrot/internal/export"
	"github.com/idursun/mandelbrot/internal/landmark"
	"github.com/idursun/mandelbrot/internal/logging"
	"github.com/idursun/mandelbrot/internal/ui/canvas"
	"github.com/idursun/mandelbrot/internal/ui/common"
	"github.com/idursun/mandelbrot/internal/ui/input"
	"github.com/idursun/mandelbrot/internal/ui/status"
	"github.com/idursun/mandelbrot/internal/view"
	"github.com/idursun/mandelbrot/internal/worker"
)

const (
	// status line and short help
	chromeRows = 2
	panStep    = 0.25
)

var resizeDebounce = 150 * time.Millisecond

// Renderer is the part of the render worker the UI drives.
type Renderer interface {
	Events() <-chan worker.Event
	Frame() *worker.Frame
	ZoomIn(x, y int)
	ZoomOut()
	GoHome()
	Pause()
	Resume()
	Pan(fx, fy float64)
	Goto(cx, cy, size float64)
	Resize(width, height int)
	Save() view.Window
}

type Options struct {
	// Context bounds background work started from the UI, such as exports.
	Context       context.Context
	Catalog       *landmark.Catalog
	Palette       *common.Palette
	FrameInterval time.Duration
	StatusTimeout time.Duration
	SessionPath   string
	ExportDir     string
}

type Model struct {
	ctx         context.Context
	renderer    Renderer
	catalog     *landmark.Catalog
	palette     *common.Palette
	keys        KeyMap
	help        help.Model
	status      *status.Model
	prompt      *input.Model
	frame       *worker.Frame
	width       int
	height      int
	side        int
	resizeTag   int
	showHelp    bool
	sessionPath string
	exportDir   string
	helpStyle   lipgloss.Style
}

type (
	eventMsg  worker.Event
	resizeMsg struct {
		tag  int
		side int
	}
	savedMsg struct {
		err error
	}
	exportedMsg struct {
		path string
		err  error
	}
)

func NewUI(r Renderer, opts Options) *Model {
	if opts.Catalog == nil {
		opts.Catalog = landmark.NewCatalog(config.Current.Landmarks)
	}
	if opts.Palette == nil {
		opts.Palette = common.NewPalette(config.Current.UI.Colors)
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return &Model{
		ctx:         opts.Context,
		renderer:    r,
		catalog:     opts.Catalog,
		palette:     opts.Palette,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		status:      status.New(opts.Palette, opts.StatusTimeout),
		frame:       r.Frame(),
		sessionPath: opts.SessionPath,
		exportDir:   opts.ExportDir,
		helpStyle:   opts.Palette.Get("help"),
	}
}

func (m *Model) Init() tea.Cmd {
	return listen(m.renderer.Events())
}

func listen(events <-chan worker.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

// pollFrame picks up a newly published frame and reports whether one arrived.
func (m *Model) pollFrame() bool {
	f := m.renderer.Frame()
	if f == nil || (m.frame != nil && f.Seq == m.frame.Seq) {
		return false
	}
	m.frame = f
	m.status.SetFrame(f.State, f.Window)
	return true
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if m.prompt != nil {
		if cmd, handled := m.handlePrompt(msg); handled {
			return cmd
		}
	}

	switch msg := msg.(type) {
	case eventMsg:
		return tea.Batch(m.handleEvent(worker.Event(msg)), listen(m.renderer.Events()))
	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height)
	case resizeMsg:
		if msg.tag == m.resizeTag {
			m.applySide(msg.side)
		}
		return nil
	case tea.BlurMsg:
		m.renderer.Pause()
		return nil
	case tea.MouseClickMsg:
		return m.handleClick(msg.Mouse())
	case tea.MouseWheelMsg:
		return m.handleWheel(msg.Mouse())
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case savedMsg:
		if msg.err != nil {
			return m.status.SetMessage(fmt.Sprintf("Save failed: %v", msg.err), true)
		}
		return m.status.SetMessage("View saved", true)
	case exportedMsg:
		if msg.err != nil {
			return m.status.SetMessage(fmt.Sprintf("Export failed: %v", msg.err), true)
		}
		return m.status.SetMessage("Exported "+msg.path, true)
	}
	return m.status.Update(msg)
}

func (m *Model) handleEvent(ev worker.Event) tea.Cmd {
	switch ev.Kind {
	case worker.StartedEvent, worker.StoppedEvent:
		logging.Logger().Debug("render worker lifecycle", "event", ev.Text)
		return nil
	}
	return m.status.SetMessage(ev.Text, ev.Visible)
}

func (m *Model) handleResize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	m.status.SetWidth(width)
	side := canvas.Side(width, height, chromeRows)
	if side == 0 || side == m.side {
		return nil
	}
	if m.side == 0 {
		m.applySide(side)
		return nil
	}
	m.resizeTag++
	tag := m.resizeTag
	return tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
		return resizeMsg{tag: tag, side: side}
	})
}

func (m *Model) applySide(side int) {
	m.side = side
	m.renderer.Resize(side, side)
	m.pollFrame()
}

// canvasPixel maps a terminal cell to a canvas pixel.
func (m *Model) canvasPixel(mouse tea.Mouse) (int, int, bool) {
	if m.side == 0 || m.showHelp || mouse.X < 0 || mouse.X >= m.side || mouse.Y < 0 || mouse.Y >= canvas.Rows(m.side) {
		return 0, 0, false
	}
	x, y := canvas.PixelAt(mouse.X, mouse.Y)
	return x, y, true
}

func (m *Model) handleClick(mouse tea.Mouse) tea.Cmd {
	x, y, ok := m.canvasPixel(mouse)
	if !ok {
		return nil
	}
	switch mouse.Button {
	case tea.MouseLeft:
		m.renderer.ZoomIn(x, y)
	case tea.MouseRight:
		m.renderer.ZoomOut()
	}
	return nil
}

func (m *Model) handleWheel(mouse tea.Mouse) tea.Cmd {
	x, y, ok := m.canvasPixel(mouse)
	if !ok {
		return nil
	}
	switch mouse.Button {
	case tea.MouseWheelUp:
		m.renderer.ZoomIn(x, y)
	case tea.MouseWheelDown:
		m.renderer.ZoomOut()
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil
	case key.Matches(msg, m.keys.Home):
		m.renderer.GoHome()
	case key.Matches(msg, m.keys.ZoomIn):
		if m.side > 0 {
			m.renderer.ZoomIn(m.side/2, m.side/2)
		}
	case key.Matches(msg, m.keys.ZoomOut):
		m.renderer.ZoomOut()
	case key.Matches(msg, m.keys.Pause):
		m.renderer.Pause()
	case key.Matches(msg, m.keys.Resume):
		m.renderer.Resume()
	case key.Matches(msg, m.keys.Left):
		m.renderer.Pan(-panStep, 0)
	case key.Matches(msg, m.keys.Right):
		m.renderer.Pan(panStep, 0)
	case key.Matches(msg, m.keys.Up):
		m.renderer.Pan(0, panStep)
	case key.Matches(msg, m.keys.Down):
		m.renderer.Pan(0, -panStep)
	case key.Matches(msg, m.keys.Goto):
		m.prompt = input.New(m.catalog, m.palette, input.Keys{
			Apply:    m.keys.Apply,
			Cancel:   m.keys.Cancel,
			Next:     m.keys.Next,
			Previous: m.keys.Previous,
		})
		return m.prompt.Init()
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Export):
		return m.export()
	}
	return nil
}

func (m *Model) handlePrompt(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case input.SelectedMsg:
		m.prompt = nil
		l := msg.Landmark
		m.renderer.Goto(l.X, l.Y, l.Size)
		return m.status.SetMessage("Going to "+l.Name, true), true
	case input.CancelledMsg:
		m.prompt = nil
		return nil, true
	case tea.KeyPressMsg:
		return m.prompt.Update(msg), true
	}
	return nil, false
}

func (m *Model) save() tea.Cmd {
	if m.sessionPath == "" {
		return nil
	}
	path, w := m.sessionPath, m.renderer.Save()
	return func() tea.Msg {
		return savedMsg{err: config.SaveSession(path, w)}
	}
}

func (m *Model) export() tea.Cmd {
	path := filepath.Join(m.exportDir, fmt.Sprintf("mandelbrot-%s.png", time.Now().Format("20060102-150405")))
	opts := export.Options{Size: export.DefaultSize, Window: m.renderer.Save()}
	ctx := m.ctx
	return tea.Batch(
		m.status.SetMessage("Exporting "+path, true),
		func() tea.Msg {
			return exportedMsg{path: path, err: export.ToFile(ctx, path, opts)}
		},
	)
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	buf := uv.NewScreenBuffer(m.width, m.height)
	rows := canvas.Rows(m.side)

	if m.showHelp {
		m.help.ShowAll = true
		uv.NewStyledString(m.help.View(m.keys)).Draw(buf, image.Rect(0, 0, m.width, max(rows, 1)))
	} else if m.frame != nil {
		canvas.Draw(buf, m.frame.Image)
	}

	if m.prompt != nil {
		content := m.prompt.View()
		h := lipgloss.Height(content)
		top := max(rows-h, 0)
		uv.NewStyledString(content).Draw(buf, image.Rect(0, top, m.width, top+h))
	}

	uv.NewStyledString(m.status.View()).Draw(buf, image.Rect(0, rows, m.width, rows+1))
	m.help.ShowAll = false
	shortHelp := m.helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	uv.NewStyledString(shortHelp).Draw(buf, image.Rect(0, rows+1, m.width, rows+2))

	return strings.ReplaceAll(buf.Render(), "\r", "")
}

var _ tea.Model = (*wrapper)(nil)

type (
	frameTickMsg struct{}
	wrapper      struct {
		ui          *Model
		interval    time.Duration
		render      bool
		cachedFrame string
	}
)

func (w *wrapper) tick() tea.Cmd {
	return tea.Tick(w.interval, func(time.Time) tea.Msg {
		return frameTickMsg{}
	})
}

func (w *wrapper) Init() tea.Cmd {
	w.render = true
	return tea.Batch(w.ui.Init(), w.tick())
}

func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(frameTickMsg); ok {
		if w.ui.pollFrame() {
			w.render = true
		}
		return w, w.tick()
	}
	cmd := w.ui.Update(msg)
	w.render = true
	return w, cmd
}

func (w *wrapper) View() tea.View {
	if w.render {
		w.cachedFrame = w.ui.View()
		w.render = false
	}
	v := tea.NewView(w.cachedFrame)
	v.AltScreen = true
	v.WindowTitle = "mandelbrot"
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	return v
}

func New(r Renderer, opts Options) tea.Model {
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = config.GetFrameInterval(config.Current)
	}
	return &wrapper{ui: NewUI(r, opts), interval: interval}
}

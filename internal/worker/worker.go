// Package worker runs the progressive renderer on a background goroutine.
//
// The worker owns the frame buffer. Every command and every tick takes the
// same mutex for its whole read-modify-write, so a command that changes the
// view always lands between two ticks and resets the cursor before the next
// one runs. The consumer never touches the frame buffer: it reads immutable
// snapshots through Frame and receives status updates through Events.
package worker

import (
	"context"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"

	xdraw "golang.org/x/image/draw"

	"github.com/idursun/mandelbrot/internal/logging"
	"github.com/idursun/mandelbrot/internal/palette"
	"github.com/idursun/mandelbrot/internal/progressive"
	"github.com/idursun/mandelbrot/internal/state"
	"github.com/idursun/mandelbrot/internal/view"
)

const DefaultEventBuffer = 8

type EventKind int

const (
	StatusEvent EventKind = iota
	StartedEvent
	StoppedEvent
)

type Event struct {
	Kind    EventKind
	Text    string
	Visible bool
}

// Frame is a published copy of the frame buffer. It is never mutated after
// publication.
type Frame struct {
	Image  *image.RGBA
	Seq    uint64
	State  state.State
	Window view.Window
}

type Options struct {
	Width       int
	Height      int
	Budget      int
	EventBuffer int
	Palette     *palette.Table
	Bounds      view.Window
}

type Worker struct {
	mu      sync.Mutex
	machine *state.Machine
	fb      *image.RGBA
	seq     uint64

	frame   atomic.Pointer[Frame]
	events  chan Event
	wake    chan struct{}
	enabled atomic.Bool
	started atomic.Bool
	done    chan struct{}
}

func New(opts Options) *Worker {
	bounds := opts.Bounds
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = view.Default
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = DefaultEventBuffer
	}
	w := &Worker{
		machine: state.New(view.NewTransform(bounds), progressive.New(opts.Palette, opts.Budget)),
		fb:      image.NewRGBA(image.Rect(0, 0, max(opts.Width, 1), max(opts.Height, 1))),
		events:  make(chan Event, opts.EventBuffer),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.enabled.Store(true)
	w.mu.Lock()
	w.publishLocked()
	w.mu.Unlock()
	return w
}

// Events delivers status messages and lifecycle acknowledgements. When the
// consumer falls behind, the oldest undelivered event is dropped. The channel
// is closed once the worker has exited.
func (w *Worker) Events() <-chan Event {
	return w.events
}

// Frame returns the most recently published snapshot.
func (w *Worker) Frame() *Frame {
	return w.frame.Load()
}

// Start launches the render loop. Only the first call has an effect.
func (w *Worker) Start(ctx context.Context) {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	go w.run(ctx)
}

// Stop asks the loop to exit after the current tick.
func (w *Worker) Stop() {
	w.enabled.Store(false)
	w.signal()
}

// Join blocks until the loop has exited. It may be called any number of
// times and returns immediately when the worker was never started.
func (w *Worker) Join() {
	if !w.started.Load() {
		return
	}
	<-w.done
}

func (w *Worker) run(ctx context.Context) {
	log := logging.Logger()
	defer close(w.done)
	defer close(w.events)

	log.Info("render worker started")
	w.deliver(Event{Kind: StartedEvent, Text: "running"})
	for w.enabled.Load() && ctx.Err() == nil {
		if w.tick() {
			continue
		}
		select {
		case <-w.wake:
		case <-ctx.Done():
		}
	}
	log.Info("render worker stopped")
	w.deliver(Event{Kind: StoppedEvent, Text: "stopped"})
}

// tick reports whether there is more rendering to do.
func (w *Worker) tick() bool {
	w.mu.Lock()
	changed := w.machine.Tick(w.fb)
	current := w.machine.State()
	messages := w.machine.Messages()
	if changed || len(messages) > 0 {
		w.publishLocked()
	}
	w.mu.Unlock()

	for _, m := range messages {
		logging.Logger().Debug("render state changed", "state", current, "message", m.Text)
		w.deliver(Event{Kind: StatusEvent, Text: m.Text, Visible: m.Visible})
	}
	return current == state.Ready || current == state.Running
}

func (w *Worker) publishLocked() {
	snapshot := image.NewRGBA(w.fb.Bounds())
	copy(snapshot.Pix, w.fb.Pix)
	w.seq++
	w.frame.Store(&Frame{
		Image:  snapshot,
		Seq:    w.seq,
		State:  w.machine.State(),
		Window: w.machine.Transform().Window(),
	})
}

// deliver is only called from the loop goroutine, which is the sole sender.
func (w *Worker) deliver(ev Event) {
	for {
		select {
		case w.events <- ev:
			return
		default:
		}
		select {
		case <-w.events:
		default:
		}
	}
}

func (w *Worker) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *Worker) command(fn func(m *state.Machine)) {
	w.mu.Lock()
	fn(w.machine)
	w.mu.Unlock()
	w.signal()
}

// ZoomIn zooms on canvas pixel (x, y). Coordinates outside the canvas are
// ignored.
func (w *Worker) ZoomIn(x, y int) {
	w.mu.Lock()
	b := w.fb.Bounds()
	if x < 0 || x >= b.Dx() || y < 0 || y >= b.Dy() {
		w.mu.Unlock()
		return
	}
	cr, ci := w.machine.Transform().Sample(x, y, b.Dx(), b.Dy())
	w.machine.ZoomIn(cr, ci)
	w.mu.Unlock()
	w.signal()
}

func (w *Worker) ZoomOut() {
	w.command((*state.Machine).ZoomOut)
}

func (w *Worker) GoHome() {
	w.command((*state.Machine).GoHome)
}

func (w *Worker) Pause() {
	w.command((*state.Machine).Pause)
}

func (w *Worker) Resume() {
	w.command((*state.Machine).Resume)
}

func (w *Worker) Pan(fx, fy float64) {
	w.command(func(m *state.Machine) { m.Pan(fx, fy) })
}

func (w *Worker) Goto(cx, cy, size float64) {
	w.command(func(m *state.Machine) { m.Goto(cx, cy, size) })
}

// Resize rescales the frame buffer to width×height and restarts rendering.
func (w *Worker) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.mu.Lock()
	if w.fb.Bounds().Dx() == width && w.fb.Bounds().Dy() == height {
		w.mu.Unlock()
		return
	}
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), w.fb, w.fb.Bounds(), draw.Src, nil)
	w.fb = scaled
	w.machine.Invalidate()
	w.publishLocked()
	w.mu.Unlock()
	logging.Logger().Debug("canvas resized", "width", width, "height", height)
	w.signal()
}

func (w *Worker) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fb.Bounds().Dx(), w.fb.Bounds().Dy()
}

func (w *Worker) State() state.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.machine.State()
}

// Save returns the window to persist.
func (w *Worker) Save() view.Window {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.machine.Transform().Window()
}

// Restore installs a persisted window and pauses until the next Resume.
func (w *Worker) Restore(win view.Window) {
	w.command(func(m *state.Machine) { m.Restore(win) })
}

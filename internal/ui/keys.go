package ui

import "charm.land/bubbles/v2/key"

type KeyMap struct {
	Home     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Pause    key.Binding
	Resume   key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Goto     key.Binding
	Export   key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Apply    key.Binding
	Cancel   key.Binding
	Next     key.Binding
	Previous key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		ZoomIn:  key.NewBinding(key.WithKeys("enter", "+"), key.WithHelp("enter/click", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("o", "-"), key.WithHelp("o", "zoom out")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume:  key.NewBinding(key.WithKeys("s", "up", "down"), key.WithHelp("s", "resume")),
		Left:    key.NewBinding(key.WithKeys("left", "shift+left"), key.WithHelp("←", "pan left")),
		Right:   key.NewBinding(key.WithKeys("right", "shift+right"), key.WithHelp("→", "pan right")),
		Up:      key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "pan up")),
		Down:    key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "pan down")),
		Goto:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to landmark")),
		Export:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export png")),
		Save:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save view")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Apply:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Next:     key.NewBinding(key.WithKeys("down", "tab", "ctrl+n"), key.WithHelp("↓", "next")),
		Previous: key.NewBinding(key.WithKeys("up", "shift+tab", "ctrl+p"), key.WithHelp("↑", "previous")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Home, k.Pause, k.Resume, k.Goto, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.Home, k.Goto},
		{k.Left, k.Right, k.Up, k.Down},
		{k.Pause, k.Resume, k.Save, k.Export},
		{k.Help, k.Quit},
	}
}

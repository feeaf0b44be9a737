package input

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sahilm/fuzzy"

	"github.com/idursun/mandelbrot/internal/landmark"
	"github.com/idursun/mandelbrot/internal/ui/common"
)

const maxSuggestions = 6

type SelectedMsg struct {
	Landmark landmark.Landmark
}

type CancelledMsg struct{}

type Keys struct {
	Apply    key.Binding
	Cancel   key.Binding
	Next     key.Binding
	Previous key.Binding
}

// Model prompts for a landmark name or explicit "x y size" coordinates and
// suggests catalogue entries as the user types.
type Model struct {
	input   textinput.Model
	catalog *landmark.Catalog
	keys    Keys
	matches fuzzy.Matches
	cursor  int
	styles  styles
}

type styles struct {
	text     lipgloss.Style
	match    lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
}

func New(catalog *landmark.Catalog, palette *common.Palette, keys Keys) *Model {
	styles := styles{
		text:     palette.Get("prompt"),
		match:    palette.Get("prompt match"),
		selected: palette.Get("prompt selected"),
		dim:      palette.Get("help"),
	}
	ti := textinput.New()
	ti.SetWidth(40)
	ti.Prompt = "go to> "
	ti.Placeholder = "landmark or x y size"
	is := ti.Styles()
	is.Focused.Prompt = styles.text
	is.Blurred.Prompt = styles.text
	ti.SetStyles(is)

	m := &Model{
		input:   ti,
		catalog: catalog,
		keys:    keys,
		styles:  styles,
	}
	m.search()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Value() string {
	return m.input.Value()
}

func (m *Model) Matches() fuzzy.Matches {
	return m.matches
}

func (m *Model) Selected() int {
	return m.cursor
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		return newCmd(CancelledMsg{})
	case key.Matches(keyMsg, m.keys.Apply):
		return m.selectCurrent()
	case key.Matches(keyMsg, m.keys.Next):
		m.move(1)
		return nil
	case key.Matches(keyMsg, m.keys.Previous):
		m.move(-1)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.search()
	return cmd
}

func (m *Model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.matches)) % len(m.matches)
}

func (m *Model) search() {
	m.cursor = 0
	m.matches = m.catalog.Search(m.input.Value())
}

func (m *Model) selectCurrent() tea.Cmd {
	value := m.input.Value()
	if l, ok := landmark.ParseCoordinates(value); ok {
		return newCmd(SelectedMsg{Landmark: l})
	}
	if m.cursor < len(m.matches) {
		return newCmd(SelectedMsg{Landmark: m.catalog.At(m.matches[m.cursor].Index)})
	}
	if l, ok := m.catalog.Resolve(value); ok {
		return newCmd(SelectedMsg{Landmark: l})
	}
	return nil
}

func (m *Model) View() string {
	rows := []string{m.input.View()}
	for i, match := range m.matches {
		if i == maxSuggestions {
			rows = append(rows, m.styles.dim.Render("  …"))
			break
		}
		rows = append(rows, m.renderMatch(match, i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderMatch(match fuzzy.Match, selected bool) string {
	matched := make(map[int]struct{}, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = struct{}{}
	}
	var b strings.Builder
	for i, r := range match.Str {
		if _, ok := matched[i]; ok {
			b.WriteString(m.styles.match.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	name := b.String()
	if description := m.catalog.At(match.Index).Description; description != "" {
		name += m.styles.dim.Render("  " + description)
	}
	if selected {
		return m.styles.selected.Render("> " + name)
	}
	return "  " + name
}

func newCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

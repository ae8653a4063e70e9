package ui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/rbgview/pkg/graphviewer"
	"github.com/recera/rbgview/pkg/rbg"
	"github.com/recera/rbgview/pkg/renderer/term"
)

// Lines reserved around the drawing grid
const (
	headerLines = 1
	footerLines = 2
)

// ReloadErrorText is shown when a changed file no longer parses
const ReloadErrorText = "Error updating preview: Invalid RBG file format"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Reset   key.Binding
	Fit     key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	Reset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset"),
	),
	Fit: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "move left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "move right"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.Reset, k.Fit},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Help, k.Quit},
	}
}

// DocumentMsg delivers a reloaded document
type DocumentMsg struct{ Doc *rbg.Document }

// ReloadErrorMsg reports a reload that failed to parse. The current
// document stays on screen.
type ReloadErrorMsg struct{ Err error }

// Model is the terminal viewer
type Model struct {
	// Window dimensions
	width  int
	height int

	viewer  *graphviewer.Viewer
	surface *term.Surface
	cellW   float64
	cellH   float64

	keys     KeyMap
	help     help.Model
	showHelp bool

	title     string
	status    string
	statusErr bool
	renderErr error
	quitting  bool
}

// NewModel creates a viewer model for the document loaded from path
func NewModel(path string, doc *rbg.Document, opts *graphviewer.Options, cellW, cellH float64) Model {
	if cellW <= 0 {
		cellW = term.DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = term.DefaultCellHeight
	}
	return Model{
		viewer:  graphviewer.New(doc, opts),
		surface: term.NewWithCell(0, 0, cellW, cellH),
		cellW:   cellW,
		cellH:   cellH,
		keys:    DefaultKeyMap,
		help:    help.New(),
		title:   filepath.Base(path),
	}
}

// Viewer exposes the underlying viewer
func (m Model) Viewer() *graphviewer.Viewer { return m.viewer }

// Status returns the status line text and whether it is an error
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

// RenderError returns the error of the last frame, if it failed
func (m Model) RenderError() error { return m.renderErr }

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		rows := max(msg.Height-headerLines-footerLines, 0)
		m.surface.Resize(msg.Width, rows)
		w, h := m.surface.Size()
		m.viewer.SetSize(w, h)
		m.redraw()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.handleMouse(msg) {
			m.redraw()
		}
		return m, nil

	case DocumentMsg:
		m.viewer.SetDocument(msg.Doc)
		m.status = "Reloaded " + m.title
		m.statusErr = false
		m.redraw()
		return m, nil

	case ReloadErrorMsg:
		m.status = ReloadErrorText
		m.statusErr = true
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var changed bool
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.ZoomIn):
		changed = m.viewer.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		changed = m.viewer.ZoomOut()
	case key.Matches(msg, m.keys.Reset):
		changed = m.viewer.Reset()
	case key.Matches(msg, m.keys.Fit):
		changed = m.viewer.Fit(m.cellW)
	case key.Matches(msg, m.keys.Up):
		changed = m.nudge(0, -m.cellH)
	case key.Matches(msg, m.keys.Down):
		changed = m.nudge(0, m.cellH)
	case key.Matches(msg, m.keys.Left):
		changed = m.nudge(-m.cellW, 0)
	case key.Matches(msg, m.keys.Right):
		changed = m.nudge(m.cellW, 0)
	}
	if changed {
		m.redraw()
	}
	return m, nil
}

// nudge moves the graph by (dx, dy) surface pixels
func (m Model) nudge(dx, dy float64) bool {
	vp := m.viewer.Viewport()
	vp.OffsetX += dx
	vp.OffsetY += dy
	return m.viewer.SetViewport(vp)
}

// handleMouse maps mouse input in the grid area onto pointer events. Cell
// positions are taken at the cell center.
func (m Model) handleMouse(msg tea.MouseMsg) bool {
	x := (float64(msg.X) + 0.5) * m.cellW
	y := (float64(msg.Y-headerLines) + 0.5) * m.cellH

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.viewer.Handle(graphviewer.WheelEvent{DeltaY: -1})
	case msg.Button == tea.MouseButtonWheelDown:
		return m.viewer.Handle(graphviewer.WheelEvent{DeltaY: 1})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return m.viewer.Handle(graphviewer.PointerDownEvent{X: x, Y: y})
	case msg.Action == tea.MouseActionMotion:
		return m.viewer.Handle(graphviewer.PointerMoveEvent{X: x, Y: y})
	case msg.Action == tea.MouseActionRelease:
		return m.viewer.Handle(graphviewer.PointerUpEvent{})
	}
	return false
}

func (m *Model) redraw() {
	m.renderErr = m.viewer.Draw(m.surface)
}

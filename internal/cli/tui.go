package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/rowgrid/pkg/editor"
	"github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/grid"
	pkgio "github.com/matzehuels/rowgrid/pkg/io"
	"github.com/matzehuels/rowgrid/pkg/render/term"
	"github.com/matzehuels/rowgrid/pkg/view"
	"github.com/matzehuels/rowgrid/pkg/watcher"
)

// headerLines is the number of terminal lines above the layout.
const headerLines = 1

var (
	styleDirty     = lipgloss.NewStyle().Foreground(colorYellow)
	styleStatusErr = lipgloss.NewStyle().Foreground(colorRed)
	styleStatusOK  = lipgloss.NewStyle().Foreground(colorGreen)
	styleGesture   = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Key Bindings
// =============================================================================

type editKeys struct {
	Save      key.Binding
	Copy      key.Binding
	Normalize key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newEditKeys() editKeys {
	return editKeys{
		Save:      key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy json")),
		Normalize: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "fix rows")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k editKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Copy, k.Normalize, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Copy, k.Normalize},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// Messages
// =============================================================================

// reloadMsg carries a change of the file on disk.
type reloadMsg watcher.Event

func waitForReload(w *watcher.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg { return reloadMsg(<-w.Events()) }
}

// =============================================================================
// editModel - Interactive layout editor
// =============================================================================

// editModel is the bubbletea model behind `rowgrid edit`.
type editModel struct {
	ed       *editor.Editor
	doc      *pkgio.Document
	path     string
	gridOpts []grid.Option
	watch    *watcher.Watcher
	logger   *log.Logger
	copy     func(string) error

	keys editKeys
	help help.Model

	width       int
	status      string
	statusStyle lipgloss.Style
	confirmQuit bool
	pending     *pkgio.Document
}

func newEditModel(ed *editor.Editor, doc *pkgio.Document, path string, w *watcher.Watcher, logger *log.Logger, gridOpts ...grid.Option) *editModel {
	return &editModel{
		ed:          ed,
		doc:         doc,
		path:        path,
		gridOpts:    gridOpts,
		watch:       w,
		logger:      logger,
		copy:        clipboard.WriteAll,
		keys:        newEditKeys(),
		help:        help.New(),
		statusStyle: StyleDim,
		width:       int(ed.ViewOptions().Width),
	}
}

func (m *editModel) Init() tea.Cmd {
	return waitForReload(m.watch)
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.ed.SetViewOptions(view.TerminalOptions(msg.Width))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case reloadMsg:
		m.handleReload(watcher.Event(msg))
		return m, waitForReload(m.watch)
	}
	return m, nil
}

func (m *editModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	quit := key.Matches(msg, m.keys.Quit)
	if !quit {
		m.confirmQuit = false
	}

	switch {
	case quit:
		if m.ed.Dirty() && !m.confirmQuit {
			m.confirmQuit = true
			m.setStatus(styleDirty, "Unsaved changes: press q again to quit without saving")
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		if err := m.save(); err != nil {
			m.setStatus(styleStatusErr, "Save failed: %v", errors.UserMessage(err))
		} else {
			m.setStatus(styleStatusOK, "Saved %s", m.path)
		}

	case key.Matches(msg, m.keys.Copy):
		if err := m.copyJSON(); err != nil {
			m.setStatus(styleStatusErr, "Copy failed: %v", err)
		} else {
			m.setStatus(styleStatusOK, "Copied layout JSON to clipboard")
		}

	case key.Matches(msg, m.keys.Normalize):
		n, err := m.ed.Normalize()
		switch {
		case err != nil:
			m.setStatus(styleStatusErr, "%s", errors.UserMessage(err))
		case n == 0:
			m.setStatus(StyleDim, "All rows already sum to %d", m.ed.Layout().Base())
		default:
			m.setStatus(styleStatusOK, "Rescaled %d %s", n, plural(n, "row", "rows"))
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// pointerEvent converts a terminal mouse event to editor coordinates. Cells
// are hit-tested at their centers.
func pointerEvent(msg tea.MouseMsg, top int) (editor.PointerEvent, bool) {
	ev := editor.PointerEvent{
		X: float64(msg.X) + 0.5,
		Y: float64(msg.Y-top) + 0.5,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return ev, false
		}
		ev.Kind, ev.Primary = editor.PointerDown, true
	case tea.MouseActionMotion:
		ev.Kind, ev.Primary = editor.PointerMove, msg.Button == tea.MouseButtonLeft
	case tea.MouseActionRelease:
		ev.Kind = editor.PointerUp
	default:
		return ev, false
	}
	return ev, true
}

func (m *editModel) handleMouse(msg tea.MouseMsg) {
	ev, ok := pointerEvent(msg, headerLines)
	if !ok {
		return
	}
	if _, err := m.ed.Pointer(ev); err != nil {
		// Rejected resize steps are routine while dragging a splitter hard
		// against its limit.
		if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
			m.setStatus(styleStatusErr, "%s", errors.UserMessage(err))
		}
	}
	if ev.Kind == editor.PointerUp && m.pending != nil {
		doc := m.pending
		m.pending = nil
		m.applyReload(doc)
	}
}

func (m *editModel) handleReload(ev watcher.Event) {
	if ev.Err != nil {
		m.setStatus(styleStatusErr, "Reload failed: %s", errors.UserMessage(ev.Err))
		return
	}
	if m.ed.Active() != editor.GestureNone {
		m.pending = ev.Document
		return
	}
	m.applyReload(ev.Document)
}

func (m *editModel) applyReload(doc *pkgio.Document) {
	l, err := doc.Layout(m.gridOpts...)
	if err != nil {
		m.setStatus(styleStatusErr, "Reload failed: %s", errors.UserMessage(err))
		return
	}
	discarded := m.ed.Dirty()
	if err := m.ed.Replace(l); err != nil {
		m.pending = doc
		return
	}
	m.doc = doc
	if discarded {
		m.setStatus(styleDirty, "Reloaded %s from disk, unsaved edits discarded", m.path)
	} else {
		m.setStatus(styleStatusOK, "Reloaded %s from disk", m.path)
	}
	m.logger.Info("reloaded", "path", m.path)
}

// save writes the current layout and registers the written bytes with the
// watcher so the write does not come back as a reload.
func (m *editModel) save() error {
	m.doc.SetLayout(m.ed.Layout())
	if m.watch != nil {
		f, err := pkgio.FormatFromPath(m.path)
		if err != nil {
			return err
		}
		data, err := pkgio.Encode(m.doc, f)
		if err != nil {
			return err
		}
		m.watch.Ignore(data)
	}
	if err := pkgio.Export(m.doc, m.path); err != nil {
		return err
	}
	m.ed.MarkSaved()
	m.logger.Info("saved", "path", m.path)
	return nil
}

func (m *editModel) copyJSON() error {
	doc := m.doc.Clone()
	doc.SetLayout(m.ed.Layout())
	data, err := pkgio.Encode(doc, pkgio.FormatJSON)
	if err != nil {
		return err
	}
	return m.copy(string(data))
}

func (m *editModel) setStatus(style lipgloss.Style, format string, args ...any) {
	m.statusStyle = style
	m.status = fmt.Sprintf(format, args...)
}

func (m *editModel) View() string {
	snap := m.ed.Snapshot()

	var b strings.Builder
	b.WriteString(StyleTitle.Render(appName))
	b.WriteString(" ")
	b.WriteString(StyleValue.Render(m.path))
	if snap.Dirty {
		b.WriteString(styleDirty.Render(" ●"))
	}
	if snap.Gesture != editor.GestureNone {
		b.WriteString(styleGesture.Render(" [" + snap.Gesture.String() + "]"))
	}
	b.WriteString("\n")

	b.WriteString(term.Render(snap.View, term.Options{ActiveSplitter: snap.Splitter, Target: snap.Target}))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

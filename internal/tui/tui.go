package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/Zuo-Peng/cuedit/internal/cue"
	"github.com/Zuo-Peng/cuedit/internal/timestamp"
)

type focus int

const (
	focusTable focus = iota
	focusTime
	focusText
)

// Options configures an editing session.
type Options struct {
	// Name is shown in the title; empty means an unnamed scratch document.
	Name string
	// Save persists the rows. Nil disables saving.
	Save func(rows []cue.Row) error
}

// model is the display surface for a cue.Store. It renders what the store
// reports through the cue.Observer methods and forwards gestures to it.
type model struct {
	store *cue.Store
	opts  Options

	rows     []cue.Row
	selected int

	focus         focus
	timeInput     textinput.Model
	textInput     textinput.Model
	fieldsEnabled bool

	listOffset  int
	width       int
	height      int
	ready       bool
	quitting    bool
	dirty       bool
	confirmQuit bool
	status      string
	copyFn      func(string) error
}

// newInput returns an unlimited single-line input so that stored values are
// never truncated when the store fills the field.
func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.TextStyle = styleInput
	ti.CharLimit = 0
	return ti
}

func newModel(store *cue.Store, opts Options) *model {
	m := &model{
		store:     store,
		opts:      opts,
		selected:  cue.NoSelection,
		timeInput: newInput("0.000"),
		textInput: newInput("text"),
		copyFn:    clipboard.WriteAll,
	}
	store.SetObserver(m)
	return m
}

// Run starts the editor on store and blocks until the user quits.
func Run(store *cue.Store, opts Options) error {
	m := newModel(store, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// RowsChanged implements cue.Observer.
func (m *model) RowsChanged(rows []cue.Row, selected int) {
	m.rows = rows
	m.selected = selected
	m.adjustListScroll(m.panelHeight())
}

// FieldsChanged implements cue.Observer.
func (m *model) FieldsChanged(f cue.Fields) {
	m.fieldsEnabled = f.Enabled
	m.timeInput.SetValue(f.Time)
	m.textInput.SetValue(f.Text)
	if !f.Enabled {
		m.setFocus(focusTable)
	}
}

func (m *model) setFocus(f focus) {
	m.focus = f
	m.timeInput.Blur()
	m.textInput.Blur()
	switch f {
	case focusTime:
		m.timeInput.Focus()
		m.timeInput.CursorEnd()
	case focusText:
		m.textInput.Focus()
		m.textInput.CursorEnd()
	}
}

func (m *model) Init() tea.Cmd {
	log.Printf("cuedit: editing %q with %d rows", m.opts.Name, m.store.Len())
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		w := max(m.width-12, 10)
		m.timeInput.Width = w
		m.textInput.Width = w
		m.adjustListScroll(m.panelHeight())
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQ) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, keys.Save) {
			m.save()
			return m, nil
		}
		if m.focus == focusTable {
			return m.updateTable(msg)
		}
		return m.updateField(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	return m, nil
}

func (m *model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, keys.Quit) {
		m.confirmQuit = false
	}

	switch {
	case key.Matches(msg, keys.Quit):
		if m.dirty && m.opts.Save != nil && !m.confirmQuit {
			m.confirmQuit = true
			m.status = "unsaved changes: C-s to save, q again to quit"
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		switch {
		case m.selected == cue.NoSelection && len(m.rows) > 0:
			m.store.Select(len(m.rows) - 1)
		case m.selected > 0:
			m.store.Select(m.selected - 1)
		}

	case key.Matches(msg, keys.Down):
		switch {
		case m.selected == cue.NoSelection && len(m.rows) > 0:
			m.store.Select(0)
		case m.selected != cue.NoSelection && m.selected < len(m.rows)-1:
			m.store.Select(m.selected + 1)
		}

	case key.Matches(msg, keys.Add):
		m.store.AddRow()
		m.markDirty()
		log.Printf("add row: now %d rows, selected %d", len(m.rows), m.selected)

	case key.Matches(msg, keys.Remove):
		if m.selected != cue.NoSelection {
			log.Printf("remove row %d", m.selected)
			m.store.DeleteRow()
			m.markDirty()
		}

	case key.Matches(msg, keys.Deselect):
		m.store.Deselect()

	case key.Matches(msg, keys.EditTime):
		if m.fieldsEnabled {
			m.setFocus(focusTime)
		}

	case key.Matches(msg, keys.EditText):
		if m.fieldsEnabled {
			m.setFocus(focusText)
		}

	case key.Matches(msg, keys.Copy):
		m.copySelected()
	}

	return m, nil
}

func (m *model) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		m.submit()
		return m, nil

	case key.Matches(msg, keys.Cancel):
		// drop uncommitted edits
		m.FieldsChanged(m.store.Fields())
		m.setFocus(focusTable)
		return m, nil

	case key.Matches(msg, keys.Switch):
		if m.focus == focusTime {
			m.setFocus(focusText)
		} else {
			m.setFocus(focusTime)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusTime {
		m.timeInput, cmd = m.timeInput.Update(msg)
	} else {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

// submit commits the focused field. A rejected timestamp keeps the field
// focused with the typed value and leaves the row untouched.
func (m *model) submit() {
	switch m.focus {
	case focusTime:
		input := m.timeInput.Value()
		if !m.store.SubmitTime(input) {
			log.Printf("ignored invalid timestamp %q", input)
			return
		}
	case focusText:
		m.store.SubmitText(m.textInput.Value())
	}
	m.markDirty()
	m.setFocus(focusTable)
}

func (m *model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || m.focus != focusTable {
		return m, nil
	}

	inTable, idx := m.hitTest(msg.X, msg.Y)
	if !inTable {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if m.listOffset > 0 {
			m.listOffset--
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if m.listOffset < max(len(m.rows)-m.panelHeight(), 0) {
			m.listOffset++
		}
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if idx >= 0 && idx < len(m.rows) {
			m.store.Select(idx)
		}
	}
	return m, nil
}

func (m *model) markDirty() {
	m.dirty = true
	m.status = ""
}

func (m *model) save() {
	if m.opts.Save == nil {
		m.status = "scratch document: nothing to save (use 'cuedit edit <name>')"
		return
	}
	if err := m.opts.Save(m.store.Rows()); err != nil {
		log.Printf("save %q: %v", m.opts.Name, err)
		m.status = "save failed: " + err.Error()
		return
	}
	m.dirty = false
	m.confirmQuit = false
	m.status = fmt.Sprintf("saved %d cues", len(m.rows))
}

func (m *model) copySelected() {
	if m.selected == cue.NoSelection {
		return
	}
	r := m.rows[m.selected]
	line := timestamp.Format(r.Time) + "\t" + r.Text
	if err := m.copyFn(line); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied row " + fmt.Sprint(m.selected+1)
}

// View renders the full TUI.
func (m *model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	innerW := max(m.width-2, 20)
	panelH := m.panelHeight()

	title := styleTitle.Render("cuedit") + " " + m.docLabel()

	table := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(innerW),
		m.renderTable(innerW, panelH),
	)
	tableBorder := stylePanelBorder
	if m.focus == focusTable {
		tableBorder = styleActiveBorder
	}
	tablePanel := tableBorder.Width(innerW).Render(table)

	editBorder := stylePanelBorder
	if m.focus != focusTable {
		editBorder = styleActiveBorder
	}
	editPanel := editBorder.Width(innerW).Render(m.renderFields())

	return lipgloss.JoinVertical(lipgloss.Left, title, tablePanel, editPanel, m.statusBar())
}

func (m *model) docLabel() string {
	name := m.opts.Name
	if name == "" {
		name = "(scratch)"
	}
	if m.dirty {
		name += styleDirty.Render(" *")
	}
	return name
}

func (m *model) renderFields() string {
	label := func(s string) string { return styleLabel.Render(s) }
	if !m.fieldsEnabled {
		return label("Time:") + styleDisabled.Render("-") + "\n" +
			label("Text:") + styleDisabled.Render("-")
	}
	return label("Time:") + m.timeInput.View() + "\n" +
		label("Text:") + m.textInput.View()
}

func (m *model) statusBar() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%d rows", len(m.rows)))
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.focus == focusTable {
		parts = append(parts, "+/- add/remove", "t time", "e text", "y copy", "C-s save", "q quit")
	} else {
		parts = append(parts, "enter apply", "tab switch", "esc cancel")
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

// panelHeight is the number of table rows that fit on screen.
func (m *model) panelHeight() int {
	if m.height <= 0 {
		return 10
	}
	// title (1) + table borders (2) + header (1) + edit panel (4) + status (1)
	return max(m.height-9, 3)
}

// hitTest maps terminal coordinates to a row index in the table.
func (m *model) hitTest(x, y int) (bool, int) {
	const contentYStart = 3 // title + top border + header
	if y < contentYStart || y >= contentYStart+m.panelHeight() {
		return false, -1
	}
	if x < 1 || x > m.width-2 {
		return false, -1
	}
	return true, m.listOffset + (y - contentYStart)
}

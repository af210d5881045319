package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/ui/event"
	"github.com/flavono123/shaper/internal/ui/theme"
)

const (
	EDITOR_HEIGHT_BOTTOM_MARGIN = 6 // tabs 1 + topbar 1 + border 2 + help 1 + status 1
	EDITOR_BORDER_WIDTH         = 2
	EDITOR_INPUT_WIDTH          = 32
)

// Model edits a field tree. Lines and fold state are keyed by field id;
// paths are looked up only when an operation is issued.
type Model struct {
	focus  bool
	tree   *field.Tree
	logger logrus.FieldLogger

	collapsed map[field.ID]bool
	lines     []*Line
	cursor    int

	vp    viewport.Model
	style lipgloss.Style

	input    textinput.Model
	renaming field.ID
	original string

	keys keyMap
	help help.Model
}

func NewModel(tree *field.Tree, logger logrus.FieldLogger) *Model {
	input := textinput.New()
	input.Placeholder = UNNAMED
	input.Prompt = ""
	input.Width = EDITOR_INPUT_WIDTH
	input.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Blue())
	input.TextStyle = lipgloss.NewStyle().Foreground(theme.Green())

	m := &Model{
		focus:     true,
		tree:      tree,
		logger:    logger,
		collapsed: map[field.ID]bool{},
		vp:        viewport.New(0, 0),
		style: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Blue()),
		input: input,
		keys:  newKeyMap(),
		help:  help.New(),
	}
	m.rebuild()

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width - EDITOR_BORDER_WIDTH
		m.vp.Height = max(1, msg.Height-EDITOR_HEIGHT_BOTTOM_MARGIN)
		m.help.Width = msg.Width
		m.scrollToCursor()
	case tea.KeyMsg:
		if m.Renaming() {
			return m, m.updateRename(msg)
		}
		return m, m.updateKey(msg)
	default:
		// cursor blink
		if m.Renaming() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(m.lines)-1 {
			m.cursor++
		}
		m.scrollToCursor()
	case key.Matches(msg, m.keys.fold):
		if line := m.curLine(); line != nil && line.typ == field.Nested {
			m.collapsed[line.id] = !m.collapsed[line.id]
			m.rebuild()
		}
	case key.Matches(msg, m.keys.addRoot):
		return m.addField(nil)
	case key.Matches(msg, m.keys.addChild):
		line := m.curLine()
		if line == nil {
			break
		}
		if line.typ != field.Nested {
			return event.SetStatus(event.Warn, fmt.Sprintf("%s is not nested", m.display(line)))
		}
		path, err := m.tree.PathOf(line.id)
		if err != nil {
			return m.fail(err)
		}
		delete(m.collapsed, line.id)
		return m.addField(path)
	case key.Matches(msg, m.keys.remove):
		return m.removeField()
	case key.Matches(msg, m.keys.rename):
		return m.startRename()
	case key.Matches(msg, m.keys.cycleType):
		if line := m.curLine(); line != nil {
			return m.setType(line.typ.Next())
		}
	case key.Matches(msg, m.keys.setString):
		return m.setType(field.String)
	case key.Matches(msg, m.keys.setNumber):
		return m.setType(field.Number)
	case key.Matches(msg, m.keys.setNested):
		return m.setType(field.Nested)
	}

	return nil
}

func (m *Model) View() string {
	content := m.renderLines()
	m.vp.SetContent(content)

	var keys help.KeyMap = m.keys
	if m.Renaming() {
		keys = renameKeyMap{m.keys}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTopBar(),
		m.style.Render(m.vp.View()),
		m.help.View(keys),
	)
}

// operations

func (m *Model) addField(parent field.Path) tea.Cmd {
	id, err := m.tree.AddField(parent)
	if err != nil {
		return m.fail(err)
	}
	m.rebuild()
	m.moveTo(id)

	return tea.Batch(m.changed(), m.startRename())
}

func (m *Model) removeField() tea.Cmd {
	line := m.curLine()
	if line == nil {
		return nil
	}
	path, err := m.tree.PathOf(line.id)
	if err != nil {
		return m.fail(err)
	}
	if err := m.tree.RemoveField(path); err != nil {
		return m.fail(err)
	}
	delete(m.collapsed, line.id)
	m.rebuild()

	return m.changed()
}

func (m *Model) setType(typ field.Type) tea.Cmd {
	line := m.curLine()
	if line == nil || line.typ == typ {
		return nil
	}
	path, err := m.tree.PathOf(line.id)
	if err != nil {
		return m.fail(err)
	}
	if err := m.tree.SetFieldType(path, typ); err != nil {
		return m.fail(err)
	}
	m.rebuild()

	return m.changed()
}

func (m *Model) setName(id field.ID, name string) tea.Cmd {
	path, err := m.tree.PathOf(id)
	if err != nil {
		return m.fail(err)
	}
	if err := m.tree.SetFieldName(path, name); err != nil {
		return m.fail(err)
	}
	m.rebuild()

	return m.changed()
}

// rename

func (m *Model) Renaming() bool {
	return m.renaming != ""
}

func (m *Model) startRename() tea.Cmd {
	line := m.curLine()
	if line == nil {
		return nil
	}
	m.renaming = line.id
	m.original = line.name
	m.input.SetValue(line.name)
	m.input.CursorEnd()

	return m.input.Focus()
}

// updateRename applies every keystroke to the tree so the preview
// follows the input. esc restores the name the field had before.
func (m *Model) updateRename(msg tea.KeyMsg) tea.Cmd {
	id := m.renaming

	switch {
	case key.Matches(msg, m.keys.commit):
		m.stopRename()
		return nil
	case key.Matches(msg, m.keys.cancel):
		value, original := m.input.Value(), m.original
		m.stopRename()
		if value != original {
			return m.setName(id, original)
		}
		return nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == prev {
		return cmd
	}

	return tea.Batch(cmd, m.setName(id, m.input.Value()))
}

func (m *Model) stopRename() {
	m.renaming = ""
	m.original = ""
	m.input.Blur()
	m.input.Reset()
}

// FocusField moves the cursor onto id, unfolding its ancestors.
func (m *Model) FocusField(id field.ID) {
	f, ok := m.tree.Lookup(id)
	if !ok {
		return
	}
	for parent := f.Parent(); parent != ""; {
		delete(m.collapsed, parent)
		p, ok := m.tree.Lookup(parent)
		if !ok {
			break
		}
		parent = p.Parent()
	}
	m.rebuild()
	m.moveTo(id)
}

// Sync rebuilds the lines after the tree was changed by someone else.
func (m *Model) Sync() {
	m.rebuild()
}

// CurrentID is the id of the field under the cursor, empty if none.
func (m *Model) CurrentID() field.ID {
	if line := m.curLine(); line != nil {
		return line.id
	}
	return ""
}

// utils

func (m *Model) changed() tea.Cmd {
	revision := m.tree.Revision()
	return func() tea.Msg {
		return event.TreeChangedMsg{Revision: revision}
	}
}

func (m *Model) fail(err error) tea.Cmd {
	m.logger.WithError(err).Warn("field operation failed")
	return event.SetStatus(event.Error, err.Error())
}

// rebuild flattens the visible tree and keeps the cursor on the same
// field when it still exists.
func (m *Model) rebuild() {
	cur := m.CurrentID()

	lines := []*Line{}
	m.tree.Walk(func(f *field.Field, path field.Path) bool {
		collapsed := m.collapsed[f.ID]
		lines = append(lines, newLine(f, path, collapsed, len(lines)))
		return !collapsed
	})
	m.lines = lines

	if cur != "" {
		m.moveTo(cur)
	}
	m.clampCursor()
}

func (m *Model) moveTo(id field.ID) {
	for _, line := range m.lines {
		if line.id == id {
			m.cursor = line.index
			m.scrollToCursor()
			return
		}
	}
}

func (m *Model) clampCursor() {
	if m.cursor > len(m.lines)-1 {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	if m.vp.Height <= 0 {
		return
	}
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	} else if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m *Model) curLine() *Line {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return nil
	}
	return m.lines[m.cursor]
}

func (m *Model) display(line *Line) string {
	if field.NameValid(line.name) {
		return strconv.Quote(line.name)
	}
	return UNNAMED + " field"
}

func (m *Model) renderLines() string {
	if len(m.lines) == 0 {
		empty := lipgloss.NewStyle().Foreground(theme.Overlay0())
		return empty.Render("No fields. Press a to add one.")
	}

	var result strings.Builder
	leftPadding := len(strconv.Itoa(len(m.lines)))

	for _, line := range m.lines {
		nameView := ""
		if line.id == m.renaming {
			nameView = m.input.View()
		}
		result.WriteString(line.render(leftPadding, line.index == m.cursor, m.vp.Width, !m.focus, nameView) + "\n")
	}

	return strings.TrimSuffix(result.String(), "\n")
}

func (m *Model) renderTopBar() string {
	title := lipgloss.NewStyle().Margin(0, 1).Bold(true).Render("Fields")
	count := lipgloss.NewStyle().Foreground(theme.Blue()).Render(strconv.Itoa(len(m.lines)))

	bar := []string{title, count}
	if invalid := len(m.tree.Validate()); invalid > 0 {
		warn := lipgloss.NewStyle().Margin(0, 1).Foreground(theme.Red())
		bar = append(bar, warn.Render(fmt.Sprintf("%d without a name", invalid)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, bar...)
}

func (m *Model) Focus() tea.Cmd {
	m.focus = true
	m.style = m.style.Border(lipgloss.ThickBorder()).BorderForeground(theme.Blue())
	// nothing to send
	return nil
}

func (m *Model) Blur() {
	m.focus = false
	m.style = m.style.Border(lipgloss.NormalBorder()).BorderForeground(theme.Overlay0())
}

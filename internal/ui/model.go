package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/projection"
	"github.com/flavono123/shaper/internal/store"
	"github.com/flavono123/shaper/internal/ui/editor"
	"github.com/flavono123/shaper/internal/ui/event"
	"github.com/flavono123/shaper/internal/ui/finder"
	"github.com/flavono123/shaper/internal/ui/preview"
	"github.com/flavono123/shaper/internal/ui/theme"
)

type sessionState uint

const (
	editorView sessionState = iota
	previewView
)

type Options struct {
	Tree   *field.Tree
	Format projection.Format
	// Store receives exports; nil disables exporting.
	Store  *store.Store
	Logger logrus.FieldLogger
}

type mainModel struct {
	state  sessionState
	keys   keyMap
	help   help.Model
	width  int
	height int

	tree     *field.Tree
	store    *store.Store
	logger   logrus.FieldLogger
	revision uint64

	editor  *editor.Model
	preview *preview.Model
	finder  *finder.Model

	exporting   bool
	exportInput textinput.Model

	status        event.SetStatusMsg
	statusVisible bool
	statusSeq     int
}

func InitModel(opts Options) *mainModel {
	tree := opts.Tree
	if tree == nil {
		tree = field.New()
	}
	format := opts.Format
	if format == "" {
		format = projection.FormatJSON
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	tree.OnChange(func(c field.Change) {
		logger.WithFields(logrus.Fields{
			"op":       c.Op,
			"id":       c.ID,
			"path":     c.Path.String(),
			"revision": c.Revision,
		}).Debug("field tree changed")
	})

	input := textinput.New()
	input.Placeholder = "schema name"
	input.Prompt = "export as: "
	input.Width = EXPORT_INPUT_WIDTH
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.Blue())

	m := &mainModel{
		state:       editorView,
		keys:        newKeyMap(),
		help:        help.New(),
		tree:        tree,
		store:       opts.Store,
		logger:      logger,
		revision:    tree.Revision(),
		editor:      editor.NewModel(tree, logger),
		preview:     preview.NewModel(tree, format, logger),
		finder:      finder.NewModel(tree),
		exportInput: input,
	}
	m.preview.Blur()

	return m
}

func (m *mainModel) Init() tea.Cmd {
	return m.editor.Focus()
}

func (m *mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		_, eCmd := m.editor.Update(msg)
		_, pCmd := m.preview.Update(msg)
		_, fCmd := m.finder.Update(msg)
		return m, tea.Batch(eCmd, pCmd, fCmd)
	case event.SetStatusMsg:
		m.statusSeq++
		m.status = msg
		m.statusVisible = true
		return m, event.ShowStatus(m.statusSeq)
	case event.HideStatusMsg:
		if msg.Seq == m.statusSeq {
			m.statusVisible = false
		}
		return m, nil
	case event.FocusFieldMsg:
		m.switchTo(editorView)
		m.editor.FocusField(msg.ID)
		return m, nil
	case event.TreeChangedMsg:
		m.syncPreview()
		return m, nil
	case finder.ShowMsg, finder.HideMsg:
		_, cmd := m.finder.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.updateKey(msg)
	}

	// cursor blink and friends
	var cmds []tea.Cmd
	if m.finder.Visible() {
		_, cmd := m.finder.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.exporting {
		var cmd tea.Cmd
		m.exportInput, cmd = m.exportInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	_, cmd := m.editor.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *mainModel) updateKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.finder.Visible() {
		_, cmd := m.finder.Update(msg)
		return cmd
	}
	if m.exporting {
		return m.updateExport(msg)
	}
	if m.state == editorView && m.editor.Renaming() {
		_, cmd := m.editor.Update(msg)
		m.syncPreview()
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.tabView):
		if m.state == editorView {
			m.switchTo(previewView)
		} else {
			m.switchTo(editorView)
		}
		return nil
	case key.Matches(msg, m.keys.showFinder):
		return finder.Show
	case key.Matches(msg, m.keys.export):
		return m.startExport()
	}

	var cmd tea.Cmd
	if m.state == editorView {
		_, cmd = m.editor.Update(msg)
	} else {
		_, cmd = m.preview.Update(msg)
	}
	m.syncPreview()

	return cmd
}

func (m *mainModel) View() string {
	if m.finder.Visible() {
		return lipgloss.Place(
			m.width,
			m.height,
			lipgloss.Center,
			UPPER_20,
			m.finder.View(),
			lipgloss.WithWhitespaceBackground(theme.Mantle()),
		)
	}

	body := m.editor.View()
	if m.state == previewView {
		body = m.preview.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		body,
		m.renderStatusBar(),
	)
}

// syncPreview recomputes the preview once per tree revision.
func (m *mainModel) syncPreview() {
	if m.tree.Revision() == m.revision {
		return
	}
	m.revision = m.tree.Revision()

	delta := m.preview.Refresh()
	m.logger.WithFields(logrus.Fields{
		"revision": m.revision,
		"delta":    delta.String(),
	}).Debug("preview refreshed")
}

func (m *mainModel) switchTo(state sessionState) {
	m.state = state
	if state == editorView {
		m.editor.Focus()
		m.preview.Blur()
		return
	}
	m.editor.Blur()
	m.preview.Focus()
}

// export

func (m *mainModel) startExport() tea.Cmd {
	if m.store == nil {
		return event.SetStatus(event.Warn, "export is disabled")
	}
	m.exporting = true
	m.exportInput.Reset()
	return m.exportInput.Focus()
}

func (m *mainModel) updateExport(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.stopExport()
		return nil
	case key.Matches(msg, m.keys.confirm):
		name := m.exportInput.Value()
		m.stopExport()
		return m.export(name)
	}

	var cmd tea.Cmd
	m.exportInput, cmd = m.exportInput.Update(msg)
	return cmd
}

func (m *mainModel) stopExport() {
	m.exporting = false
	m.exportInput.Blur()
}

func (m *mainModel) export(name string) tea.Cmd {
	format := m.preview.Format()
	record, err := m.store.Export(name, m.tree, format)
	if err == nil {
		err = m.store.Save()
	}
	if err != nil {
		m.logger.WithError(err).WithField("format", format).Warn("export failed")
		return event.SetStatus(event.Error, err.Error())
	}

	path := m.store.Path(record)
	m.logger.WithFields(logrus.Fields{
		"id":     record.ID,
		"format": format,
		"file":   path,
	}).Info("schema exported")
	return event.SetStatus(event.Info, "exported to "+path)
}

// render

func (m *mainModel) renderTabs() string {
	active := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(theme.Mantle()).Background(theme.Blue())
	inactive := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Subtext1())

	tabs := []string{"Editor", "Preview"}
	var rendered []string
	for i, tab := range tabs {
		if sessionState(i) == m.state {
			rendered = append(rendered, active.Render(tab))
			continue
		}
		rendered = append(rendered, inactive.Render(tab))
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, rendered...)
}

func (m *mainModel) renderStatusBar() string {
	if m.exporting {
		return m.exportInput.View()
	}
	if m.statusVisible {
		style := lipgloss.NewStyle()
		switch m.status.Status {
		case event.Error:
			style = style.Foreground(theme.Red())
		case event.Warn:
			style = style.Foreground(theme.Yellow())
		default:
			style = style.Foreground(theme.Green())
		}
		return style.Render(m.status.Message)
	}
	return m.help.View(m.keys)
}

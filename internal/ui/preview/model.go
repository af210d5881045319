package preview

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/projection"
	"github.com/flavono123/shaper/internal/ui/event"
	"github.com/flavono123/shaper/internal/ui/theme"
)

const (
	PREVIEW_HEIGHT_BOTTOM_MARGIN = 6 // tabs 1 + topbar 1 + border 2 + help 1 + status 1
	PREVIEW_BORDER_WIDTH         = 2
	PREVIEW_SCROLL_STEP          = 1
)

// Model shows the projection of a tree. The text is derived from the
// tree on Refresh and never edited here.
type Model struct {
	focused bool
	tree    *field.Tree
	logger  logrus.FieldLogger

	format  projection.Format
	content string
	err     error
	delta   projection.Delta

	vp    viewport.Model
	style lipgloss.Style

	keys keyMap
	help help.Model
}

func NewModel(tree *field.Tree, format projection.Format, logger logrus.FieldLogger) *Model {
	m := &Model{
		focused: false,
		tree:    tree,
		logger:  logger,
		format:  format,
		vp:      viewport.New(0, 0),
		style: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Overlay0()),
		keys: newKeyMap(),
		help: help.New(),
	}
	m.Refresh()
	m.delta = projection.Delta{}

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width - PREVIEW_BORDER_WIDTH
		m.vp.Height = max(1, msg.Height-PREVIEW_HEIGHT_BOTTOM_MARGIN)
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if !m.focused {
			break
		}
		switch {
		case key.Matches(msg, m.keys.up):
			m.vp.LineUp(PREVIEW_SCROLL_STEP)
		case key.Matches(msg, m.keys.down):
			m.vp.LineDown(PREVIEW_SCROLL_STEP)
		case key.Matches(msg, m.keys.format):
			m.SetFormat(m.format.Next())
		case key.Matches(msg, m.keys.copy):
			return m, m.copy()
		}
	}

	return m, nil
}

func (m *Model) View() string {
	m.vp.SetContent(m.body())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTopBar(),
		m.style.Render(m.vp.View()),
		m.help.View(m.keys),
	)
}

// Refresh recomputes the rendering from the current tree and returns
// how many lines changed.
func (m *Model) Refresh() projection.Delta {
	content, err := projection.Render(m.tree.Nodes(), m.format)
	if err != nil {
		m.logger.WithError(err).WithField("format", m.format).Error("failed to render preview")
		m.err = err
		return m.delta
	}

	m.delta = projection.Changes(m.content, content)
	m.content = content
	m.err = nil
	return m.delta
}

func (m *Model) SetFormat(format projection.Format) {
	m.format = format
	m.content = ""
	m.Refresh()
	m.delta = projection.Delta{}
	m.vp.GotoTop()
}

func (m *Model) Format() projection.Format {
	return m.format
}

func (m *Model) Content() string {
	return m.content
}

func (m *Model) copy() tea.Cmd {
	if err := clipboard.WriteAll(m.content); err != nil {
		err = errors.Wrap(err, "failed to copy preview")
		m.logger.WithError(err).Warn("clipboard unavailable")
		return event.SetStatus(event.Error, err.Error())
	}
	return event.SetStatus(event.Info, m.format.Title()+" copied to clipboard")
}

func (m *Model) body() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(theme.Red()).Render(m.err.Error())
	}
	return m.content
}

func (m *Model) renderTopBar() string {
	var tabs []string
	for _, f := range projection.Formats() {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Overlay0())
		if f == m.format {
			style = style.Foreground(theme.Blue()).Bold(true)
		}
		tabs = append(tabs, style.Render(f.Title()))
	}

	if !m.delta.Empty() {
		delta := lipgloss.NewStyle().Margin(0, 1).Foreground(theme.Yellow())
		tabs = append(tabs, delta.Render(m.delta.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, tabs...)
}

func (m *Model) Focus() {
	m.focused = true
	m.style = m.style.Border(lipgloss.ThickBorder()).BorderForeground(theme.Blue())
}

func (m *Model) Blur() {
	m.focused = false
	m.style = m.style.Border(lipgloss.NormalBorder()).BorderForeground(theme.Overlay0())
}

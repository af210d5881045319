package finder

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/ui/event"
	"github.com/flavono123/shaper/internal/ui/theme"
)

const (
	FINDER_WIDTH_DIV                 = 3
	FINDER_MIN_WIDTH                 = 24
	FINDER_SEARCH_RESULTS_MAX_HEIGHT = 10

	FINDER_SCROLL_STEP = 1

	UNNAMED_SEGMENT = "∅"
)

// Model is a fuzzy jump-to-field bar over the visible fields.
type Model struct {
	keys          keyMap
	visible       bool
	style         lipgloss.Style
	tree          *field.Tree
	items         finderItems
	input         textinput.Model
	searchResults searchResults
	srViewport    viewport.Model
	cursor        int
}

func NewModel(tree *field.Tree) *Model {
	ti := textinput.New()
	ti.Placeholder = "Jump to field..."
	ti.SetCursor(0)
	ti.Prompt = "/ "
	ti.Width = 30
	m := &Model{
		keys:    newKeyMap(),
		visible: false,
		style: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Blue()),
		tree:       tree,
		input:      ti,
		cursor:     0,
		srViewport: viewport.New(FINDER_MIN_WIDTH, FINDER_SEARCH_RESULTS_MAX_HEIGHT),
	}

	m.reset()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ShowMsg:
		m.setVisible(true)
		m.reset()
		cmds = append(cmds, m.input.Focus())
		return m, tea.Batch(cmds...)
	case HideMsg:
		m.setVisible(false)
		m.input.Blur()
		return m, nil
	case tea.WindowSizeMsg:
		m.setViewSize(msg)
		return m, nil
	}

	if !m.Visible() {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// cursor blink
		im, iCmd := m.input.Update(msg)
		m.input = im
		return m, iCmd
	}

	filtered := m.items.filter(m.input.Value())
	switch {
	case key.Matches(keyMsg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()
		m.setSearchResults(filtered)
	case key.Matches(keyMsg, m.keys.down):
		if m.cursor < len(filtered)-1 {
			m.cursor++
		}
		m.scrollToCursor()
		m.setSearchResults(filtered)
	case key.Matches(keyMsg, m.keys.pick):
		if m.cursor < len(filtered) {
			id := filtered[m.cursor].id
			cmds = append(cmds, func() tea.Msg {
				return event.FocusFieldMsg{ID: id}
			})
		}
		cmds = append(cmds, Hide)
	case key.Matches(keyMsg, m.keys.hide):
		cmds = append(cmds, Hide)
	default:
		prevInputValue := m.input.Value()
		im, iCmd := m.input.Update(msg)
		m.input = im
		cmds = append(cmds, iCmd)
		if prevInputValue != m.input.Value() {
			m.moveCursorTop(m.items.filter(m.input.Value()))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	inputStyle := lipgloss.NewStyle().Margin(0, 0, 1, 0)
	searchResult := m.searchResults.string(m.srViewport.Width)
	m.srViewport.SetContent(searchResult)
	return m.style.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			inputStyle.Render(m.input.View()),
			m.srViewport.View(),
		),
	)
}

func (m *Model) setVisible(visible bool) {
	m.visible = visible
}

func (m *Model) Visible() bool {
	return m.visible
}

func (m *Model) setViewSize(msg tea.WindowSizeMsg) {
	m.srViewport.Width = max(FINDER_MIN_WIDTH, msg.Width/FINDER_WIDTH_DIV)
	m.srViewport.Height = FINDER_SEARCH_RESULTS_MAX_HEIGHT
	m.input.Width = m.srViewport.Width - len(m.input.Prompt) - 1
}

// reset reloads the items since the tree may have changed while hidden.
func (m *Model) reset() {
	m.input.Reset()
	m.items = collectItems(m.tree)
	m.cursor = 0
	m.srViewport.SetYOffset(0)
	m.setSearchResults(m.items)
}

func (m *Model) setSearchResults(items finderItems) {
	var newSearchResults searchResults
	for index, item := range items {
		newSearchResults = append(newSearchResults, searchResult{
			Item:    item,
			Hovered: m.cursor == index,
		})
	}
	m.searchResults = newSearchResults
}

func (m *Model) moveCursorTop(items finderItems) {
	m.cursor = 0
	m.srViewport.SetYOffset(0)
	m.setSearchResults(items)
}

func (m *Model) scrollToCursor() {
	if m.cursor < m.srViewport.YOffset {
		m.srViewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.srViewport.YOffset+m.srViewport.Height {
		m.srViewport.LineDown(FINDER_SCROLL_STEP)
	}
}

// subcomponents(not model)
type finderItem struct {
	id   field.ID
	path string
	typ  field.Type
}
type finderItems []finderItem

type searchResult struct {
	Item    finderItem
	Hovered bool
}

type searchResults []searchResult

func collectItems(tree *field.Tree) finderItems {
	var items finderItems
	var names []string
	tree.Walk(func(f *field.Field, path field.Path) bool {
		names = append(names[:len(path)-1], segment(f.Name))
		items = append(items, finderItem{
			id:   f.ID,
			path: strings.Join(names, "."),
			typ:  f.Type,
		})
		return true
	})
	return items
}

func segment(name string) string {
	if !field.NameValid(name) {
		return UNNAMED_SEGMENT
	}
	return name
}

func (i finderItem) render(width int) string {
	l := lipgloss.NewStyle().
		MaxWidth(width).
		Padding(0, 0, 0, 1)
	t := lipgloss.NewStyle().Foreground(theme.TypeColor(i.typ))
	s := lipgloss.JoinHorizontal(
		lipgloss.Left,
		i.path,
		" ",
		t.Render(string(i.typ)),
	)

	return l.Render(s)
}

func (m finderItems) filter(inputValue string) finderItems {
	if inputValue == "" {
		return m
	}

	var items finderItems
	var itemStrings []string
	for _, item := range m {
		itemStrings = append(itemStrings, item.path)
	}
	matches := fuzzy.Find(inputValue, itemStrings)
	for _, match := range matches {
		items = append(items, m[match.Index])
	}
	return items
}

func (sr searchResult) render(width int) string {
	style := lipgloss.NewStyle()
	if sr.Hovered {
		style = style.Background(theme.Surface0())
	}
	return style.Render(sr.Item.render(width))
}

func (sr searchResults) string(width int) string {
	noResultsStyle := lipgloss.NewStyle().Foreground(theme.Overlay0())
	if len(sr) == 0 {
		return noResultsStyle.Render("No fields found.")
	}

	var result []string
	for _, item := range sr {
		result = append(result, item.render(width))
	}

	return strings.Join(result, "\n")
}

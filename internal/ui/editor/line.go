package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/ui/theme"
)

const (
	UNNAMED        = "unnamed"
	REQUIRED_LABEL = "name is required"
)

// Line is one visible field in the flattened tree.
type Line struct {
	id        field.ID
	name      string
	typ       field.Type
	depth     int
	children  int
	collapsed bool

	index int
}

func newLine(f *field.Field, path field.Path, collapsed bool, index int) *Line {
	return &Line{
		id:        f.ID,
		name:      f.Name,
		typ:       f.Type,
		depth:     len(path) - 1,
		children:  len(f.VisibleChildren()),
		collapsed: collapsed,
		index:     index,
	}
}

// nameView replaces the rendered name when non-empty, e.g. with a text input.
func (l *Line) render(leftPadding int, cursored bool, maxWidth int, blurred bool, nameView string) string {
	line := lipgloss.JoinHorizontal(
		lipgloss.Left,
		l.number(leftPadding),
		l.indent(),
		l.cursor(cursored, blurred),
		l.action(),
		" ",
		l.renderField(nameView),
	)

	return lipgloss.NewStyle().MaxWidth(maxWidth).Render(line)
}

func (l *Line) renderField(nameView string) string {
	name := lipgloss.NewStyle().Foreground(theme.Green())
	placeholder := lipgloss.NewStyle().Foreground(theme.Overlay0()).Italic(true)
	displayType := lipgloss.NewStyle().Foreground(theme.TypeColor(l.typ))
	required := lipgloss.NewStyle().Foreground(theme.Red())

	var parts []string
	switch {
	case nameView != "":
		parts = append(parts, nameView)
	case field.NameValid(l.name):
		parts = append(parts, name.Render(l.name))
	default:
		parts = append(parts, placeholder.Render(UNNAMED))
	}

	parts = append(parts, displayType.Render(fmt.Sprintf("<%s>", l.typ)))
	if l.typ == field.Nested && l.collapsed {
		parts = append(parts, placeholder.Render(fmt.Sprintf("{%d}", l.children)))
	}
	if !field.NameValid(l.name) {
		parts = append(parts, required.Render(REQUIRED_LABEL))
	}

	return strings.Join(parts, " ")
}

func (l *Line) number(leftPadding int) string {
	number := lipgloss.NewStyle().Foreground(theme.Overlay0())
	fmtStr := fmt.Sprintf("%%%dd ", leftPadding)
	return number.Render(fmt.Sprintf(fmtStr, l.index+1))
}

func (l *Line) indent() string {
	return strings.Repeat(" ", l.depth*2)
}

func (l *Line) cursor(cursored bool, blurred bool) string {
	if cursored {
		return l.cursorStyle(blurred).Render(">")
	}
	return l.cursorStyle(blurred).Render(" ")
}

func (l *Line) cursorStyle(blurred bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(theme.Blue()).Bold(true)
	if blurred {
		style = style.Foreground(theme.Overlay0()).Bold(false)
	}

	return style
}

func (l *Line) action() string {
	action := lipgloss.NewStyle().Foreground(theme.Subtext1())
	if l.typ == field.Nested {
		if l.collapsed {
			return action.Render("+")
		}
		return action.Render("-")
	}
	return action.Render("•")
}

package event

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flavono123/shaper/internal/field"
)

// finder -> root -> editor
type FocusFieldMsg struct {
	ID field.ID
}

// editor -> root, after the tree was mutated
type TreeChangedMsg struct {
	Revision uint64
}

// -> root

type Status uint

const (
	Error Status = iota
	Warn
	Info
)

type SetStatusMsg struct {
	Message string
	Status  Status
}

func SetStatus(status Status, message string) tea.Cmd {
	return func() tea.Msg {
		return SetStatusMsg{Message: message, Status: status}
	}
}

const statusDuration = time.Millisecond * 2060

// ShowStatus hides status number seq once its time is up. A newer status
// carries a higher seq and survives the older tick.
func ShowStatus(seq int) tea.Cmd {
	return tea.Tick(statusDuration, func(t time.Time) tea.Msg {
		return HideStatusMsg{Seq: seq}
	})
}

type HideStatusMsg struct {
	Seq int
}

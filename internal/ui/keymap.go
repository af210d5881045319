package ui

import "github.com/charmbracelet/bubbles/key"

// main
type keyMap struct {
	quit       key.Binding
	tabView    key.Binding
	showFinder key.Binding
	export     key.Binding
	cancel     key.Binding
	confirm    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		tabView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch editor/preview"),
		),
		showFinder: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "find field"),
		),
		export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "export"),
		),
		cancel:  key.NewBinding(key.WithKeys("esc")),
		confirm: key.NewBinding(key.WithKeys("enter")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.tabView,
		k.showFinder,
		k.export,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{}, // only render short help
	}
}

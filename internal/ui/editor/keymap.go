package editor

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	fold      key.Binding
	addRoot   key.Binding
	addChild  key.Binding
	remove    key.Binding
	rename    key.Binding
	cycleType key.Binding
	setString key.Binding
	setNumber key.Binding
	setNested key.Binding

	// while renaming
	commit key.Binding
	cancel key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:   key.NewBinding(key.WithKeys("up", "k")),
		down: key.NewBinding(key.WithKeys("down", "j")),
		fold: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "fold"),
		),
		addRoot: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add field"),
		),
		addChild: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add nested field"),
		),
		remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		rename: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "rename"),
		),
		cycleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t/1-3", "type"),
		),
		setString: key.NewBinding(key.WithKeys("1")),
		setNumber: key.NewBinding(key.WithKeys("2")),
		setNested: key.NewBinding(key.WithKeys("3")),
		commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "done"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "revert"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addRoot,
		k.addChild,
		k.rename,
		k.cycleType,
		k.remove,
		k.fold,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{}, // only render short help
	}
}

// renameKeyMap is shown in the help bar while a name is being edited.
type renameKeyMap struct {
	keyMap
}

func (k renameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.commit, k.cancel}
}

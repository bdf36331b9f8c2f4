package interactive

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Deselect   key.Binding
	New        key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Delete     key.Binding
	DeleteAll  key.Binding
	Save       key.Binding
	Populate   key.Binding
	EditExtern key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "prev"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "next"),
	),
	Deselect: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear selection"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new entry"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "move down"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	DeleteAll: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "delete all"),
	),
	Save: key.NewBinding(
		key.WithKeys("s", "ctrl+s"),
		key.WithHelp("s", "save now"),
	),
	Populate: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "sample entries"),
	),
	EditExtern: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "open in editor"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "h"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.EditExtern, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Deselect},
		{k.New, k.EditExtern, k.MoveUp, k.MoveDown},
		{k.Delete, k.DeleteAll},
		{k.Save, k.Populate},
		{k.Help, k.Quit},
	}
}

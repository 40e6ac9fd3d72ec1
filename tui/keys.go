package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"mtodo/internal/infrastructure/config"
)

// keyMap defines the list view keybindings
type keyMap struct {
	Up              key.Binding
	Down            key.Binding
	PrevPage        key.Binding
	NextPage        key.Binding
	FirstPage       key.Binding
	LastPage        key.Binding
	PageSize        key.Binding
	NextFilter      key.Binding
	FilterAll       key.Binding
	FilterPending   key.Binding
	FilterCompleted key.Binding
	Search          key.Binding
	Add             key.Binding
	Edit            key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	Reload          key.Binding
	Help            key.Binding
	Quit            key.Binding
}

var keys keyMap

func init() {
	InitKeybindings(config.Default())
}

// InitKeybindings initializes the keybindings from config
func InitKeybindings(cfg *config.Config) {
	kb := cfg.Keybindings

	keys = keyMap{
		Up:              binding(kb.Up, "up"),
		Down:            binding(kb.Down, "down"),
		PrevPage:        binding(kb.PrevPage, "prev page"),
		NextPage:        binding(kb.NextPage, "next page"),
		FirstPage:       binding(kb.FirstPage, "first page"),
		LastPage:        binding(kb.LastPage, "last page"),
		PageSize:        binding(kb.PageSize, "page size"),
		NextFilter:      binding(kb.NextFilter, "next filter"),
		FilterAll:       binding(kb.FilterAll, "all"),
		FilterPending:   binding(kb.FilterPending, "pending"),
		FilterCompleted: binding(kb.FilterCompleted, "completed"),
		Search:          binding(kb.Search, "search"),
		Add:             binding(kb.Add, "add"),
		Edit:            binding(kb.Edit, "edit"),
		Toggle:          binding(kb.Toggle, "toggle"),
		Delete:          binding(kb.Delete, "delete"),
		Reload:          binding(kb.Reload, "reload"),
		Help:            binding(kb.Help, "help"),
		Quit:            binding(kb.Quit, "quit"),
	}
}

func binding(keyNames []string, desc string) key.Binding {
	labels := make([]string, 0, len(keyNames))
	for _, k := range keyNames {
		labels = append(labels, keyLabel(k))
	}
	return key.NewBinding(
		key.WithKeys(keyNames...),
		key.WithHelp(strings.Join(labels, "/"), desc),
	)
}

func keyLabel(k string) string {
	switch k {
	case " ":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	default:
		return k
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Add, k.Edit, k.Toggle, k.Delete, k.NextFilter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.Reload},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.PageSize},
		{k.NextFilter, k.FilterAll, k.FilterPending, k.FilterCompleted},
		{k.Add, k.Edit, k.Toggle, k.Delete},
		{k.Help, k.Quit},
	}
}

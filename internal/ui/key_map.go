package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	search   key.Binding
	focus    key.Binding
	clear    key.Binding
	loadMore key.Binding
	copyText key.Binding
	share    key.Binding
	edit     key.Binding
	delete   key.Binding
	bulk     key.Binding
	refresh  key.Binding
	quick    key.Binding
	back     key.Binding
	yes      key.Binding
	no       key.Binding
	submit   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bajar")),
		search:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "buscar")),
		focus:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filtros")),
		clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "limpiar")),
		loadMore: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "ver más")),
		copyText: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copiar")),
		share:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "WhatsApp")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "portada")),
		delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "eliminar")),
		bulk:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "portadas masivas")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "renovar 1000")),
		quick:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "renovar 100")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "volver")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "sí")),
		no:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "guardar")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.loadMore},
		{k.focus, k.search, k.clear},
		{k.copyText, k.share, k.edit, k.delete},
		{k.bulk, k.refresh, k.quick, k.quit},
	}
}

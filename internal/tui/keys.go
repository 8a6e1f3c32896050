package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Enter     key.Binding
	Back      key.Binding
	Prev      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	How       key.Binding
	Choose    key.Binding

	// Home
	History key.Binding
	Config  key.Binding

	// Check-in
	Theme key.Binding

	// Dump
	ToggleSave key.Binding
	SaveDump   key.Binding
	ClearDump  key.Binding

	// Finish
	ToHistory key.Binding

	// History and detail
	Open     key.Binding
	Copy     key.Binding
	Share    key.Binding
	Delete   key.Binding
	ClearAll key.Binding

	// Config
	ToggleTheme key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continuar"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "sair"),
		),
		Prev: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "voltar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "fechar"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		How: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "como funciona"),
		),
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "escolher"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "histórico"),
		),
		Config: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "ajustes"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tema"),
		),
		ToggleSave: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "salvar texto?"),
		),
		SaveDump: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "continuar"),
		),
		ClearDump: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "limpar"),
		),
		ToHistory: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "salvar e ver histórico"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "abrir"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copiar resumo"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "compartilhar"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "apagar"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "apagar tudo"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "claro/escuro"),
		),
	}
}

// choice maps a 1-5 key to a zero-based index
func choice(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '5' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

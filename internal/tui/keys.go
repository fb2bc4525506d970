package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Home       key.Binding
	Scenarios  key.Binding
	Parameters key.Binding
	Results    key.Binding
	Compare    key.Binding
	Optimize   key.Binding
	ACF        key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Home:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
	Scenarios:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scenarios")),
	Parameters: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "parameters")),
	Results:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "results")),
	Compare:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
	Optimize:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "break-even")),
	ACF:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ACF")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Home, k.Scenarios, k.Parameters, k.Results, k.Compare, k.Optimize, k.ACF, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Scenarios, k.Parameters, k.Results},
		{k.Compare, k.Optimize, k.ACF},
		{k.Help, k.Back, k.Quit},
	}
}

type navKey struct {
	binding key.Binding
	scene   Scene
}

// navigation pairs each global key with its scene.
func (k keyMap) navigation() []navKey {
	return []navKey{
		{k.Home, SceneHome},
		{k.Scenarios, SceneScenarios},
		{k.Parameters, SceneParameters},
		{k.Results, SceneResults},
		{k.Compare, SceneCompare},
		{k.Optimize, SceneOptimize},
		{k.ACF, SceneACF},
		{k.Help, SceneHelp},
	}
}

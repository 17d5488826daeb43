package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	NextParam key.Binding
	ParamUp   key.Binding
	ParamDown key.Binding
	Stats     key.Binding
	Help      key.Binding
	Suspend   key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		ScrollUp:  key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "scroll back")),
		ScrollDn:  key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "scroll on")),
		NextParam: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next param")),
		ParamUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "param +5%")),
		ParamDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "param -5%")),
		Stats:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "frame chart")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Suspend:   key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "suspend")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Stats, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.ScrollUp, k.ScrollDn},
		{k.NextParam, k.ParamUp, k.ParamDown},
		{k.Stats, k.Help, k.Suspend, k.Quit},
	}
}

package study

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Reveal  key.Binding
	Correct key.Binding
	Confirm key.Binding
	Missed  key.Binding
	MissNow key.Binding
	Restart key.Binding
	Back    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Reveal:  key.NewBinding(key.WithKeys("right", "enter", "space"), key.WithHelp("→/Space", "Show answer")),
		Correct: key.NewBinding(key.WithKeys("right", "enter"), key.WithHelp("→", "Got it")),
		Confirm: key.NewBinding(key.WithKeys("right", "enter", "space", "x"), key.WithHelp("→", "Continue")),
		Missed:  key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("Space", "Missed it")),
		MissNow: key.NewBinding(key.WithKeys("x"), key.WithHelp("X", "I don't know")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Restart")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
	}
}

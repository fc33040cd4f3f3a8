package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Page is a static text view. Any of q, esc or enter closes it.
type Page struct {
	Title string
	Lines []string
}

func NewPage(title string, lines ...string) Page {
	return Page{Title: title, Lines: lines}
}

func (p Page) Init() tea.Cmd { return nil }

func (p Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "esc", "enter":
			return p, Back
		}
	}
	return p, nil
}

func (p Page) View() string {
	var b strings.Builder
	b.WriteString(p.Title + "\n\n")
	for _, l := range p.Lines {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n(press 'q' to go back)\n")
	return b.String()
}

package whois

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/tui"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

// search is the WhoIs query form. Submitting it shows the search link the
// query resolves to.
type search struct {
	prefs  ui.Prefs
	query  []rune
	result string
}

func newSearch(p ui.Prefs) *search {
	return &search{prefs: p}
}

func (m *search) Init() tea.Cmd { return nil }

func (m *search) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.Type {
	case tea.KeyEsc:
		return m, tui.Back
	case tea.KeyBackspace:
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
		}
	case tea.KeyEnter:
		q := strings.TrimSpace(string(m.query))
		if q == "" {
			return m, nil
		}
		if m.prefs.Bool("fang") {
			q = Defang(q)
			m.query = []rune(q)
		}
		m.result = SearchPath(q)
	case tea.KeyRunes, tea.KeySpace:
		m.query = append(m.query, k.Runes...)
	}
	return m, nil
}

func (m *search) View() string {
	var b strings.Builder
	b.WriteString("WhoIs Search (enter submits, esc goes back)\n\n")
	fmt.Fprintf(&b, "Query: %s\n", string(m.query))
	if m.result != "" {
		fmt.Fprintf(&b, "\nSearch: %s\n", m.result)
	}
	return b.String()
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

type settingRow struct {
	section string
	ns      string
	pref    prefs.Preference
	value   bool
}

// Settings lists every visible boolean preference as a toggle.
type Settings struct {
	ctx    context.Context
	schema *prefs.Schema
	store  *prefs.Store
	rows   []settingRow
	cursor int
	status string
}

func NewSettings(ctx context.Context, schema *prefs.Schema, store *prefs.Store) *Settings {
	s := &Settings{ctx: ctx, schema: schema, store: store}
	s.reload()
	return s
}

func (s *Settings) reload() {
	s.rows = s.rows[:0]
	for _, sec := range ui.SettingsSections(s.schema, s.store) {
		title := sec.Namespace.Title
		if title == "" {
			title = sec.Namespace.Name
		}
		for _, item := range sec.Settings {
			s.rows = append(s.rows, settingRow{section: title, ns: sec.Namespace.Name, pref: item.Preference, value: item.Value})
		}
	}
	if s.cursor >= len(s.rows) {
		s.cursor = max(len(s.rows)-1, 0)
	}
}

func (s *Settings) Init() tea.Cmd { return nil }

func (s *Settings) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch k.String() {
	case "q", "esc":
		return s, Back
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case " ", "enter":
		if len(s.rows) == 0 {
			return s, nil
		}
		row := s.rows[s.cursor]
		if err := s.store.Set(s.ctx, row.ns, row.pref.Name, !row.value); err != nil {
			s.status = "Save failed: " + err.Error()
			return s, nil
		}
		s.status = fmt.Sprintf("%s:%s = %t", row.ns, row.pref.Name, !row.value)
		s.reload()
	case "r":
		if err := s.store.Clear(s.ctx); err != nil {
			s.status = "Reset failed: " + err.Error()
			return s, nil
		}
		s.status = "Preferences reset to defaults."
		s.reload()
	}
	return s, nil
}

func (s *Settings) View() string {
	var b strings.Builder
	b.WriteString("User Preferences (space toggles, 'r' resets, 'q' goes back)\n")
	if len(s.rows) == 0 {
		b.WriteString("\nNo preferences to configure.\n")
	}
	section := ""
	for i, row := range s.rows {
		if row.section != section {
			section = row.section
			b.WriteString("\n" + section + "\n")
		}
		cursor := " "
		if i == s.cursor {
			cursor = ">"
		}
		mark := " "
		if row.value {
			mark = "x"
		}
		label := row.pref.Title
		if label == "" {
			label = row.pref.Name
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", cursor, mark, label)
	}
	if s.status != "" {
		b.WriteString("\nStatus: " + s.status + "\n")
	}
	return b.String()
}

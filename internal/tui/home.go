package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/contrib"
	"github.com/tldr-it-stepankutaj/whodat/internal/registry"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

type homeItem struct {
	group  string
	label  string
	path   string
	option contrib.Option
	isOpt  bool
}

// Home lists the navigation links, drawer items and global options. Enter
// opens the selected view; the view goes back with BackMsg.
type Home struct {
	reg    *registry.Registry
	items  []homeItem
	cursor int
	child  tea.Model
	status string
}

func NewHome(reg *registry.Registry) *Home {
	h := &Home{reg: reg, status: "Ready."}
	for _, e := range ui.Navigation(reg) {
		h.items = append(h.items, homeItem{group: "Navigation", label: e.Value.Label(), path: e.Value.Path()})
	}
	for _, e := range reg.ListDrawerItems() {
		h.items = append(h.items, homeItem{group: "Drawer", label: e.Value.Label(), path: e.Value.Path()})
	}
	for _, e := range reg.ListOptions() {
		h.items = append(h.items, homeItem{group: "Options", label: e.Value.Label(), option: e.Value, isOpt: true})
	}
	return h
}

func (h *Home) Init() tea.Cmd { return nil }

func (h *Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if h.child != nil {
		if _, ok := msg.(BackMsg); ok {
			h.child = nil
			return h, nil
		}
		var cmd tea.Cmd
		h.child, cmd = h.child.Update(msg)
		return h, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}
	switch k.String() {
	case "q", "esc":
		return h, Back
	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
		}
	case "down", "j":
		if h.cursor < len(h.items)-1 {
			h.cursor++
		}
	case "enter":
		if len(h.items) == 0 {
			return h, nil
		}
		return h, h.open(h.items[h.cursor])
	}
	return h, nil
}

func (h *Home) open(it homeItem) tea.Cmd {
	if it.isOpt {
		if d := it.option.Dialog(); d != nil {
			h.child = d()
			return h.child.Init()
		}
		return it.option.OnActivate()()
	}
	e, ok := ui.MatchRoute(h.reg, it.path)
	if !ok {
		h.status = fmt.Sprintf("No view registered for %s", it.path)
		return nil
	}
	h.child = e.Value.Component()()
	return h.child.Init()
}

func (h *Home) View() string {
	if h.child != nil {
		return h.child.View()
	}
	var b strings.Builder
	b.WriteString("whodat (enter opens, 'q' quits)\n")
	group := ""
	for i, it := range h.items {
		if it.group != group {
			group = it.group
			b.WriteString("\n" + group + "\n")
		}
		cursor := " "
		if i == h.cursor {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %s\n", cursor, it.label)
	}
	fmt.Fprintf(&b, "\nStatus: %s\n", h.status)
	return b.String()
}

// Menu lists the menu actions for one value. Link actions report their
// target; dialog actions open in place.
type Menu struct {
	category contrib.Category
	value    string
	items    []ui.MenuItem
	cursor   int
	child    tea.Model
	status   string
}

func NewMenu(reg *registry.Registry, category contrib.Category, value string) *Menu {
	return &Menu{category: category, value: value, items: ui.MenuFor(reg, category, value)}
}

func (m *Menu) Init() tea.Cmd { return nil }

func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.child != nil {
		if _, ok := msg.(BackMsg); ok {
			m.child = nil
			return m, nil
		}
		var cmd tea.Cmd
		m.child, cmd = m.child.Update(msg)
		return m, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "q", "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.items) == 0 {
			return m, nil
		}
		it := m.items[m.cursor]
		if it.Dialog != nil {
			m.child = it.Dialog()
			return m, m.child.Init()
		}
		m.status = "Open " + it.Href
	}
	return m, nil
}

func (m *Menu) View() string {
	if m.child != nil {
		return m.child.View()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n\n", m.category, m.value)
	if len(m.items) == 0 {
		b.WriteString("No actions.\n")
	}
	for i, it := range m.items {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}
		suffix := ""
		if it.External {
			suffix = " (external)"
		}
		fmt.Fprintf(&b, "%s %s%s\n", cursor, it.Label, suffix)
	}
	if m.status != "" {
		fmt.Fprintf(&b, "\nStatus: %s\n", m.status)
	}
	return b.String()
}

package ui

import (
	"net/url"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/contrib"
	"github.com/tldr-it-stepankutaj/whodat/internal/registry"
)

// MenuItem is a menu action resolved against one clicked value.
type MenuItem struct {
	Name     string
	Label    string
	Href     string
	External bool
	// Dialog is set instead of Href for dialog actions.
	Dialog func() tea.Model
}

// MenuFor returns the menu shown for value in category, in registration
// order. Unknown categories yield an empty menu.
func MenuFor(reg *registry.Registry, category contrib.Category, value string) []MenuItem {
	entries := reg.ListMenuActions(category)
	items := make([]MenuItem, 0, len(entries))
	for _, e := range entries {
		a := e.Value
		item := MenuItem{
			Name:     e.Name,
			Label:    a.Label(),
			External: a.External(),
		}
		t := a.Target()
		if t.IsDialog() {
			open := t.Dialog
			item.Dialog = func() tea.Model { return open(value) }
		} else {
			item.Href = t.Resolve(value)
		}
		items = append(items, item)
	}
	return items
}

func Routes(reg *registry.Registry) []registry.Entry[contrib.Route] {
	return reg.ListRoutes()
}

func Navigation(reg *registry.Registry) []registry.Entry[contrib.Navigation] {
	return reg.ListNavigation()
}

// MatchRoute finds the route registered for the path part of target. The
// query string and fragment are ignored.
func MatchRoute(reg *registry.Registry, target string) (registry.Entry[contrib.Route], bool) {
	path := target
	if u, err := url.Parse(target); err == nil {
		path = u.Path
	}
	for _, e := range reg.ListRoutes() {
		if e.Value.Path() == path {
			return e, true
		}
	}
	return registry.Entry[contrib.Route]{}, false
}

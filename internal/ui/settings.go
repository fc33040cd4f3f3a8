package ui

import (
	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
)

// Setting is one toggle in the settings view.
type Setting struct {
	Preference prefs.Preference
	Value      bool
}

// Section groups the toggles of one namespace.
type Section struct {
	Namespace prefs.Namespace
	Settings  []Setting
}

// SettingsSections lists the visible boolean preferences of every namespace
// with their current values. Namespaces without any are left out.
func SettingsSections(schema *prefs.Schema, store *prefs.Store) []Section {
	var out []Section
	for _, ns := range schema.Namespaces() {
		var items []Setting
		for _, p := range schema.Visible(ns.Name) {
			if p.Type != prefs.TypeBoolean {
				continue
			}
			v, _ := store.Get(ns.Name, p.Name)
			b, _ := v.(bool)
			items = append(items, Setting{Preference: p, Value: b})
		}
		if len(items) > 0 {
			out = append(out, Section{Namespace: ns, Settings: items})
		}
	}
	return out
}

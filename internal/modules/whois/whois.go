package whois

import (
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/contrib"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules"
	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/tui"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

// Path is where the WhoIs search view is mounted.
const Path = "/whois"

var Namespace = prefs.Namespace{
	Name:        "whois",
	Title:       "Whois Search Preferences",
	Description: "Preferences for Whois Search",
}

var preferences = []prefs.Preference{
	{
		Name:        "fang",
		Type:        prefs.TypeBoolean,
		Title:       "De-fang Queries",
		Description: "Automatically replace [.] with . in search queries",
		Default:     true,
	},
	{
		Name:        "page_size",
		Type:        prefs.TypeNumber,
		Title:       "Results Page Size",
		Description: "Default Page Size to use for result pagination",
		Default:     50,
	},
	{
		Name:        "remember_page_size",
		Type:        prefs.TypeBoolean,
		Title:       "Remember Results Page Size",
		Description: "Remember last used page size when displaying results",
		Default:     true,
	},
	{
		Name:        "details_colon",
		Type:        prefs.TypeBoolean,
		Title:       "Full Details Colon Suffix",
		Description: "Append a colon (:) to the names in the Full Details dialog",
		Default:     false,
	},
}

// pivotFields maps each value category to the search field it pivots on.
var pivotFields = []struct {
	category contrib.Category
	field    string
}{
	{contrib.CategoryTLD, "dn"},
	{contrib.CategoryDomain, "dn"},
	{contrib.CategoryRegistrant, "registrant_name"},
	{contrib.CategoryEmail, "contactEmail"},
	{contrib.CategoryTelephone, "registrant_telephone"},
}

// Module contributes the WhoIs search view and its pivot menus.
type Module struct{}

func New() Module { return Module{} }

func (Module) Name() string { return "whois" }
func (Module) Description() string {
	return "WhoIs search view, pivot menus and search preferences"
}

func (Module) Register(host *modules.Host) error {
	if err := host.Schema.RegisterNamespace(Namespace); err != nil {
		return err
	}
	if err := host.Schema.RegisterPreferences(Namespace, preferences); err != nil {
		return err
	}

	help, err := contrib.NewOption(contrib.OptionSpec{
		Icon:   "?",
		Label:  "Help",
		Dialog: func() tea.Model { return helpPage() },
	})
	if err != nil {
		return err
	}
	route, err := contrib.NewRoute(contrib.RouteSpec{
		Path:  Path,
		Title: "WhoIs Search",
		Component: func() tea.Model {
			return newSearch(ui.Preferences(host.Prefs, Namespace.Name))
		},
		Options: []contrib.Option{help},
	})
	if err != nil {
		return err
	}
	if err := host.Registry.RegisterRoute("whois", route); err != nil {
		return err
	}

	nav, err := contrib.NewNavigation("WhoIs", Path, "WhoIs Search")
	if err != nil {
		return err
	}
	if err := host.Registry.RegisterNavigation("whois", nav); err != nil {
		return err
	}

	for _, pf := range pivotFields {
		field := pf.field
		action, err := contrib.NewMenuAction(pf.category, "Pivot Search", contrib.Target{
			PathFunc: func(v string) string { return SearchPath(field + ":\"" + v + "\"") },
		}, false)
		if err != nil {
			return err
		}
		if err := host.Registry.RegisterMenuAction("whois_pivot", pf.category, action); err != nil {
			return err
		}
	}
	return nil
}

// SearchPath returns the link that runs query in the WhoIs view.
func SearchPath(query string) string {
	return Path + "?" + url.Values{"query": {query}}.Encode()
}

// Defang turns "example[.]com" back into "example.com".
func Defang(query string) string {
	return strings.ReplaceAll(query, "[.]", ".")
}

func helpPage() tui.Page {
	return tui.NewPage("WhoIs Search Help",
		`Search a field with field:"value", e.g. dn:"example.com".`,
		"Fields: dn, registrant_name, contactEmail, registrant_telephone.",
		"Combine terms with AND / OR and group them with parentheses.",
		`With "De-fang Queries" on, [.] in a query is replaced with '.'.`,
	)
}

package dnsdb

import (
	"fmt"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/contrib"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules"
	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/tui"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

const Path = "/passive/dnsdb"

var Namespace = prefs.Namespace{
	Name:        "dnsdb",
	Title:       "DNSDB Preferences",
	Description: "Preferences for DNSDB Passive DNS searches",
}

var preferences = []prefs.Preference{
	{Name: "remember_page_size", Type: prefs.TypeBoolean, Title: "Remember Results Page Size", Default: true},
	{Name: "page_size", Type: prefs.TypeNumber, Title: "Results Page Size", Default: 50},
	{Name: "remember_domain_search_type", Type: prefs.TypeBoolean, Title: "Remember Domain Search Type", Default: true},
	{Name: "domain_search_type", Type: prefs.TypeString, Default: "prefix-wildcard", Internal: true},
}

type Module struct{}

func New() Module { return Module{} }

func (Module) Name() string        { return "dnsdb" }
func (Module) Description() string { return "DNSDB passive DNS view and search menus" }

func (Module) Register(host *modules.Host) error {
	if err := host.Schema.RegisterNamespace(Namespace); err != nil {
		return err
	}
	if err := host.Schema.RegisterPreferences(Namespace, preferences); err != nil {
		return err
	}

	route, err := contrib.NewRoute(contrib.RouteSpec{
		Path:  Path,
		Title: "DNSDB Passive DNS",
		Component: func() tea.Model {
			return overview(ui.Preferences(host.Prefs, Namespace.Name))
		},
	})
	if err != nil {
		return err
	}
	if err := host.Registry.RegisterRoute("dnsdb", route); err != nil {
		return err
	}

	nav, err := contrib.NewNavigation("DNSDB", Path, "Passive DNS")
	if err != nil {
		return err
	}
	if err := host.Registry.RegisterNavigation("dnsdb", nav); err != nil {
		return err
	}

	menus := []struct {
		name     string
		category contrib.Category
		kind     string
	}{
		{"dnsdb_tld", contrib.CategoryTLD, "domain"},
		{"dnsdb_domain", contrib.CategoryDomain, "domain"},
		{"dnsdb_ip", contrib.CategoryIP, "ip"},
	}
	for _, m := range menus {
		kind := m.kind
		action, err := contrib.NewMenuAction(m.category, "Search DNSDB", contrib.Target{
			PathFunc: func(v string) string { return SearchPath(kind, v) },
		}, false)
		if err != nil {
			return err
		}
		if err := host.Registry.RegisterMenuAction(m.name, m.category, action); err != nil {
			return err
		}
	}
	return nil
}

// SearchPath links to a DNSDB search for value, where kind is "domain" or "ip".
func SearchPath(kind, value string) string {
	q := url.Values{}
	q.Set("type", kind)
	q.Set("value", value)
	return Path + "?" + q.Encode()
}

func overview(p ui.Prefs) tui.Page {
	pageSize := "100"
	if p.Bool("remember_page_size") {
		pageSize = fmt.Sprintf("%g", p.Number("page_size"))
	}
	searchType := "prefix-wildcard"
	if p.Bool("remember_domain_search_type") {
		if s := p.String("domain_search_type"); s != "" {
			searchType = s
		}
	}
	return tui.NewPage("DNSDB Passive DNS",
		"Search passive DNS from the menu of any domain or IP value.",
		"Page size: "+pageSize,
		"Domain search type: "+searchType,
	)
}

package whois

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/tldr-it-stepankutaj/whodat/internal/contrib"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules"
	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/registry"
	"github.com/tldr-it-stepankutaj/whodat/internal/storage/memstore"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

func loadHost(t *testing.T) *modules.Host {
	t.Helper()
	schema := prefs.NewSchema()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	host := &modules.Host{
		Registry: registry.New(),
		Schema:   schema,
		Prefs:    prefs.NewStore(schema, memstore.New(), logger),
		Logger:   logger,
	}
	if _, err := modules.Load(context.Background(), host, New()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := host.Prefs.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return host
}

func TestRegisterPreferences(t *testing.T) {
	host := loadHost(t)
	got, err := host.Prefs.GetAll("whois")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	want := map[string]any{
		"fang":               true,
		"page_size":          float64(50),
		"remember_page_size": true,
		"details_colon":      false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestPivotMenus(t *testing.T) {
	host := loadHost(t)
	tests := []struct {
		category contrib.Category
		value    string
		want     string
	}{
		{contrib.CategoryDomain, "example.com", `/whois?query=dn%3A%22example.com%22`},
		{contrib.CategoryTLD, "example.com", `/whois?query=dn%3A%22example.com%22`},
		{contrib.CategoryRegistrant, "Jane Doe", `/whois?query=registrant_name%3A%22Jane+Doe%22`},
		{contrib.CategoryEmail, "a@b.c", `/whois?query=contactEmail%3A%22a%40b.c%22`},
		{contrib.CategoryTelephone, "+1.555", `/whois?query=registrant_telephone%3A%22%2B1.555%22`},
		{contrib.CategoryRegistrant, `a"b\c`, `/whois?query=registrant_name%3A%22a%22b%5Cc%22`},
	}
	for _, tt := range tests {
		items := ui.MenuFor(host.Registry, tt.category, tt.value)
		if len(items) != 1 {
			t.Errorf("%s: expected 1 menu item, got %d", tt.category, len(items))
			continue
		}
		if items[0].Label != "Pivot Search" || items[0].Href != tt.want {
			t.Errorf("%s: got %q -> %q, want Pivot Search -> %q", tt.category, items[0].Label, items[0].Href, tt.want)
		}
	}
	if n := len(ui.MenuFor(host.Registry, contrib.CategoryIP, "1.2.3.4")); n != 0 {
		t.Errorf("expected no ip pivot, got %d", n)
	}
}

func TestRouteAndNavigation(t *testing.T) {
	host := loadHost(t)
	e, ok := ui.MatchRoute(host.Registry, `/whois?query=dn:"example.com"`)
	if !ok || e.Name != "whois" {
		t.Fatalf("expected whois route, got %q, %v", e.Name, ok)
	}
	opts := e.Value.Options()
	if len(opts) != 1 || opts[0].Label() != "Help" {
		t.Fatalf("expected Help option, got %+v", opts)
	}
	if !strings.Contains(opts[0].Dialog()().View(), "WhoIs Search Help") {
		t.Error("help dialog has unexpected content")
	}

	nav := ui.Navigation(host.Registry)
	if len(nav) != 1 || nav[0].Value.Title() != "WhoIs" || nav[0].Value.Path() != Path {
		t.Errorf("unexpected navigation: %+v", nav)
	}
}

func TestDefang(t *testing.T) {
	if got := Defang("www[.]example[.]com"); got != "www.example.com" {
		t.Errorf("Defang = %q", got)
	}
	if got := Defang("example.com"); got != "example.com" {
		t.Errorf("Defang changed a clean query: %q", got)
	}
}

func typeQuery(m tea.Model, q string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(q)})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestSearchHonorsFang(t *testing.T) {
	host := loadHost(t)
	e, _ := ui.MatchRoute(host.Registry, Path)

	m := typeQuery(e.Value.Component()(), `dn:"example[.]com"`)
	if !strings.Contains(m.View(), "Search: "+SearchPath(`dn:"example.com"`)) {
		t.Errorf("expected defanged search, got:\n%s", m.View())
	}

	if err := host.Prefs.Set(context.Background(), "whois", "fang", false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	m = typeQuery(e.Value.Component()(), `dn:"example[.]com"`)
	if !strings.Contains(m.View(), "Search: "+SearchPath(`dn:"example[.]com"`)) {
		t.Errorf("expected raw query with fang off, got:\n%s", m.View())
	}
}

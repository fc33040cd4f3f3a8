package dnsdb

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

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

func TestSearchMenus(t *testing.T) {
	host := loadHost(t)
	tests := []struct {
		category contrib.Category
		value    string
		want     string
	}{
		{contrib.CategoryTLD, "example.com", "/passive/dnsdb?type=domain&value=example.com"},
		{contrib.CategoryDomain, "www.example.com", "/passive/dnsdb?type=domain&value=www.example.com"},
		{contrib.CategoryIP, "10.0.0.1", "/passive/dnsdb?type=ip&value=10.0.0.1"},
	}
	for _, tt := range tests {
		items := ui.MenuFor(host.Registry, tt.category, tt.value)
		if len(items) != 1 || items[0].Label != "Search DNSDB" || items[0].Href != tt.want {
			t.Errorf("%s: unexpected menu %+v, want href %q", tt.category, items, tt.want)
		}
	}
}

func TestRouteHonorsPageSize(t *testing.T) {
	host := loadHost(t)
	e, ok := ui.MatchRoute(host.Registry, "/passive/dnsdb?type=ip&value=10.0.0.1")
	if !ok {
		t.Fatal("expected dnsdb route")
	}
	if view := e.Value.Component()().View(); !strings.Contains(view, "Page size: 50") {
		t.Errorf("expected remembered page size, got:\n%s", view)
	}

	if err := host.Prefs.Set(context.Background(), "dnsdb", "remember_page_size", false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if view := e.Value.Component()().View(); !strings.Contains(view, "Page size: 100") {
		t.Errorf("expected fallback page size, got:\n%s", view)
	}
}

func TestNavigationLabel(t *testing.T) {
	host := loadHost(t)
	nav := ui.Navigation(host.Registry)
	if len(nav) != 1 || nav[0].Value.Label() != "Passive DNS" {
		t.Errorf("unexpected navigation: %+v", nav)
	}
}

package settings

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/modules"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules/activeres"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules/whois"
	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/registry"
	"github.com/tldr-it-stepankutaj/whodat/internal/storage/memstore"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

func TestContributions(t *testing.T) {
	schema := prefs.NewSchema()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	host := &modules.Host{
		Registry: registry.New(),
		Schema:   schema,
		Prefs:    prefs.NewStore(schema, memstore.New(), logger),
		Logger:   logger,
	}
	mods := []modules.Module{whois.New(), activeres.New(activeres.NewResolver("", 0), 0), New()}
	if _, err := modules.Load(context.Background(), host, mods...); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := host.Prefs.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	opts := host.Registry.ListOptions()
	if len(opts) != 1 || opts[0].Value.Label() != "User Preferences" {
		t.Fatalf("unexpected options: %+v", opts)
	}
	drawer := host.Registry.ListDrawerItems()
	if len(drawer) != 1 || drawer[0].Value.Path() != Path {
		t.Fatalf("unexpected drawer: %+v", drawer)
	}
	if _, ok := ui.MatchRoute(host.Registry, drawer[0].Value.Path()); !ok {
		t.Error("drawer item must point at a registered route")
	}

	view := opts[0].Value.Dialog()().View()
	for _, want := range []string{"Whois Search Preferences", "De-fang Queries", "General PyDat Preferences"} {
		if !strings.Contains(view, want) {
			t.Errorf("settings view missing %q:\n%s", want, view)
		}
	}

	m := opts[0].Value.Dialog()()
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if v, _ := host.Prefs.Get("whois", "fang"); v != false {
		t.Errorf("expected first toggle to flip whois:fang, got %v", v)
	}
}

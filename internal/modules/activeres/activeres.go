package activeres

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/contrib"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules"
	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

var Namespace = prefs.Namespace{
	Name:        "general",
	Title:       "General PyDat Preferences",
	Description: "General Preferences across the PyDat Search",
}

// ConfirmPreference gates the confirmation prompt before any active query.
var ConfirmPreference = prefs.Preference{
	Name:        "ar_confirm",
	Type:        prefs.TypeBoolean,
	Title:       "Prompt/Confirm before making Active queries",
	Description: "To prevent accidental dns queries, whodat will confirm before making requests. Toggle this to disable that confirmation",
	Default:     true,
}

// Module adds the "Actively Resolve" dialog to domain values.
type Module struct {
	resolver Lookuper
	timeout  time.Duration
}

// New resolves through r; each lookup run is bounded by timeout.
func New(r Lookuper, timeout time.Duration) Module {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return Module{resolver: r, timeout: timeout}
}

func (Module) Name() string        { return "activeres" }
func (Module) Description() string { return "Active DNS resolution of domain values, behind a confirmation prompt" }

func (m Module) Register(host *modules.Host) error {
	if err := host.Schema.RegisterNamespace(Namespace); err != nil {
		return err
	}
	if err := host.Schema.RegisterPreference(Namespace, ConfirmPreference); err != nil {
		return err
	}

	target := contrib.Target{
		Dialog: func(domain string) tea.Model {
			return NewDialog(context.Background(), ui.Preferences(host.Prefs, Namespace.Name), m.resolver, domain, m.timeout)
		},
	}
	for _, c := range []contrib.Category{contrib.CategoryDomain, contrib.CategoryTLD} {
		action, err := contrib.NewMenuAction(c, "Actively Resolve", target, false)
		if err != nil {
			return err
		}
		if err := host.Registry.RegisterMenuAction("active_resolution", c, action); err != nil {
			return err
		}
	}
	return nil
}

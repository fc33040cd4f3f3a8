package settings

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tldr-it-stepankutaj/whodat/internal/contrib"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules"
	"github.com/tldr-it-stepankutaj/whodat/internal/tui"
)

const Path = "/preferences"

// Module exposes the preferences view as a global option, a route and a
// drawer link.
type Module struct{}

func New() Module { return Module{} }

func (Module) Name() string        { return "settings" }
func (Module) Description() string { return "User preferences view" }

func (Module) Register(host *modules.Host) error {
	view := func() tea.Model {
		return tui.NewSettings(context.Background(), host.Schema, host.Prefs)
	}

	opt, err := contrib.NewOption(contrib.OptionSpec{
		Icon:    "@",
		Label:   "User Preferences",
		Tooltip: "Change and reset user preferences",
		Dialog:  view,
	})
	if err != nil {
		return err
	}
	if err := host.Registry.RegisterOption("preferences", opt); err != nil {
		return err
	}

	route, err := contrib.NewRoute(contrib.RouteSpec{Path: Path, Title: "User Preferences", Component: view})
	if err != nil {
		return err
	}
	if err := host.Registry.RegisterRoute("preferences", route); err != nil {
		return err
	}

	item, err := contrib.NewDrawerItem("Preferences", "@", Path)
	if err != nil {
		return err
	}
	return host.Registry.RegisterDrawerItem("preferences", item)
}

package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tldr-it-stepankutaj/whodat/internal/ctxlog"
	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/registry"
)

// Module is a feature module (whois, dnsdb, ...). During start-up it
// declares its preferences and contributes to the extension points.
type Module interface {
	// Name returns a unique identifier for the module.
	Name() string
	// Description returns a short human-readable description.
	Description() string
	// Register adds the module's contributions to host.
	Register(host *Host) error
}

// Host is what a module sees while registering. Prefs is not initialized
// yet; modules may only capture it for later use.
type Host struct {
	Registry *registry.Registry
	Schema   *prefs.Schema
	Prefs    *prefs.Store
	Logger   *slog.Logger
}

// Set stores the loaded modules in load order.
type Set struct {
	order   []string
	modules map[string]Module
}

func NewSet() *Set {
	return &Set{modules: make(map[string]Module)}
}

// Add records m. Two modules may not share a name.
func (s *Set) Add(m Module) error {
	if _, ok := s.modules[m.Name()]; ok {
		return fmt.Errorf("module %q loaded twice", m.Name())
	}
	s.order = append(s.order, m.Name())
	s.modules[m.Name()] = m
	return nil
}

func (s *Set) Get(name string) (Module, bool) {
	m, ok := s.modules[name]
	return m, ok
}

func (s *Set) All() []Module {
	out := make([]Module, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.modules[n])
	}
	return out
}

// Load registers every module in order and then seals the registry and the
// preference schema. It stops at the first failure and leaves both open in
// that case.
func Load(ctx context.Context, host *Host, mods ...Module) (*Set, error) {
	logger := host.Logger
	if logger == nil {
		logger = ctxlog.FromContext(ctx)
	}
	set := NewSet()
	for _, m := range mods {
		if err := set.Add(m); err != nil {
			return nil, err
		}
		if err := m.Register(host); err != nil {
			return nil, fmt.Errorf("register module %s: %w", m.Name(), err)
		}
		logger.Debug("module registered", "module", m.Name())
	}
	host.Registry.Seal()
	host.Schema.Seal()
	logger.Debug("registry sealed", "modules", len(mods))
	return set, nil
}

package prefs

import (
	"fmt"
	"strings"
	"sync"
)

// Namespace groups the preferences of one feature module.
type Namespace struct {
	Name        string
	Title       string
	Description string
}

// Preference declares one user-configurable setting. Internal preferences
// are stored like any other but never shown in the settings view.
type Preference struct {
	Name        string
	Type        Type
	Title       string
	Description string
	Default     any
	Internal    bool
}

// Schema is the set of declared namespaces and preferences. Feature modules
// fill it during start-up; the Store reads it afterwards.
type Schema struct {
	mu         sync.RWMutex
	namespaces []Namespace
	byName     map[string]Namespace
	prefs      map[string][]Preference
	sealed     bool
}

func NewSchema() *Schema {
	return &Schema{
		byName: make(map[string]Namespace),
		prefs:  make(map[string][]Preference),
	}
}

// RegisterNamespace adds ns. Registering a name that already exists is a
// no-op; the first registration wins.
func (s *Schema) RegisterNamespace(ns Namespace) error {
	ns.Name = strings.TrimSpace(ns.Name)
	if ns.Name == "" {
		return fmt.Errorf("preference namespace name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return fmt.Errorf("%w: namespace %q", ErrSchemaSealed, ns.Name)
	}
	if _, ok := s.byName[ns.Name]; ok {
		return nil
	}
	s.byName[ns.Name] = ns
	s.namespaces = append(s.namespaces, ns)
	s.prefs[ns.Name] = nil
	return nil
}

// RegisterPreference declares p inside ns. A later declaration with the
// same name replaces the earlier one.
func (s *Schema) RegisterPreference(ns Namespace, p Preference) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("preference name is required")
	}
	if _, err := ParseType(string(p.Type)); err != nil {
		return fmt.Errorf("preference %s:%s: %w", ns.Name, p.Name, err)
	}
	if p.Default != nil {
		def, err := p.Type.coerce(p.Default)
		if err != nil {
			return fmt.Errorf("preference %s:%s default: %w", ns.Name, p.Name, err)
		}
		p.Default = def
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return fmt.Errorf("%w: preference %s:%s", ErrSchemaSealed, ns.Name, p.Name)
	}
	if _, ok := s.byName[ns.Name]; !ok {
		return fmt.Errorf("%w: %q must be registered before adding preference %q", ErrUnknownNamespace, ns.Name, p.Name)
	}
	list := s.prefs[ns.Name]
	for i := range list {
		if list[i].Name == p.Name {
			list[i] = p
			return nil
		}
	}
	s.prefs[ns.Name] = append(list, p)
	return nil
}

// RegisterPreferences declares each of ps in order and stops at the first error.
func (s *Schema) RegisterPreferences(ns Namespace, ps []Preference) error {
	for _, p := range ps {
		if err := s.RegisterPreference(ns, p); err != nil {
			return err
		}
	}
	return nil
}

// Seal ends the declaration phase. Later Register calls fail with
// ErrSchemaSealed.
func (s *Schema) Seal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed = true
}

// Sealed reports whether Seal has been called.
func (s *Schema) Sealed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealed
}

// Namespaces returns the registered namespaces in registration order.
func (s *Schema) Namespaces() []Namespace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Namespace(nil), s.namespaces...)
}

// Namespace looks up a registered namespace by name.
func (s *Schema) Namespace(name string) (Namespace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns, ok := s.byName[name]
	return ns, ok
}

// Preferences returns the declarations of ns in registration order.
func (s *Schema) Preferences(ns string) []Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Preference(nil), s.prefs[ns]...)
}

// Visible returns the declarations of ns that the settings view may show.
func (s *Schema) Visible(ns string) []Preference {
	var out []Preference
	for _, p := range s.Preferences(ns) {
		if !p.Internal {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the declaration of ns:name. The first error is
// ErrUnregisteredNamespace or ErrUnregisteredPreference.
func (s *Schema) Lookup(ns, name string) (Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.byName[ns]; !ok {
		return Preference{}, fmt.Errorf("%w: %s", ErrUnregisteredNamespace, ns)
	}
	for _, p := range s.prefs[ns] {
		if p.Name == name {
			return p, nil
		}
	}
	return Preference{}, fmt.Errorf("%w: %s:%s", ErrUnregisteredPreference, ns, name)
}

// Defaults returns namespace -> name -> default for every declaration.
func (s *Schema) Defaults() map[string]map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]map[string]any, len(s.byName))
	for ns, list := range s.prefs {
		vals := make(map[string]any, len(list))
		for _, p := range list {
			vals[p.Name] = clone(p.Default)
		}
		out[ns] = vals
	}
	return out
}

package ui

import (
	"context"

	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
)

// Prefs is a preference accessor bound to one namespace.
type Prefs struct {
	store *prefs.Store
	ns    string
}

func Preferences(store *prefs.Store, ns string) Prefs {
	return Prefs{store: store, ns: ns}
}

func (p Prefs) Namespace() string { return p.ns }

func (p Prefs) Get(name string) (any, error) { return p.store.Get(p.ns, name) }

func (p Prefs) GetAll() (map[string]any, error) { return p.store.GetAll(p.ns) }

func (p Prefs) Set(ctx context.Context, name string, v any) error {
	return p.store.Set(ctx, p.ns, name, v)
}

// Bool returns the value of name, or false when it is unset, undeclared or
// not a boolean.
func (p Prefs) Bool(name string) bool {
	v, _ := p.Get(name)
	b, _ := v.(bool)
	return b
}

// Number is Bool for numbers.
func (p Prefs) Number(name string) float64 {
	v, _ := p.Get(name)
	f, _ := v.(float64)
	return f
}

// String is Bool for strings.
func (p Prefs) String(name string) string {
	v, _ := p.Get(name)
	s, _ := v.(string)
	return s
}

package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tldr-it-stepankutaj/whodat/internal/contrib"
)

// ErrRegistryClosed is returned by every Register call made after Seal.
var ErrRegistryClosed = errors.New("registry is sealed")

// Entry is a named contribution as returned by the List methods.
type Entry[T any] struct {
	Name  string
	Value T
}

// ordered is a name-keyed collection that remembers first-insertion order.
// Re-adding a name replaces the value in place.
type ordered[T any] struct {
	names  []string
	values map[string]T
}

func newOrdered[T any]() *ordered[T] {
	return &ordered[T]{values: make(map[string]T)}
}

func (o *ordered[T]) put(name string, v T) {
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = v
}

func (o *ordered[T]) get(name string) (T, bool) {
	v, ok := o.values[name]
	return v, ok
}

func (o *ordered[T]) list() []Entry[T] {
	out := make([]Entry[T], 0, len(o.names))
	for _, n := range o.names {
		out = append(out, Entry[T]{Name: n, Value: o.values[n]})
	}
	return out
}

func (o *ordered[T]) len() int { return len(o.names) }

// Registry holds every contribution made by feature modules, one container
// per extension point. Menu actions are further grouped by category.
type Registry struct {
	mu     sync.RWMutex
	sealed bool

	routes  *ordered[contrib.Route]
	nav     *ordered[contrib.Navigation]
	menu    map[contrib.Category]*ordered[contrib.MenuAction]
	options *ordered[contrib.Option]
	drawer  *ordered[contrib.DrawerItem]
}

// New returns an empty registry with every menu category pre-seeded.
func New() *Registry {
	r := &Registry{
		routes:  newOrdered[contrib.Route](),
		nav:     newOrdered[contrib.Navigation](),
		menu:    make(map[contrib.Category]*ordered[contrib.MenuAction]),
		options: newOrdered[contrib.Option](),
		drawer:  newOrdered[contrib.DrawerItem](),
	}
	for _, c := range contrib.Categories() {
		r.menu[c] = newOrdered[contrib.MenuAction]()
	}
	return r
}

func checkName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s name is required", contrib.ErrInvalidContribution, kind)
	}
	return nil
}

// lockForWrite takes the write lock and fails if registration is over.
// The caller must unlock on success.
func (r *Registry) lockForWrite() error {
	r.mu.Lock()
	if r.sealed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}
	return nil
}

// RegisterRoute adds or replaces the route stored under name.
func (r *Registry) RegisterRoute(name string, route contrib.Route) error {
	if err := checkName("route", name); err != nil {
		return err
	}
	if err := route.Validate(); err != nil {
		return fmt.Errorf("register route %q: %w", name, err)
	}
	if err := r.lockForWrite(); err != nil {
		return fmt.Errorf("register route %q: %w", name, err)
	}
	defer r.mu.Unlock()
	r.routes.put(name, route)
	return nil
}

// RegisterNavigation adds or replaces the navigation link stored under name.
func (r *Registry) RegisterNavigation(name string, nav contrib.Navigation) error {
	if err := checkName("navigation", name); err != nil {
		return err
	}
	if err := nav.Validate(); err != nil {
		return fmt.Errorf("register navigation %q: %w", name, err)
	}
	if err := r.lockForWrite(); err != nil {
		return fmt.Errorf("register navigation %q: %w", name, err)
	}
	defer r.mu.Unlock()
	r.nav.put(name, nav)
	return nil
}

// RegisterMenuAction files action under menu[category][name]. The category
// argument wins over the one the action was built with, so one action can be
// filed under several categories.
func (r *Registry) RegisterMenuAction(name string, category contrib.Category, action contrib.MenuAction) error {
	if !category.Valid() {
		return fmt.Errorf("register menu action %q: %w: %q", name, contrib.ErrInvalidCategory, category)
	}
	if err := checkName("menu action", name); err != nil {
		return err
	}
	if err := action.Validate(); err != nil {
		return fmt.Errorf("register menu action %q: %w", name, err)
	}
	if err := r.lockForWrite(); err != nil {
		return fmt.Errorf("register menu action %q: %w", name, err)
	}
	defer r.mu.Unlock()
	r.menu[category].put(name, action.WithCategory(category))
	return nil
}

// RegisterOption adds or replaces the toolbar option stored under name.
func (r *Registry) RegisterOption(name string, opt contrib.Option) error {
	if err := checkName("option", name); err != nil {
		return err
	}
	if err := opt.Validate(); err != nil {
		return fmt.Errorf("register option %q: %w", name, err)
	}
	if err := r.lockForWrite(); err != nil {
		return fmt.Errorf("register option %q: %w", name, err)
	}
	defer r.mu.Unlock()
	r.options.put(name, opt)
	return nil
}

// RegisterDrawerItem adds or replaces the drawer item stored under name.
func (r *Registry) RegisterDrawerItem(name string, item contrib.DrawerItem) error {
	if err := checkName("drawer item", name); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("register drawer item %q: %w", name, err)
	}
	if err := r.lockForWrite(); err != nil {
		return fmt.Errorf("register drawer item %q: %w", name, err)
	}
	defer r.mu.Unlock()
	r.drawer.put(name, item)
	return nil
}

// Seal ends the registration phase. It is safe to call more than once.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

func (r *Registry) ListRoutes() []Entry[contrib.Route] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.routes.list()
}

func (r *Registry) ListNavigation() []Entry[contrib.Navigation] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nav.list()
}

func (r *Registry) ListOptions() []Entry[contrib.Option] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.options.list()
}

func (r *Registry) ListDrawerItems() []Entry[contrib.DrawerItem] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.drawer.list()
}

// ListMenuActions returns the actions filed under category in registration
// order. An unknown category yields an empty slice.
func (r *Registry) ListMenuActions(category contrib.Category) []Entry[contrib.MenuAction] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.menu[category]
	if !ok {
		return []Entry[contrib.MenuAction]{}
	}
	return m.list()
}

func (r *Registry) Route(name string) (contrib.Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.routes.get(name)
}

func (r *Registry) MenuAction(category contrib.Category, name string) (contrib.MenuAction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.menu[category]
	if !ok {
		return contrib.MenuAction{}, false
	}
	return m.get(name)
}

// Snapshot counts the contributions per extension point.
type Snapshot struct {
	Routes     int
	Navigation int
	Options    int
	Drawer     int
	Menu       map[contrib.Category]int
	Sealed     bool
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := Snapshot{
		Routes:     r.routes.len(),
		Navigation: r.nav.len(),
		Options:    r.options.len(),
		Drawer:     r.drawer.len(),
		Menu:       make(map[contrib.Category]int, len(r.menu)),
		Sealed:     r.sealed,
	}
	for c, m := range r.menu {
		s.Menu[c] = m.len()
	}
	return s
}

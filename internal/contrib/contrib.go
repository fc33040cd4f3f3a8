package contrib

import (
	"fmt"
	"maps"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Category is the kind of value a menu action applies to.
type Category string

const (
	CategoryDomain     Category = "domain"
	CategoryIP         Category = "ip"
	CategoryEmail      Category = "email"
	CategoryTelephone  Category = "telephone"
	CategoryRegistrant Category = "registrant"
	CategoryTLD        Category = "tld"
)

var categories = []Category{
	CategoryDomain,
	CategoryIP,
	CategoryEmail,
	CategoryTelephone,
	CategoryRegistrant,
	CategoryTLD,
}

// Categories returns the fixed set of menu categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	for _, k := range categories {
		if c == k {
			return true
		}
	}
	return false
}

// ParseCategory converts s into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidCategory, s, joinCategories())
	}
	return c, nil
}

func joinCategories() string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Component builds the view a contribution embeds (a route body, an option
// dialog, a menu dialog).
type Component func() tea.Model

// Route is a page contributed to the application router.
type Route struct {
	path      string
	title     string
	component Component
	extra     map[string]any
	options   []Option
}

// RouteSpec carries the fields accepted by NewRoute.
type RouteSpec struct {
	Path      string
	Title     string
	Component Component
	Extra     map[string]any
	Options   []Option
}

// NewRoute validates spec and returns an immutable Route.
func NewRoute(spec RouteSpec) (Route, error) {
	r := Route{
		path:      strings.TrimSpace(spec.Path),
		title:     strings.TrimSpace(spec.Title),
		component: spec.Component,
		extra:     maps.Clone(spec.Extra),
		options:   append([]Option(nil), spec.Options...),
	}
	if r.extra == nil {
		r.extra = map[string]any{}
	}
	if err := r.Validate(); err != nil {
		return Route{}, err
	}
	return r, nil
}

// Validate checks the route shape.
func (r Route) Validate() error {
	if r.path == "" {
		return invalid("route", "path is required")
	}
	if !strings.HasPrefix(r.path, "/") {
		return invalid("route", fmt.Sprintf("path %q must start with /", r.path))
	}
	if r.title == "" {
		return invalid("route", "title is required")
	}
	if r.component == nil {
		return invalid("route", "component is required")
	}
	for i, o := range r.options {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("route %s option %d: %w", r.path, i, err)
		}
	}
	return nil
}

func (r Route) Path() string         { return r.path }
func (r Route) Title() string        { return r.title }
func (r Route) Component() Component { return r.component }

// Extra returns a copy of the extra props handed to the component.
func (r Route) Extra() map[string]any { return maps.Clone(r.extra) }

// Options returns a copy of the route's toolbar options, in order.
func (r Route) Options() []Option { return append([]Option(nil), r.options...) }

// Navigation is a link shown in the navigation bar.
type Navigation struct {
	title string
	path  string
	label string
}

// NewNavigation validates and returns a Navigation. Label defaults to title.
func NewNavigation(title, path, label string) (Navigation, error) {
	n := Navigation{
		title: strings.TrimSpace(title),
		path:  strings.TrimSpace(path),
		label: strings.TrimSpace(label),
	}
	if n.label == "" {
		n.label = n.title
	}
	if err := n.Validate(); err != nil {
		return Navigation{}, err
	}
	return n, nil
}

func (n Navigation) Validate() error {
	if n.title == "" {
		return invalid("navigation", "title is required")
	}
	if n.path == "" {
		return invalid("navigation", "path is required")
	}
	return nil
}

func (n Navigation) Title() string { return n.title }
func (n Navigation) Path() string  { return n.path }
func (n Navigation) Label() string { return n.label }

// Target is what a menu action does when chosen: link to a static path,
// link to a path computed from the clicked value, or open a dialog.
type Target struct {
	Path     string
	PathFunc func(value string) string
	Dialog   func(value string) tea.Model
}

// IsDialog reports whether the target opens a dialog instead of linking.
func (t Target) IsDialog() bool {
	return t.Dialog != nil && t.Path == "" && t.PathFunc == nil
}

// Resolve returns the concrete link for value. Dialog targets resolve to "".
func (t Target) Resolve(value string) string {
	if t.PathFunc != nil {
		return t.PathFunc(value)
	}
	return t.Path
}

func (t Target) empty() bool {
	return t.Path == "" && t.PathFunc == nil && t.Dialog == nil
}

// MenuAction is an entry in the drop-down menu of a clicked value.
type MenuAction struct {
	category Category
	label    string
	target   Target
	external bool
}

// NewMenuAction validates and returns a MenuAction for category.
func NewMenuAction(category Category, label string, target Target, external bool) (MenuAction, error) {
	if !category.Valid() {
		return MenuAction{}, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	m := MenuAction{
		category: category,
		label:    strings.TrimSpace(label),
		target:   target,
		external: external,
	}
	if err := m.Validate(); err != nil {
		return MenuAction{}, err
	}
	return m, nil
}

func (m MenuAction) Validate() error {
	if m.label == "" {
		return invalid("menu action", "label is required")
	}
	if m.target.empty() {
		return invalid("menu action", "target needs a path, a path function or a dialog")
	}
	return nil
}

// WithCategory returns a copy of m filed under c.
func (m MenuAction) WithCategory(c Category) MenuAction {
	m.category = c
	return m
}

func (m MenuAction) Category() Category { return m.category }
func (m MenuAction) Label() string      { return m.label }
func (m MenuAction) Target() Target     { return m.target }
func (m MenuAction) External() bool     { return m.external }

// Option is a toolbar button. It either runs OnActivate or opens Dialog.
type Option struct {
	icon       string
	label      string
	tooltip    string
	onActivate func() tea.Cmd
	dialog     Component
}

// OptionSpec carries the fields accepted by NewOption.
type OptionSpec struct {
	Icon       string
	Label      string
	Tooltip    string
	OnActivate func() tea.Cmd
	Dialog     Component
}

// NewOption validates spec and returns an Option.
func NewOption(spec OptionSpec) (Option, error) {
	o := Option{
		icon:       spec.Icon,
		label:      strings.TrimSpace(spec.Label),
		tooltip:    spec.Tooltip,
		onActivate: spec.OnActivate,
		dialog:     spec.Dialog,
	}
	if err := o.Validate(); err != nil {
		return Option{}, err
	}
	return o, nil
}

func (o Option) Validate() error {
	if o.label == "" {
		return invalid("option", "label is required")
	}
	if (o.onActivate == nil) == (o.dialog == nil) {
		return invalid("option", "exactly one of OnActivate and Dialog must be set")
	}
	return nil
}

func (o Option) Icon() string               { return o.icon }
func (o Option) Label() string              { return o.label }
func (o Option) Tooltip() string            { return o.tooltip }
func (o Option) OnActivate() func() tea.Cmd { return o.onActivate }
func (o Option) Dialog() Component          { return o.dialog }

// DrawerItem is a link in the side drawer.
type DrawerItem struct {
	label string
	icon  string
	path  string
}

// NewDrawerItem validates and returns a DrawerItem.
func NewDrawerItem(label, icon, path string) (DrawerItem, error) {
	d := DrawerItem{
		label: strings.TrimSpace(label),
		icon:  icon,
		path:  strings.TrimSpace(path),
	}
	if err := d.Validate(); err != nil {
		return DrawerItem{}, err
	}
	return d, nil
}

func (d DrawerItem) Validate() error {
	if d.label == "" {
		return invalid("drawer item", "label is required")
	}
	if d.path == "" {
		return invalid("drawer item", "path is required")
	}
	return nil
}

func (d DrawerItem) Label() string { return d.label }
func (d DrawerItem) Icon() string  { return d.icon }
func (d DrawerItem) Path() string  { return d.path }

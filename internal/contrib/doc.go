// Package contrib defines the contribution types feature modules hand to the
// registry: routes, navigation links, per-category menu actions, toolbar
// options and drawer items.
//
// Every type has a constructor that validates its input. Fields are
// unexported so a contribution cannot change after it has been built.
package contrib

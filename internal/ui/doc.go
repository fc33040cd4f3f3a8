// Package ui is the read side of the registry and the preference store: the
// helpers views use to build menus, match routes and show settings.
package ui

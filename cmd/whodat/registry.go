package whodat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tldr-it-stepankutaj/whodat/internal/contrib"
	"github.com/tldr-it-stepankutaj/whodat/internal/tui"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

// `registry` subcommand: what every loaded module contributed.
var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Summarize loaded modules and their contributions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Modules:")
		for _, m := range sess.modules.All() {
			fmt.Fprintf(out, "  %s - %s\n", m.Name(), m.Description())
		}

		snap := sess.Registry.Snapshot()
		fmt.Fprintf(out, "\nRoutes: %d  Navigation: %d  Options: %d  Drawer: %d  Sealed: %t\n",
			snap.Routes, snap.Navigation, snap.Options, snap.Drawer, snap.Sealed)
		fmt.Fprintln(out, "Menu actions:")
		for _, c := range contrib.Categories() {
			fmt.Fprintf(out, "  %-10s %d\n", c, snap.Menu[c])
		}

		fmt.Fprintln(out, "\nPreference namespaces:")
		for _, ns := range sess.Schema.Namespaces() {
			fmt.Fprintf(out, "  %s - %s (%d)\n", ns.Name, ns.Title, len(sess.Schema.Preferences(ns.Name)))
		}
		return nil
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		out := cmd.OutOrStdout()
		for _, e := range ui.Routes(sess.Registry) {
			fmt.Fprintf(out, "[%s] %s - %s\n", e.Name, e.Value.Path(), e.Value.Title())
			for _, o := range e.Value.Options() {
				fmt.Fprintf(out, "    option: %s\n", o.Label())
			}
		}
		return nil
	},
}

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "List navigation links",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		for _, e := range ui.Navigation(sess.Registry) {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s -> %s (%s)\n", e.Name, e.Value.Title(), e.Value.Path(), e.Value.Label())
		}
		return nil
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List global options and drawer items",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		out := cmd.OutOrStdout()
		for _, e := range sess.Registry.ListOptions() {
			fmt.Fprintf(out, "[option:%s] %s %s\n", e.Name, e.Value.Icon(), e.Value.Label())
		}
		for _, e := range sess.Registry.ListDrawerItems() {
			fmt.Fprintf(out, "[drawer:%s] %s %s -> %s\n", e.Name, e.Value.Icon(), e.Value.Label(), e.Value.Path())
		}
		return nil
	},
}

// `menu` subcommand: the drop-down for one value.
var menuCmd = &cobra.Command{
	Use:   "menu <category> <value>",
	Short: "Show the menu actions for a value (" + categoryList() + ")",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := contrib.ParseCategory(args[0])
		if err != nil {
			return err
		}
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		if pick, _ := cmd.Flags().GetBool("pick"); pick {
			return tui.RunModel(tui.NewMenu(sess.Registry, category, args[1]))
		}

		items := ui.MenuFor(sess.Registry, category, args[1])
		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintf(out, "[-] No actions for %s values\n", category)
			return nil
		}
		for _, it := range items {
			target := it.Href
			if it.Dialog != nil {
				target = "(dialog, use --pick)"
			}
			fmt.Fprintf(out, "[%s] %s -> %s\n", it.Name, it.Label, target)
		}
		return nil
	},
}

func init() {
	menuCmd.Flags().Bool("pick", false, "Choose an action interactively")
}

func categoryList() string {
	names := make([]string, 0, len(contrib.Categories()))
	for _, c := range contrib.Categories() {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

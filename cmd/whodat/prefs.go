package whodat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
)

// `prefs` subcommand group: read and change saved preferences.
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect and change user preferences",
}

var prefsListCmd = &cobra.Command{
	Use:   "list [namespace]",
	Short: "List preferences with their current values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			if _, ok := sess.Schema.Namespace(args[0]); !ok {
				return fmt.Errorf("%w: %s", prefs.ErrUnregisteredNamespace, args[0])
			}
		}
		showInternal, _ := cmd.Flags().GetBool("all")
		for _, ns := range sess.Schema.Namespaces() {
			if len(args) == 1 && ns.Name != args[0] {
				continue
			}
			fmt.Fprintf(out, "%s - %s\n", ns.Name, ns.Title)
			for _, p := range sess.Schema.Preferences(ns.Name) {
				if p.Internal && !showInternal {
					continue
				}
				v, err := sess.Prefs.Get(ns.Name, p.Name)
				if err != nil {
					return err
				}
				typ := string(p.Type)
				if typ == "" {
					typ = "any"
				}
				fmt.Fprintf(out, "  %-28s %-8s %s\n", p.Name, typ, render(v))
			}
		}
		return nil
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <namespace> <name>",
	Short: "Print one preference value as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		v, err := sess.Prefs.Get(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render(v))
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <namespace> <name> <value>",
	Short: "Change one preference; the value is parsed by its declared type",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		p, err := sess.Schema.Lookup(args[0], args[1])
		if err != nil {
			return err
		}
		v, err := prefs.ParseValue(p.Type, args[2])
		if err != nil {
			return fmt.Errorf("preference %s:%s: %w", args[0], args[1], err)
		}
		if err := sess.Prefs.Set(sess.Ctx, args[0], args[1], v); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[+] %s:%s = %s\n", args[0], args[1], render(v))
		return nil
	},
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset every preference to its default",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		if err := sess.Prefs.Clear(sess.Ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "[+] Preferences reset to defaults")
		return nil
	},
}

var prefsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write preferences to a YAML or JSON file (default: workspace/exports/)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		output := ""
		if len(args) == 1 {
			output = args[0]
		} else {
			output = sess.Workspace.Path("exports", fmt.Sprintf("prefs-%s.yaml", sess.Now.Format("20060102-150405")))
		}

		values, err := sess.Prefs.Export()
		if err != nil {
			return err
		}
		data, err := prefs.Encode(prefs.FormatFromPath(output), values)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[+] Preferences exported: %s\n", output)
		return nil
	},
}

var prefsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load preferences from a YAML or JSON file; nothing changes if any value is invalid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		values, err := prefs.Decode(prefs.FormatFromPath(args[0]), data)
		if err != nil {
			return err
		}
		if err := sess.Prefs.Import(sess.Ctx, values); err != nil {
			return err
		}
		n := 0
		for _, vals := range values {
			n += len(vals)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[+] Imported %d preferences from %s\n", n, args[0])
		return nil
	},
}

func init() {
	prefsListCmd.Flags().Bool("all", false, "Include internal preferences")

	prefsCmd.AddCommand(prefsListCmd)
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsClearCmd)
	prefsCmd.AddCommand(prefsExportCmd)
	prefsCmd.AddCommand(prefsImportCmd)
}

// render prints a preference value the way it is stored.
func render(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

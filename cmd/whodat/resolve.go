package whodat

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tldr-it-stepankutaj/whodat/internal/modules/activeres"
	"github.com/tldr-it-stepankutaj/whodat/internal/ui"
)

// `resolve` subcommand: active resolution from the command line. It honors
// general:ar_confirm; --yes stands in for the confirmation prompt.
var resolveCmd = &cobra.Command{
	Use:   "resolve <domain>",
	Short: "Actively resolve a domain (A, AAAA, CNAME, MX, NS, TXT)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		out := cmd.OutOrStdout()

		general := ui.Preferences(sess.Prefs, activeres.Namespace.Name)
		yes, _ := cmd.Flags().GetBool("yes")
		if general.Bool(activeres.ConfirmPreference.Name) && !yes {
			return fmt.Errorf("active resolution leaks %q to outside resolvers; pass --yes or set general ar_confirm false", args[0])
		}

		fmt.Fprintf(out, "[*] Resolving %s\n", args[0])
		timeout := sess.Config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		ctx, cancel := context.WithTimeout(sess.Ctx, timeout)
		defer cancel()
		resolver := activeres.NewResolver(sess.Config.Nameserver, timeout)
		records, err := activeres.Resolve(ctx, resolver, args[0])
		if err != nil {
			return err
		}
		for _, r := range records {
			if r.Additional != "" {
				fmt.Fprintf(out, "[%s] %s -> %s (%s)\n", r.Type, r.Domain, r.Value, r.Additional)
			} else {
				fmt.Fprintf(out, "[%s] %s -> %s\n", r.Type, r.Domain, r.Value)
			}
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			name := strings.ReplaceAll(args[0], "/", "_")
			path := sess.Workspace.Path("exports", fmt.Sprintf("resolve-%s-%s.jsonl", name, sess.Now.Format("20060102-150405")))
			if err := writeJSONL(path, records); err != nil {
				fmt.Fprintf(out, "[!] failed to write results: %v\n", err)
			} else {
				fmt.Fprintf(out, "[+] Results saved: %s\n", path)
			}
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().Bool("yes", false, "Skip the confirmation required by general ar_confirm")
	resolveCmd.Flags().Bool("save", false, "Save records as JSONL under workspace/exports/")
}

func writeJSONL(path string, records []activeres.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return w.Flush()
}

package whodat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tldr-it-stepankutaj/whodat/internal/app"
	"github.com/tldr-it-stepankutaj/whodat/internal/ctxlog"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules/activeres"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules/dnsdb"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules/settings"
	"github.com/tldr-it-stepankutaj/whodat/internal/modules/whois"
	"github.com/tldr-it-stepankutaj/whodat/internal/prefs"
	"github.com/tldr-it-stepankutaj/whodat/internal/registry"
	"github.com/tldr-it-stepankutaj/whodat/internal/tui"
	"github.com/tldr-it-stepankutaj/whodat/internal/workspace"
	"github.com/tldr-it-stepankutaj/whodat/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "whodat",
	Short: "whodat: WhoIs and passive DNS pivoting workbench (CLI/TUI)",
	Long: "whodat hosts the WhoIs, DNSDB and active resolution views, their value menus and your saved preferences. " +
		"Use CLI by default or TUI with --tui.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("tui") {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			return tui.Run(sess.Context)
		}
		return cmd.Help()
	},
}

func init() {
	// Persistent flags (available to all subcommands).
	rootCmd.PersistentFlags().String("workspace", "./work", "Path to workspace root")
	rootCmd.PersistentFlags().Bool("tui", false, "Run in TUI mode")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text|json)")
	rootCmd.PersistentFlags().String("storage", app.StorageFile, "Preference storage (file|sqlite|memory)")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "Default operation timeout")
	rootCmd.PersistentFlags().String("nameserver", "", "Nameserver for active resolution (host:port, default: system)")

	// Bind flags to Viper.
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("tui", rootCmd.PersistentFlags().Lookup("tui"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("storage", rootCmd.PersistentFlags().Lookup("storage"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("nameserver", rootCmd.PersistentFlags().Lookup("nameserver"))

	// Env support: WHODAT_WORKSPACE, WHODAT_STORAGE, etc.
	viper.SetEnvPrefix("WHODAT")
	viper.AutomaticEnv()

	// Register subcommands.
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(registryCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(navCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
}

// session is everything a command needs once start-up has finished: the
// sealed registry, the declared schema and the initialized store.
type session struct {
	app.Context
	storage app.Storage
	modules *modules.Set
}

func (s *session) Close() {
	if err := s.storage.Close(); err != nil {
		s.Logger.Warn("closing storage failed", "error", err)
	}
}

// readWorkspaceConfig merges <workspace>/whodat.yaml into viper when present.
// Flags and env still take precedence.
func readWorkspaceConfig() error {
	ws := viper.GetString("workspace")
	if ws == "" {
		return nil
	}
	path := filepath.Join(ws, workspace.ConfigFile)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func builtinModules(cfg app.Config) []modules.Module {
	return []modules.Module{
		whois.New(),
		dnsdb.New(),
		activeres.New(activeres.NewResolver(cfg.Nameserver, cfg.Timeout), cfg.Timeout),
		settings.New(),
	}
}

// openSession runs start-up: config, workspace, logger, storage, module
// registration and preference initialization.
func openSession(cmd *cobra.Command) (*session, error) {
	if err := readWorkspaceConfig(); err != nil {
		return nil, err
	}
	cfg := app.MustLoadConfigFromViper()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ws, err := workspace.Ensure(cfg.Workspace)
	if err != nil {
		return nil, err
	}

	logger := app.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	storage, err := app.OpenStorage(cfg, ws)
	if err != nil {
		return nil, err
	}

	schema := prefs.NewSchema()
	store := prefs.NewStore(schema, storage, logger)
	host := &modules.Host{
		Registry: registry.New(),
		Schema:   schema,
		Prefs:    store,
		Logger:   logger,
	}
	set, err := modules.Load(ctx, host, builtinModules(cfg)...)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		_ = storage.Close()
		return nil, err
	}
	logger.Debug("session ready", "workspace", ws.Root, "storage", cfg.Storage)

	return &session{
		Context: app.Context{
			Ctx:       ctx,
			Config:    cfg,
			Workspace: ws,
			Now:       time.Now(),
			Logger:    logger,
			Registry:  host.Registry,
			Schema:    schema,
			Prefs:     store,
		},
		storage: storage,
		modules: set,
	}, nil
}

// `init` subcommand to initialize/ensure workspace structure.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize workspace structure and preference storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at: %s (storage: %s)\n", sess.Config.Workspace, sess.Config.Storage)
		return nil
	},
}

// `settings` subcommand: the preferences view on its own.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit user preferences in the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()
		return tui.RunModel(tui.NewSettings(sess.Ctx, sess.Schema, sess.Prefs))
	},
}

// `version` subcommand.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

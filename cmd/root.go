package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwhiz/internal/app"
	"github.com/abhisek/mathwhiz/internal/config"
	"github.com/abhisek/mathwhiz/internal/hints"
	"github.com/abhisek/mathwhiz/internal/llm"
	"github.com/abhisek/mathwhiz/internal/logging"
	"github.com/abhisek/mathwhiz/internal/screens"
	"github.com/abhisek/mathwhiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathwhiz",
	Short: "Arithmetic quiz for kids",
	Long:  "MathWhiz is a terminal arithmetic quiz for young children: pick the right answer out of four, earn points and beat your high score.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.Options{}, nil)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHWHIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default .env)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what every subcommand that touches player data needs.
type env struct {
	cfg   config.Config
	store *store.Store
	log   io.Closer
}

// openEnv loads .env and config, installs the logger and opens the store.
func openEnv(cmd *cobra.Command) (*env, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	if err := config.LoadDotEnv(files...); err != nil {
		return nil, err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logCloser, err := logging.Setup(cfg.LogPath(), level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		logCloser, _ = logging.Setup("", level)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	slog.Debug("Store opened", "path", dbPath)

	return &env{cfg: cfg, store: st, log: logCloser}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		slog.Warn("Failed to close store", "error", err)
	}
	_ = e.log.Close()
}

// provider builds the configured LLM provider. ErrNoProvider is returned
// unwrapped so callers can fall back to running without hints.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	return llm.NewProvider(ctx, e.cfg.LLMProvider(), e.store.EventRepo())
}

// hintService returns a hint service, or nil when hints are turned off.
// A missing or broken provider still yields a service that answers with
// the fallback message.
func (e *env) hintService(ctx context.Context) (*hints.Service, error) {
	if !e.cfg.Hints.Enabled {
		return nil, nil
	}

	provider, err := e.provider(ctx)
	if err != nil {
		if !errors.Is(err, llm.ErrNoProvider) {
			fmt.Fprintf(os.Stderr, "warning: LLM provider not available: %v\n", err)
		}
		slog.InfoContext(ctx, "Hints without provider", "error", err)
		provider = nil
	}
	return hints.NewService(provider, e.cfg.HintService(), hints.WithEventRepo(e.store.EventRepo()))
}

// deps builds the shared screen dependencies with config overrides applied.
func (e *env) deps(ctx context.Context) (*screens.Deps, error) {
	deps := screens.NewDeps(ctx, e.store.KV(), nil)
	deps.Events = e.store.EventRepo()
	deps.FeedbackDelay = e.cfg.Game.FeedbackDelay
	if tier, ok := e.cfg.TierOverride(); ok {
		deps.TierOverride = &tier
	}
	if n := e.cfg.Game.SessionLength; n != nil {
		length := *n
		deps.LengthOverride = &length
	}

	svc, err := e.hintService(ctx)
	if err != nil {
		return nil, err
	}
	deps.Hints = svc
	return deps, nil
}

// runApp launches the TUI. adjust, when set, edits the deps before start.
func runApp(cmd *cobra.Command, opts app.Options, adjust func(*screens.Deps)) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	deps, err := e.deps(ctx)
	if err != nil {
		return err
	}
	defer deps.Hints.Close()

	if adjust != nil {
		adjust(deps)
	}
	return app.Run(ctx, deps, opts)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file and MATHWHIZ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

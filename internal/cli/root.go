package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"clubroster/internal/config"
	"clubroster/internal/format"
	"clubroster/internal/seed"
	"clubroster/internal/store"
	"clubroster/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	SeedPath   string
	PrettyJSON bool

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "roster",
		Short:        "Club roster manager (TUI + read-only CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI with the sample club
  roster

  # Start from your own seed file
  roster --seed club.json

  # Scriptable commands
  roster members list --pretty
  roster tags list --grouped

  # Convert a seed file to SQLite
  roster --seed club.json seed export --out club.sqlite

  # Markdown pages for the roster
  roster publish --to ./site

  # Key bindings and file formats
  roster docs keys --raw
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		if strings.TrimSpace(app.SeedPath) == "" {
			app.SeedPath = cfg.Seed
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.SeedPath, "seed", envOr("ROSTER_SEED", ""), "Seed file (.json or .sqlite) used to populate the roster at startup")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newMembersCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(ctx context.Context, app *App) error {
	logger, closeLog, err := debugLogger(app.cfg.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := loadStore(ctx, app, store.WithLogger(logger))
	if err != nil {
		return err
	}
	return tui.Run(st, tui.Options{
		AvatarMaxPixels: app.cfg.AvatarMaxPixels,
		MarkdownStyle:   app.cfg.MarkdownStyle,
		Logger:          logger,
	})
}

func loadStore(ctx context.Context, app *App, opts ...store.Option) (*store.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sd, err := seed.Load(ctx, app.SeedPath)
	if err != nil {
		return nil, err
	}
	return store.New(sd, opts...)
}

// debugLogger returns a JSON logger writing to path, or a discarding logger
// when path is empty. The terminal belongs to the TUI, so nothing logs to stderr.
func debugLogger(path string) (*slog.Logger, func(), error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	l := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l, func() { _ = f.Close() }, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}

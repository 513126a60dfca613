package cli

import (
	"errors"
	"strings"

	"clubroster/internal/format"
	"clubroster/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed data commands",
	}
	cmd.AddCommand(newSeedExportCmd(app))
	return cmd
}

func newSeedExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the startup roster to a seed file (.json or .sqlite)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out = strings.TrimSpace(out)
			if out == "" {
				return writeErr(cmd, errors.New("missing --out"))
			}
			st, err := loadStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sd := st.Seed()
			if err := seed.Save(cmd.Context(), out, sd); err != nil {
				return writeErr(cmd, err)
			}
			f, _ := seed.FormatForPath(out)
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{
					"path":    out,
					"format":  f,
					"members": len(sd.Members),
					"tags":    len(sd.Tags),
				},
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Destination file (.json, .db, .sqlite, .sqlite3)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

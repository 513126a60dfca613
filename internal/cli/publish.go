package cli

import (
	"clubroster/internal/format"
	"clubroster/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		to        string
		title     string
		overwrite bool
		asHTML    bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the roster as markdown or HTML pages (an index plus one page per member)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteRoster(st.Snapshot(), to, publish.WriteOptions{
				Title:     title,
				Overwrite: overwrite,
				HTML:      asHTML,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: res,
				Meta: map[string]any{"count": len(res.Written)},
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().StringVar(&title, "title", "", "Index heading (default \"Club roster\")")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Write HTML pages instead of markdown")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

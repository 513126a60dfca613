package cli

import (
	"clubroster/internal/format"
	"clubroster/internal/store"

	"github.com/spf13/cobra"
)

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag commands",
	}
	cmd.AddCommand(newTagsListCmd(app))
	return cmd
}

func newTagsListCmd(app *App) *cobra.Command {
	var grouped bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tags := st.Snapshot().Tags
			if grouped {
				return writeOut(cmd, app, format.Envelope{Data: store.GroupTags(tags)})
			}
			return writeOut(cmd, app, format.Envelope{
				Data: tags,
				Meta: map[string]any{"count": len(tags)},
			})
		},
	}

	cmd.Flags().BoolVar(&grouped, "grouped", false, "Group tags by category (position, hobby, other)")
	return cmd
}

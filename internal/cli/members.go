package cli

import (
	"strings"

	"clubroster/internal/format"

	"github.com/spf13/cobra"
)

func newMembersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Member commands",
	}
	cmd.AddCommand(newMembersListCmd(app))
	cmd.AddCommand(newMembersShowCmd(app))
	return cmd
}

func newMembersListCmd(app *App) *cobra.Command {
	var tagID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members in roster order",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap := st.Snapshot()
			out := snap.Members
			if tagID = strings.TrimSpace(tagID); tagID != "" {
				if _, ok := snap.Tag(tagID); !ok {
					return writeErr(cmd, errNotFound("tag", tagID))
				}
				out = out[:0:0]
				for _, m := range snap.Members {
					if m.HasTag(tagID) {
						out = append(out, m)
					}
				}
			}
			return writeOut(cmd, app, format.Envelope{
				Data: out,
				Meta: map[string]any{"count": len(out)},
			})
		},
	}

	cmd.Flags().StringVar(&tagID, "tag", "", "Only members carrying this tag id")
	return cmd
}

func newMembersShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <member-id>",
		Short: "Show one member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			snap := st.Snapshot()
			m, ok := snap.Member(id)
			if !ok {
				return writeErr(cmd, errNotFound("member", id))
			}
			return writeOut(cmd, app, format.Envelope{
				Data: m,
				Meta: map[string]any{"position": snap.MemberIndex(id)},
			})
		},
	}
	return cmd
}

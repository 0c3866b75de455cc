package cmd

import (
	"fmt"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/view"

	"github.com/spf13/cobra"
)

// printBadge 输出未读数，为 0 时不显示
func printBadge(s *session, bell *view.Bell) {
	if b := bell.Badge(); b != "" {
		fmt.Fprintf(s.out, "Unread: %s\n", b)
		return
	}
	fmt.Fprintln(s.out, "All caught up.")
}

func init() {
	list := withSession(func(cmd *cobra.Command, s *session, _ []string) error {
		bell := view.NewBell(s.app.Store, nil, nil)
		defer bell.Unmount()
		bell.Mount(cmd.Context())
		if err := s.app.Store.LastFetchErr(); err != nil {
			s.prompt.Alert(cmd.Context(), "Could not load notifications: "+err.Error())
		}
		bell.Open()
		return s.render(bell.Render())
	})

	notificationsCmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"n"},
		Short:   "List notifications and mark them as read",
		Args:    cobra.NoArgs,
		RunE:    list,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE:  list,
	}

	readCmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			bell := view.NewBell(s.app.Store, nil, nil)
			defer bell.Unmount()
			if err := bell.MarkRead(cmd.Context(), domain.ID(args[0])); err != nil {
				return err
			}
			printBadge(s, bell)
			return nil
		}),
	}

	readAllCmd := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			bell := view.NewBell(s.app.Store, nil, nil)
			defer bell.Unmount()
			if err := bell.MarkAllRead(cmd.Context()); err != nil {
				return err
			}
			printBadge(s, bell)
			return nil
		}),
	}

	notificationsCmd.AddCommand(listCmd, readCmd, readAllCmd)
	rootCmd.AddCommand(notificationsCmd)
}

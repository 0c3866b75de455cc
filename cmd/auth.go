package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	loginCmd := &cobra.Command{
		Use:   "login [token]",
		Short: "Store the session token used for every API call",
		Args:  cobra.MaximumNArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				var err error
				if token, err = s.prompt.Secret("Token: "); err != nil {
					return err
				}
			}

			sess, err := s.app.Auth.Login(cmd.Context(), token)
			if err != nil {
				return err
			}
			switch {
			case sess.Opaque:
				fmt.Fprintln(s.out, "Token stored.")
			case sess.Expired(time.Now()):
				fmt.Fprintf(s.out, "Token stored, but it expired at %s.\n", sess.ExpiresAt.Local().Format(time.DateTime))
			default:
				p := s.app.Prefs.Profile(cmd.Context())
				fmt.Fprintf(s.out, "Logged in as %s <%s>.\n", p.Name, p.Email)
			}
			return nil
		}),
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session token",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			if err := s.app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(s.out, "Logged out.")
			return nil
		}),
	}

	rootCmd.AddCommand(loginCmd, logoutCmd)
}

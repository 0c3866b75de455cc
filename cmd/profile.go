package cmd

import (
	"fmt"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/view"
	"github.com/haierkeys/portfolio-dash/pkg/code"

	"github.com/spf13/cobra"
)

func init() {
	showProfile := withSession(func(cmd *cobra.Command, s *session, _ []string) error {
		menu := view.NewProfileMenu(s.app.Prefs, nil, nil)
		defer menu.Unmount()
		menu.Open()
		return s.render(menu.Render(cmd.Context()))
	})

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the profile and preferred currency",
		Args:  cobra.NoArgs,
		RunE:  showProfile,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show name, email and preferred currency",
		Args:  cobra.NoArgs,
		RunE:  showProfile,
	}

	var name, email string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change the display name or email",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			if name == "" && email == "" {
				return code.ErrorInvalidParams.WithDetails("--name or --email is required")
			}
			if err := s.app.Prefs.SetProfile(cmd.Context(), domain.Profile{Name: name, Email: email}); err != nil {
				return err
			}
			p := s.app.Prefs.Profile(cmd.Context())
			fmt.Fprintf(s.out, "%s <%s>\n", p.Name, p.Email)
			return nil
		}),
	}
	setCmd.Flags().StringVar(&name, "name", "", "display name")
	setCmd.Flags().StringVar(&email, "email", "", "email")

	currencyCmd := &cobra.Command{
		Use:       "currency [INR|USD|EUR]",
		Short:     "Show or change the preferred currency",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"INR", "USD", "EUR"},
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				fmt.Fprintln(s.out, s.app.Prefs.Currency(ctx).Label())
				return nil
			}
			c, ok := domain.ParseCurrency(args[0])
			if !ok {
				return code.ErrorCurrencyUnsupported.WithDetails(args[0])
			}
			menu := view.NewProfileMenu(s.app.Prefs, nil, nil)
			defer menu.Unmount()
			if err := menu.SetCurrency(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Preferred currency: %s\n", c.Label())
			return nil
		}),
	}

	profileCmd.AddCommand(showCmd, setCmd, currencyCmd)
	rootCmd.AddCommand(profileCmd)
}

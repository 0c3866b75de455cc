package cmd

import (
	"fmt"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/service"
	"github.com/haierkeys/portfolio-dash/internal/view"

	"github.com/spf13/cobra"
)

// mountConnections 加载连接列表；加载失败时列表为空并提示
func mountConnections(cmd *cobra.Command, s *session) *view.Connections {
	c := view.NewConnections(s.app.Registry, s.prompt)
	c.Mount(cmd.Context())
	if err := s.app.Registry.LastFetchErr(); err != nil {
		s.prompt.Alert(cmd.Context(), "Could not load exchanges: "+err.Error())
	}
	return c
}

func init() {
	list := withSession(func(cmd *cobra.Command, s *session, _ []string) error {
		c := mountConnections(cmd, s)
		defer c.Unmount()
		return s.render(c.Render())
	})

	exchangesCmd := &cobra.Command{
		Use:     "exchanges",
		Aliases: []string{"x"},
		Short:   "Manage exchange connections",
		Args:    cobra.NoArgs,
		RunE:    list,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List connected exchanges",
		Args:  cobra.NoArgs,
		RunE:  list,
	}

	var exchange, label, apiKey string
	connectCmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect an exchange account; the API secret is read from the terminal",
		Args:  cobra.NoArgs,
		RunE: withSession(func(cmd *cobra.Command, s *session, _ []string) error {
			c := view.NewConnections(s.app.Registry, s.prompt)
			defer c.Unmount()

			form := c.Form()
			form.Open()
			if err := form.Update(service.FieldExchange, exchange); err != nil {
				return err
			}
			if err := form.Update(service.FieldLabel, label); err != nil {
				return err
			}
			key := apiKey
			if key == "" {
				var err error
				if key, err = s.prompt.Line("API key: "); err != nil {
					return err
				}
			}
			if err := form.Update(service.FieldAPIKey, key); err != nil {
				return err
			}
			secret, err := s.prompt.Secret("API secret: ")
			if err != nil {
				return err
			}
			if err := form.Update(service.FieldAPISecret, secret); err != nil {
				return err
			}

			link, err := c.Connect(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Connected %s (%s).\n", link.ExchangeKind.DisplayName(), link.ID)
			return s.render(c.Render())
		}),
	}
	connectCmd.Flags().StringVar(&exchange, "exchange", string(domain.ExchangeBinance), "exchange kind")
	connectCmd.Flags().StringVar(&label, "label", "", "display label")
	connectCmd.Flags().StringVar(&apiKey, "api-key", "", "API key (prompted when empty)")

	syncCmd := &cobra.Command{
		Use:   "sync <id>",
		Short: "Resync one exchange connection",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			c := mountConnections(cmd, s)
			defer c.Unmount()
			if err := c.Sync(cmd.Context(), domain.ID(args[0])); err != nil {
				return err
			}
			return s.render(c.Render())
		}),
	}

	var yes bool
	disconnectCmd := &cobra.Command{
		Use:   "disconnect <id>",
		Short: "Disconnect an exchange after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
			s.prompt.assumeYes = yes
			c := mountConnections(cmd, s)
			defer c.Unmount()
			if err := c.Disconnect(cmd.Context(), domain.ID(args[0])); err != nil {
				return err
			}
			return s.render(c.Render())
		}),
	}
	disconnectCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	exchangesCmd.AddCommand(listCmd, connectCmd, syncCmd, disconnectCmd)
	rootCmd.AddCommand(exchangesCmd)
}

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-riskboard/pkg/config"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := c.app.NewServer()
			if err != nil {
				return err
			}
			c.logger.Info("starting dashboard",
				zap.String("addr", c.cfg.Addr),
				zap.String("endpoint", c.cfg.Endpoint),
				zap.Int("fields", c.app.Schema.Len()),
			)
			return srv.Run(cmd.Context())
		},
	}

	d := config.Default()
	flags := cmd.Flags()
	flags.String(config.KeyAddr, d.Addr, "listen address")
	flags.Duration(config.KeySessionTTL, d.SessionTTL, "idle time before a browser session is forgotten")
	flags.String(config.KeyThemeVariant, "", "palette variant (empty or \"dark\")")
	return cmd
}

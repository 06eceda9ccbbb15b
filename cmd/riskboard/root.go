package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	riskboard "github.com/goliatone/go-riskboard"
	"github.com/goliatone/go-riskboard/internal/logging"
	"github.com/goliatone/go-riskboard/pkg/config"
)

// cli carries state shared between the root command and its subcommands.
type cli struct {
	viper  *viper.Viper
	cfg    config.Config
	logger *zap.Logger
	app    *riskboard.App
}

func newRootCmd() *cobra.Command {
	c := &cli{viper: viper.New()}

	root := &cobra.Command{
		Use:   "riskboard",
		Short: "Credit risk dashboard for a remote default-probability model",
		Long: `riskboard collects applicant financials, validates them against the
field schema and asks the scoring service for a probability of default.

Settings come from flags, RISKBOARD_* environment variables, a .env file and
an optional .riskboard.yaml, in that order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(c),
		newPromptCmd(c),
		newScoreCmd(c),
		newFieldsCmd(c),
	)
	return root
}

// setup resolves configuration, logging and the app for the command about to
// run.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotenv(); err != nil {
		return err
	}
	if err := c.viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	cfg, err := config.Load(c.viper)
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	c.logger = logger

	app, err := riskboard.Build(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	c.app = app
	return nil
}

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-riskboard/pkg/renderers/tui"
)

func newPromptCmd(c *cli) *cobra.Command {
	var (
		exportPath string
		noColor    bool
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Score applicants interactively in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := c.app.NewPrompter(
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithExportPath(exportPath),
				tui.WithColor(!noColor),
			)
			err := p.Run(cmd.Context())
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&exportPath, "export", "", "write the prediction history as CSV to this path on exit")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable coloured output")
	return cmd
}

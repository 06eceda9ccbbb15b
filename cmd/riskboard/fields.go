package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-riskboard/pkg/schema"
)

func newFieldsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the applicant fields and their bounds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"Name", "Label", "Min", "Max", "Step"})

			var data [][]string
			for _, field := range c.app.Schema.Fields() {
				upper := "-"
				if field.HasMax() {
					upper = schema.FormatNumber(field.MaxValue())
				}
				data = append(data, []string{
					field.Name,
					field.DisplayLabel(),
					schema.FormatNumber(field.Min),
					upper,
					field.StepAttr(),
				})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		},
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-riskboard/pkg/form"
	"github.com/goliatone/go-riskboard/pkg/present"
	"github.com/goliatone/go-riskboard/pkg/session"
)

var (
	errBadAssignment = errors.New("--set expects name=value")
	errUnknownField  = errors.New("unknown field")
)

type scoreOutput struct {
	DefaultProbability float64       `json:"default_probability"`
	Gauge              present.Gauge `json:"gauge"`
}

func newScoreCmd(c *cli) *cobra.Command {
	var (
		assignments []string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one applicant from --set name=value pairs",
		Example: `  riskboard score --set int_rate=13.99 --set term=36 --set dti=18.5 ...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			for name := range raw {
				if _, ok := c.app.Schema.Field(name); !ok {
					return fmt.Errorf("%w %q", errUnknownField, name)
				}
			}

			sess := c.app.NewSession()
			sess.SetFields(raw)
			state, err := sess.Submit(cmd.Context())
			if errors.Is(err, session.ErrInvalidInput) {
				return fmt.Errorf("invalid input:\n  %s", strings.Join(state.Errors.Messages(sess.Schema()), "\n  "))
			}
			if err != nil {
				return err
			}
			if state.Prediction == nil {
				return errors.New("no prediction returned")
			}

			gauge := c.app.Palette.Gauge(*state.Prediction)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(scoreOutput{DefaultProbability: *state.Prediction, Gauge: gauge})
			}
			_, err = fmt.Fprintf(out, "Default probability: %d%% (%s)\n", gauge.Percent, gauge.Bucket.Label())
			return err
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "field value as name=value (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func parseAssignments(values []string) (form.Raw, error) {
	raw := form.NewRaw()
	for _, value := range values {
		name, v, ok := strings.Cut(value, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", errBadAssignment, value)
		}
		raw.Set(name, strings.TrimSpace(v))
	}
	return raw, nil
}

package tui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/goliatone/go-riskboard/pkg/history"
	"github.com/goliatone/go-riskboard/pkg/present"
)

var bucketColors = map[present.Bucket][]color.Attribute{
	present.BucketLow:      {color.FgGreen},
	present.BucketModerate: {color.FgYellow},
	present.BucketElevated: {color.FgHiRed},
	present.BucketHigh:     {color.FgRed, color.Bold},
}

func bucketColor(bucket present.Bucket) *color.Color {
	attrs, ok := bucketColors[bucket]
	if !ok {
		attrs = []color.Attribute{color.Reset}
	}
	return color.New(attrs...)
}

func errorColor() *color.Color {
	return color.New(color.FgRed)
}

func (p *Prompter) paint(c *color.Color, text string) string {
	if p.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

// gaugeLine renders one prediction as "Default probability: 34% (Moderate risk)"
// in the colour of its band.
func (p *Prompter) gaugeLine(probability float64) string {
	gauge := present.NewGauge(probability)
	text := fmt.Sprintf("Default probability: %d%% (%s)", gauge.Percent, gauge.Bucket.Label())
	return p.paint(bucketColor(gauge.Bucket), text)
}

func writeHistoryTable(w io.Writer, values []float64) error {
	if len(values) == 0 {
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Default probability", "Band"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(values))
	for i, v := range values {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(present.Percent(v)) + "%",
			present.BucketFor(v).Label(),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeExport(path string, h *history.History) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tui: create export: %w", err)
	}
	if err := h.WriteCSV(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("tui: write export: %w", err)
	}
	return f.Close()
}

package history

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	// ExportFilename is the suggested download name for the CSV export.
	ExportFilename = "prediction_history.csv"
	// WorkbookFilename is the suggested download name for the XLSX export.
	WorkbookFilename = "prediction_history.xlsx"
	// ExportHeader is the first line of the CSV export.
	ExportHeader = "Prediction History"

	// ContentTypeCSV and ContentTypeXLSX are the response types for exports.
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Sheet1"
)

// FormatValue renders a probability in its shortest text form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Export renders the history as "Prediction History" followed by one
// "<index>,<probability>" line per entry. Lines are joined by "\n" with no
// trailing newline.
func (h *History) Export() string {
	return ExportValues(h.Values())
}

// ExportValues renders values in the CSV export format.
func ExportValues(values []float64) string {
	lines := make([]string, 0, len(values)+1)
	lines = append(lines, ExportHeader)
	for i, v := range values {
		lines = append(lines, strconv.Itoa(i+1)+","+FormatValue(v))
	}
	return strings.Join(lines, "\n")
}

// WriteCSV writes the CSV export to w.
func (h *History) WriteCSV(w io.Writer) error {
	if w == nil {
		return fmt.Errorf("history: csv writer is nil")
	}
	if _, err := io.WriteString(w, h.Export()); err != nil {
		return fmt.Errorf("history: write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes a workbook with the same rows as the CSV export. Row 1
// holds the header, following rows hold index and probability as numbers.
func (h *History) WriteXLSX(w io.Writer) error {
	if w == nil {
		return fmt.Errorf("history: xlsx writer is nil")
	}
	values := h.Values()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetCellValue(sheetName, "A1", ExportHeader); err != nil {
		return fmt.Errorf("history: xlsx header: %w", err)
	}
	for i, v := range values {
		row := i + 2
		indexCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("history: xlsx cell: %w", err)
		}
		valueCell, err := excelize.CoordinatesToCellName(2, row)
		if err != nil {
			return fmt.Errorf("history: xlsx cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, indexCell, i+1); err != nil {
			return fmt.Errorf("history: xlsx index: %w", err)
		}
		if err := f.SetCellValue(sheetName, valueCell, v); err != nil {
			return fmt.Errorf("history: xlsx value: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("history: write xlsx: %w", err)
	}
	return nil
}

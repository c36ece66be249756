// =============================================================================
// H2K to HPXML Translator - Batch Report
// =============================================================================
//
// Writes an XLSX summary workbook for a batch run: one row per input file
// with its outcome, warning count and duration, plus a header block with the
// run totals. Operators review these workbooks after large conversion runs.
//
// =============================================================================

package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/h2ktools/h2k-to-hpxml-conversion/internal/batch"
)

const sheetName = "Summary"

// Write saves the batch summary workbook to path.
func Write(path string, summary *batch.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	rows := [][]any{
		{"Run ID", summary.RunID},
		{"Files", len(summary.Results)},
		{"Succeeded", summary.Succeeded},
		{"Failed", summary.Failed},
		{"Duration", summary.Duration.String()},
		{},
		{"Input", "Output", "Status", "Warnings", "Error", "Duration"},
	}
	for _, r := range summary.Results {
		status := "ok"
		errText := ""
		output := ""
		if r.Err != nil {
			status = "failed"
			errText = r.Err.Error()
		}
		if r.Output != "" {
			output = filepath.Base(r.Output)
		}
		rows = append(rows, []any{
			filepath.Base(r.Input),
			output,
			status,
			len(r.Warnings),
			errText,
			r.Duration.String(),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing report row %d: %w", i+1, err)
		}
	}

	if !strings.HasSuffix(path, ".xlsx") {
		path += ".xlsx"
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report %s: %w", path, err)
	}
	return nil
}

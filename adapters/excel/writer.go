package excel

import (
	"context"
	"math"
	"time"

	"gomwu/domain/stats"
	"gomwu/internal"
	"gomwu/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ResultsWriter writes the two-sheet results workbook
type ResultsWriter struct {
	logger *internal.Logger
}

// NewResultsWriter creates a results writer. A nil logger discards output.
func NewResultsWriter(logger *internal.Logger) *ResultsWriter {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &ResultsWriter{logger: logger}
}

// Write saves the summary to path. runID is stored in the document
// properties and may be empty.
func (w *ResultsWriter) Write(ctx context.Context, runID string, summary *stats.Summary, path string) error {
	if summary == nil {
		return errors.InvalidInput("no summary to write")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTestResults); err != nil {
		return errors.IOError("failed to name results sheet", err)
	}
	if _, err := f.NewSheet(SheetDescriptive); err != nil {
		return errors.IOError("failed to add descriptive sheet", err)
	}

	if err := writeTestResults(f, testResultsRowFromSummary(summary)); err != nil {
		return errors.IOError("failed to write test results", err)
	}
	if err := writeDescriptive(f, summary); err != nil {
		return errors.IOError("failed to write descriptive statistics", err)
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       "Mann-Whitney U Test Results",
		Subject:     summary.Group1Name + " vs " + summary.Group2Name,
		Identifier:  runID,
		Creator:     "gomwu",
		Description: summary.Result.TestType,
	}); err != nil {
		return errors.IOError("failed to set document properties", err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.IOError("failed to save results workbook", err)
	}

	w.logger.Debug("[ResultsWriter] %s written in %.2fms", path, millis(time.Since(start)))
	return nil
}

func writeTestResults(f *excelize.File, row TestResultsRow) error {
	header := make([]interface{}, len(TestResultsHeaders))
	for i, h := range TestResultsHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetTestResults, "A1", &header); err != nil {
		return err
	}

	values := []interface{}{
		row.TestType,
		cellNumber(row.UStatistic),
		cellNumber(row.PValue),
		cellNumber(row.EffectSize),
		row.Interpretation,
		row.Significant,
		row.Group1,
		row.Group2,
		cellNumber(row.Group1Median),
		cellNumber(row.Group2Median),
	}
	if err := f.SetSheetRow(SheetTestResults, "A2", &values); err != nil {
		return err
	}

	if err := boldHeader(f, SheetTestResults, "J1"); err != nil {
		return err
	}
	return f.SetColWidth(SheetTestResults, "A", "J", 20)
}

func writeDescriptive(f *excelize.File, summary *stats.Summary) error {
	header := []interface{}{"Statistic", summary.Group1Name, summary.Group2Name}
	if err := f.SetSheetRow(SheetDescriptive, "A1", &header); err != nil {
		return err
	}
	if err := boldHeader(f, SheetDescriptive, "C1"); err != nil {
		return err
	}
	for i, row := range summary.DescriptiveTable() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.Statistic, cellNumber(row.Group1), cellNumber(row.Group2)}
		if err := f.SetSheetRow(SheetDescriptive, cell, &values); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetDescriptive, "A", "C", 18)
}

func boldHeader(f *excelize.File, sheet, lastCell string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", lastCell, style)
}

// cellNumber leaves undefined values as empty cells
func cellNumber(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

package excel

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gomwu/domain/stats"
	"gomwu/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ReadResultsWorkbook loads a workbook written by ResultsWriter
func ReadResultsWorkbook(path string) (*ResultsWorkbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NotFound("results workbook " + path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.IOError("failed to open results workbook", err)
	}
	defer f.Close()

	out := &ResultsWorkbook{}
	if props, err := f.GetDocProps(); err == nil && props != nil {
		out.RunID = props.Identifier
	}

	results, err := f.GetRows(SheetTestResults, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read sheet %q", SheetTestResults), err)
	}
	if len(results) < 2 {
		return nil, errors.InvalidInput(fmt.Sprintf("sheet %q has no data row", SheetTestResults))
	}
	if out.Results, err = parseTestResultsRow(results[1]); err != nil {
		return nil, err
	}

	desc, err := f.GetRows(SheetDescriptive, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read sheet %q", SheetDescriptive), err)
	}
	if len(desc) < 1 || len(desc[0]) < 3 {
		return nil, errors.InvalidInput(fmt.Sprintf("sheet %q has no header row", SheetDescriptive))
	}
	out.Group1Name, out.Group2Name = desc[0][1], desc[0][2]
	for i, row := range desc[1:] {
		g1, err := parseCellNumber(cellAt(row, 1))
		if err != nil {
			return nil, errors.Wrapf(err, "%s row %d", SheetDescriptive, i+2)
		}
		g2, err := parseCellNumber(cellAt(row, 2))
		if err != nil {
			return nil, errors.Wrapf(err, "%s row %d", SheetDescriptive, i+2)
		}
		out.Descriptive = append(out.Descriptive, stats.DescriptiveRow{
			Statistic: cellAt(row, 0),
			Group1:    g1,
			Group2:    g2,
		})
	}

	return out, nil
}

func parseTestResultsRow(row []string) (TestResultsRow, error) {
	var out TestResultsRow
	numbers := make([]float64, 0, 5)
	for _, col := range []int{1, 2, 3, 8, 9} {
		v, err := parseCellNumber(cellAt(row, col))
		if err != nil {
			return out, errors.Wrapf(err, "%s column %q", SheetTestResults, TestResultsHeaders[col])
		}
		numbers = append(numbers, v)
	}

	out.TestType = cellAt(row, 0)
	out.UStatistic = numbers[0]
	out.PValue = numbers[1]
	out.EffectSize = numbers[2]
	out.Interpretation = cellAt(row, 4)
	out.Significant = cellAt(row, 5)
	out.Group1 = cellAt(row, 6)
	out.Group2 = cellAt(row, 7)
	out.Group1Median = numbers[3]
	out.Group2Median = numbers[4]
	return out, nil
}

// parseCellNumber reads an empty cell as NaN
func parseCellNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.InvalidInput(fmt.Sprintf("%q is not a number", raw))
	}
	return v, nil
}

// GetRows trims trailing empty cells, so short rows are expected
func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// Package testkit builds spreadsheet fixtures for tests.
package testkit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// DefaultHeaders are the column names of the stock input file
var DefaultHeaders = []string{"Group", "Value"}

// Rows labels each value with the same group
func Rows(label string, values ...float64) [][]interface{} {
	out := make([][]interface{}, len(values))
	for i, v := range values {
		out[i] = []interface{}{label, v}
	}
	return out
}

// Seq returns from, from+1, ..., to
func Seq(from, to int) []float64 {
	out := make([]float64, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, float64(i))
	}
	return out
}

// WriteWorkbook saves headers and rows to the named sheet of a new workbook
func WriteWorkbook(path, sheet string, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	} else {
		sheet = "Sheet1"
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// WriteGroupsWorkbook writes a Group/Value workbook into a temp dir and
// returns its path
func WriteGroupsWorkbook(tb testing.TB, rows ...[][]interface{}) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "data.xlsx")
	var all [][]interface{}
	for _, r := range rows {
		all = append(all, r...)
	}
	if err := WriteWorkbook(path, "", DefaultHeaders, all); err != nil {
		tb.Fatalf("write fixture workbook: %v", err)
	}
	return path
}

// WriteCSV writes records into a temp dir and returns the path
func WriteCSV(tb testing.TB, records [][]string) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "data.csv")
	file, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create fixture csv: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		tb.Fatalf("write fixture csv: %v", err)
	}
	return path
}

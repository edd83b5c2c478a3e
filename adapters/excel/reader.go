package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gomwu/domain/dataset"
	"gomwu/internal"
	"gomwu/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV
// files. A nil logger discards output.
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &DataReader{
		filePath: config.FilePath,
		fileType: fileType,
		sheet:    config.Sheet,
		logger:   logger,
	}
}

// ReadData reads the file into a dataset
func (r *DataReader) ReadData(ctx context.Context) (*dataset.Dataset, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(r.filePath); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
		}
		return nil, errors.IOError("cannot stat "+r.filePath, err)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	default:
		return r.readExcelData()
	}
}

// readExcelData reads the configured sheet, or the first one
func (r *DataReader) readExcelData() (*dataset.Dataset, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open Excel file", err)
	}
	defer f.Close()
	r.logger.Debug("[DataReader] Excel file opened in %.2fms", millis(time.Since(startTime)))

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.NotFound(fmt.Sprintf("sheet %q in %s", sheet, r.filePath))
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)", sheet, millis(time.Since(readStart)), len(rows))

	if len(rows) < 2 {
		return nil, errors.IOError("Excel file must have at least a header row and one data row", nil)
	}

	ds := r.processRows(rows)
	ds.Sheet = sheet
	return ds, nil
}

// readCSVData reads CSV data into a dataset
func (r *DataReader) readCSVData() (*dataset.Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOError("failed to read CSV file", err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)", millis(time.Since(readStart)), len(rows))

	if len(rows) < 2 {
		return nil, errors.IOError("CSV file must have at least a header row and one data row", nil)
	}

	return r.processRows(rows), nil
}

// processRows converts raw string rows into a dataset. Short rows leave the
// trailing columns empty; cells past the last header are dropped.
func (r *DataReader) processRows(rows [][]string) *dataset.Dataset {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = header
	}

	dataRows := make([]dataset.Row, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(dataset.Row, len(headers))
		for j, header := range headers {
			if j < len(row) {
				rowData[header] = strings.TrimSpace(row[j])
			} else {
				rowData[header] = ""
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &dataset.Dataset{
		Source:  r.filePath,
		Headers: headers,
		Rows:    dataRows,
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

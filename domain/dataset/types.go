package dataset

import "fmt"

// Row is one spreadsheet row keyed by trimmed header
type Row map[string]string

// Dataset is the tabular input of a run. It is built once by a reader and
// treated as read-only afterwards.
type Dataset struct {
	Source  string   `json:"source"`
	Sheet   string   `json:"sheet,omitempty"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether a header with the exact name exists
func (d *Dataset) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// RequireColumns returns an error naming the first missing column
func (d *Dataset) RequireColumns(names ...string) error {
	for _, name := range names {
		if !d.HasColumn(name) {
			return fmt.Errorf("column %q not found (available: %v)", name, d.Headers)
		}
	}
	return nil
}

// Len returns the number of data rows
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// SheetRow converts a zero-based data row index to the 1-based spreadsheet
// row number (header is row 1)
func SheetRow(index int) int {
	return index + 2
}

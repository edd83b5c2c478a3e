package excel

// ReaderConfig holds configuration for a spreadsheet data source
type ReaderConfig struct {
	FilePath string `json:"file_path"`
	Sheet    string `json:"sheet,omitempty"` // empty selects the first sheet
}

// Sheet names of the results workbook
const (
	SheetTestResults = "Test Results"
	SheetDescriptive = "Descriptive Stats"
)

// TestResultsHeaders is the header row of the Test Results sheet
var TestResultsHeaders = []string{
	"Test Type",
	"U-statistic",
	"p-value",
	"Effect Size (r)",
	"Effect Size Interpretation",
	"Significant",
	"Group 1",
	"Group 2",
	"Group 1 Median",
	"Group 2 Median",
}

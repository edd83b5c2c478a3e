package excel

import "gomwu/domain/stats"

// TestResultsRow is the single data row of the Test Results sheet
type TestResultsRow struct {
	TestType       string
	UStatistic     float64
	PValue         float64
	EffectSize     float64
	Interpretation string
	Significant    string // Yes/No
	Group1         string
	Group2         string
	Group1Median   float64
	Group2Median   float64
}

// ResultsWorkbook is a results file as read back from disk
type ResultsWorkbook struct {
	RunID       string // from the document properties, empty if absent
	Results     TestResultsRow
	Group1Name  string // Descriptive Stats column headers
	Group2Name  string
	Descriptive []stats.DescriptiveRow
}

// testResultsRowFromSummary lays a summary out the way the sheet stores it
func testResultsRowFromSummary(s *stats.Summary) TestResultsRow {
	return TestResultsRow{
		TestType:       s.Result.TestType,
		UStatistic:     s.Result.UStatistic,
		PValue:         s.Result.PValue,
		EffectSize:     s.Result.EffectSize,
		Interpretation: s.Result.Magnitude.Label(),
		Significant:    s.Result.SignificantLabel(),
		Group1:         s.Group1Name,
		Group2:         s.Group2Name,
		Group1Median:   s.Group1.Median,
		Group2Median:   s.Group2.Median,
	}
}

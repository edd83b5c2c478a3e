package analysis

import (
	"math"
	"strconv"
	"strings"

	"gomwu/domain/dataset"
	"gomwu/internal/errors"
)

// GroupSamples holds the two value sequences being compared, in row order
type GroupSamples struct {
	Group1Name string
	Group2Name string
	Group1     []float64
	Group2     []float64
}

// Total returns n1 + n2
func (g *GroupSamples) Total() int {
	return len(g.Group1) + len(g.Group2)
}

// Split extracts the values of rows whose label equals group1 or group2.
// Rows with other labels are ignored. A selected row whose value does not
// parse as a number, or a group that ends up with no values, is an error.
func Split(ds *dataset.Dataset, groupColumn, valueColumn, group1, group2 string) (*GroupSamples, error) {
	if ds == nil {
		return nil, errors.InvalidInput("dataset is nil")
	}
	if err := ds.RequireColumns(groupColumn, valueColumn); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	samples := &GroupSamples{Group1Name: group1, Group2Name: group2}
	for i, row := range ds.Rows {
		label := row[groupColumn]
		if label != group1 && label != group2 {
			continue
		}

		v, err := parseValue(row[valueColumn])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: %s value for group %q", dataset.SheetRow(i), valueColumn, label)
		}

		// a label equal to both targets feeds both samples
		if label == group1 {
			samples.Group1 = append(samples.Group1, v)
		}
		if label == group2 {
			samples.Group2 = append(samples.Group2, v)
		}
	}

	if len(samples.Group1) == 0 {
		return nil, errors.EmptySample(group1)
	}
	if len(samples.Group2) == 0 {
		return nil, errors.EmptySample(group2)
	}
	return samples, nil
}

func parseValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.InvalidInput("empty cell")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, errors.InvalidInput("not a number: " + strconv.Quote(s))
	}
	return v, nil
}

// Package report renders run summaries for people: console text and an
// HTML page.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gomwu/domain/stats"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = cellStyle.Align(lipgloss.Left)
	numberStyle = cellStyle.Align(lipgloss.Right)
	ruleStyle   = lipgloss.NewStyle().Faint(true)
)

// WriteConsole prints the results block followed by the descriptive table
func WriteConsole(w io.Writer, summary *stats.Summary) error {
	r := summary.Result
	var sb strings.Builder

	sb.WriteString("\nMann-Whitney U Test Results:\n")
	sb.WriteString("--------------------------\n")
	fmt.Fprintf(&sb, "U-statistic: %.4f\n", r.UStatistic)
	fmt.Fprintf(&sb, "p-value: %.4f\n", r.PValue)
	fmt.Fprintf(&sb, "Effect size (r): %.4f\n", r.EffectSize)
	fmt.Fprintf(&sb, "Effect size interpretation: %s\n", r.Magnitude.Label())
	fmt.Fprintf(&sb, "Significant difference: %s\n", r.SignificantLabel())
	sb.WriteString("\nDescriptive Statistics:\n")
	sb.WriteString(DescriptiveTable(summary))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// DescriptiveTable renders Statistic | group1 | group2 as aligned columns
func DescriptiveTable(summary *stats.Summary) string {
	headers := []string{"Statistic", summary.Group1Name, summary.Group2Name}
	var rows [][]string
	for _, row := range summary.DescriptiveTable() {
		rows = append(rows, []string{row.Statistic, FormatNumber(row.Group1), FormatNumber(row.Group2)})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	// Width includes the padding
	for i := range widths {
		widths[i] += 2
	}

	var lines []string
	var header []string
	for i, h := range headers {
		header = append(header, headerStyle.Width(widths[i]).Render(h))
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	total := 0
	for _, w := range widths {
		total += w
	}
	lines = append(lines, ruleStyle.Render(strings.Repeat("-", total)))

	for _, row := range rows {
		cells := []string{labelStyle.Width(widths[0]).Render(row[0])}
		for i := 1; i < len(row); i++ {
			cells = append(cells, numberStyle.Width(widths[i]).Render(row[i]))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

// FormatNumber prints four decimals, NaN for undefined values
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4f", v)
}

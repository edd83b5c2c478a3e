package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gomwu/domain/run"
	"gomwu/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// BuildMarkdown summarises a finished run as a markdown document
func BuildMarkdown(m *run.Manifest) string {
	s := m.Summary
	r := s.Result
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Mann-Whitney U Test: %s vs %s\n\n", s.Group1Name, s.Group2Name)
	fmt.Fprintf(&sb, "Run `%s` at %s.\n\n", m.RunID, m.CreatedAt)
	fmt.Fprintf(&sb, "- Input: `%s`\n", m.Fingerprint.Settings.InputPath)
	fmt.Fprintf(&sb, "- Input SHA-256: `%s`\n", m.Fingerprint.InputHash.Short())
	fmt.Fprintf(&sb, "- Columns: `%s` (group), `%s` (value)\n\n",
		m.Fingerprint.Settings.GroupColumn, m.Fingerprint.Settings.ValueColumn)

	sb.WriteString("## Test Results\n\n")
	sb.WriteString("| Measure | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| U-statistic | %.4f |\n", r.UStatistic)
	fmt.Fprintf(&sb, "| p-value | %.4f |\n", r.PValue)
	fmt.Fprintf(&sb, "| Method | %s |\n", r.Method)
	fmt.Fprintf(&sb, "| Effect size (r) | %.4f (%s) |\n", r.EffectSize, r.EffectSizeMethod)
	fmt.Fprintf(&sb, "| Interpretation | %s |\n", r.Magnitude.Label())
	fmt.Fprintf(&sb, "| Significant (p < 0.05) | %s |\n\n", r.SignificantLabel())

	sb.WriteString("## Descriptive Statistics\n\n")
	fmt.Fprintf(&sb, "| Statistic | %s | %s |\n|---|---:|---:|\n", s.Group1Name, s.Group2Name)
	for _, row := range s.DescriptiveTable() {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", row.Statistic, FormatNumber(row.Group1), FormatNumber(row.Group2))
	}

	if plot, ok := m.ArtifactPath(run.ArtifactPlot); ok {
		fmt.Fprintf(&sb, "\n## Plot\n\n![Distribution comparison](%s)\n", filepath.Base(plot))
	}
	return sb.String()
}

// RenderHTML converts the run summary to a standalone HTML page
func RenderHTML(m *run.Manifest) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: fmt.Sprintf("Mann-Whitney U: %s vs %s", m.Summary.Group1Name, m.Summary.Group2Name),
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(BuildMarkdown(m)), p, renderer)
}

// HTMLWriter saves RenderHTML output next to the other artifacts
type HTMLWriter struct{}

// NewHTMLWriter creates an HTML report writer
func NewHTMLWriter() *HTMLWriter {
	return &HTMLWriter{}
}

// Render writes the report page for m to path
func (w *HTMLWriter) Render(ctx context.Context, m *run.Manifest, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, RenderHTML(m), 0o644); err != nil {
		return errors.IOError("failed to write HTML report", err)
	}
	return nil
}

package report

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gomwu/domain/core"
	"gomwu/domain/run"
	"gomwu/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary() stats.Summary {
	return stats.Summary{
		Group1Name: "Control",
		Group2Name: "Treatment",
		Result: stats.TestResult{
			TestType:         stats.TestTypeMannWhitney,
			UStatistic:       0,
			PValue:           0.0001826717911095504,
			Method:           "asymptotic",
			EffectSize:       0.8367027121812314,
			EffectSizeMethod: stats.EffectSizePInverse,
			Magnitude:        stats.MagnitudeLarge,
			Significant:      true,
		},
		Group1: stats.DescriptiveStats{Count: 10, Median: 5.5, Mean: 5.5, StdDev: 3.0276503540974917, Q25: 3.25, Q75: 7.75},
		Group2: stats.DescriptiveStats{Count: 1, Median: 15, Mean: 15, StdDev: math.NaN(), Q25: 15, Q75: 15},
	}
}

func TestWriteConsole(t *testing.T) {
	s := summary()
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, &s))
	out := buf.String()

	assert.Contains(t, out, "Mann-Whitney U Test Results:")
	assert.Contains(t, out, "U-statistic: 0.0000")
	assert.Contains(t, out, "p-value: 0.0002")
	assert.Contains(t, out, "Effect size (r): 0.8367")
	assert.Contains(t, out, "Effect size interpretation: Large effect")
	assert.Contains(t, out, "Significant difference: Yes")
	assert.Contains(t, out, "Descriptive Statistics:")

	tableStart := strings.Index(out, "Descriptive Statistics:")
	assert.Less(t, strings.Index(out, "Significant difference"), tableStart)
}

func TestDescriptiveTable(t *testing.T) {
	s := summary()
	table := DescriptiveTable(&s)
	lines := strings.Split(table, "\n")

	// header, rule, six statistics
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "Statistic")
	assert.Contains(t, lines[0], "Control")
	assert.Contains(t, lines[0], "Treatment")
	assert.Contains(t, lines[2], "Count")
	assert.Contains(t, lines[2], "10.0000")
	assert.Contains(t, lines[5], "Std Dev")
	assert.Contains(t, lines[5], "3.0277")
	assert.Contains(t, lines[5], "NaN")
	assert.Contains(t, lines[7], "75th Percentile")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0.0500", FormatNumber(0.05))
	assert.Equal(t, "NaN", FormatNumber(math.NaN()))
}

func manifest() *run.Manifest {
	settings := run.Settings{InputPath: "data.xlsx", GroupColumn: "Group", ValueColumn: "Value"}
	fp := run.NewRunFingerprint(core.NewHash([]byte("abc")), settings)
	m := run.NewManifest(core.RunID("0190c3d4-0000-7000-8000-000000000001"),
		core.NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)), fp)
	m.Summary = summary()
	m.AddArtifact(run.ArtifactPlot, "mannwhitney_plot_20240102_030405.png")
	return m
}

func TestBuildMarkdown(t *testing.T) {
	md := BuildMarkdown(manifest())

	assert.Contains(t, md, "# Mann-Whitney U Test: Control vs Treatment")
	assert.Contains(t, md, "0190c3d4-0000-7000-8000-000000000001")
	assert.Contains(t, md, "| p-value | 0.0002 |")
	assert.Contains(t, md, "| Significant (p < 0.05) | Yes |")
	assert.Contains(t, md, "| Std Dev | 3.0277 | NaN |")
	assert.Contains(t, md, "](mannwhitney_plot_20240102_030405.png)")
}

func TestRenderHTML(t *testing.T) {
	page := string(RenderHTML(manifest()))

	assert.Contains(t, page, "<html")
	assert.Contains(t, page, "<title>Mann-Whitney U: Control vs Treatment</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, `<img src="mannwhitney_plot_20240102_030405.png"`)
}

func TestHTMLWriter(t *testing.T) {
	m := manifest()
	m.Artifacts[0].Path = "/tmp/out/mannwhitney_plot_20240102_030405.png"
	path := filepath.Join(t.TempDir(), "mannwhitney_report_20240102_030405.html")

	require.NoError(t, NewHTMLWriter().Render(context.Background(), m, path))

	page, err := os.ReadFile(path)
	require.NoError(t, err)
	// image is linked relative to the report
	assert.Contains(t, string(page), `src="mannwhitney_plot_20240102_030405.png"`)
}

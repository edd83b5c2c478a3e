package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gomwu/domain/core"
	"gomwu/domain/run"
	"gomwu/internal"
	"gomwu/internal/analysis"
	"gomwu/internal/config"
	"gomwu/internal/errors"
	"gomwu/internal/ranksum"
	"gomwu/internal/report"
	"gomwu/ports"

	"golang.org/x/sync/errgroup"
)

// ReaderFactory opens the input of one run
type ReaderFactory func(path, sheet string) ports.DatasetReaderPort

// Dependencies wires the adapters used by AnalysisService. Plotter and
// Reporter may be nil when the matching output is disabled.
type Dependencies struct {
	NewReader ReaderFactory
	Writer    ports.ResultsWriterPort
	Plotter   ports.PlotRendererPort
	Reporter  ports.ReportRendererPort
	Logger    *internal.Logger
	Out       io.Writer        // progress and results text, stdout by default
	Clock     func() time.Time // time.Now by default
}

// AnalysisService runs load, split, test, report and render for one comparison
type AnalysisService struct {
	deps Dependencies
}

// NewAnalysisService creates an analysis service
func NewAnalysisService(deps Dependencies) *AnalysisService {
	if deps.Logger == nil {
		deps.Logger = internal.NewNopLogger()
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &AnalysisService{deps: deps}
}

// Run executes one analysis and returns its manifest. Any failure aborts
// the run; artifacts already on disk are left in place.
func (s *AnalysisService) Run(ctx context.Context, cfg *config.Config) (*run.Manifest, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	a, o := cfg.Analysis, cfg.Output
	logger := s.deps.Logger
	start := time.Now()

	method, err := ranksum.ParseMethod(a.Method)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	// Step 1: Load
	fmt.Fprintf(s.deps.Out, "Reading data from %s...\n", a.ExcelPath)
	ds, err := s.deps.NewReader(a.ExcelPath, a.SheetName).ReadData(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load data")
	}

	// Step 2: Split
	samples, err := analysis.Split(ds, a.GroupColumn, a.ValueColumn, a.Group1Name, a.Group2Name)
	if err != nil {
		return nil, err
	}
	logger.Info("[AnalysisService] %s: %d observations, %s: %d observations",
		samples.Group1Name, len(samples.Group1), samples.Group2Name, len(samples.Group2))

	// Step 3: Test
	engine := analysis.NewTestEngine(analysis.EngineOptions{
		Method:           method,
		UseContinuity:    a.UseContinuity,
		EffectSizeMethod: a.EffectSizeMethod,
	}, logger)
	result, err := engine.Compute(samples)
	if err != nil {
		return nil, err
	}
	summary, err := analysis.Summarize(samples, result)
	if err != nil {
		return nil, err
	}

	// Step 4: Manifest
	inputHash, err := core.HashFile(a.ExcelPath)
	if err != nil {
		return nil, errors.IOError("failed to hash input", err)
	}
	fingerprint := run.NewRunFingerprint(inputHash, run.Settings{
		InputPath:        a.ExcelPath,
		Sheet:            ds.Sheet,
		GroupColumn:      a.GroupColumn,
		ValueColumn:      a.ValueColumn,
		Group1Name:       a.Group1Name,
		Group2Name:       a.Group2Name,
		Method:           string(method),
		EffectSizeMethod: a.EffectSizeMethod,
		UseContinuity:    a.UseContinuity,
		OutputPrefix:     o.Prefix,
	})
	manifest := run.NewManifest(core.NewRunID(), core.NewTimestamp(s.deps.Clock()), fingerprint)
	manifest.Summary = *summary

	// Step 5: Artifacts
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return nil, errors.IOError("failed to create output directory", err)
	}
	resultsPath := ArtifactPath(o.Dir, o.Prefix, "results", manifest.Stamp, "xlsx")
	manifest.AddArtifact(run.ArtifactResultsWorkbook, resultsPath)
	plotPath := ""
	if o.Plot && s.deps.Plotter != nil {
		plotPath = ArtifactPath(o.Dir, o.Prefix, "plot", manifest.Stamp, "png")
		manifest.AddArtifact(run.ArtifactPlot, plotPath)
	}
	reportPath := ""
	if o.HTMLReport && s.deps.Reporter != nil {
		reportPath = ArtifactPath(o.Dir, o.Prefix, "report", manifest.Stamp, "html")
		manifest.AddArtifact(run.ArtifactHTMLReport, reportPath)
	}

	// each task owns its file; the manifest is only read from here on
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.deps.Writer.Write(gctx, manifest.RunID.String(), summary, resultsPath)
	})
	if plotPath != "" {
		g.Go(func() error {
			return s.deps.Plotter.Render(gctx, samples, summary, plotPath)
		})
	}
	if reportPath != "" {
		g.Go(func() error {
			return s.deps.Reporter.Render(gctx, manifest, reportPath)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "failed to write artifacts")
	}

	// Step 6: Console
	fmt.Fprintln(s.deps.Out, "\nResults saved to:", resultsPath)
	if plotPath != "" {
		fmt.Fprintln(s.deps.Out, "Plot saved to:", plotPath)
	}
	if reportPath != "" {
		fmt.Fprintln(s.deps.Out, "Report saved to:", reportPath)
	}
	if err := report.WriteConsole(s.deps.Out, summary); err != nil {
		return nil, errors.IOError("failed to write console report", err)
	}

	logger.Info("[AnalysisService] run %s finished in %s (p=%.4g, r=%.4f)",
		manifest.RunID, time.Since(start).Round(time.Millisecond), result.PValue, result.EffectSize)
	return manifest, nil
}

// ArtifactPath builds {dir}/{prefix}_{kind}_{stamp}.{ext}
func ArtifactPath(dir, prefix, kind, stamp, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%s.%s", prefix, kind, stamp, ext))
}

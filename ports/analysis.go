package ports

import (
	"context"

	"gomwu/domain/dataset"
	"gomwu/domain/run"
	"gomwu/domain/stats"
	"gomwu/internal/analysis"
)

// DatasetReaderPort loads the tabular input of a run
type DatasetReaderPort interface {
	ReadData(ctx context.Context) (*dataset.Dataset, error)
}

// ResultsWriterPort persists the statistics of a run as a workbook
type ResultsWriterPort interface {
	Write(ctx context.Context, runID string, summary *stats.Summary, path string) error
}

// PlotRendererPort draws the group comparison figure
type PlotRendererPort interface {
	Render(ctx context.Context, samples *analysis.GroupSamples, summary *stats.Summary, path string) error
}

// ReportRendererPort turns a finished run into a standalone document
type ReportRendererPort interface {
	Render(ctx context.Context, manifest *run.Manifest, path string) error
}

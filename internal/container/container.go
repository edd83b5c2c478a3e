package container

import (
	"context"
	"fmt"
	"io"

	"gomwu/adapters/excel"
	"gomwu/adapters/plot"
	"gomwu/app"
	"gomwu/internal"
	"gomwu/internal/config"
	"gomwu/internal/report"
	"gomwu/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Adapters
	Writer   ports.ResultsWriterPort
	Plotter  ports.PlotRendererPort
	Reporter ports.ReportRendererPort

	// Services
	AnalysisService *app.AnalysisService
}

// New wires the adapters and services for cfg. Console output goes to out.
func New(cfg *config.Config, out io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level))
	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Writer:   excel.NewResultsWriter(logger),
		Reporter: report.NewHTMLWriter(),
	}

	plotOpts := plot.DefaultOptions()
	plotOpts.GroupLabel = cfg.Analysis.GroupColumn
	plotOpts.ValueLabel = cfg.Analysis.ValueColumn
	c.Plotter = plot.NewRenderer(plotOpts, logger)

	c.AnalysisService = app.NewAnalysisService(app.Dependencies{
		NewReader: func(path, sheet string) ports.DatasetReaderPort {
			return excel.NewDataReader(excel.ReaderConfig{FilePath: path, Sheet: sheet}, logger)
		},
		Writer:   c.Writer,
		Plotter:  c.Plotter,
		Reporter: c.Reporter,
		Logger:   logger,
		Out:      out,
	})

	logger.Debug("[Container] initialized (plot=%t html=%t)", cfg.Output.Plot, cfg.Output.HTMLReport)
	return c, nil
}

// Shutdown flushes the logger
func (c *Container) Shutdown(ctx context.Context) {
	_ = c.Logger.Sync()
}

package main

import (
	"fmt"
	"io"
	"os"

	"gomwu/adapters/excel"
	"gomwu/internal/config"
	"gomwu/internal/container"
	"gomwu/internal/report"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mwu",
		Short:         "Two-group Mann-Whitney U analysis from a spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newInspectCmd(),
	)
	return rootCmd
}

// runFlags mirror the MWU_* environment variables
type runFlags struct {
	excelPath, sheet         string
	groupColumn, valueColumn string
	group1, group2           string
	prefix, outputDir        string
	method, effectSize       string
	logLevel                 string
	continuity, plot, html   bool
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare two groups and write results, plot and console report",
		Long: `Read a spreadsheet, split the value column by the two group labels, run a
two-sided Mann-Whitney U test and write the results workbook and plot.

Defaults come from the environment (MWU_EXCEL_PATH, MWU_GROUP1, ...) or a .env
file; flags override both.

Example: mwu run --excel data.xlsx --group1 Control --group2 Treatment --prefix trial`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, &f, cfg)
			if err := config.Validate(cfg); err != nil {
				return err
			}
			return runAnalysis(cmd, cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.excelPath, "excel", "", "Input .xlsx or .csv file")
	flags.StringVar(&f.sheet, "sheet", "", "Sheet name (default: first sheet)")
	flags.StringVar(&f.groupColumn, "group-column", "", "Column holding group labels")
	flags.StringVar(&f.valueColumn, "value-column", "", "Column holding numeric values")
	flags.StringVar(&f.group1, "group1", "", "First group label")
	flags.StringVar(&f.group2, "group2", "", "Second group label")
	flags.StringVar(&f.prefix, "prefix", "", "Output file name prefix")
	flags.StringVar(&f.outputDir, "output-dir", "", "Directory for output files")
	flags.StringVar(&f.method, "method", "", "p-value method: auto|exact|asymptotic")
	flags.StringVar(&f.effectSize, "effect-size", "", "Effect size method: p-inverse|rank-z")
	flags.StringVar(&f.logLevel, "log-level", "", "ERROR|WARN|INFO|DEBUG|TRACE")
	flags.BoolVar(&f.continuity, "continuity", true, "Apply continuity correction in the normal approximation")
	flags.BoolVar(&f.plot, "plot", true, "Render the comparison plot")
	flags.BoolVar(&f.html, "html", false, "Write an HTML report")

	return cmd
}

// applyFlags overrides cfg with every flag set on the command line
func applyFlags(cmd *cobra.Command, f *runFlags, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("excel", &cfg.Analysis.ExcelPath, f.excelPath)
	set("sheet", &cfg.Analysis.SheetName, f.sheet)
	set("group-column", &cfg.Analysis.GroupColumn, f.groupColumn)
	set("value-column", &cfg.Analysis.ValueColumn, f.valueColumn)
	set("group1", &cfg.Analysis.Group1Name, f.group1)
	set("group2", &cfg.Analysis.Group2Name, f.group2)
	set("prefix", &cfg.Output.Prefix, f.prefix)
	set("output-dir", &cfg.Output.Dir, f.outputDir)
	set("method", &cfg.Analysis.Method, f.method)
	set("effect-size", &cfg.Analysis.EffectSizeMethod, f.effectSize)
	set("log-level", &cfg.Logging.Level, f.logLevel)

	if cmd.Flags().Changed("continuity") {
		cfg.Analysis.UseContinuity = f.continuity
	}
	if cmd.Flags().Changed("plot") {
		cfg.Output.Plot = f.plot
	}
	if cmd.Flags().Changed("html") {
		cfg.Output.HTMLReport = f.html
	}
}

func runAnalysis(cmd *cobra.Command, cfg *config.Config, out io.Writer) error {
	c, err := container.New(cfg, out)
	if err != nil {
		return err
	}
	defer c.Shutdown(cmd.Context())

	m, err := c.AnalysisService.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nRun %s (fingerprint %s)\n", m.RunID, m.Fingerprint.Fingerprint.Short())
	return nil
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [results.xlsx]",
		Short: "Print a results workbook written by run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := excel.ReadResultsWorkbook(args[0])
			if err != nil {
				return err
			}
			return printWorkbook(cmd.OutOrStdout(), wb)
		},
	}
}

func printWorkbook(out io.Writer, wb *excel.ResultsWorkbook) error {
	r := wb.Results
	if wb.RunID != "" {
		fmt.Fprintf(out, "Run: %s\n", wb.RunID)
	}
	fmt.Fprintf(out, "%s: %s vs %s\n", r.TestType, r.Group1, r.Group2)
	fmt.Fprintf(out, "U-statistic: %.4f\n", r.UStatistic)
	fmt.Fprintf(out, "p-value: %.4f\n", r.PValue)
	fmt.Fprintf(out, "Effect size (r): %.4f\n", r.EffectSize)
	fmt.Fprintf(out, "Effect size interpretation: %s\n", r.Interpretation)
	fmt.Fprintf(out, "Significant difference: %s\n", r.Significant)

	fmt.Fprintf(out, "\n%-16s %14s %14s\n", "Statistic", wb.Group1Name, wb.Group2Name)
	for _, row := range wb.Descriptive {
		fmt.Fprintf(out, "%-16s %14s %14s\n", row.Statistic, report.FormatNumber(row.Group1), report.FormatNumber(row.Group2))
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sheetviz/app"
	"sheetviz/domain/tabular"
	"sheetviz/internal"
	"sheetviz/internal/ingest"
	"sheetviz/internal/series"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type options struct {
	format string
	sheet  string
	debug  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "sheetviz-cli",
		Short:         "Profile tabular files and build chart series from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatJSON && opts.format != formatYAML {
				return fmt.Errorf("unsupported --format %q (use json or yaml)", opts.format)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.format, "format", formatJSON, "Output format: json or yaml")
	rootCmd.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "Worksheet to read from xlsx/xls files (default first sheet)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(
		newProfileCmd(opts),
		newSuggestCmd(opts),
		newSeriesCmd(opts),
	)
	return rootCmd
}

func newProfileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profile FILE",
		Short: "Print the column profile of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := analyzeFile(opts, args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, analysis.Profile)
		},
	}
}

func newSuggestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest FILE",
		Short: "Print the suggested chart configuration for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := analyzeFile(opts, args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, analysis.Suggestion)
		},
	}
}

func newSeriesCmd(opts *options) *cobra.Command {
	var xAxis string
	var yAxis []string
	var chartType string

	cmd := &cobra.Command{
		Use:   "series FILE",
		Short: "Print chart series for a file",
		Long: `Build {labels, datasets} for an axis selection. Flags that are not
given fall back to the suggested configuration.

Example: sheetviz-cli series sales.csv --x month --y revenue,cost --type bar`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := newPipeline(opts)
			analysis, err := analyze(pipeline, args[0])
			if err != nil {
				return err
			}

			req := series.RequestFromConfiguration(analysis.Suggestion)
			if xAxis != "" {
				req.XAxis = xAxis
			}
			if len(yAxis) > 0 {
				req.YAxis = yAxis
			}
			if chartType != "" {
				ct, err := tabular.ParseChartType(chartType)
				if err != nil {
					return err
				}
				req.ChartType = ct
			}

			data, err := pipeline.Build(analysis.Table, req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, data)
		},
	}

	cmd.Flags().StringVar(&xAxis, "x", "", "Column used for labels")
	cmd.Flags().StringSliceVar(&yAxis, "y", nil, "Numeric columns to plot (comma separated, at most 3)")
	cmd.Flags().StringVar(&chartType, "type", "", "Chart type: bar, line, pie, doughnut, area, scatter or radar")
	return cmd
}

func newPipeline(opts *options) *app.Pipeline {
	level := internal.LogLevelError
	if opts.debug {
		level = internal.LogLevelDebug
	}
	parserOpts := ingest.DefaultOptions()
	parserOpts.Sheet = opts.sheet
	return app.NewDefaultPipeline(parserOpts, internal.NewLogger(level))
}

func analyzeFile(opts *options, path string) (*app.Analysis, error) {
	return analyze(newPipeline(opts), path)
}

func analyze(pipeline *app.Pipeline, path string) (*app.Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return pipeline.Analyze(data, ingest.FileHint{Filename: filepath.Base(path)})
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

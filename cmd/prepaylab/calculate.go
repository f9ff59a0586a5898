package main

import (
	"errors"
	"fmt"

	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/prepaylab/prepay-calculator/internal/output"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	input     string
	format    string
	output    string
	outputDir string
	schedule  bool
	pretty    bool
}

func (f *reportFlags) register(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "input YAML/JSON file, or '-' to read stdin")
	cmd.Flags().StringVarP(&f.format, "format", "f", defaultFormat, "output format (see 'prepaylab formats'), or 'all' with --output-dir")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "", "write timestamped report files to this directory")
	cmd.Flags().BoolVar(&f.schedule, "schedule", false, "include the repayment schedule after prepayment")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "indent JSON output")
	_ = cmd.MarkFlagRequired("input")
}

func (f *reportFlags) formatName() string {
	if f.pretty && output.NormalizeFormatName(f.format) == "json" {
		return "json-pretty"
	}
	return f.format
}

// check rejects an unknown format before any input is read.
func (f *reportFlags) check() error {
	if f.output != "" && f.outputDir != "" {
		return &inputError{err: errors.New("--output and --output-dir cannot be combined")}
	}
	if output.NormalizeFormatName(f.format) == "all" {
		if f.outputDir == "" {
			return &inputError{err: fmt.Errorf("format %q requires --output-dir", f.format)}
		}
		return nil
	}
	if _, err := output.LookupFormatter(f.formatName()); err != nil {
		return &inputError{err: err}
	}
	return nil
}

// emit renders results to stdout, to --output, or as report files under
// --output-dir whose names are then listed on stdout.
func (f *reportFlags) emit(a *app, results *domain.ScenarioComparison) error {
	if f.outputDir != "" {
		files, err := output.GenerateReport(results, f.formatName(), f.outputDir)
		if err != nil {
			return err
		}
		for _, file := range files {
			fmt.Fprintln(a.stdout, file)
		}
		return nil
	}
	formatter, err := output.LookupFormatter(f.formatName())
	if err != nil {
		return &inputError{err: err}
	}
	data, err := formatter.Format(results)
	if err != nil {
		return err
	}
	return a.writeOutput(f.output, data)
}

func newCalculateCmd(a *app) *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate a single prepayment",
		Long: `Calculate reads a loan and its prepayment proposal and prints the
summary, warnings and (with --schedule) the repayment schedule afterwards.
Alternative scenarios in the input are ignored; use compare for those.`,
		Example: `  prepaylab calculate --input loan.json --pretty
  cat loan.yaml | prepaylab calculate --input - --format console --schedule`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.check(); err != nil {
				return err
			}
			engine := a.engine()
			cfg, err := a.loadConfiguration(engine, flags.input)
			if err != nil {
				return err
			}
			single := &domain.Configuration{Name: cfg.Name, LoanRequest: cfg.LoanRequest}
			if flags.schedule {
				single.IncludeSchedule = true
			}

			results, err := engine.RunScenarios(single)
			if err != nil {
				return err
			}
			return flags.emit(a, results)
		},
	}
	flags.register(cmd, "json")
	return cmd
}

func newCompareCmd(a *app) *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the base proposal with alternative scenarios",
		Example: `  prepaylab compare --input loan.yaml
  prepaylab compare --input loan.yaml --format csv --output summary.csv
  prepaylab compare --input loan.yaml --format all --output-dir reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.check(); err != nil {
				return err
			}
			engine := a.engine()
			cfg, err := a.loadConfiguration(engine, flags.input)
			if err != nil {
				return err
			}
			if flags.schedule {
				cfg.IncludeSchedule = true
			}

			results, err := engine.RunScenarios(cfg)
			if err != nil {
				return err
			}
			return flags.emit(a, results)
		},
	}
	flags.register(cmd, "console")
	return cmd
}

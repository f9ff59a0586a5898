package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prepaylab/prepay-calculator/internal/calculation"
	"github.com/prepaylab/prepay-calculator/internal/domain"
	"github.com/prepaylab/prepay-calculator/internal/output"
	"github.com/spf13/cobra"
)

// inputError marks failures caused by the caller's input (unreadable or
// malformed files) that do not already carry domain.ErrInvalidInput.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ie *inputError
	if errors.As(err, &ie) || errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, output.ErrUnsupportedFormat) {
		return 2
	}
	return 1
}

// app carries the streams and global flags shared by every subcommand.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	verbose        bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "prepaylab",
		Short: "PrepayLab 提前还贷计算器",
		Long: `PrepayLab compares a loan's remaining interest before and after a
prepayment, for equal-installment (EPI) and equal-principal (EP) loans.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &inputError{err: err}
	})
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log calculation details to stderr")

	root.AddCommand(
		newCalculateCmd(a),
		newCompareCmd(a),
		newServeCmd(a),
		newExampleCmd(a),
		newFormatsCmd(a),
	)
	return root
}

// engine builds a calculation engine logging to stderr.
func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	level := calculation.LevelWarn
	if a.verbose {
		level = calculation.LevelDebug
		engine.Debug = true
	}
	engine.SetLogger(calculation.NewLevelLogger(a.stderr, level))
	return engine
}

// loadConfiguration reads a YAML or JSON configuration from path, or from
// stdin when path is "-".
func (a *app) loadConfiguration(engine *calculation.CalculationEngine, path string) (*domain.Configuration, error) {
	var (
		cfg *domain.Configuration
		err error
	)
	if path == "-" {
		cfg, err = engine.Parser.LoadFromReader(a.stdin)
	} else {
		cfg, err = engine.Parser.LoadFromFile(path)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, &inputError{err: err}
	}
	return cfg, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

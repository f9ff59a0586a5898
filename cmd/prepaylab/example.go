package main

import (
	"fmt"
	"strings"

	"github.com/prepaylab/prepay-calculator/internal/config"
	"github.com/prepaylab/prepay-calculator/internal/output"
	"github.com/spf13/cobra"
)

func newExampleCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example input configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if path != "" {
				if err := output.SaveConfiguration(cfg, path); err != nil {
					return err
				}
				fmt.Fprintf(a.stderr, "example configuration written to %s\n", path)
				return nil
			}
			data, err := output.MarshalConfiguration(cfg)
			if err != nil {
				return err
			}
			return a.writeOutput("", data)
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newFormatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(a.stdout, "aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
			return nil
		},
	}
}

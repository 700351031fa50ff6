package main

import (
	"fmt"
	"os"
	"time"

	"contractabi/internal/abi"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the contract model of a declaration file",
	Long: `Print the contract root, its deployer and message functions, the storage
classes with their field layouts, and the type table.

Formats:
  text  one line per callable, field and type table entry
  yaml  the full model, including codec hints and default values`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if inspectFormat != "text" && inspectFormat != "yaml" {
			return fmt.Errorf("unknown format %q (want text or yaml)", inspectFormat)
		}

		startTime := time.Now()
		path := args[0]

		c, err := compile(path, cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stderr, c.report())

		duration := formatDuration(time.Since(startTime))
		if c.failed {
			return fmt.Errorf("compilation failed after %s", duration)
		}

		out, err := render(c.model, inspectFormat)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)

		color.New(color.FgGreen).Fprintf(os.Stderr, "Successfully processed %s in %s\n", path, duration)
		return nil
	},
}

func render(model *abi.ContractModel, format string) (string, error) {
	if format == "yaml" {
		out, err := abi.Dump(model)
		if err != nil {
			return "", fmt.Errorf("failed to encode model: %w", err)
		}
		return string(out), nil
	}
	return model.String(), nil
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "output format: text|yaml")
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Report diagnostics without printing the model",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()
		var errorCount, warningCount int

		for _, path := range args {
			c, err := compile(path, cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stderr, c.report())

			warnings := c.warnings()
			warningCount += warnings
			errorCount += len(c.diagnostics) - warnings
		}

		duration := formatDuration(time.Since(startTime))
		if errorCount > 0 || (checkStrict && warningCount > 0) {
			return fmt.Errorf("check failed after %s: %d errors, %d warnings", duration, errorCount, warningCount)
		}

		color.New(color.FgGreen).Fprintf(os.Stderr, "Checked %d files in %s (%d warnings)\n", len(args), duration, warningCount)
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "treat warnings as errors")
}

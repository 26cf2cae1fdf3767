package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/researchlog/internal/research"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries and their statistics to JSON or CSV",
	Long: `Export every entry together with its mean, standard deviation and
median for external analysis.

Examples:
  rlog export --as json --output research.json
  rlog export -F csv --output research.csv
  rlog export                                   # JSON to stdout`,
	RunE: runExport,
}

// Flags
var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	// --format is taken by the data file format, so the export format is -F/--as.
	exportCmd.Flags().StringVarP(&exportFormat, "as", "F", research.ExportJSON, "Output format: json, csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	ctx := cmd.Context()
	if err := app.LoadStore(ctx, cmd.ErrOrStderr()); err != nil {
		return err
	}

	var output io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		output = f
	}

	n, err := app.Service.Export(ctx, output, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", n, exportOutput)
	}
	return nil
}

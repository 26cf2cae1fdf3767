package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/researchlog/internal/codec"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Rewrite the data file in another format",
	Long: `Read the data file in its current format (--format) and write it in
the target format.

Without --output the file is rewritten in place.

Examples:
  rlog convert --to csv                          # research_data.txt becomes CSV
  rlog convert --to jsonl --output data.jsonl    # Keep the source file
  rlog convert --format csv --file data.csv --to legacy --output research_data.txt`,
	RunE: runConvert,
}

// Flags
var (
	convertTo     string
	convertOutput string
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "", "Target format: "+strings.Join(codec.Names(), ", "))
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default: rewrite --file)")
	_ = convertCmd.MarkFlagRequired("to")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	target, err := codec.New(convertTo)
	if err != nil {
		return err
	}

	src := app.FileRepository()
	res, err := src.Load(ctx)
	if err != nil {
		return err
	}
	for _, le := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %v\n", le)
	}

	output := convertOutput
	if output == "" {
		output = app.Config.File
	}

	dst := app.FileRepositoryAt(output, target)
	if err := dst.Save(ctx, res.Records); err != nil {
		return err
	}

	app.Logger.Info(fmt.Sprintf("Converted %d entries from %s (%s) to %s (%s)",
		len(res.Records), src.Location(), app.Resolved.Codec.Name(), output, target.Name()))
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d entries from %s to %s (%s)\n",
		len(res.Records), app.Resolved.Codec.Name(), output, target.Name())
	return nil
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/researchlog/internal/util"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entry and save it",
	Long: `Load the stored entries, append one entry and save them back.

Examples:
  rlog add --name "Trial A" --date 2024-01-15 --researcher "Dr. Smith" --points "1.5, 2, 3.25"
  rlog add -n baseline -r me -p 42 --backend libsql`,
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all entries",
	RunE:  runList,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show mean, standard deviation and median per entry",
	Long: `Show mean, sample standard deviation and median for every entry.

A single data point has no sample standard deviation; it is shown as N/A
unless --stddev-policy zero is set.

Examples:
  rlog analyze                 # Full precision
  rlog analyze --precision 2   # Two decimals`,
	RunE: runAnalyze,
}

// Flags
var (
	addName       string
	addDate       string
	addResearcher string
	addPoints     string

	analyzePrecision int
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(analyzeCmd)

	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Experiment name")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addResearcher, "researcher", "r", "", "Researcher name")
	addCmd.Flags().StringVarP(&addPoints, "points", "p", "", "Data points separated by commas")
	_ = addCmd.MarkFlagRequired("points")

	analyzeCmd.Flags().IntVar(&analyzePrecision, "precision", -1, "Decimals to show (-1 for full precision)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := app.LoadStore(ctx, cmd.ErrOrStderr()); err != nil {
		return err
	}

	if _, err := app.Service.AddEntry(ctx, addName, addDate, addResearcher, addPoints); err != nil {
		return err
	}

	n, err := app.Service.Save(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Entry added successfully!")
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d entries to %s\n", n, app.Service.Location())
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	if err := app.LoadStore(cmd.Context(), cmd.ErrOrStderr()); err != nil {
		return err
	}

	entries := app.Service.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries to display.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tEXPERIMENT\tDATE\tRESEARCHER\tDATA POINTS")
	fmt.Fprintln(w, "-\t----------\t----\t----------\t-----------")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, e.Name, e.Date, e.Researcher, util.FormatPoints(e.DataPoints))
	}
	return w.Flush()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := app.LoadStore(ctx, cmd.ErrOrStderr()); err != nil {
		return err
	}

	results := app.Service.Analyze(ctx)
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No data available for analysis.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXPERIMENT\tN\tAVERAGE\tSTD DEV\tMEDIAN")
	fmt.Fprintln(w, "----------\t-\t-------\t-------\t------")
	for _, a := range results {
		if a.Err != nil {
			fmt.Fprintf(w, "%s\t0\terror: %v\t\t\n", a.Experiment, a.Err)
			continue
		}
		s := a.Summary
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			a.Experiment,
			s.Count,
			util.FormatFixed(s.Mean, analyzePrecision),
			util.FormatOptional(s.StdDev, analyzePrecision),
			util.FormatFixed(s.Median, analyzePrecision),
		)
	}
	return w.Flush()
}

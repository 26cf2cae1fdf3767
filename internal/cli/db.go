package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/researchlog/internal/ports"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Copy entries between the data file and the database",
	Long: `Copy the whole entry store between the text data file (--file, --format)
and the libsql database (--database-url).

Examples:
  rlog db push                                   # research_data.txt -> file:research.db
  rlog db pull --file restored.txt               # database -> restored.txt
  rlog db status --database-url libsql://x.turso.io`,
}

var dbPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Replace the database contents with the data file",
	RunE:  runDBPush,
}

var dbPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace the data file with the database contents",
	RunE:  runDBPull,
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the database record count and last save",
	RunE:  runDBStatus,
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbPushCmd)
	dbCmd.AddCommand(dbPullCmd)
	dbCmd.AddCommand(dbStatusCmd)
}

func runDBPush(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dst, err := app.DatabaseRepository(ctx)
	if err != nil {
		return err
	}
	n, err := copyRecords(ctx, cmd, app.FileRepository(), dst)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d entries from %s to %s\n", n, app.Config.File, dst.Location())
	return nil
}

func runDBPull(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	src, err := app.DatabaseRepository(ctx)
	if err != nil {
		return err
	}
	n, err := copyRecords(ctx, cmd, src, app.FileRepository())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d entries from %s to %s\n", n, src.Location(), app.Config.File)
	return nil
}

func copyRecords(ctx context.Context, cmd *cobra.Command, src, dst ports.RecordRepository) (int, error) {
	res, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load from %s: %w", src.Location(), err)
	}
	for _, le := range res.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %v\n", le)
	}
	if err := dst.Save(ctx, res.Records); err != nil {
		return 0, fmt.Errorf("failed to save to %s: %w", dst.Location(), err)
	}
	app.Metrics.RecordsLoaded(ctx, src.Kind(), len(res.Records), len(res.Skipped))
	app.Metrics.RecordsSaved(ctx, dst.Kind(), len(res.Records))
	return len(res.Records), nil
}

func runDBStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repo, err := app.DatabaseRepository(ctx)
	if err != nil {
		return err
	}

	res, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	last, err := repo.LastSave(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database: %s\n", repo.Location())
	fmt.Fprintf(out, "Entries:  %d\n", len(res.Records))
	if last == nil {
		fmt.Fprintln(out, "Last save: never")
		return nil
	}
	fmt.Fprintf(out, "Last save: %s (%d entries)\n", last.SavedAt.Local().Format(time.DateTime), last.RecordCount)
	return nil
}

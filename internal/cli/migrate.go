package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/researchlog/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations on the libsql database (--database-url).

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  rlog migrate      # Run all pending migrations
  rlog migrate 1    # Migrate to version 1
  rlog migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	db, err := app.DB()
	if err != nil {
		return err
	}

	currentVersion, allMigrations, err := migrate.Prepare(ctx, db.DB)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Current version: %d\n", currentVersion)

	targetVersion := -1
	if len(args) == 1 {
		targetVersion, err = strconv.Atoi(args[0])
		if err != nil || targetVersion < 0 {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
	}

	var n int
	switch {
	case targetVersion < 0 || targetVersion > currentVersion:
		n, err = migrate.MigrateUpTo(ctx, db.DB, allMigrations, currentVersion, targetVersion, out)
	case targetVersion < currentVersion:
		n, err = migrate.MigrateDownTo(ctx, db.DB, allMigrations, currentVersion, targetVersion, out)
	default:
		fmt.Fprintln(out, "Already at target version")
		return nil
	}
	if err != nil {
		return err
	}

	if n == 0 {
		fmt.Fprintln(out, "No migrations to run")
	} else {
		fmt.Fprintf(out, "Applied %d migration(s)\n", n)
	}
	return nil
}

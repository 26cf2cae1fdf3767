package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/researchlog/internal/console"
	"github.com/emiliopalmerini/researchlog/internal/infrastructure/config"
)

var rootCmd = &cobra.Command{
	Use:   "rlog",
	Short: "Record and analyze research experiment data",
	Long: `rlog keeps a log of research experiments: a name, a date, a researcher
and a list of numeric data points per entry.

Entries live in a plain text file (research_data.txt by default) or in a
libsql database. Without a subcommand rlog starts the interactive menu.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
	RunE:              runMenu,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	RunE:  runMenu,
}

// Persistent flags. Each overrides its RLOG_* environment variable when set.
var (
	flagFile             string
	flagFormat           string
	flagBackend          string
	flagSkipInvalidLines bool
	flagStdDevPolicy     string
	flagDatabaseURL      string
)

// app is built before every command runs.
var app *AppContext

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := rootCmd.ExecuteContext(ctx)
	if app != nil {
		if cerr := app.Close(); cerr != nil && err == nil {
			err = cerr
		}
		app = nil
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagFile, "file", "", "Data file path (env RLOG_FILE)")
	pf.StringVar(&flagFormat, "format", "", "Data file format: legacy, csv, jsonl (env RLOG_FORMAT)")
	pf.StringVar(&flagBackend, "backend", "", "Storage backend: file, libsql (env RLOG_BACKEND)")
	pf.BoolVar(&flagSkipInvalidLines, "skip-invalid-lines", false, "Skip malformed lines when loading (env RLOG_SKIP_INVALID_LINES)")
	pf.StringVar(&flagStdDevPolicy, "stddev-policy", "", "Single data point stddev: undefined, zero (env RLOG_STDDEV_POLICY)")
	pf.StringVar(&flagDatabaseURL, "database-url", "", "libsql database URL (env RLOG_DATABASE_URL)")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(migrateCmd)
}

// loadConfig reads the environment and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = flagFile
	}
	if flags.Changed("format") {
		cfg.Format = flagFormat
	}
	if flags.Changed("backend") {
		cfg.Backend = flagBackend
	}
	if flags.Changed("skip-invalid-lines") {
		cfg.SkipInvalidLines = flagSkipInvalidLines
	}
	if flags.Changed("stddev-policy") {
		cfg.StdDevPolicy = flagStdDevPolicy
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = flagDatabaseURL
	}
	return cfg, nil
}

func setupApp(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	a, err := NewAppContext(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	app = a
	return nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := app.LoadStore(ctx, cmd.ErrOrStderr()); err != nil {
		return err
	}
	err := console.NewMenu(app.Service, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after environment variables and flags are applied.

Examples:
  rlog config
  RLOG_FORMAT=csv rlog config --backend libsql`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := app.Config

	otelState := "disabled"
	if cfg.OTEL.Enabled {
		otelState = "enabled (" + cfg.OTEL.Endpoint + ")"
	}
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = "(default)"
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "backend\t%s\n", app.Resolved.Backend)
	fmt.Fprintf(w, "file\t%s\n", cfg.File)
	fmt.Fprintf(w, "format\t%s\n", app.Resolved.Codec.Name())
	fmt.Fprintf(w, "skip invalid lines\t%t\n", cfg.SkipInvalidLines)
	fmt.Fprintf(w, "stddev policy\t%s\n", app.Resolved.Policy)
	fmt.Fprintf(w, "database url\t%s\n", cfg.DatabaseURL)
	fmt.Fprintf(w, "log level\t%s\n", cfg.LogLevel)
	fmt.Fprintf(w, "log file\t%s\n", logFile)
	fmt.Fprintf(w, "metrics\t%s\n", otelState)
	fmt.Fprintf(w, "web port\t%s\n", cfg.Addr)
	return w.Flush()
}

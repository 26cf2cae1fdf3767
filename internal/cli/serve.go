package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/researchlog/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form",
	Long: `Start the local web form for adding, viewing, analyzing and saving entries.

Entries are loaded once at startup and written back only when Save Entries
is pressed.

Examples:
  rlog serve              # Start on RLOG_ADDR (default 8080)
  rlog serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (env RLOG_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	port := servePort
	if !cmd.Flags().Changed("port") {
		p, err := strconv.Atoi(app.Config.Addr)
		if err != nil {
			return fmt.Errorf("invalid RLOG_ADDR %q: %w", app.Config.Addr, err)
		}
		port = p
	}

	if err := app.LoadStore(ctx, cmd.ErrOrStderr()); err != nil {
		return err
	}

	server := web.NewServer(app.Service, port, app.Logger)
	return server.Start(ctx)
}

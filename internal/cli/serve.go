package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ankr/toolhub/internal/daemon"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run toolhub in the foreground",
	Long: `Run toolhub in the foreground until SIGINT or SIGTERM.
Serves Prometheus metrics and a health check on metrics.addr, watches the
skills directory for changes and resets the skill cache on skills.cache_reset_cron.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	d, err := daemon.New(a)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	if err := d.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	d.Wait()
	return nil
}

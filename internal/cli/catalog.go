package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load the catalog and report which tier served it",
	Long: `Load the tool catalog the way every command does and report the result.
The tier is full when every provider started, fallback-default when only
resource-free providers did, fallback-static when the embedded catalog was
used and none when nothing could be loaded.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print the full catalog as JSON")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	if catalogJSON {
		return printJSON(out, a.Catalog)
	}

	fmt.Fprintf(out, "Tier: %s\n", a.Catalog.Tier)
	fmt.Fprintf(out, "Tools: %d\n", len(a.Catalog.Tools))
	fmt.Fprintf(out, "Loaded at: %s\n", a.Catalog.LoadedAt.Format(time.RFC3339))
	return nil
}

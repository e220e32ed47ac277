package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ankr/toolhub/pkg/llmtools"
	"github.com/ankr/toolhub/pkg/toolexecutor"
)

var (
	toolsCategory string
	toolsQuery    string
	toolsJSON     bool
	schemaFormat  string
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the tool catalog",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tools",
	Long: `List registered tools sorted by name.
Use --category to restrict to one category and --query to search names and descriptions.`,
	Args: cobra.NoArgs,
	RunE: runToolsList,
}

var toolsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a tool's function-calling schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runToolsShow,
}

var toolsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print every tool's schema for an LLM API",
	Long: `Print the function-calling schema of every registered tool.
--format selects the shape: generic, anthropic or openai.`,
	Args: cobra.NoArgs,
	RunE: runToolsSchema,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List tool categories with their tool counts",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	toolsListCmd.Flags().StringVar(&toolsCategory, "category", "", "only list tools in this category")
	toolsListCmd.Flags().StringVar(&toolsQuery, "query", "", "case-insensitive substring of name or description")
	toolsListCmd.Flags().BoolVar(&toolsJSON, "json", false, "print JSON")
	toolsSchemaCmd.Flags().StringVar(&schemaFormat, "format", "generic", "schema shape (generic, anthropic, openai)")

	toolsCmd.AddCommand(toolsListCmd, toolsShowCmd, toolsSchemaCmd)
	rootCmd.AddCommand(toolsCmd, categoriesCmd)
}

func runToolsList(cmd *cobra.Command, args []string) error {
	if toolsCategory != "" && !toolexecutor.IsValidCategory(toolsCategory) {
		return fmt.Errorf("unknown category %q", toolsCategory)
	}

	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	defs := a.Registry.Search(toolsQuery, toolsCategory)
	out := cmd.OutOrStdout()

	if toolsJSON {
		return printJSON(out, defs)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION")
	for _, def := range defs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Category, def.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d tools (catalog tier: %s)\n", len(defs), a.Catalog.Tier)
	return nil
}

func runToolsShow(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	def, ok := a.Registry.Get(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", toolexecutor.ErrToolNotFound, args[0])
	}
	return printJSON(cmd.OutOrStdout(), toolexecutor.Describe(*def))
}

func runToolsSchema(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	descriptors := a.Registry.GetToolDefinitions()
	out := cmd.OutOrStdout()

	switch strings.ToLower(schemaFormat) {
	case "generic", "":
		return printJSON(out, descriptors)
	case "anthropic":
		return printJSON(out, llmtools.Anthropic(descriptors))
	case "openai":
		return printJSON(out, llmtools.OpenAI(descriptors))
	default:
		return fmt.Errorf("unknown schema format %q (want generic, anthropic or openai)", schemaFormat)
	}
}

func runCategories(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tTOOLS")
	for _, c := range a.Registry.Categories() {
		fmt.Fprintf(w, "%s\t%d\n", c.Category, c.Count)
	}
	return w.Flush()
}

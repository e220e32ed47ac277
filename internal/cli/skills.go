package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	skillsProduct   string
	skillsQuery     string
	skillsNames     []string
	skillsMaxTokens int
	skillsJSON      bool
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Select and load skill documents",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skill documents in the skills directory",
	Args:  cobra.NoArgs,
	RunE:  runSkillsList,
}

var skillsSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Show which skills a product and query select",
	Long: `Show which skills would be loaded for a product and a query.
Explicit --names win over the query, the query wins over the product defaults.`,
	Args: cobra.NoArgs,
	RunE: runSkillsSelect,
}

var skillsLoadCmd = &cobra.Command{
	Use:   "load [name...]",
	Short: "Load skills within a token budget",
	Long: `Load skill documents within --max-tokens and print them.
With no names, skills are selected from --product and --query.
Skills that do not fit are compressed or skipped.`,
	RunE: runSkillsLoad,
}

func init() {
	for _, c := range []*cobra.Command{skillsSelectCmd, skillsLoadCmd} {
		c.Flags().StringVar(&skillsProduct, "product", "", "product whose default skills apply")
		c.Flags().StringVar(&skillsQuery, "query", "", "user query used for trigger detection")
	}
	skillsSelectCmd.Flags().StringSliceVar(&skillsNames, "names", nil, "explicit skill names")
	skillsLoadCmd.Flags().IntVar(&skillsMaxTokens, "max-tokens", 0, "token budget (default from config)")
	skillsLoadCmd.Flags().BoolVar(&skillsJSON, "json", false, "print JSON")

	skillsCmd.AddCommand(skillsListCmd, skillsSelectCmd, skillsLoadCmd)
	rootCmd.AddCommand(skillsCmd)
}

func runSkillsList(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	list, err := a.Skills.Store().List()
	if err != nil {
		return fmt.Errorf("failed to list skills: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tPATH")
	for _, s := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Category, s.Path)
	}
	return w.Flush()
}

func runSkillsSelect(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, name := range a.Selector.Select(skillsProduct, skillsQuery, skillsNames) {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func runSkillsLoad(cmd *cobra.Command, args []string) error {
	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	loaded := a.SelectAndLoad(skillsProduct, skillsQuery, args, skillsMaxTokens)
	out := cmd.OutOrStdout()

	if skillsJSON {
		return printJSON(out, loaded)
	}

	total := 0
	parts := make([]string, 0, len(loaded))
	for _, c := range loaded {
		total += c.TokenCount
		parts = append(parts, c.String())
	}
	fmt.Fprintln(out, strings.Join(parts, "\n\n---\n\n"))
	fmt.Fprintf(out, "\n%d skills, %d tokens\n", len(loaded), total)
	return nil
}

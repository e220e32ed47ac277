package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ankr/toolhub/internal/tracing"
	"github.com/ankr/toolhub/pkg/toolexecutor"
)

var (
	execParams string
	requestID  string
)

var execCmd = &cobra.Command{
	Use:   "exec <tool>",
	Short: "Execute one tool",
	Long: `Execute a registered tool and print its result as JSON.
Parameters are passed as a JSON object with --params.`,
	Example: `  toolhub exec time_now --params '{"timezone":"Asia/Kolkata"}'`,
	Args:    cobra.ExactArgs(1),
	RunE:    runExec,
}

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Execute a batch of tool calls concurrently",
	Long: `Execute every call in a JSON file concurrently and print the results in call order.
The file holds an array of {"tool": "...", "params": {...}} objects; use - for stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	execCmd.Flags().StringVar(&execParams, "params", "{}", "tool parameters as a JSON object")
	for _, c := range []*cobra.Command{execCmd, batchCmd} {
		c.Flags().StringVar(&requestID, "request-id", "", "caller request ID attached to execution logs")
	}
	rootCmd.AddCommand(execCmd, batchCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	params := map[string]interface{}{}
	if execParams != "" {
		if err := json.Unmarshal([]byte(execParams), &params); err != nil {
			return fmt.Errorf("invalid --params: %w", err)
		}
	}

	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := tracing.NewRequestContext(cmd.Context(), requestID)
	result := a.Executor.ExecuteOne(ctx, args[0], params)
	return printJSON(cmd.OutOrStdout(), result)
}

func runBatch(cmd *cobra.Command, args []string) error {
	calls, err := readCalls(cmd, args[0])
	if err != nil {
		return err
	}

	a, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := tracing.NewRequestContext(cmd.Context(), requestID)
	results := a.Executor.ExecuteMany(ctx, calls)
	return printJSON(cmd.OutOrStdout(), results)
}

func readCalls(cmd *cobra.Command, path string) ([]toolexecutor.Call, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}

	var calls []toolexecutor.Call
	if err := json.Unmarshal(data, &calls); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}
	return calls, nil
}

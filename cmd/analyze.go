package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

// analyzeCmd classifies a single domain or URL and prints the result
var analyzeCmd = &cobra.Command{
	Use:   "analyze <domain-or-url>",
	Short: "classify a single domain or URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		res := setupPipeline(cfg).Analyze(cmd.Context(), args[0])

		return printResult(cmd.OutOrStdout(), res)
	},
}

// init registers the analyze command on the root command
func init() {
	rootCmd.AddCommand(analyzeCmd)
}

// printResult writes a result as indented JSON
func printResult(w io.Writer, res *types.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

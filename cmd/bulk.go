package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/GAJENDER439/Low-Quality-Tester/internal/bulk"
	"github.com/GAJENDER439/Low-Quality-Tester/internal/types"
)

// stdinPath is the --file value that reads inputs from standard input
const stdinPath = "-"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	labelColors = map[types.Label]lipgloss.Color{
		types.LabelGoodSafe:   lipgloss.Color("42"),
		types.LabelSuspicious: lipgloss.Color("214"),
		types.LabelLowQuality: lipgloss.Color("196"),
		types.LabelError:      lipgloss.Color("245"),
	}
)

// labelColumn is the index of the label column in the rows table
const labelColumn = 1

// bulkCmd classifies a list of domains or URLs, one per line
var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "classify a list of domains or URLs, one per line",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		text, err := readInputs(cmd.InOrStdin(), k.String("file"))
		if err != nil {
			return err
		}

		inputs, truncated := bulk.Prepare(strings.Split(text, "\n"), cfg.Bulk.MaxItems)
		if truncated {
			log.Warn().Int("max_items", cfg.Bulk.MaxItems).Msg("input list truncated")
		}

		if len(inputs) == 0 {
			return ErrNoInputs
		}

		workers := cfg.Bulk.Workers
		if n := k.Int("workers"); n > 0 {
			workers = n
		}

		bar := progressbar.NewOptions(len(inputs),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("classifying"),
			progressbar.OptionClearOnFinish(),
		)

		results := bulk.Scan(cmd.Context(), setupPipeline(cfg), inputs,
			bulk.WithWorkers(workers),
			bulk.WithProgress(func(_, _ int) {
				if err := bar.Add(1); err != nil {
					log.Debug().Err(err).Msg("failed to update progress bar")
				}
			}),
		)

		if err := bar.Finish(); err != nil {
			log.Debug().Err(err).Msg("failed to finish progress bar")
		}

		if _, err := fmt.Fprintln(cmd.OutOrStdout(), renderRows(bulk.Summarize(results))); err != nil {
			return err
		}

		if out := k.String("output"); out != "" {
			return writeExport(out, results)
		}

		return nil
	},
}

// init registers the bulk command and its flags on the root command
func init() {
	rootCmd.AddCommand(bulkCmd)
	bulkCmd.Flags().StringP("file", "f", stdinPath, "file with one domain or URL per line, - for stdin")
	bulkCmd.Flags().StringP("output", "o", "", "write the full results as JSON to this file")
	bulkCmd.Flags().Int("workers", 0, "number of inputs classified concurrently, 0 uses the config value")
}

// readInputs returns the contents of path, or of stdin when path is "-"
func readInputs(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == "" || path == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInputs, err)
	}

	return string(data), nil
}

// renderRows formats summary rows as a table with colored labels
func renderRows(rows []types.Row) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("INPUT", "LABEL", "SCORE", "FINAL URL", "FINAL ROOT DOMAIN", "NOTE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			if col == labelColumn && row >= 0 && row < len(rows) {
				return cellStyle.Foreground(labelColors[rows[row].Label])
			}

			return cellStyle
		})

	for _, r := range rows {
		t.Row(r.Input, string(r.Label), strconv.Itoa(r.Score), r.FinalURL, r.FinalRootDomain, r.Note)
	}

	return t.Render()
}

// writeExport writes the JSON export of results to path
func writeExport(path string, results []*types.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteExport, err)
	}
	defer f.Close() //nolint:errcheck // close error is reported by Sync below

	if err := bulk.Export(f, results); err != nil {
		return err
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteExport, err)
	}

	log.Info().Str("path", path).Int("results", len(results)).Msg("results exported")

	return nil
}

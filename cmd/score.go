package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"solvency-engine/domain"
	"solvency-engine/loader"
	"solvency-engine/report"
)

// ErrRecordsFailed is returned when at least one company could not be
// scored; the report is still written.
var ErrRecordsFailed = errors.New("some companies could not be scored")

func newScoreCommand(root *rootOptions) *cobra.Command {
	var (
		input   string
		format  string
		explain bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score companies from a JSON/YAML file (or the built-in samples)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				companies []domain.CompanyRecord
				err       error
			)
			if input == "" {
				companies = loader.Samples()
			} else if companies, err = loader.LoadFile(input); err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), root.cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			batch, err := a.batch.ScoreBatch(cmd.Context(), companies, explain)
			if err != nil {
				return err
			}

			opts := report.Options{Color: format == "table" && !noColor}
			if err := report.Write(format, cmd.OutOrStdout(), batch, opts); err != nil {
				return err
			}

			if batch.Failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrRecordsFailed, batch.Failed, len(batch.Companies))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "companies file (.json, .yaml, .yml)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: "+strings.Join(report.Formats(), ", "))
	cmd.Flags().BoolVar(&explain, "explain", false, "add a narrative explanation per company")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors in the table")

	return cmd
}

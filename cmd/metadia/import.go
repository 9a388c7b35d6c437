package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/metadia/internal/importer"
)

type importSummary struct {
	File       string `json:"file"`
	Parsed     int    `json:"parsed"`
	Imported   int    `json:"imported"`
	Duplicates int    `json:"duplicates"`
	DryRun     bool   `json:"dryRun"`
}

func importCmd(a *app) *cobra.Command {
	var (
		format          string
		dryRun          bool
		allowDuplicates bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank statement (CSV or OFX)",
		Long: `Import transactions from a bank statement export.

Learned description mappings are applied to every row. Rows that match an existing transaction
(same day, amount, type and raw description) are skipped unless --allow-duplicates is set.

Examples:
  metadia import ~/Downloads/extrato.csv
  metadia import ~/Downloads/nubank.ofx --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			f := importer.Format(format)
			if format == "" {
				f = importer.FormatOf(path)
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening statement: %w", err)
			}
			defer file.Close()

			params, err := a.importer.Import(f, file)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}

			ctx := cmd.Context()

			params, err = a.matching.Apply(ctx, params)
			if err != nil {
				return err
			}

			sum := importSummary{File: path, Parsed: len(params), DryRun: dryRun}

			if dryRun {
				return a.print(cmd.OutOrStdout(), sum, func(w io.Writer) { writeImport(w, sum) })
			}

			result, err := a.transactions.ImportBatch(ctx, params)
			if err != nil {
				return err
			}

			sum.Imported = len(result.Imported)
			sum.Duplicates = len(result.Conflicts)

			if len(result.Conflicts) > 0 {
				toCreate := result.New
				if allowDuplicates {
					for _, c := range result.Conflicts {
						toCreate = append(toCreate, c.Incoming)
					}
				}

				created, err := a.transactions.CreateBatch(ctx, toCreate)
				if err != nil {
					return err
				}

				sum.Imported = len(created)

				for _, c := range result.Conflicts {
					slog.Debug("duplicate row", "date", c.Incoming.Date, "raw", c.Incoming.RawDescription, "existing", c.Existing.ID)
				}
			}

			return a.print(cmd.OutOrStdout(), sum, func(w io.Writer) { writeImport(w, sum) })
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "statement format: csv or ofx (default: from the file extension)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "parse and match without saving")
	cmd.Flags().BoolVar(&allowDuplicates, "allow-duplicates", false, "import rows that match existing transactions")

	return cmd
}

func writeImport(w io.Writer, s importSummary) {
	if s.DryRun {
		fmt.Fprintf(w, "%s: %d transactions parsed (dry run, nothing saved)\n", s.File, s.Parsed)
		return
	}

	fmt.Fprintf(w, "%s: %d parsed, %d imported, %d duplicates\n", s.File, s.Parsed, s.Imported, s.Duplicates)
}

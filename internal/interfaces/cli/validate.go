package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flarelab/combust/internal/domain/record"
)

// validateReport is the JSON shape of one validation outcome.
type validateReport struct {
	File   string   `json:"file"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.xml> [file.xml...]",
		Short: "Check documents against the structural policy",
		Long: "validate parses each file and reports the structural errors the " +
			"decoder would warn about: missing top-level elements, absent data " +
			"groups, malformed XML.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]validateReport, 0, len(args))
			failed := false
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				valid, errs := record.Validate(data)
				if !valid {
					failed = true
				}
				reports = append(reports, validateReport{File: path, Valid: valid, Errors: errs})
			}

			if opts.output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					if r.Valid {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", r.File)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", r.File)
					for _, e := range r.Errors {
						fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", e)
					}
				}
			}

			if failed {
				return fmt.Errorf("%d of %d documents failed validation", countInvalid(reports), len(reports))
			}
			return nil
		},
	}
}

func countInvalid(reports []validateReport) int {
	n := 0
	for _, r := range reports {
		if !r.Valid {
			n++
		}
	}
	return n
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flarelab/combust/internal/domain/record"
	"github.com/flarelab/combust/internal/domain/registry"
	"github.com/flarelab/combust/pkg/types/respecth"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		outPath string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "export <draft.json>",
		Short: "Encode a draft into a ReSpecTh XML document",
		Long: "export reads a JSON draft, checks it against the completeness " +
			"policy, and writes the canonical XML document. An incomplete draft " +
			"is rejected with the list of missing pieces; --force skips the gate.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			var draft respecth.DraftRecord
			if err := json.Unmarshal(data, &draft); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			missing, warnings := record.CheckDraft(&draft)
			if len(missing) > 0 && !force {
				fmt.Fprintln(cmd.ErrOrStderr(), "draft is incomplete:")
				for _, m := range missing {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", m)
				}
				return fmt.Errorf("%d completeness checks failed (use --force to encode anyway)", len(missing))
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}

			log, err := opts.newLogger()
			if err != nil {
				return err
			}
			doc, err := record.NewEncoder(registry.Default(), log).Encode(&draft)
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(outPath, doc, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, len(doc))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "O", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&force, "force", false, "encode even when the completeness check fails")
	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/flarelab/combust/internal/domain/record"
	"github.com/flarelab/combust/pkg/types/respecth"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "inspect <file.xml>",
		Short: "Decode a document and print its contents",
		Long: "inspect decodes the file into the in-memory record and prints a " +
			"summary of its metadata, conditions, and data groups. --full dumps " +
			"the entire decoded record as JSON.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			log, err := opts.newLogger()
			if err != nil {
				return err
			}
			rec, warnings, err := record.NewDecoder(log).Decode(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if full || opts.output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rec); err != nil {
					return err
				}
			} else {
				printSummary(cmd, rec)
			}

			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "dump the full decoded record as JSON")
	return cmd
}

func printSummary(cmd *cobra.Command, rec *respecth.ExperimentRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Author:          %s\n", rec.Metadata.Author)
	if rec.Metadata.DOI != "" {
		fmt.Fprintf(out, "DOI:             %s\n", rec.Metadata.DOI)
	}
	fmt.Fprintf(out, "Experiment type: %s\n", rec.ExperimentType)
	fmt.Fprintf(out, "Reactor:         %s\n", rec.Apparatus.Kind)

	if len(rec.CommonProperties) > 0 {
		fmt.Fprintln(out, "Conditions:")
		names := make([]string, 0, len(rec.CommonProperties))
		for name := range rec.CommonProperties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := rec.CommonProperties[name]
			fmt.Fprintf(out, "  %s = %s %s\n", p.Name, p.Value, p.Units)
		}
	}

	if len(rec.InitialComposition) > 0 {
		fmt.Fprintln(out, "Initial composition:")
		species := make([]string, 0, len(rec.InitialComposition))
		for s := range rec.InitialComposition {
			species = append(species, s)
		}
		sort.Strings(species)
		for _, s := range species {
			amt := rec.InitialComposition[s]
			fmt.Fprintf(out, "  %s = %g %s\n", s, amt.Amount, amt.Units)
		}
	}

	fmt.Fprintf(out, "Data groups:     %d (%d points total)\n", len(rec.DataGroups), rec.NumDataPoints())
	for _, dg := range rec.DataGroups {
		label := dg.Label
		if label == "" {
			label = dg.ID
		}
		cols := 0
		if dg.Table != nil {
			cols = len(dg.Table.Columns)
		}
		fmt.Fprintf(out, "  %s: %d columns x %d rows\n", label, cols, len(dg.Rows))
	}
}

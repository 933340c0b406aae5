package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"acdat/internal/core/dat"

	"github.com/spf13/cobra"
)

type inspectResult struct {
	Patterns []string   `json:"patterns"`
	Stats    dat.Stats  `json:"stats"`
	Tables   dat.Tables `json:"tables"`
}

func newInspectCmd() *cobra.Command {
	var (
		bf     buildFlags
		asJSON bool
	)
	c := &cobra.Command{
		Use:   "inspect",
		Short: "Print the compiled tables",
		Long:  "Builds the automaton and prints its pool, base, check, fail and output tables with the pool occupancy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := bf.build()
			if err != nil {
				return err
			}
			ac := d.Automaton()
			res := inspectResult{Patterns: d.Set().Patterns, Stats: ac.Stats(), Tables: ac.Tables()}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			writeInspect(out, res)
			return nil
		},
	}
	bf.register(c)
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func writeInspect(w io.Writer, res inspectResult) {
	t := res.Tables
	fmt.Fprintf(w, "patterns:  %q\n", res.Patterns)
	fmt.Fprintf(w, "alphabet:  %s\n", res.Stats.Alphabet)
	fmt.Fprintf(w, "fallback:  %s\n", res.Stats.Fallback)
	fmt.Fprintf(w, "states:    %d (max depth %d)\n", res.Stats.States, res.Stats.MaxDepth)
	fmt.Fprintf(w, "labels:    %s\n", t.Labels)
	fmt.Fprintf(w, "pool:      %v\n", t.Pool)
	fmt.Fprintf(w, "base:      %v\n", t.Base)
	fmt.Fprintf(w, "check:     %v\n", t.Check)
	fmt.Fprintf(w, "anchor:    %v\n", t.Anchor)
	fmt.Fprintf(w, "fail:      %v\n", t.Fail)
	fmt.Fprintf(w, "output:    %v\n", t.Output)
	fmt.Fprintf(w, "occupancy: %.4f (%d of %d slots)\n", res.Stats.Occupancy, res.Stats.PoolUsed, res.Stats.PoolSize)
}

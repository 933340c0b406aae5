package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"acdat/internal/core/dat"
	"acdat/internal/core/detector"

	"github.com/spf13/cobra"
)

type scanResult struct {
	Set        string         `json:"set"`
	Normalized string         `json:"normalized"`
	Matches    []dat.Match    `json:"matches"`
	Hits       []detector.Hit `json:"hits"`
	Steps      []dat.Step     `json:"steps,omitempty"`
}

func newScanCmd() *cobra.Command {
	var (
		bf       buildFlags
		textPath string
		trace    bool
		strict   bool
		asJSON   bool
	)
	c := &cobra.Command{
		Use:   "scan [text...]",
		Short: "Scan text for every pattern occurrence",
		Long:  "Normalizes the text, runs the automaton over it and reports the patterns ending at each position.",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := bf.build()
			if err != nil {
				return err
			}
			text, err := readText(cmd, bf.normalizer(), textPath, args)
			if err != nil {
				return err
			}
			if strict {
				if err := d.Validate(text); err != nil {
					return err
				}
			}

			res := scanResult{
				Set:        d.Set().Name,
				Normalized: text,
				Matches:    d.Automaton().FindAll(text),
				Hits:       d.Scan(text),
			}
			if trace {
				res.Steps = d.Trace(text)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			writeScan(out, res, trace)
			return nil
		},
	}
	bf.register(c)
	f := c.Flags()
	f.StringVarP(&textPath, "text", "t", "", "text file to scan, - for stdin")
	f.BoolVar(&trace, "trace", false, "print every transition")
	f.BoolVar(&strict, "strict", false, "fail on characters outside the alphabet")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func writeScan(w io.Writer, res scanResult, trace bool) {
	fmt.Fprintf(w, "text: %s\n", res.Normalized)

	if trace {
		byEnd := make(map[int]dat.Match, len(res.Matches))
		for _, m := range res.Matches {
			byEnd[m.End] = m
		}
		for _, s := range res.Steps {
			fmt.Fprintf(w, "  %s\n", s)
			if m, ok := byEnd[s.Pos]; ok {
				fmt.Fprintf(w, "    output: %s\n", patternList(m.Patterns))
			}
		}
	}

	fmt.Fprintf(w, "%d positions with output\n", len(res.Matches))
	for _, m := range res.Matches {
		fmt.Fprintf(w, "  end=%d state=%d %s\n", m.End, m.State, patternList(m.Patterns))
	}
	for _, h := range res.Hits {
		spans := make([]string, len(h.Spans))
		for i, sp := range h.Spans {
			spans[i] = fmt.Sprintf("[%d,%d)", sp[0], sp[1])
		}
		fmt.Fprintf(w, "  #%d %q %s\n", h.PatternID, h.Term, strings.Join(spans, " "))
	}
}

func patternList(ps []dat.Pattern) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%s(%d)", p.Text, p.ID)
	}
	return strings.Join(parts, " ")
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"acdat/internal/core/dat"
	"acdat/internal/core/detector"
	"acdat/internal/core/normalize"
	"acdat/internal/core/patternset"
	"acdat/internal/core/version"
	"acdat/internal/platform/logger"

	"github.com/spf13/cobra"
)

// NewRootCmd assembles the command tree
func NewRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "acdat",
		Short:         "acdat - Aho-Corasick over a double-array trie",
		Long:          "Build a multi-pattern automaton from a pattern file and scan text with it.",
		Version:       version.Info().Version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.Init(logger.Options{
				Level:     logLevel,
				Service:   version.Service,
				Component: "cli",
				Writer:    cmd.ErrOrStderr(),
			})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newScanCmd())
	root.AddCommand(newInspectCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// buildFlags are shared by every command that compiles a pattern set
type buildFlags struct {
	patterns   string
	alphabet   string
	singleHop  bool
	keepSpaces bool
}

func (b *buildFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&b.patterns, "patterns", "p", "", "pattern file (.txt one per line, .json, .yaml); default set when empty")
	f.StringVar(&b.alphabet, "alphabet", "latin", "automaton alphabet: latin or ascii")
	f.BoolVar(&b.singleHop, "single-hop", false, "follow one failure link per miss instead of the whole chain")
	f.BoolVar(&b.keepSpaces, "keep-spaces", false, "collapse whitespace instead of removing it")
}

func (b *buildFlags) options() (detector.Options, error) {
	alpha, ok := dat.AlphabetByName(b.alphabet)
	if !ok {
		return detector.Options{}, fmt.Errorf("unknown alphabet %q (want latin or ascii)", b.alphabet)
	}
	fb := dat.FallbackChain
	if b.singleHop {
		fb = dat.FallbackSingleHop
	}
	return detector.Options{Alphabet: alpha, Fallback: fb, AllowOverlapping: true, KeepSpaces: b.keepSpaces}, nil
}

func (b *buildFlags) build() (*detector.Detector, error) {
	opts, err := b.options()
	if err != nil {
		return nil, err
	}
	set := patternset.Default()
	if b.patterns != "" {
		if set, err = patternset.LoadFile(b.patterns); err != nil {
			return nil, err
		}
	}
	return detector.New(set, opts)
}

func (b *buildFlags) normalizer() *normalize.Normalizer {
	if b.keepSpaces {
		return normalize.NewKeepingSpaces()
	}
	return normalize.New()
}

// readText takes the text from a file ("-" is stdin) or from the joined args
func readText(cmd *cobra.Command, n *normalize.Normalizer, path string, args []string) (string, error) {
	if path == "" {
		if len(args) == 0 {
			return "", fmt.Errorf("no text: pass --text FILE or the text as arguments")
		}
		return n.Normalize(strings.Join(args, " ")), nil
	}
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	return n.ReadText(r)
}

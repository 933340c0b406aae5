package dat

import (
	"fmt"
	"iter"
)

// Match is the output of one text position. End is the 1-based position of the
// last matched byte, which is also the exclusive end offset of every pattern in it
type Match struct {
	End      int       `json:"end"`
	State    int       `json:"state"`
	Patterns []Pattern `json:"patterns"`
}

// Step is one transition taken while scanning
type Step struct {
	Pos  int  `json:"pos"`
	From int  `json:"from"`
	Char byte `json:"char"`
	To   int  `json:"to"`
}

// Scan yields a Match for every position of text whose state has output.
// The sequence is lazy and can be ranged over any number of times
func (a *Automaton) Scan(text string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		s := Root
		for i := 0; i < len(text); i++ {
			s = a.Transition(s, text[i])
			out := a.outputs[s]
			if len(out) == 0 {
				continue
			}
			if !yield(Match{End: i + 1, State: s, Patterns: out[:len(out):len(out)]}) {
				return
			}
		}
	}
}

// FindAll collects Scan into a slice
func (a *Automaton) FindAll(text string) []Match {
	var out []Match
	for m := range a.Scan(text) {
		out = append(out, m)
	}
	return out
}

// Steps yields every transition taken over text, with or without output
func (a *Automaton) Steps(text string) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		s := Root
		for i := 0; i < len(text); i++ {
			next := a.Transition(s, text[i])
			if !yield(Step{Pos: i + 1, From: s, Char: text[i], To: next}) {
				return
			}
			s = next
		}
	}
}

// Validate reports the first byte of text the alphabet cannot address.
// Scan itself never fails, it resets to Root on such bytes
func (a *Automaton) Validate(text string) error {
	for i := 0; i < len(text); i++ {
		if _, ok := a.opts.Alphabet.Code(text[i]); !ok {
			return unsupported("text", text, i, a.opts.Alphabet)
		}
	}
	return nil
}

// String renders a step the way the trace output prints it
func (s Step) String() string {
	return fmt.Sprintf("%d: %d --%c--> %d", s.Pos, s.From, s.Char, s.To)
}

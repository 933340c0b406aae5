// Package dat implements an Aho-Corasick automaton encoded as a double-array trie.
//
// Construction sorts the patterns, lays the trie out level by level into a shared
// transition pool (base offsets plus parent tags for ownership checks), then compiles
// failure links breadth first, propagating output sets along them. The compiled
// automaton is immutable and safe for concurrent scans.
package dat

// Pattern is one registered pattern. ID is its index in the construction input
type Pattern struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Automaton is a compiled matcher
type Automaton struct {
	opts     Options
	patterns []Pattern
	t        *trie
	fail     []int
	out      [][]int
	outputs  [][]Pattern // out resolved to patterns, shared by every Match
}

// New builds an automaton over patterns with default options
func New(patterns []string) (*Automaton, error) {
	return NewWithOptions(patterns, Options{})
}

// NewWithOptions builds and compiles an automaton. Empty strings are skipped but keep
// their index, so pattern ids always equal positions in patterns
func NewWithOptions(patterns []string, opts Options) (*Automaton, error) {
	opts = opts.withDefaults()

	t, err := build(patterns, opts.Alphabet)
	if err != nil {
		return nil, err
	}
	fail, out := compileFailures(t, opts.Fallback)

	a := &Automaton{
		opts:     opts,
		patterns: make([]Pattern, len(patterns)),
		t:        t,
		fail:     fail,
		out:      out,
		outputs:  make([][]Pattern, len(out)),
	}
	for i, p := range patterns {
		a.patterns[i] = Pattern{ID: i, Text: p}
	}
	for s, ids := range out {
		if len(ids) == 0 {
			continue
		}
		ps := make([]Pattern, len(ids))
		for k, id := range ids {
			ps[k] = a.patterns[id]
		}
		a.outputs[s] = ps
	}
	return a, nil
}

// Options returns the options the automaton was built with
func (a *Automaton) Options() Options { return a.opts }

// Transition returns the state reached from state on c.
// Bytes outside the alphabet reset to Root
func (a *Automaton) Transition(state int, c byte) int {
	code, ok := a.opts.Alphabet.Code(c)
	if !ok || state < 0 || state >= a.t.states() {
		return Root
	}
	return a.step(state, code)
}

func (a *Automaton) step(s, code int) int {
	if next, ok := a.t.child(s, code); ok {
		return next
	}
	if a.opts.Fallback == FallbackSingleHop {
		if next, ok := a.t.child(a.fail[s], code); ok {
			return next
		}
		return Root
	}
	return a.t.walk(a.fail, a.fail[s], code)
}

// StateCount is the number of states, the root included
func (a *Automaton) StateCount() int { return a.t.states() }

// Patterns returns a copy of the registered patterns in registration order
func (a *Automaton) Patterns() []Pattern {
	return append([]Pattern(nil), a.patterns...)
}

func (a *Automaton) valid(s int) bool { return s >= 0 && s < a.t.states() }

// Parent returns the parent of s; the root is its own parent
func (a *Automaton) Parent(s int) int {
	if !a.valid(s) {
		return -1
	}
	return a.t.check[s]
}

// Label returns the canonical byte on the edge into s, 0 for the root
func (a *Automaton) Label(s int) byte {
	if !a.valid(s) || s == Root {
		return 0
	}
	return a.opts.Alphabet.Char(a.t.label[s])
}

// Depth returns the length of the prefix s stands for
func (a *Automaton) Depth(s int) int {
	if !a.valid(s) {
		return -1
	}
	return a.t.depth[s]
}

// Failure returns the failure target of s; the root fails to itself
func (a *Automaton) Failure(s int) int {
	if !a.valid(s) {
		return Root
	}
	return a.fail[s]
}

// Output returns the patterns recognized in s in registration order.
// The slice is shared, callers must not modify it
func (a *Automaton) Output(s int) []Pattern {
	if !a.valid(s) {
		return nil
	}
	out := a.outputs[s]
	return out[:len(out):len(out)]
}

// RawOutput returns the ids of patterns ending exactly at s, before failure propagation
func (a *Automaton) RawOutput(s int) []int {
	if !a.valid(s) {
		return nil
	}
	return append([]int(nil), a.t.raw[s]...)
}

// Prefix reconstructs the canonical prefix s stands for by following parents
func (a *Automaton) Prefix(s int) string {
	if !a.valid(s) {
		return ""
	}
	b := make([]byte, a.t.depth[s])
	for i := len(b) - 1; s != Root; i-- {
		b[i] = a.Label(s)
		s = a.t.check[s]
	}
	return string(b)
}

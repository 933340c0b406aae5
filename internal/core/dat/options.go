package dat

import "strings"

// Alphabet is the contiguous byte range an automaton can address.
// Upper case ASCII letters are folded to lower case before the range check,
// so patterns keep their case while matching case-insensitively.
type Alphabet struct {
	name string
	lo   byte
	hi   byte
}

var (
	// Latin is the default alphabet: single case latin letters a..z
	Latin = Alphabet{name: "latin", lo: 'a', hi: 'z'}

	// PrintableASCII covers every visible ASCII byte from '!' to '~'
	PrintableASCII = Alphabet{name: "ascii", lo: '!', hi: '~'}
)

// AlphabetByName resolves "latin" or "ascii"; ok is false for anything else
func AlphabetByName(name string) (Alphabet, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "latin":
		return Latin, true
	case "ascii":
		return PrintableASCII, true
	default:
		return Alphabet{}, false
	}
}

// Name returns the alphabet label used in errors and stats
func (a Alphabet) Name() string { return a.name }

// Size is the number of addressable codes, codes live in [0, Size)
func (a Alphabet) Size() int { return int(a.hi-a.lo) + 1 }

// Fold maps a byte to its canonical case
func (a Alphabet) Fold(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Code returns the numeric code of c after folding
func (a Alphabet) Code(c byte) (int, bool) {
	c = a.Fold(c)
	if c < a.lo || c > a.hi {
		return 0, false
	}
	return int(c - a.lo), true
}

// Char is the inverse of Code for labels
func (a Alphabet) Char(code int) byte { return a.lo + byte(code) }

func (a Alphabet) zero() bool { return a.hi == 0 && a.lo == 0 }

// Fallback selects what happens after a failed primary lookup
type Fallback uint8

const (
	// FallbackChain walks failure links until a transition exists or root is reached
	FallbackChain Fallback = iota

	// FallbackSingleHop retries once from the failure state and then gives up to root.
	// It reproduces the reference matcher exactly, including the occurrences it misses
	FallbackSingleHop
)

// String implements fmt.Stringer
func (f Fallback) String() string {
	switch f {
	case FallbackSingleHop:
		return "single-hop"
	default:
		return "chain"
	}
}

// FallbackByName resolves "chain" or "single-hop"
func FallbackByName(name string) (Fallback, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "chain":
		return FallbackChain, true
	case "single-hop", "singlehop", "single":
		return FallbackSingleHop, true
	default:
		return FallbackChain, false
	}
}

// Options controls automaton construction
type Options struct {
	// Alphabet defaults to Latin
	Alphabet Alphabet
	// Fallback defaults to FallbackChain
	Fallback Fallback
}

func (o Options) withDefaults() Options {
	if o.Alphabet.zero() {
		o.Alphabet = Latin
	}
	return o
}

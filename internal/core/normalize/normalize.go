// Package normalize turns arbitrary text into the byte stream the matcher scans.
// Pipeline order
// 1 UTF-8 repair, drop invalid bytes
// 2 Drop control characters
// 3 NFKD decomposition
// 4 Case folding
// 5 Remove combining and format marks (accents, ZWJ, ZWNJ, FEFF)
// 6 Width fold fullwidth to ASCII
// 7 NFC recomposition of whatever survived
// 8 Whitespace: removed entirely, or collapsed to single spaces when kept
package normalize

import (
	"io"
	"strings"
	"sync"
	"unicode"

	perr "acdat/internal/platform/errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe; transformer chains are pooled
type Normalizer struct {
	keepSpaces bool
}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.Predicate(isControl)),
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// New returns a Normalizer that removes all whitespace, so patterns match across
// word and line breaks
func New() *Normalizer { return &Normalizer{} }

// NewKeepingSpaces returns a Normalizer that collapses whitespace runs to a single
// space instead of removing them
func NewKeepingSpaces() *Normalizer { return &Normalizer{keepSpaces: true} }

// KeepsSpaces reports the whitespace mode
func (n *Normalizer) KeepsSpaces() bool { return n.keepSpaces }

// Normalize returns the normalized form of s following the pipeline above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// transformers above never fail on valid UTF-8
		ns = s
	}

	if n.keepSpaces {
		return strings.Join(strings.Fields(ns), " ")
	}
	return stripSpaces(ns)
}

// ReadText reads all of r and normalizes it
func (n *Normalizer) ReadText(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "normalize: read text")
	}
	return n.Normalize(string(b)), nil
}

// isControl matches Cc runes other than whitespace, which step 8 handles
func isControl(r rune) bool { return unicode.IsControl(r) && !unicode.IsSpace(r) }

func stripSpaces(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

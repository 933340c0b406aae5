// Package detector runs a compiled pattern set over raw text: it normalizes the
// input, scans it with the double-array automaton and groups the positional output
// per pattern
package detector

import (
	"cmp"
	"slices"
	"time"

	"acdat/internal/core/dat"
	"acdat/internal/core/normalize"
	"acdat/internal/core/patternset"
	perr "acdat/internal/platform/errors"
	"acdat/internal/platform/logger"
)

// Hit spans are [start,end) byte offsets over the normalized input.
// Term is the pattern as registered, before normalization
type Hit struct {
	PatternID int      `json:"pattern_id"`
	Term      string   `json:"term"`
	Spans     [][2]int `json:"spans"`
}

// Options controls detector behavior
type Options struct {
	// Alphabet and Fallback are passed to the automaton
	Alphabet dat.Alphabet
	Fallback dat.Fallback
	// MaxTotalHits caps the number of spans across all hits (0 = no cap)
	MaxTotalHits int
	// AllowOverlapping keeps spans that start before the previous kept span ended.
	// When false, the earliest ending span wins and overlapping ones are dropped
	AllowOverlapping bool
	// KeepSpaces collapses whitespace instead of removing it, so matches cannot cross words
	KeepSpaces bool
}

// Stats describes the detector and its automaton
type Stats struct {
	dat.Stats
	Set       string        `json:"set"`
	Version   int           `json:"version"`
	BuiltAt   time.Time     `json:"built_at"`
	BuildTime time.Duration `json:"build_time_ns"`
}

// Detector is immutable once built and safe for concurrent use
type Detector struct {
	set   patternset.Set
	opts  Options
	ac    *dat.Automaton
	norm  *normalize.Normalizer
	built time.Time
	took  time.Duration
}

// New compiles set into a detector. Construction errors wrap the automaton's
// (dat.ErrEmptyPatternSet, dat.ErrUnsupportedCharacter) and keep their field
func New(set patternset.Set, opts Options) (*Detector, error) {
	log := logger.Named("detector")
	start := time.Now()

	n := normalize.New()
	if opts.KeepSpaces {
		n = normalize.NewKeepingSpaces()
	}
	// patterns go through the same normalizer as texts; ids are unchanged
	keys := make([]string, len(set.Patterns))
	for i, p := range set.Patterns {
		keys[i] = n.Normalize(p)
	}

	ac, err := dat.NewWithOptions(keys, dat.Options{Alphabet: opts.Alphabet, Fallback: opts.Fallback})
	if err != nil {
		log.Warn().Err(err).Str("set", set.Name).Int("patterns", len(set.Patterns)).Msg("pattern set rejected")
		wrapped := perr.Wrapf(err, perr.CodeOf(err), "detector: build %q", set.Name)
		if e, ok := perr.As(err); ok && e.Field() != "" {
			wrapped = perr.WithField(wrapped, e.Field())
		}
		return nil, wrapped
	}

	d := &Detector{set: set, opts: opts, ac: ac, norm: n, built: start, took: time.Since(start)}

	st := ac.Stats()
	log.Info().
		Str("set", set.Name).
		Int("version", set.Version).
		Int("patterns", st.Patterns).
		Int("states", st.States).
		Int("pool", st.PoolSize).
		Float64("occupancy", st.Occupancy).
		Str("alphabet", st.Alphabet).
		Str("fallback", st.Fallback).
		Dur("took", d.took).
		Msg("automaton built")
	return d, nil
}

// Set returns the pattern set the detector was built from
func (d *Detector) Set() patternset.Set { return d.set }

// Automaton exposes the compiled automaton for inspection
func (d *Detector) Automaton() *dat.Automaton { return d.ac }

// Normalize applies the detector's normalizer
func (d *Detector) Normalize(text string) string { return d.norm.Normalize(text) }

// Matches returns the raw positional output over the normalized text
func (d *Detector) Matches(text string) []dat.Match {
	return d.ac.FindAll(d.norm.Normalize(text))
}

// Trace returns every transition taken over the normalized text
func (d *Detector) Trace(text string) []dat.Step {
	var out []dat.Step
	for s := range d.ac.Steps(d.norm.Normalize(text)) {
		out = append(out, s)
	}
	return out
}

// Validate reports the first normalized byte the alphabet cannot address
func (d *Detector) Validate(text string) error {
	return d.ac.Validate(d.norm.Normalize(text))
}

// Scan normalizes text and returns one Hit per matched pattern, ordered by pattern id
func (d *Detector) Scan(text string) []Hit {
	norm := d.norm.Normalize(text)
	if norm == "" {
		return nil
	}

	byID := make(map[int]*Hit)
	total, lastEnd := 0, 0

	add := func(p dat.Pattern, end int) bool {
		h, ok := byID[p.ID]
		if !ok {
			h = &Hit{PatternID: p.ID, Term: d.set.Patterns[p.ID]}
			byID[p.ID] = h
		}
		h.Spans = append(h.Spans, [2]int{end - len(p.Text), end})
		total++
		return d.opts.MaxTotalHits <= 0 || total < d.opts.MaxTotalHits
	}

	for m := range d.ac.Scan(norm) {
		if d.opts.AllowOverlapping {
			for _, p := range m.Patterns {
				if !add(p, m.End) {
					break
				}
			}
		} else {
			// the longest pattern ending here that starts after the last kept span
			best := -1
			for i, p := range m.Patterns {
				if m.End-len(p.Text) >= lastEnd && (best < 0 || len(p.Text) > len(m.Patterns[best].Text)) {
					best = i
				}
			}
			if best < 0 {
				continue
			}
			lastEnd = m.End
			if !add(m.Patterns[best], m.End) {
				break
			}
		}
		if d.opts.MaxTotalHits > 0 && total >= d.opts.MaxTotalHits {
			break
		}
	}

	hits := make([]Hit, 0, len(byID))
	for _, h := range byID {
		hits = append(hits, *h)
	}
	slices.SortFunc(hits, func(a, b Hit) int { return cmp.Compare(a.PatternID, b.PatternID) })
	return hits
}

// Stats reports automaton sizes plus build metadata
func (d *Detector) Stats() Stats {
	return Stats{
		Stats:     d.ac.Stats(),
		Set:       d.set.Name,
		Version:   d.set.Version,
		BuiltAt:   d.built,
		BuildTime: d.took,
	}
}

// Package service contains scan workflows over the loaded detector
package service

import (
	"context"
	"sync"
	"time"

	"acdat/internal/core/dat"
	"acdat/internal/core/detector"
	"acdat/internal/core/patternset"
	perr "acdat/internal/platform/errors"
	"acdat/internal/platform/logger"
	"acdat/internal/services/api/scan/domain"
)

// Config selects the pattern source and detector options
type Config struct {
	PatternsFile string // empty means the embedded default set
	Alphabet     string // latin or ascii
	Fallback     string // chain or single-hop
	MaxHits      int
	Overlapping  bool
	KeepSpaces   bool
}

// Options resolves the named alphabet and fallback into detector options
func (c Config) Options() (detector.Options, error) {
	alpha, ok := dat.AlphabetByName(c.Alphabet)
	if !ok {
		return detector.Options{}, perr.WithField(perr.InvalidArgf("unknown alphabet %q", c.Alphabet), "alphabet")
	}
	fb, ok := dat.FallbackByName(c.Fallback)
	if !ok {
		return detector.Options{}, perr.WithField(perr.InvalidArgf("unknown fallback %q", c.Fallback), "fallback")
	}
	return detector.Options{
		Alphabet:         alpha,
		Fallback:         fb,
		MaxTotalHits:     c.MaxHits,
		AllowOverlapping: c.Overlapping,
		KeepSpaces:       c.KeepSpaces,
	}, nil
}

// LoadSet reads the configured pattern file, or the default set when none is configured
func LoadSet(c Config) (patternset.Set, error) {
	if c.PatternsFile == "" {
		return patternset.Default(), nil
	}
	return patternset.LoadFile(c.PatternsFile)
}

// Build loads the configured set and compiles it
func Build(c Config) (*detector.Detector, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	set, err := LoadSet(c)
	if err != nil {
		return nil, err
	}
	return detector.New(set, opts)
}

// Service defines the scan service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the scan service
type Svc struct {
	holder *detector.Holder
	cfg    Config
	opts   detector.Options

	// reloads are serialized so the last finished build is the one published
	mu sync.Mutex
}

// New constructs a scan service over holder
func New(holder *detector.Holder, cfg Config) *Svc {
	if holder == nil {
		panic("scan.Service requires a non nil detector holder")
	}
	opts, err := cfg.Options()
	if err != nil {
		panic("scan.Service: " + err.Error())
	}
	return &Svc{holder: holder, cfg: cfg, opts: opts}
}

// Scan runs the request against the loaded detector, or a one off detector when
// the request carries its own patterns
func (s *Svc) Scan(ctx context.Context, in domain.ScanRequest) (domain.ScanResponse, error) {
	start := time.Now()

	d, err := s.detectorFor(in)
	if err != nil {
		return domain.ScanResponse{}, err
	}
	ctx = logger.WithPatternSet(ctx, d.Set().Name)

	if in.Strict {
		if err := d.Validate(in.Text); err != nil {
			return domain.ScanResponse{}, err
		}
	}

	norm := d.Normalize(in.Text)
	out := domain.ScanResponse{
		Set:        d.Set().Name,
		Normalized: norm,
		Matches:    d.Automaton().FindAll(norm),
		Hits:       d.Scan(in.Text),
	}
	if out.Matches == nil {
		out.Matches = []dat.Match{}
	}
	if out.Hits == nil {
		out.Hits = []detector.Hit{}
	}
	if in.Trace {
		out.Steps = d.Trace(in.Text)
	}
	out.Took = time.Since(start)

	logger.C(ctx).Debug().
		Int("text_len", len(in.Text)).
		Int("matches", len(out.Matches)).
		Int("hits", len(out.Hits)).
		Dur("took", out.Took).
		Msg("scan")
	return out, nil
}

func (s *Svc) detectorFor(in domain.ScanRequest) (*detector.Detector, error) {
	if len(in.Patterns) == 0 {
		return s.holder.Load()
	}
	opts := s.opts
	if in.Alphabet != "" {
		a, ok := dat.AlphabetByName(in.Alphabet)
		if !ok {
			return nil, perr.WithField(perr.InvalidArgf("unknown alphabet %q", in.Alphabet), "alphabet")
		}
		opts.Alphabet = a
	}
	if in.Fallback != "" {
		f, ok := dat.FallbackByName(in.Fallback)
		if !ok {
			return nil, perr.WithField(perr.InvalidArgf("unknown fallback %q", in.Fallback), "fallback")
		}
		opts.Fallback = f
	}
	return detector.New(patternset.Set{Name: "inline", Patterns: in.Patterns}, opts)
}

// Stats reports the loaded detector
func (s *Svc) Stats(_ context.Context) (detector.Stats, error) {
	d, err := s.holder.Load()
	if err != nil {
		return detector.Stats{}, err
	}
	return d.Stats(), nil
}

// Reload rebuilds the detector from the configured source and publishes it.
// A failed build leaves the current detector in place
func (s *Svc) Reload(ctx context.Context) (domain.ReloadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.C(ctx)
	set, err := LoadSet(s.cfg)
	if err != nil {
		log.Warn().Err(err).Str("file", s.cfg.PatternsFile).Msg("reload: load failed; keeping current detector")
		return domain.ReloadResult{}, err
	}
	d, err := detector.New(set, s.opts)
	if err != nil {
		log.Warn().Err(err).Str("set", set.Name).Msg("reload: build failed; keeping current detector")
		return domain.ReloadResult{}, err
	}

	res := domain.ReloadResult{Current: d.Stats()}
	if prev := s.holder.Swap(d); prev != nil {
		ps := prev.Stats()
		res.Previous = &ps
	}
	log.Info().
		Str("set", set.Name).
		Int("version", set.Version).
		Int("patterns", res.Current.Patterns).
		Int("states", res.Current.States).
		Msg("detector reloaded")
	return res, nil
}

// Package domain defines request and response types for the scan api
package domain

import (
	"sync"
	"time"

	"acdat/internal/core/dat"
	"acdat/internal/core/detector"
	"acdat/internal/platform/net/http/bind"
)

// ScanRequest is the body of POST /scan
type ScanRequest struct {
	// Text is scanned after normalization
	Text string `json:"text" validate:"required,max=262144"`

	// Patterns builds a one off automaton instead of using the loaded set
	Patterns []string `json:"patterns,omitempty" validate:"omitempty,max=10000,dive,max=256"`

	// Alphabet and Fallback only apply to one off automata
	Alphabet string `json:"alphabet,omitempty" validate:"omitempty,alphabet"`
	Fallback string `json:"fallback,omitempty" validate:"omitempty,fallback"`

	// Strict rejects text the alphabet cannot address instead of resetting to root
	Strict bool `json:"strict,omitempty"`

	// Trace includes every transition in the response
	Trace bool `json:"trace,omitempty"`
}

// ScanResponse carries both the positional output and the per pattern grouping
type ScanResponse struct {
	Set        string         `json:"set"`
	Normalized string         `json:"normalized"`
	Matches    []dat.Match    `json:"matches"`
	Hits       []detector.Hit `json:"hits"`
	Steps      []dat.Step     `json:"steps,omitempty"`
	Took       time.Duration  `json:"took_ns"`
}

// ReloadResult reports the detector swap
type ReloadResult struct {
	Previous *detector.Stats `json:"previous,omitempty"`
	Current  detector.Stats  `json:"current"`
}

var tagsOnce sync.Once

// RegisterTags installs the alphabet and fallback validation tags
func RegisterTags() {
	tagsOnce.Do(func() {
		_ = bind.RegisterTag("alphabet", "{0} must be latin or ascii", func(fl bind.FieldLevel) bool {
			_, ok := dat.AlphabetByName(fl.Field().String())
			return ok
		})
		_ = bind.RegisterTag("fallback", "{0} must be chain or single-hop", func(fl bind.FieldLevel) bool {
			_, ok := dat.FallbackByName(fl.Field().String())
			return ok
		})
	})
}

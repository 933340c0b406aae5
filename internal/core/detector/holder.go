package detector

import (
	"sync/atomic"

	perr "acdat/internal/platform/errors"
)

// Holder publishes the current detector. Reloads build a fresh detector and swap
// it in whole; readers keep whatever detector they loaded
type Holder struct {
	cur atomic.Pointer[Detector]
}

// NewHolder returns a holder, optionally seeded with d
func NewHolder(d *Detector) *Holder {
	h := &Holder{}
	if d != nil {
		h.cur.Store(d)
	}
	return h
}

// Load returns the current detector or an unavailable error when none is published
func (h *Holder) Load() (*Detector, error) {
	d := h.cur.Load()
	if d == nil {
		return nil, perr.Unavailablef("detector: no pattern set loaded")
	}
	return d, nil
}

// Swap publishes d and returns the detector it replaced, if any
func (h *Holder) Swap(d *Detector) *Detector { return h.cur.Swap(d) }

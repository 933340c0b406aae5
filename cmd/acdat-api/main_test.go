package main

import (
	"bytes"
	"context"
	"testing"

	"acdat/internal/core/detector"
	perr "acdat/internal/platform/errors"
	scandom "acdat/internal/services/api/scan/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubReloader struct {
	calls int
	res   scandom.ReloadResult
	err   error
}

func (s *stubReloader) Reload(context.Context) (scandom.ReloadResult, error) {
	s.calls++
	return s.res, s.err
}

func TestReloadOnChange(t *testing.T) {
	cases := []struct {
		name     string
		res      scandom.ReloadResult
		err      error
		contains string
		absent   string
	}{
		{
			name:     "missing file waits for the next write",
			err:      perr.WithField(perr.New(perr.ErrorCodeNotFound, "patternset: words.txt"), "patterns_file"),
			contains: `"message":"pattern file gone; waiting for the next write"`,
		},
		{
			name: "swap reports the version change",
			res: scandom.ReloadResult{
				Previous: &detector.Stats{Version: 1},
				Current:  detector.Stats{Version: 2},
			},
			contains: `"from_version":1,"to_version":2`,
		},
		{
			name:   "build failures are left to the service log",
			err:    perr.InvalidArgf("byte '1' outside the latin alphabet"),
			absent: "message",
		},
		{
			name:   "first load has nothing to compare",
			res:    scandom.ReloadResult{Current: detector.Stats{Version: 1}},
			absent: "from_version",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf).Level(zerolog.DebugLevel)
			rl := &stubReloader{res: c.res, err: c.err}

			reloadOnChange(context.Background(), rl, &log)("/etc/acdat/words.txt")

			assert.Equal(t, 1, rl.calls)
			if c.contains != "" {
				assert.Contains(t, buf.String(), c.contains)
			}
			if c.absent != "" {
				assert.NotContains(t, buf.String(), c.absent)
			}
		})
	}
}

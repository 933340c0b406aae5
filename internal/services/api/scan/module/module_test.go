package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"acdat/internal/core/detector"
	modkit "acdat/internal/modkit"
	"acdat/internal/modkit/httpkit"
	"acdat/internal/modkit/module"
	"acdat/internal/platform/config"
	phttp "acdat/internal/platform/net/http"
	"acdat/internal/services/api/scan/domain"
	"acdat/internal/services/api/scan/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPI(t *testing.T) (http.Handler, modkit.Module) {
	t.Helper()
	cfg := service.Config{Alphabet: "latin", Fallback: "chain", Overlapping: true}
	d, err := service.Build(cfg)
	require.NoError(t, err)

	m := New(modkit.Deps{Detectors: detector.NewHolder(d)}, modkit.WithPorts(cfg))
	r := phttp.AdaptChi(chi.NewRouter())
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackOptions{}), func(api httpkit.Router) {
		m.MountRoutes(api)
	})
	return r.Mux(), m
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestScanEndpoint(t *testing.T) {
	h, _ := newAPI(t)

	code, env := do(t, h, "POST", "/api/v1/scan", `{"text":"ushers","trace":true}`)
	require.Equal(t, http.StatusOK, code, env.Error)

	var out domain.ScanResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "ushers", out.Normalized)
	require.Len(t, out.Matches, 2)
	assert.Equal(t, 4, out.Matches[0].End)
	assert.Len(t, out.Hits, 3)
	assert.Len(t, out.Steps, 6)
}

func TestScanEndpoint_Validation(t *testing.T) {
	h, _ := newAPI(t)

	cases := []struct {
		name, body string
		code       int
		field      string
	}{
		{"missing text", `{}`, http.StatusBadRequest, "text"},
		{"bad alphabet", `{"text":"a","patterns":["a"],"alphabet":"greek"}`, http.StatusBadRequest, "alphabet"},
		{"bad fallback", `{"text":"a","patterns":["a"],"fallback":"loop"}`, http.StatusBadRequest, "fallback"},
		{"unknown field", `{"text":"a","extra":1}`, http.StatusBadRequest, ""},
		{"strict text", `{"text":"ush3rs","strict":true}`, http.StatusUnprocessableEntity, "text"},
		{"unsupported pattern", `{"text":"a","patterns":["a1"]}`, http.StatusUnprocessableEntity, "patterns[0]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := do(t, h, "POST", "/api/v1/scan", tc.body)
			assert.Equal(t, tc.code, code, env.Error)
			assert.Equal(t, tc.field, env.Field)
		})
	}
}

func TestStatsAndReloadEndpoints(t *testing.T) {
	h, _ := newAPI(t)

	code, env := do(t, h, "GET", "/api/v1/scan/stats", "")
	require.Equal(t, http.StatusOK, code)
	var st detector.Stats
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, "default", st.Set)
	assert.Equal(t, 10, st.States)

	code, env = do(t, h, "POST", "/api/v1/scan/reload", "")
	require.Equal(t, http.StatusOK, code, env.Error)
	var res domain.ReloadResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotNil(t, res.Previous)
	assert.Equal(t, res.Previous.States, res.Current.States)
}

func TestPorts(t *testing.T) {
	_, m := newAPI(t)
	assert.Equal(t, "scan", m.Name())

	rl, ok := module.PortsOf[domain.ReloaderPort](m)
	require.True(t, ok)
	require.NotNil(t, rl)

	reg := module.NewRegistry()
	reg.Add(m)
	_, ok = module.PortsAs[domain.ServicePort](reg, "scan")
	assert.True(t, ok)
}

func TestFromConfig(t *testing.T) {
	t.Setenv("ACDAT_PATTERNS_FILE", "/etc/acdat/words.yaml")
	t.Setenv("ACDAT_ALPHABET", "ASCII")
	t.Setenv("ACDAT_MAX_HITS", "50")
	t.Setenv("ACDAT_OVERLAPPING", "false")

	cfg := FromConfig(config.New())
	assert.Equal(t, "/etc/acdat/words.yaml", cfg.PatternsFile)
	assert.Equal(t, "ascii", cfg.Alphabet)
	assert.Equal(t, "chain", cfg.Fallback)
	assert.Equal(t, 50, cfg.MaxHits)
	assert.False(t, cfg.Overlapping)
}

func TestNew_RequiresDetectors(t *testing.T) {
	assert.Panics(t, func() { New(modkit.Deps{}, modkit.WithPorts(service.Config{})) })
}

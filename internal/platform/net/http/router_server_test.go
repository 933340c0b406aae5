package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"acdat/internal/platform/config"
	phttp "acdat/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newTestServer(t *testing.T) *phttp.Server {
	t.Helper()
	optCalled := false
	srv := phttp.NewServer(config.New().Prefix("TEST_API_"), func(*chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatalf("expected NewServer option to be called")
	}
	return srv
}

func TestRouter_MountsThroughFacade(t *testing.T) {
	srv := newTestServer(t)
	if srv.Addr() != ":4000" {
		t.Fatalf("default addr = %q", srv.Addr())
	}
	r := srv.Router()

	// middleware must be registered before routes
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-MW", "yes")
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })
	r.Route("/api/v1", func(sub phttp.Router) {
		phttp.GetJSON(sub, "/hello", func(*http.Request) (any, error) { return "hi", nil })
		phttp.PostJSON(sub, "/echo", func(_ *http.Request, in echoIn) (any, error) { return in.Text, nil })
		phttp.PostNoBody(sub, "/poke", func(*http.Request) (any, error) { return true, nil })
		phttp.GetJSON(sub, "/queued", func(*http.Request) (any, error) {
			return phttp.Response{Status: http.StatusAccepted, Body: "later"}, nil
		})
		sub.Post("/raw", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	})

	cases := []struct {
		method, path, body string
		code               int
		contains           string
	}{
		{"GET", "/ping", "", http.StatusOK, "pong"},
		{"GET", "/api/v1/hello", "", http.StatusOK, `"data":"hi"`},
		{"POST", "/api/v1/echo", `{"text":"she"}`, http.StatusOK, `"data":"she"`},
		{"POST", "/api/v1/poke", "", http.StatusOK, `"data":true`},
		{"POST", "/api/v1/raw", "", http.StatusAccepted, ""},
		{"GET", "/api/v1/queued", "", http.StatusAccepted, `"data":"later"`},
		{"POST", "/api/v1/hello", "", http.StatusMethodNotAllowed, ""},
		{"GET", "/nowhere", "", http.StatusNotFound, `"error":"no route for GET /nowhere"`},
		{"GET", "/api/v1/missing", "", http.StatusNotFound, `"error":"no route for GET /api/v1/missing"`},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		var body io.Reader
		if c.body != "" {
			body = strings.NewReader(c.body)
		}
		r.Mux().ServeHTTP(rec, httptest.NewRequest(c.method, c.path, body))
		if rec.Code != c.code {
			t.Fatalf("%s %s: code %d, want %d (%s)", c.method, c.path, rec.Code, c.code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), c.contains) {
			t.Fatalf("%s %s: body %q missing %q", c.method, c.path, rec.Body.String(), c.contains)
		}
		if rec.Header().Get("X-MW") != "yes" {
			t.Fatalf("%s %s: middleware not applied", c.method, c.path)
		}
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	port := freePort(t)
	t.Setenv("TEST_RUN_PORT", strconv.Itoa(port))
	t.Setenv("TEST_RUN_SHUTDOWN_TIMEOUT", "2s")

	srv := phttp.NewServer(config.New().Prefix("TEST_RUN_"))
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/ping"
	deadline := time.Now().Add(3 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			b, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if string(b) != "pong" {
				t.Fatalf("unexpected body %q", b)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestServer_RunReportsListenError(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	t.Setenv("TEST_BUSY_PORT", strconv.Itoa(l.Addr().(*net.TCPAddr).Port))

	srv := phttp.NewServer(config.New().Prefix("TEST_BUSY_"))
	if err := srv.Run(context.Background()); err == nil {
		t.Fatalf("expected address in use error")
	}
}

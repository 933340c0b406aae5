package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "acdat/internal/platform/errors"
	pnet "acdat/internal/platform/net"
	phttp "acdat/internal/platform/net/http"
)

// helper to build a request with a request_id in context
func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("JSON status: expected 418, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("unexpected content-type %q", ct)
	}
}

func TestHandle_OKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ok := phttp.Handle(func(*http.Request) phttp.Response { return phttp.OK(map[string]string{"a": "b"}) })
	ok(rec, reqWithReqID("GET", "/x", "rid-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("OK code: %d", rec.Code)
	}
	env := decode(t, rec)
	if env.StatusCode != 200 || env.Status != "OK" || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}
}

func TestRespondError_MapsCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   perr.ErrorCode
	}{
		{perr.InvalidArgf("bad pattern"), http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument},
		{perr.New(perr.ErrorCodeNotFound, "missing"), http.StatusNotFound, perr.ErrorCodeNotFound},
		{perr.TooLargef("huge"), http.StatusRequestEntityTooLarge, perr.ErrorCodeTooLarge},
		{perr.Unavailablef("not loaded"), http.StatusServiceUnavailable, perr.ErrorCodeUnavailable},
		{errors.New("plain"), http.StatusInternalServerError, perr.ErrorCodeUnknown},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		phttp.RespondError(rec, reqWithReqID("POST", "/scan", "rid-e"), c.err)
		if rec.Code != c.status {
			t.Fatalf("%v: status %d, want %d", c.err, rec.Code, c.status)
		}
		env := decode(t, rec)
		if env.Code != c.code || env.Error == "" || env.RequestID != "rid-e" || env.Data != nil {
			t.Fatalf("%v: bad envelope %+v", c.err, env)
		}
	}
}

func TestRespondError_CarriesField(t *testing.T) {
	rec := httptest.NewRecorder()
	err := perr.WithField(perr.InvalidArgf("byte '1' outside alphabet"), "patterns[2]")
	phttp.RespondError(rec, httptest.NewRequest("POST", "/", nil), err)
	if env := decode(t, rec); env.Field != "patterns[2]" {
		t.Fatalf("expected field in envelope, got %+v", env)
	}
}

func TestHandle_ResponseVariants(t *testing.T) {
	withHeader := phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Body: "x", Header: http.Header{"X-Extra": {"1"}}}
	})
	rec := httptest.NewRecorder()
	withHeader(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("X-Extra") != "1" {
		t.Fatalf("zero status should default to 200 and keep headers, got %d %v", rec.Code, rec.Header())
	}

	failing := phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(perr.New(perr.ErrorCodeNotFound, "nope")) })
	rec = httptest.NewRecorder()
	failing(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Error response: expected 404, got %d", rec.Code)
	}
}

type echoIn struct {
	Text string `json:"text" validate:"required"`
}

func TestJSONHandlers(t *testing.T) {
	h := phttp.JSONHandler(func(_ *http.Request, in echoIn) (any, error) {
		if in.Text == "boom" {
			return nil, perr.InvalidArgf("boom")
		}
		return map[string]int{"len": len(in.Text)}, nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"ushers"}`)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"len":6`) {
		t.Fatalf("ok path: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", strings.NewReader(`{"text":""}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("validation path: expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"boom"}`)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("handler error path: expected 422, got %d", rec.Code)
	}

	nb := phttp.JSONHandlerNoBody(func(*http.Request) (any, error) { return nil, perr.Unavailablef("down") })
	rec = httptest.NewRecorder()
	nb(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("no body error path: expected 503, got %d", rec.Code)
	}
}

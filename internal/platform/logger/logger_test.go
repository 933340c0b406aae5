package logger

import (
	"bytes"
	"context"
	"testing"

	kit "acdat/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"   nonsense   ", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInit_Named_C(t *testing.T) {
	var buf bytes.Buffer

	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "acdat-test",
		Writer:       &buf,
		WithCaller:   true,
		StaticFields: map[string]string{"build": "test"},
	})

	Get().Info().Int("states", 10).Msg("automaton built")
	Named("detector").Info().Msg("named-msg")

	ctx := WithPatternSet(WithRequest(context.Background(), "req-123"), "default")
	C(ctx).Info().Msg("ctx-msg")
	C(context.Background()).Debug().Msg("ctx-empty")

	out := buf.String()
	kit.MustContain(t, out, `"states":10`)
	kit.MustContain(t, out, `"component":"detector"`)
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"pattern_set":"default"`)
	kit.MustContain(t, out, `"service":"acdat-test"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, "ctx-empty")
}

func TestWithRequest_EmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	if WithRequest(ctx, "") != ctx || WithPatternSet(ctx, "") != ctx {
		t.Fatalf("empty values should not wrap the context")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "acdat")
	t.Setenv("LOG_COMPONENT", "cli")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "acdat" || opt.Component != "cli" {
		t.Fatalf("FromEnv fields mismatch: %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample mismatch: %+v", opt)
	}
}

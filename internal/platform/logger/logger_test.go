package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	pnet "deyimci/internal/platform/net"
	kit "deyimci/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestInit_Get_Named_C(t *testing.T) {
	var buf bytes.Buffer

	// sampling enabled to exercise that branch
	Init(Options{
		Level:       "info",
		Format:      "console",
		Service:     "svc-a",
		Writer:      &buf,
		WithCaller:  true,
		SampleEvery: 2,
	})

	// re-sample each child to N=1 so every line emits despite sampling
	emit := func(l *Logger, msg string) {
		v := l.Sample(&zerolog.BasicSampler{N: 1})
		v.Info().Msg(msg)
	}

	emit(Get(), "root-msg")
	emit(Named("detect"), "named-msg")
	emit(C(pnet.WithRequestID(context.Background(), "req-123")), "ctx-msg")

	// no request id on context, child is just the root
	emit(C(context.Background()), "ctx-empty")

	out := buf.String()

	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, "named-msg")
	kit.MustContain(t, out, "ctx-msg")
	kit.MustContain(t, out, "component=")
	kit.MustContain(t, out, "detect")
	kit.MustContain(t, out, "request_id=")
	kit.MustContain(t, out, "req-123")
	kit.MustContain(t, out, "service=")
	kit.MustContain(t, out, "svc-a")
	kit.MustContain(t, out, "version=")
}

func TestFromEnv_Independently(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if strings.ToLower(opt.Level) != "warn" {
		t.Fatalf("FromEnv Level = %q, want warn", opt.Level)
	}
	if opt.Format != "json" || opt.Service != "svc-b" {
		t.Fatalf("FromEnv fields mismatch: %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample mismatch: %+v", opt)
	}
}

package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{" WARN ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tc := range cases {
		if got := toZapLevel(tc.in); got != tc.want {
			t.Errorf("toZapLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGet_ReturnsSingleton(t *testing.T) {
	a := Get(DebugLevel)
	b := Get(ErrorLevel)
	if a != b {
		t.Fatalf("Get must return the same instance")
	}
}

func TestComponent_NilSafe(t *testing.T) {
	var l *Logger
	if l.Component("x") == nil {
		t.Fatalf("Component on nil logger must return a usable logger")
	}
	Nop().Component("poller").Infow("ignored", "k", "v")
}

package logx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"carta/internal/config"
)

func TestInitProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Environment: config.Production, Level: "info", Output: &buf})

	Info().Str("suggestion", "ClientX").Msg("saved")
	Debug().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, `"message":"saved"`) || !strings.Contains(out, `"suggestion":"ClientX"`) {
		t.Fatalf("out=%q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatal("debug line written at info level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		" WARN": zerolog.WarnLevel,
		"":      zerolog.InfoLevel,
		"loud":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) got %s want %s", in, got, want)
		}
	}
}

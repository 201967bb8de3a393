package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ochairo/prebuild/internal/domain/interfaces"
)

// Compile-time check
var _ interfaces.Logger = (*Logger)(nil)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{NoColor: true, NoTime: true})

	l.Info("minified file saved", interfaces.F("file", "html/app.min.js"), interfaces.F("bytes_out", 42))

	got := buf.String()
	for _, want := range []string{"INF", "minified file saved", "file=html/app.min.js", "bytes_out=42"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestLogger_DebugHiddenUnlessVerbose(t *testing.T) {
	var quiet, verbose bytes.Buffer

	New(&quiet, Options{NoColor: true, NoTime: true}).Debug("argv")
	New(&verbose, Options{NoColor: true, NoTime: true, Verbose: true}).Debug("argv")

	if quiet.Len() != 0 {
		t.Errorf("debug output without verbose: %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "DBG argv") {
		t.Errorf("verbose output = %q, want debug line", verbose.String())
	}
}

func TestLogger_ErrorField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{NoColor: true, NoTime: true})

	l.Error("minification skipped", interfaces.F("error", errors.New("disk full")))

	got := buf.String()
	if !strings.Contains(got, "ERR minification skipped") || !strings.Contains(got, "disk full") {
		t.Errorf("output = %q", got)
	}
}

func TestLogger_NoTime(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, Options{NoColor: true, NoTime: true}).Warn("file not found")

	if !strings.HasPrefix(buf.String(), "WRN file not found") {
		t.Errorf("output = %q, want line to start with the level", buf.String())
	}
}

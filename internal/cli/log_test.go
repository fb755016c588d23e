package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message not logged")
	}
}

func TestProgress_Done(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	p := newProgress(logger)
	p.done("Computed chart")

	out := buf.String()
	if !strings.Contains(out, "Computed chart") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "(") {
		t.Errorf("output %q missing elapsed duration", out)
	}
}

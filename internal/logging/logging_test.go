package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Marks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Info("Save", "path", "dest/wood_orm.png")
	logger.Warn("Texture not found")
	logger.Debug("hidden")

	out := buf.String()
	for _, want := range []string{InfoMark + " Save", "path=dest/wood_orm.png", WarnMark + " Texture not found"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug line printed without verbose")
	}
}

func TestNew_Verbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, true).Debug("loading bands")
	if !strings.Contains(buf.String(), DebugMark+" loading bands") {
		t.Errorf("output = %q, want debug line", buf.String())
	}
}

package debug

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestPrintf(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	t.Setenv(Env, "")
	Printf("hidden %d", 1)
	if buf.Len() > 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	t.Setenv(Env, "1")
	if !Enabled() {
		t.Fatal("expected tracing to be enabled")
	}
	Printf("shown %d", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Errorf("expected output, got %q", buf.String())
	}
}

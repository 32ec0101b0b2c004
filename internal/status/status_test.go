package status

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Info("converting %d points", 1)
	p.OK("downloaded: %s", "tiles/tile_1_0_0.jpeg")
	p.Fail("failed to create session")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	wants := []string{"converting 1 points", "downloaded: tiles/tile_1_0_0.jpeg", "failed to create session"}
	for i, want := range wants {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard.Info("x")
	Discard.OK("x %d", 1)
	Discard.Fail("x")
}

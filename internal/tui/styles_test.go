package tui

import (
	"strings"
	"testing"
)

func TestRenderShimmerLogoContainsLetters(t *testing.T) {
	for _, frame := range []int{0, 1, 17, 500} {
		out := renderShimmerLogo(frame)
		for _, ch := range "TILEGRAB" {
			if !strings.ContainsRune(out, ch) {
				t.Errorf("frame %d: logo %q missing %q", frame, out, ch)
			}
		}
	}
}

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-3, 0},
		{0, 0},
		{127.9, 127},
		{255, 255},
		{300, 255},
	}
	for _, tt := range tests {
		if got := clampByte(tt.in); got != tt.want {
			t.Errorf("clampByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHelpItem(t *testing.T) {
	got := helpItem("esc", "cancel")
	if !strings.Contains(got, "esc") || !strings.Contains(got, "cancel") {
		t.Errorf("helpItem = %q", got)
	}
}

package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pipes/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextWithColor(0, 0, "PIPES", core.ColorCyan)
	s.DrawText(6, 0, "ok")
	s.SetCell(1, 1, core.Cell{Rune: '┃', Color: core.ColorBrightCyan, Bg: core.ColorDarkGray})
	s.DrawText(0, 2, "end")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3", len(lines))
	}
	for _, want := range []string{"PIPES", "ok", "┃", "end"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestStyleForIsCached(t *testing.T) {
	cs := cellStyle{fg: core.ColorRed, bg: core.ColorDarkGray}
	a := styleFor(cs)
	b := styleFor(cs)
	if a.GetForeground() != b.GetForeground() || a.GetBackground() != b.GetBackground() {
		t.Error("cached style differs")
	}

	cellStylesMu.Lock()
	_, ok := cellStyles[cs]
	cellStylesMu.Unlock()
	if !ok {
		t.Error("style was not cached")
	}
}

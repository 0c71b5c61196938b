package tui

import (
	"strings"
	"testing"
)

func TestNormalizePanePadsToExactSize(t *testing.T) {
	out := normalizePane("ab\ncdef", 6, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines", len(lines))
	}
	for i, ln := range lines {
		if len([]rune(ln)) != 6 {
			t.Fatalf("line %d = %q (width %d)", i, ln, len([]rune(ln)))
		}
	}
	if lines[0] != "ab    " || lines[1] != "cdef  " {
		t.Fatalf("lines = %q", lines[:2])
	}
}

func TestNormalizePaneCutsWithEllipsis(t *testing.T) {
	out := normalizePane("abcdefgh", 5, 1)
	if out != "abcd…" {
		t.Fatalf("out = %q", out)
	}
}

func TestNormalizePaneDropsExtraLines(t *testing.T) {
	out := normalizePane("a\nb\nc\nd", 1, 2)
	if out != "a\nb" {
		t.Fatalf("out = %q", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("hello world", 7); got != "hello …" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("hello", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestRowPainterRuns(t *testing.T) {
	p := newRowPainter(10)
	p.paintString(2, "abc", 0)
	p.paint(20, 'x', 0) // out of range, ignored
	p.paint(-1, 'x', 0)

	out := p.render()
	if out != "  abc     " {
		t.Fatalf("out = %q", out)
	}
}

func TestRowPainterLaterPaintWins(t *testing.T) {
	p := newRowPainter(6)
	p.paintString(0, "aaaaaa", 0)
	p.paintString(2, "bb", 0)
	if out := p.render(); out != "aabbaa" {
		t.Fatalf("out = %q", out)
	}
}

package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	t.Setenv("NO_COLOR", "")
	if ColorEnabled(&buf, ColorAuto) {
		t.Error("auto should be off for a non-terminal writer")
	}
	if !ColorEnabled(&buf, ColorAlways) {
		t.Error("always should force color")
	}
	if ColorEnabled(&buf, ColorNever) {
		t.Error("never should disable color")
	}

	t.Setenv("NO_COLOR", "1")
	if !ColorEnabled(&buf, ColorAlways) {
		t.Error("always should win over NO_COLOR")
	}
}

func TestPlainOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(&out, &errOut, ColorNever)

	p.Success("generated %s", "claude")
	p.Written("CLAUDE.md")
	p.Removed(".kiro/")
	p.Warn("careful")
	p.Error("broken")

	wantOut := "✓ generated claude\n  + CLAUDE.md\n  - .kiro/\n"
	if out.String() != wantOut {
		t.Errorf("stdout = %q, want %q", out.String(), wantOut)
	}
	wantErr := "! careful\n✗ broken\n"
	if errOut.String() != wantErr {
		t.Errorf("stderr = %q, want %q", errOut.String(), wantErr)
	}
}

func TestHeaderAndDetail(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out, ColorNever)

	p.Header("Agents")
	p.Detail("version: %s", "1.0")

	if want := "Agents\n  version: 1.0\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestForcedColorEmitsANSI(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out, ColorAlways)
	p.Success("ok")
	if !strings.Contains(out.String(), "\x1b[") {
		t.Errorf("expected ANSI escape in %q", out.String())
	}
}

func TestTableAlignment(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &out, ColorNever)
	p.Table([][]string{
		{"AGENT", "MODES", "OUTPUT"},
		{"claude", "merged", "CLAUDE.md"},
		{"kiro", "split", ".kiro/steering/*.md"},
	})

	want := "AGENT   MODES   OUTPUT\n" +
		"claude  merged  CLAUDE.md\n" +
		"kiro    split   .kiro/steering/*.md\n"
	if out.String() != want {
		t.Errorf("table =\n%s\nwant\n%s", out.String(), want)
	}
}

func TestCount(t *testing.T) {
	p := New(&bytes.Buffer{}, &bytes.Buffer{}, ColorNever)
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 files"},
		{1, "1 file"},
		{1200, "1,200 files"},
	}
	for _, tt := range tests {
		if got := p.Count(tt.n, "file", "files"); got != tt.want {
			t.Errorf("Count(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("✓", 3); got != "✓  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("long", 2); got != "long" {
		t.Errorf("PadRight should not truncate, got %q", got)
	}
}

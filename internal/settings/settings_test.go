package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("AICM_CONFIG", "")
	t.Setenv("AICM_COLOR", "")
	Load()
	return home
}

func TestFilePath(t *testing.T) {
	home := withHome(t)

	want := filepath.Join(home, ".aicm", "config.yaml")
	if got := FilePath(); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestSetAndGetRoundTrip(t *testing.T) {
	withHome(t)

	if err := Set(KeyColor, ColorNever); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := os.Stat(FilePath()); err != nil {
		t.Fatalf("settings file not written: %v", err)
	}

	Load()
	if got := Get(KeyColor); got != ColorNever {
		t.Errorf("Get(color) after reload = %q, want %q", got, ColorNever)
	}
	if got := ColorMode(); got != ColorNever {
		t.Errorf("ColorMode() = %q, want %q", got, ColorNever)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	withHome(t)

	if err := Set("mirror", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestSetRejectsInvalidColor(t *testing.T) {
	withHome(t)

	if err := Set(KeyColor, "rainbow"); err == nil {
		t.Fatal("expected error for invalid color mode")
	}
}

func TestColorModeDefaultsToAuto(t *testing.T) {
	withHome(t)

	if got := ColorMode(); got != ColorAuto {
		t.Errorf("ColorMode() = %q, want %q", got, ColorAuto)
	}
}

func TestConfigPathResolution(t *testing.T) {
	withHome(t)

	if got := ConfigPath(""); got != "ai-context.yaml" {
		t.Errorf("ConfigPath(\"\") = %q, want default", got)
	}
	if got := ConfigPath("custom.yaml"); got != "custom.yaml" {
		t.Errorf("ConfigPath(flag) = %q, want custom.yaml", got)
	}

	t.Setenv("AICM_CONFIG", "from-env.yaml")
	Load()
	if got := ConfigPath(""); got != "from-env.yaml" {
		t.Errorf("ConfigPath with env = %q, want from-env.yaml", got)
	}
	if got := ConfigPath("flag.yaml"); got != "flag.yaml" {
		t.Errorf("flag should win over env, got %q", got)
	}
}

//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aicm-dev/aicm/internal/config"
)

// testEnv holds paths to an isolated project.
type testEnv struct {
	HomeDir    string // HOME, so user settings never leak in
	ProjectDir string // project root holding ai-context.yaml and ai-docs/
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("USERPROFILE", env.HomeDir)
	t.Setenv("AICM_CONFIG", "")
	return env
}

// path joins a slash-separated relative path onto the project root.
func (e *testEnv) path(rel string) string {
	return filepath.Join(e.ProjectDir, filepath.FromSlash(rel))
}

// writeConfig writes ai-context.yaml and loads it back through the real loader.
func (e *testEnv) writeConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	path := e.path("ai-context.yaml")
	writeFile(t, path, yaml)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return cfg
}

// setupDocs writes a small docs tree with a nested directory.
func setupDocs(t *testing.T, env *testEnv) {
	t.Helper()
	writeFile(t, env.path("ai-docs/architecture.md"), "# Architecture\n\nHexagonal layout.\n")
	writeFile(t, env.path("ai-docs/api/errors.md"), "Return typed errors.\n")
	writeFile(t, env.path("ai-docs/notes.txt"), "not markdown")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

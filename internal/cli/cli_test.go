package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with args inside an isolated project.
func runCLI(t *testing.T, root string, args ...string) (string, string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("AICM_CONFIG", "")
	t.Setenv("AICM_COLOR", "never")

	resetFlags()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--root", root}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	flagConfig, flagRoot = "", "."
	generateAgent, generateWatch = "", false
	cleanAgent = ""
	listAgentsJSON = false
	versionShort, versionJSON = false, false
}

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestInitThenGenerate(t *testing.T) {
	root := t.TempDir()

	stdout, _, err := runCLI(t, root, "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(stdout, "Created ai-context.yaml") {
		t.Errorf("init output = %q", stdout)
	}

	stdout, _, err = runCLI(t, root, "init")
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(stdout, "already exists") {
		t.Errorf("second init output = %q", stdout)
	}

	writeProjectFile(t, root, "ai-docs/guide.md", "Follow the guide.\n")
	stdout, _, err = runCLI(t, root, "generate")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(stdout, "+ CLAUDE.md") {
		t.Errorf("generate output missing written file: %q", stdout)
	}

	data, err := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	if err != nil {
		t.Fatalf("CLAUDE.md not written: %v", err)
	}
	if string(data) != "Follow the guide." {
		t.Errorf("CLAUDE.md = %q", data)
	}
}

func TestGenerateWithoutConfig(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), "generate")
	if err == nil || !strings.Contains(err.Error(), "init") {
		t.Errorf("expected a not-found error suggesting init, got %v", err)
	}
}

func TestGenerateFailingAgentIsReported(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "ai-context.yaml", `version: "1.0"
base_docs_dir: ./ai-docs
agents:
  claude: true
  codex:
    base_docs_dir: ./nowhere
`)
	writeProjectFile(t, root, "ai-docs/a.md", "A")

	_, stderr, err := runCLI(t, root, "generate")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(stderr, "codex") {
		t.Errorf("stderr should name the failing agent: %q", stderr)
	}
	if _, err := os.Stat(filepath.Join(root, "CLAUDE.md")); err != nil {
		t.Error("claude output should still be written")
	}
}

func TestGenerateReportsCleanupFirst(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "ai-context.yaml", `version: "1.0"
base_docs_dir: ./ai-docs
agents:
  claude: true
  gemini: false
`)
	writeProjectFile(t, root, "ai-docs/a.md", "A")
	writeProjectFile(t, root, "GEMINI.md", "stale")

	stdout, _, err := runCLI(t, root, "generate")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	cleaned := strings.Index(stdout, "Cleaned up gemini")
	generated := strings.Index(stdout, "✓ claude")
	if cleaned < 0 || generated < 0 || cleaned > generated {
		t.Errorf("cleanup should be reported before generation:\n%s", stdout)
	}
}

func TestValidateCommand(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "ai-context.yaml", `version: "1.0"
output_mode: split
base_docs_dir: ./ai-docs
agents:
  kiro: true
`)
	writeProjectFile(t, root, "ai-docs/a.md", "A")

	stdout, _, err := runCLI(t, root, "validate")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	for _, want := range []string{"is valid", "version: 1.0", "output mode: split", "1 document", "\nAgents\n", "kiro"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("validate output missing %q:\n%s", want, stdout)
		}
	}

	if err := os.RemoveAll(filepath.Join(root, "ai-docs")); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, root, "validate"); err == nil {
		t.Error("validate should fail when the docs directory is missing")
	}
}

func TestListAgentsJSON(t *testing.T) {
	stdout, _, err := runCLI(t, t.TempDir(), "list-agents", "--json")
	if err != nil {
		t.Fatalf("list-agents failed: %v", err)
	}

	var entries []agentEntry
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(entries) != 7 {
		t.Fatalf("got %d agents, want 7", len(entries))
	}
	if entries[0].ID != "claude" || len(entries[0].Split) != 0 {
		t.Errorf("claude entry = %+v", entries[0])
	}
	if entries[6].ID != "kiro" || len(entries[6].Merged) != 0 {
		t.Errorf("kiro entry = %+v", entries[6])
	}
}

func TestListAgentsTable(t *testing.T) {
	stdout, _, err := runCLI(t, t.TempDir(), "list-agents")
	if err != nil {
		t.Fatalf("list-agents failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want header + 7:\n%s", len(lines), stdout)
	}
	if !strings.HasPrefix(lines[0], "AGENT") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestCleanAgent(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, ".github/copilot-instructions.md", "x")
	writeProjectFile(t, root, ".github/workflows/ci.yml", "on: push")

	stdout, _, err := runCLI(t, root, "clean", "--agent", "github")
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if !strings.Contains(stdout, "- .github/copilot-instructions.md") {
		t.Errorf("clean output = %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(root, ".github", "workflows", "ci.yml")); err != nil {
		t.Error("unrelated .github content must survive")
	}

	if _, _, err := runCLI(t, root, "clean", "--agent", "nope"); err == nil {
		t.Error("unknown agent should fail")
	}
}

func TestVersionShort(t *testing.T) {
	buildVersion = "1.2.3"
	stdout, _, err := runCLI(t, t.TempDir(), "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(stdout) != "1.2.3" {
		t.Errorf("version --short = %q", stdout)
	}
}

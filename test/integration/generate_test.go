//go:build integration

package integration_test

import (
	"os"
	"testing"

	"github.com/aicm-dev/aicm/internal/pipeline"
)

// TestFullFlowAllAgents generates every agent, then disables some of them and
// checks that their outputs are cleaned up while the rest are rewritten.
func TestFullFlowAllAgents(t *testing.T) {
	env := setupTestEnv(t)
	setupDocs(t, env)

	cfg := env.writeConfig(t, `version: "1.0"
output_mode: split
include_filenames: true
base_docs_dir: ./ai-docs
agents:
  claude:
    import_files:
      - path: "@ai-docs/architecture.md"
        note: Architecture
  codex: true
  gemini: true
  cline: true
  cursor: true
  github:
    output_mode: merged
  kiro:
    split_config:
      rules:
        - file_patterns: ["api/**"]
          inclusion: fileMatch
          match_pattern: "internal/**/*.go"
`)

	summary, err := pipeline.Generate(cfg, pipeline.Options{Root: env.ProjectDir})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if summary.Failed() {
		for _, r := range summary.Results {
			if r.Err != nil {
				t.Errorf("%s: %v", r.Agent, r.Err)
			}
		}
		t.FailNow()
	}

	// Step 1: merged-only agents.
	assertFileContains(t, env.path("CLAUDE.md"), "# api/errors.md\n\nReturn typed errors.")
	assertFileContains(t, env.path("CLAUDE.md"), "# Architecture\n@ai-docs/architecture.md")
	assertFileContains(t, env.path("AGENTS.md"), "Hexagonal layout.")
	assertFileExists(t, env.path("GEMINI.md"))

	// Step 2: split agents.
	assertFileContains(t, env.path(".clinerules/api_errors.md"), "Return typed errors.")
	assertFileContains(t, env.path(".cursor/rules/architecture.mdc"), "alwaysApply: true")
	assertFileContains(t, env.path(".kiro/steering/api-errors.md"), "fileMatchPattern: \"internal/**/*.go\"")
	assertFileContains(t, env.path(".kiro/steering/architecture.md"), "# Architecture")
	assertFileNotExists(t, env.path(".clinerules/notes.md"))

	// Step 3: per-agent override wins over the global split mode.
	assertFileExists(t, env.path(".github/copilot-instructions.md"))
	assertFileNotExists(t, env.path(".github/instructions"))

	// Step 4: disable cursor and kiro; their directories go away.
	cfg = env.writeConfig(t, `version: "1.0"
output_mode: split
base_docs_dir: ./ai-docs
agents:
  claude: true
  cline: true
  cursor: false
`)
	summary, err = pipeline.Generate(cfg, pipeline.Options{Root: env.ProjectDir})
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	assertFileNotExists(t, env.path(".cursor"))
	assertFileNotExists(t, env.path(".kiro"))
	assertFileNotExists(t, env.path("AGENTS.md"))
	assertFileNotExists(t, env.path("GEMINI.md"))
	assertFileNotExists(t, env.path(".github"))
	assertDirExists(t, env.path(".clinerules"))

	data, err := os.ReadFile(env.path("CLAUDE.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Return typed errors.\n\n# Architecture\n\nHexagonal layout." {
		t.Errorf("CLAUDE.md after reconfigure = %q", data)
	}
}

// TestModeSwitchRoundTrip flips cline and github between merged and split
// and checks that only one layout exists after each run.
func TestModeSwitchRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	setupDocs(t, env)

	for _, mode := range []string{"merged", "split", "merged"} {
		cfg := env.writeConfig(t, `version: "1.0"
output_mode: `+mode+`
base_docs_dir: ./ai-docs
agents:
  cline: true
  github: true
`)
		summary, err := pipeline.Generate(cfg, pipeline.Options{Root: env.ProjectDir})
		if err != nil {
			t.Fatalf("%s: Generate: %v", mode, err)
		}
		if summary.Failed() {
			t.Fatalf("%s: generation failed", mode)
		}

		if mode == "merged" {
			info, err := os.Stat(env.path(".clinerules"))
			if err != nil || info.IsDir() {
				t.Errorf("%s: .clinerules should be a file", mode)
			}
			assertFileExists(t, env.path(".github/copilot-instructions.md"))
			assertFileNotExists(t, env.path(".github/instructions"))
		} else {
			assertDirExists(t, env.path(".clinerules"))
			assertFileExists(t, env.path(".github/instructions/architecture.instructions.md"))
			assertFileNotExists(t, env.path(".github/copilot-instructions.md"))
		}
	}
}

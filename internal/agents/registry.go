package agents

import (
	"go.yaml.in/yaml/v3"
)

// ID identifies a supported assistant.
type ID string

const (
	Claude ID = "claude"
	Codex  ID = "codex"
	Gemini ID = "gemini"
	Cline  ID = "cline"
	Cursor ID = "cursor"
	GitHub ID = "github"
	Kiro   ID = "kiro"
)

// AllIDs returns every supported agent ID in generation order.
func AllIDs() []ID {
	return []ID{Claude, Codex, Gemini, Cline, Cursor, GitHub, Kiro}
}

// IDStrings returns AllIDs as plain strings.
func IDStrings() []string {
	ids := AllIDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// ParseID converts a string to an ID, returning false if invalid.
func ParseID(s string) (ID, bool) {
	switch ID(s) {
	case Claude, Codex, Gemini, Cline, Cursor, GitHub, Kiro:
		return ID(s), true
	default:
		return "", false
	}
}

// Lookup returns the profile for id.
func Lookup(id ID) (Profile, bool) {
	p, ok := registry[id]
	return p, ok
}

// All returns every profile in generation order.
func All() []Profile {
	ids := AllIDs()
	out := make([]Profile, 0, len(ids))
	for _, id := range ids {
		out = append(out, registry[id])
	}
	return out
}

// registry maps each agent to its profile.
var registry = map[ID]Profile{
	Claude: &claudeProfile{layout{
		id:          Claude,
		description: "Claude Code (CLAUDE.md with @ imports)",
		mergedPath:  "CLAUDE.md",
	}},
	Codex: &layout{
		id:          Codex,
		description: "OpenAI Codex (AGENTS.md)",
		mergedPath:  "AGENTS.md",
	},
	Gemini: &layout{
		id:          Gemini,
		description: "Gemini CLI (GEMINI.md)",
		mergedPath:  "GEMINI.md",
	},
	Cline: &layout{
		id:          Cline,
		description: "Cline (.clinerules file or directory)",
		mergedPath:  ".clinerules",
		splitDir:    ".clinerules",
		splitSep:    "_",
		splitExt:    ".md",
	},
	Cursor: &layout{
		id:          Cursor,
		description: "Cursor (.cursor/rules/*.mdc with front matter)",
		mergedPath:  ".cursor/rules/context.mdc",
		splitDir:    ".cursor/rules",
		splitSep:    "_",
		splitExt:    ".mdc",
		wrap:        cursorFrontMatter,
		parents:     []string{".cursor"},
	},
	GitHub: &layout{
		id:          GitHub,
		description: "GitHub Copilot (.github instructions)",
		mergedPath:  ".github/copilot-instructions.md",
		splitDir:    ".github/instructions",
		splitSep:    "_",
		splitExt:    ".instructions.md",
		parents:     []string{".github"},
	},
	Kiro: &kiroProfile{layout{
		id:          Kiro,
		description: "Kiro (.kiro/steering documents)",
		splitDir:    ".kiro/steering",
		splitSep:    "-",
		splitExt:    ".md",
		parents:     []string{".kiro"},
	}},
}

// cursorRule is the front matter Cursor reads from .mdc files.
type cursorRule struct {
	Description string `yaml:"description"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

var cursorHeader = func() string {
	data, err := yaml.Marshal(cursorRule{
		Description: "AI Context Management generated rules",
		AlwaysApply: true,
	})
	if err != nil {
		panic(err)
	}
	return "---\n" + string(data) + "---\n\n"
}()

func cursorFrontMatter(body string) string {
	return cursorHeader + body
}

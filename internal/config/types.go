package config

import (
	"fmt"
	"sort"

	"go.yaml.in/yaml/v3"
)

// OutputMode selects between one concatenated artifact and one artifact per document.
type OutputMode string

const (
	Merged OutputMode = "merged"
	Split  OutputMode = "split"
)

// ParseOutputMode converts a string to an OutputMode, returning false if invalid.
func ParseOutputMode(s string) (OutputMode, bool) {
	switch s {
	case string(Merged):
		return Merged, true
	case string(Split):
		return Split, true
	default:
		return "", false
	}
}

// Config represents the ai-context.yaml structure.
type Config struct {
	Version          string     `yaml:"version"`
	OutputMode       OutputMode `yaml:"output_mode,omitempty"`
	IncludeFilenames bool       `yaml:"include_filenames"`
	BaseDocsDir      string     `yaml:"base_docs_dir"`
	Agents           Agents     `yaml:"agents,omitempty"`
}

// AgentSetting is the per-agent entry under agents:. It is either the
// boolean shorthand (SimpleSetting) or the expanded record (*AdvancedSetting).
type AgentSetting interface {
	IsEnabled() bool
	EffectiveOutputMode(global OutputMode) OutputMode
	EffectiveIncludeFilenames(global bool) bool
	EffectiveBaseDocsDir(global string) string
	// Options returns the expanded record, or nil for the shorthand form.
	Options() *AdvancedSetting
}

// SimpleSetting is the `agent: true|false` shorthand.
type SimpleSetting bool

func (s SimpleSetting) IsEnabled() bool { return bool(s) }

func (s SimpleSetting) EffectiveOutputMode(global OutputMode) OutputMode {
	return orMerged(global)
}

func (s SimpleSetting) EffectiveIncludeFilenames(global bool) bool { return global }

func (s SimpleSetting) EffectiveBaseDocsDir(global string) string { return global }

func (s SimpleSetting) Options() *AdvancedSetting { return nil }

// AdvancedSetting is the expanded per-agent record. Profile-specific extras
// are ignored by agents that do not use them.
type AdvancedSetting struct {
	Enabled          *bool        `yaml:"enabled,omitempty"`
	OutputMode       OutputMode   `yaml:"output_mode,omitempty"`
	IncludeFilenames *bool        `yaml:"include_filenames,omitempty"`
	BaseDocsDir      string       `yaml:"base_docs_dir,omitempty"`
	ImportFiles      []ImportFile `yaml:"import_files,omitempty"`
	SplitConfig      *SplitConfig `yaml:"split_config,omitempty"`
}

// IsEnabled reports true unless enabled is explicitly false.
func (a *AdvancedSetting) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

func (a *AdvancedSetting) EffectiveOutputMode(global OutputMode) OutputMode {
	if a.OutputMode != "" {
		return a.OutputMode
	}
	return orMerged(global)
}

func (a *AdvancedSetting) EffectiveIncludeFilenames(global bool) bool {
	if a.IncludeFilenames != nil {
		return *a.IncludeFilenames
	}
	return global
}

func (a *AdvancedSetting) EffectiveBaseDocsDir(global string) string {
	if a.BaseDocsDir != "" {
		return a.BaseDocsDir
	}
	return global
}

func (a *AdvancedSetting) Options() *AdvancedSetting { return a }

// ImportFile is a file referenced from CLAUDE.md with an @ import line.
type ImportFile struct {
	Path string `yaml:"path"`
	Note string `yaml:"note,omitempty"`
}

// SplitConfig holds the inclusion rules applied to split artifacts.
type SplitConfig struct {
	Rules []InclusionRule `yaml:"rules,omitempty"`
}

// InclusionMode controls when an assistant loads a steering document.
type InclusionMode string

const (
	InclusionAlways    InclusionMode = "always"
	InclusionFileMatch InclusionMode = "fileMatch"
	InclusionManual    InclusionMode = "manual"
)

// InclusionRule attaches an inclusion header to documents whose relative path
// matches any of FilePatterns.
type InclusionRule struct {
	FilePatterns []string      `yaml:"file_patterns"`
	Inclusion    InclusionMode `yaml:"inclusion"`
	MatchPattern string        `yaml:"match_pattern,omitempty"`
}

// Agents maps agent IDs to their settings.
type Agents map[string]AgentSetting

// UnmarshalYAML decodes each entry as either a boolean or an expanded record.
func (a *Agents) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		*a = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: agents must be a mapping", node.Line)
	}

	out := make(Agents, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		setting, err := decodeAgentSetting(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("agents.%s: %w", key, err)
		}
		out[key] = setting
	}
	*a = out
	return nil
}

func decodeAgentSetting(n *yaml.Node) (AgentSetting, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return decodeAgentSetting(n.Alias)
	case yaml.MappingNode:
		var adv AdvancedSetting
		if err := n.Decode(&adv); err != nil {
			return nil, err
		}
		return &adv, nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return SimpleSetting(false), nil
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, err
			}
			return SimpleSetting(b), nil
		}
	}
	return nil, fmt.Errorf("line %d: expected true, false or a mapping, got %q", n.Line, n.Value)
}

// Agent returns the setting for id. Unknown or absent IDs are disabled.
func (c *Config) Agent(id string) AgentSetting {
	if s, ok := c.Agents[id]; ok && s != nil {
		return s
	}
	return SimpleSetting(false)
}

// EffectiveOutputMode resolves agent override, then global output_mode, then merged.
// Profiles that support only one mode clamp the result themselves.
func (c *Config) EffectiveOutputMode(id string) OutputMode {
	return c.Agent(id).EffectiveOutputMode(c.OutputMode)
}

// EffectiveIncludeFilenames resolves the per-agent include_filenames override.
func (c *Config) EffectiveIncludeFilenames(id string) bool {
	return c.Agent(id).EffectiveIncludeFilenames(c.IncludeFilenames)
}

// EffectiveBaseDocsDir resolves the per-agent base_docs_dir override.
func (c *Config) EffectiveBaseDocsDir(id string) string {
	return c.Agent(id).EffectiveBaseDocsDir(c.BaseDocsDir)
}

// EnabledAgents returns the IDs of enabled agents in sorted order.
func (c *Config) EnabledAgents() []string {
	var ids []string
	for id, s := range c.Agents {
		if s != nil && s.IsEnabled() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func orMerged(mode OutputMode) OutputMode {
	if mode == "" {
		return Merged
	}
	return mode
}

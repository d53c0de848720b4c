package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// DefaultVersion is written by Init and accepted by SupportedVersions.
const DefaultVersion = "1.0"

// DefaultBaseDocsDir is the docs directory used by a freshly initialized config.
const DefaultBaseDocsDir = "./ai-docs"

// SupportedVersions is the semver range of config versions this build reads.
const SupportedVersions = ">= 1.0, < 2.0"

const defaultEnabledAgent = "claude"

const header = "# AI context management configuration.\n# Docs under base_docs_dir are rendered into each enabled agent's native format.\n"

// Default returns the starter config. Every listed agent gets an entry and
// only claude is enabled.
func Default(agentIDs []string) *Config {
	agents := make(Agents, len(agentIDs))
	for _, id := range agentIDs {
		agents[id] = SimpleSetting(id == defaultEnabledAgent)
	}
	return &Config{
		Version:          DefaultVersion,
		OutputMode:       Merged,
		IncludeFilenames: false,
		BaseDocsDir:      DefaultBaseDocsDir,
		Agents:           agents,
	}
}

// Load reads, schema-checks, decodes and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes config bytes. source is only used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	issues, err := checkSchema(data)
	if err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	if len(issues) > 0 {
		return nil, &ParseError{Path: source, Issues: issues}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	if cfg.OutputMode == "" {
		cfg.OutputMode = Merged
	}

	if problems := Validate(&cfg); len(problems) > 0 {
		return nil, &ValidationError{Path: source, Problems: problems}
	}
	return &cfg, nil
}

// Validate returns the problems that make cfg unusable. An empty result
// means the config is valid.
func Validate(cfg *Config) []string {
	var problems []string

	if strings.TrimSpace(cfg.Version) == "" {
		problems = append(problems, "version must not be empty")
	} else if err := CheckVersion(cfg.Version); err != nil {
		problems = append(problems, err.Error())
	}

	if strings.TrimSpace(cfg.BaseDocsDir) == "" {
		problems = append(problems, "base_docs_dir must not be empty")
	}

	if cfg.OutputMode != "" {
		if _, ok := ParseOutputMode(string(cfg.OutputMode)); !ok {
			problems = append(problems, fmt.Sprintf("output_mode %q must be merged or split", cfg.OutputMode))
		}
	}

	for _, id := range sortedKeys(cfg.Agents) {
		setting := cfg.Agents[id]
		if setting == nil {
			continue
		}
		opts := setting.Options()
		if opts == nil {
			continue
		}
		if opts.OutputMode != "" {
			if _, ok := ParseOutputMode(string(opts.OutputMode)); !ok {
				problems = append(problems, fmt.Sprintf("agents.%s.output_mode %q must be merged or split", id, opts.OutputMode))
			}
		}
		for i, imp := range opts.ImportFiles {
			if strings.TrimSpace(imp.Path) == "" {
				problems = append(problems, fmt.Sprintf("agents.%s.import_files[%d].path must not be empty", id, i))
			}
		}
	}

	return problems
}

// CheckVersion reports whether version falls inside SupportedVersions.
// A leading "v" is tolerated.
func CheckVersion(version string) error {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return fmt.Errorf("version %q is not a valid version: %w", version, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing supported range: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("version %q is not supported (want %s)", version, SupportedVersions)
	}
	return nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	buf.WriteString(header)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Init writes the default config to path unless a file is already there.
// It reports whether a file was created.
func Init(path string, agentIDs []string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if err := Save(path, Default(agentIDs)); err != nil {
		return false, err
	}
	return true, nil
}

// ResolvePath makes a config-relative path absolute against root.
// A leading "~/" expands to the user's home directory.
func ResolvePath(root, p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func sortedKeys(agents Agents) []string {
	keys := make([]string, 0, len(agents))
	for k := range agents {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aicm-dev/aicm/internal/agents"
	"github.com/aicm-dev/aicm/internal/cleanup"
	"github.com/aicm-dev/aicm/internal/config"
	"github.com/aicm-dev/aicm/internal/docs"
	"github.com/aicm-dev/aicm/internal/platform"
)

// Options controls a generate run.
type Options struct {
	Root  string // project root; relative config paths resolve against it
	Agent string // restricts the run to one agent and skips cleanup
}

// Result is the outcome for one agent.
type Result struct {
	Agent    agents.ID
	Mode     config.OutputMode
	DocsDir  string
	Docs     int
	Created  []string
	Updated  []string
	Removed  []string
	Warnings []string
	Err      error
}

// Written returns the created and updated paths.
func (r *Result) Written() []string {
	out := make([]string, 0, len(r.Created)+len(r.Updated))
	out = append(out, r.Created...)
	return append(out, r.Updated...)
}

// Summary is the outcome of a generate run.
type Summary struct {
	Results []Result
	Cleanup []cleanup.Report
}

// Failed reports whether any agent failed.
func (s *Summary) Failed() bool {
	for _, r := range s.Results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Written returns every path written in the run, relative to the root.
func (s *Summary) Written() []string {
	var out []string
	for i := range s.Results {
		out = append(out, s.Results[i].Written()...)
	}
	return out
}

// Generate renders and writes the context files of every enabled agent.
// It returns an error only for problems that stop the whole run: a missing
// global docs directory or an invalid agent filter.
func Generate(cfg *config.Config, opts Options) (*Summary, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	globalDir := config.ResolvePath(root, cfg.BaseDocsDir)
	if err := docs.RequireDir(globalDir); err != nil {
		return nil, err
	}

	targets, err := selectProfiles(cfg, opts.Agent)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	if opts.Agent == "" {
		summary.Cleanup = cleanup.Disabled(cfg, root)
	}

	c := newCollector()
	for _, p := range targets {
		summary.Results = append(summary.Results, generateOne(cfg, p, root, c))
	}
	return summary, nil
}

// selectProfiles returns the enabled profiles, or the single profile named
// by filter, which must be known and enabled.
func selectProfiles(cfg *config.Config, filter string) ([]agents.Profile, error) {
	if filter != "" {
		id, ok := agents.ParseID(filter)
		if !ok {
			return nil, fmt.Errorf("unknown agent %q (known: %s)", filter, strings.Join(agents.IDStrings(), ", "))
		}
		if !cfg.Agent(string(id)).IsEnabled() {
			return nil, fmt.Errorf("agent %q is not enabled in the configuration (enabled: %s)", filter, enabledList(cfg))
		}
		p, _ := agents.Lookup(id)
		return []agents.Profile{p}, nil
	}

	var out []agents.Profile
	for _, p := range agents.All() {
		if cfg.Agent(string(p.ID())).IsEnabled() {
			out = append(out, p)
		}
	}
	return out, nil
}

func enabledList(cfg *config.Config) string {
	ids := cfg.EnabledAgents()
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

func generateOne(cfg *config.Config, p agents.Profile, root string, c *collector) Result {
	id := string(p.ID())
	opts := renderOptions(cfg, p, root)
	res := Result{Agent: p.ID(), Mode: opts.Mode, DocsDir: opts.DocsDir}

	if override := cfg.Agent(id).Options(); override != nil && override.OutputMode != "" && override.OutputMode != opts.Mode {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s output is not supported; writing %s", override.OutputMode, opts.Mode))
	}

	documents, skipped, err := c.collect(opts.DocsDir)
	if err != nil {
		res.Err = err
		return res
	}
	res.Docs = len(documents)
	res.Warnings = append(res.Warnings, skipped...)
	if len(documents) == 0 {
		res.Warnings = append(res.Warnings, "no Markdown documents found in "+rel(root, opts.DocsDir))
	}

	if checker, ok := p.(agents.Checker); ok {
		f := checker.Check(opts)
		res.Warnings = append(res.Warnings, f.Warnings...)
		if len(f.Errors) > 0 {
			res.Err = errors.New(strings.Join(f.Errors, "; "))
			return res
		}
	}

	artifacts, err := p.Render(documents, opts)
	if err != nil {
		res.Err = fmt.Errorf("rendering: %w", err)
		return res
	}

	removal, err := p.Prepare(root, opts.Mode, artifacts)
	if removal != nil {
		res.Removed = append(res.Removed, removal.Removed...)
		res.Warnings = append(res.Warnings, removal.Warnings...)
	}
	if err != nil {
		res.Err = err
		return res
	}

	for _, a := range artifacts {
		target := filepath.Join(root, filepath.FromSlash(a.Path))
		_, statErr := os.Stat(target)
		if err := platform.WriteFile(target, a.Content); err != nil {
			res.Err = err
			return res
		}
		if statErr == nil {
			res.Updated = append(res.Updated, a.Path)
		} else {
			res.Created = append(res.Created, a.Path)
		}
	}
	return res
}

func renderOptions(cfg *config.Config, p agents.Profile, root string) agents.RenderOptions {
	id := string(p.ID())
	return agents.RenderOptions{
		Mode:             agents.EffectiveMode(p, cfg.EffectiveOutputMode(id)),
		IncludeFilenames: cfg.EffectiveIncludeFilenames(id),
		Settings:         cfg.Agent(id).Options(),
		Root:             root,
		DocsDir:          config.ResolvePath(root, cfg.EffectiveBaseDocsDir(id)),
	}
}

// collector caches collected documents per docs directory for one run.
type collector struct {
	cache map[string]collected
}

type collected struct {
	docs    []docs.Document
	skipped []string
	err     error
}

func newCollector() *collector {
	return &collector{cache: make(map[string]collected)}
}

func (c *collector) collect(dir string) ([]docs.Document, []string, error) {
	if got, ok := c.cache[dir]; ok {
		return got.docs, got.skipped, got.err
	}

	var entry collected
	if err := docs.RequireDir(dir); err != nil {
		entry.err = err
	} else {
		entry.docs, entry.err = docs.Collect(dir, func(path string, err error) {
			entry.skipped = append(entry.skipped, fmt.Sprintf("skipped %s: %v", path, err))
		})
	}
	c.cache[dir] = entry
	return entry.docs, entry.skipped, entry.err
}

func rel(root, path string) string {
	if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
		return filepath.ToSlash(r)
	}
	return path
}

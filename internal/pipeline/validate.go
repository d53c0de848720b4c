package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/aicm-dev/aicm/internal/agents"
	"github.com/aicm-dev/aicm/internal/config"
	"github.com/aicm-dev/aicm/internal/docs"
)

// AgentCheck is the validation outcome for one enabled agent.
type AgentCheck struct {
	Agent    agents.ID
	Mode     config.OutputMode
	DocsDir  string
	Docs     int
	Outputs  []string
	Errors   []string
	Warnings []string
}

// Report is the outcome of Validate.
type Report struct {
	DocsDir  string
	Docs     int
	Agents   []AgentCheck
	Warnings []string
}

// Failed reports whether any agent check has errors.
func (r *Report) Failed() bool {
	for _, a := range r.Agents {
		if len(a.Errors) > 0 {
			return true
		}
	}
	return false
}

// Validate checks that the docs directories and referenced files exist for
// every enabled agent without writing anything. A missing global docs
// directory is returned as an error; everything else is reported.
func Validate(cfg *config.Config, root string) (*Report, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	globalDir := config.ResolvePath(root, cfg.BaseDocsDir)
	if err := docs.RequireDir(globalDir); err != nil {
		return nil, err
	}

	c := newCollector()
	report := &Report{DocsDir: globalDir}
	if documents, skipped, err := c.collect(globalDir); err == nil {
		report.Docs = len(documents)
		report.Warnings = append(report.Warnings, skipped...)
	}

	var unknown []string
	for id := range cfg.Agents {
		if _, ok := agents.ParseID(id); !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		report.Warnings = append(report.Warnings, fmt.Sprintf("unknown agent %q is ignored", id))
	}

	for _, p := range agents.All() {
		if !cfg.Agent(string(p.ID())).IsEnabled() {
			continue
		}
		report.Agents = append(report.Agents, checkAgent(cfg, p, root, c))
	}
	if len(report.Agents) == 0 {
		report.Warnings = append(report.Warnings, "no agents are enabled")
	}
	return report, nil
}

func checkAgent(cfg *config.Config, p agents.Profile, root string, c *collector) AgentCheck {
	opts := renderOptions(cfg, p, root)
	check := AgentCheck{
		Agent:   p.ID(),
		Mode:    opts.Mode,
		DocsDir: opts.DocsDir,
		Outputs: p.OutputPaths(opts.Mode),
	}

	if override := cfg.Agent(string(p.ID())).Options(); override != nil && override.OutputMode != "" && override.OutputMode != opts.Mode {
		check.Warnings = append(check.Warnings, fmt.Sprintf("%s output is not supported; %s will be used", override.OutputMode, opts.Mode))
	}

	documents, _, err := c.collect(opts.DocsDir)
	if err != nil {
		check.Errors = append(check.Errors, err.Error())
	} else {
		check.Docs = len(documents)
		if check.Docs == 0 {
			check.Warnings = append(check.Warnings, "no Markdown documents found in "+rel(root, opts.DocsDir))
		}
	}

	if checker, ok := p.(agents.Checker); ok {
		f := checker.Check(opts)
		check.Errors = append(check.Errors, f.Errors...)
		check.Warnings = append(check.Warnings, f.Warnings...)
	}
	return check
}

package agents

import (
	"github.com/aicm-dev/aicm/internal/config"
	"github.com/aicm-dev/aicm/internal/docs"
	"github.com/aicm-dev/aicm/internal/platform"
)

// Artifact is one rendered file. Path is relative to the project root and
// uses forward slashes.
type Artifact struct {
	Path    string
	Content string
}

// RenderOptions carries the per-agent settings resolved from the config.
type RenderOptions struct {
	Mode             config.OutputMode
	IncludeFilenames bool
	// Settings is the expanded agent record, nil for the boolean shorthand.
	Settings *config.AdvancedSetting
	Root     string // absolute project root
	DocsDir  string // absolute docs directory the documents came from
}

// Profile is an assistant's output format.
type Profile interface {
	ID() ID
	Description() string
	Supports(mode config.OutputMode) bool
	// OutputPaths lists the files or patterns written in mode.
	OutputPaths(mode config.OutputMode) []string
	Render(documents []docs.Document, opts RenderOptions) ([]Artifact, error)
	// Prepare removes files left by a previous run that are not among
	// artifacts, including everything written in the other mode. It fails
	// only when an output location cannot be made writable.
	Prepare(root string, mode config.OutputMode, artifacts []Artifact) (*platform.Removal, error)
	// Cleanup removes every artifact the profile may have written.
	Cleanup(root string) *platform.Removal
}

// Findings are the results of checking an agent's settings.
type Findings struct {
	Errors   []string
	Warnings []string
}

// Checker is implemented by profiles with settings that can be checked
// before generation.
type Checker interface {
	Check(opts RenderOptions) Findings
}

// EffectiveMode clamps mode to one the profile supports.
func EffectiveMode(p Profile, mode config.OutputMode) config.OutputMode {
	if mode == "" {
		mode = config.Merged
	}
	if p.Supports(mode) {
		return mode
	}
	if mode == config.Merged {
		return config.Split
	}
	return config.Merged
}

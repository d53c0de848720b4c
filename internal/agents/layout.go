package agents

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aicm-dev/aicm/internal/config"
	"github.com/aicm-dev/aicm/internal/docs"
	"github.com/aicm-dev/aicm/internal/platform"
)

// layout describes a profile by its file locations. Paths are slash
// separated and relative to the project root.
type layout struct {
	id          ID
	description string

	mergedPath string // empty when merged mode is unsupported
	splitDir   string // empty when split mode is unsupported
	splitSep   string
	splitExt   string

	// wrap, when set, decorates every artifact body.
	wrap func(body string) string
	// parents are removed after cleanup if empty, innermost first.
	parents []string
}

func (l *layout) ID() ID              { return l.id }
func (l *layout) Description() string { return l.description }

func (l *layout) Supports(mode config.OutputMode) bool {
	switch mode {
	case config.Merged:
		return l.mergedPath != ""
	case config.Split:
		return l.splitDir != ""
	}
	return false
}

func (l *layout) OutputPaths(mode config.OutputMode) []string {
	if EffectiveMode(l, mode) == config.Merged {
		return []string{l.mergedPath}
	}
	return []string{l.splitDir + "/*" + l.splitExt}
}

func (l *layout) Render(documents []docs.Document, opts RenderOptions) ([]Artifact, error) {
	if EffectiveMode(l, opts.Mode) == config.Merged {
		return []Artifact{l.mergedArtifact(docs.Merge(documents, opts.IncludeFilenames))}, nil
	}

	artifacts := make([]Artifact, 0, len(documents))
	for _, d := range docs.Split(documents) {
		artifacts = append(artifacts, l.splitArtifact(d, d.Content))
	}
	return artifacts, nil
}

func (l *layout) mergedArtifact(body string) Artifact {
	return Artifact{Path: l.mergedPath, Content: l.decorate(body)}
}

func (l *layout) splitArtifact(d docs.Document, body string) Artifact {
	name := docs.SplitName(d.Path, l.splitSep, l.splitExt)
	return Artifact{Path: path.Join(l.splitDir, name), Content: l.decorate(body)}
}

func (l *layout) decorate(body string) string {
	if l.wrap == nil {
		return body
	}
	return l.wrap(body)
}

func (l *layout) isSplitFile(name string) bool {
	return strings.HasSuffix(name, l.splitExt)
}

func (l *layout) Prepare(root string, mode config.OutputMode, artifacts []Artifact) (*platform.Removal, error) {
	r := platform.NewRemoval(root)
	keep := make(map[string]bool, len(artifacts))
	for _, a := range artifacts {
		keep[a.Path] = true
	}

	if l.mergedPath != "" && !keep[l.mergedPath] {
		r.File(l.abs(root, l.mergedPath))
	}
	if l.splitDir == "" {
		return r, nil
	}

	dir := l.abs(root, l.splitDir)
	r.Matching(dir, func(name string) bool {
		return l.isSplitFile(name) && !keep[path.Join(l.splitDir, name)]
	})

	if EffectiveMode(l, mode) != config.Merged || path.Dir(l.mergedPath) == l.splitDir {
		return r, nil
	}
	r.DirIfEmpty(dir)
	if isDir(l.abs(root, l.mergedPath)) {
		return r, fmt.Errorf("%s is a directory with unmanaged files; move them to write the merged file", l.mergedPath)
	}
	return r, nil
}

func (l *layout) Cleanup(root string) *platform.Removal {
	r := platform.NewRemoval(root)
	if l.mergedPath != "" {
		r.File(l.abs(root, l.mergedPath))
	}
	if l.splitDir != "" {
		dir := l.abs(root, l.splitDir)
		r.Matching(dir, l.isSplitFile)
		r.DirIfEmpty(dir)
	}
	for _, p := range l.parents {
		r.DirIfEmpty(l.abs(root, p))
	}
	return r
}

func (l *layout) abs(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

package agents

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aicm-dev/aicm/internal/docs"
)

// claudeProfile writes CLAUDE.md. Configured import_files that exist are
// appended as @ references, and docs that an import already covers are left
// out of the merged body.
type claudeProfile struct {
	layout
}

func (c *claudeProfile) Render(documents []docs.Document, opts RenderOptions) ([]Artifact, error) {
	var imports []string
	if opts.Settings != nil {
		for _, imp := range opts.Settings.ImportFiles {
			imports = append(imports, importPath(opts.Root, imp.Path))
		}
	}

	body := docs.Merge(excludeImported(documents, opts.DocsDir, imports), opts.IncludeFilenames)

	var refs []string
	if opts.Settings != nil {
		for _, imp := range opts.Settings.ImportFiles {
			// Missing files are reported by Check and left out here.
			if _, err := os.Stat(importPath(opts.Root, imp.Path)); err != nil {
				continue
			}
			ref := "@" + strings.TrimPrefix(imp.Path, "@")
			if imp.Note != "" {
				ref = "# " + imp.Note + "\n" + ref
			}
			refs = append(refs, ref)
		}
	}

	content := body
	if len(refs) > 0 {
		content = strings.TrimSpace(body + "\n\n" + strings.Join(refs, "\n\n"))
	}
	return []Artifact{c.mergedArtifact(content)}, nil
}

// Check warns about import files that do not exist.
func (c *claudeProfile) Check(opts RenderOptions) Findings {
	var f Findings
	if opts.Settings == nil {
		return f
	}
	for _, imp := range opts.Settings.ImportFiles {
		p := importPath(opts.Root, imp.Path)
		if _, err := os.Stat(p); err != nil {
			f.Warnings = append(f.Warnings, fmt.Sprintf("import file %s not found", imp.Path))
		}
	}
	return f
}

// importPath resolves an import reference ("@path", "~/path" or a plain
// path) to an absolute path.
func importPath(root, ref string) string {
	ref = strings.TrimPrefix(ref, "@")
	if ref == "~" || strings.HasPrefix(ref, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			ref = filepath.Join(home, strings.TrimPrefix(ref, "~"))
		}
	}
	if !filepath.IsAbs(ref) {
		ref = filepath.Join(root, filepath.FromSlash(ref))
	}
	return canonical(ref)
}

func excludeImported(documents []docs.Document, docsDir string, imports []string) []docs.Document {
	if len(imports) == 0 || docsDir == "" {
		return documents
	}
	imported := make(map[string]bool, len(imports))
	for _, p := range imports {
		imported[p] = true
	}

	out := make([]docs.Document, 0, len(documents))
	for _, d := range documents {
		if imported[canonical(filepath.Join(docsDir, filepath.FromSlash(d.Path)))] {
			continue
		}
		out = append(out, d)
	}
	return out
}

func canonical(p string) string {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return filepath.Clean(p)
}

package docs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDocsDirMissing is matched by *DocsDirMissingError.
var ErrDocsDirMissing = errors.New("docs directory missing")

// DocsDirMissingError reports a docs directory that does not exist.
type DocsDirMissingError struct {
	Path string
}

func (e *DocsDirMissingError) Error() string {
	return fmt.Sprintf("docs directory not found: %s", e.Path)
}

func (e *DocsDirMissingError) Is(target error) bool { return target == ErrDocsDirMissing }

// Document is one Markdown source file.
type Document struct {
	Path    string // relative to the docs directory, forward slashes
	Content string
}

// SkipFunc is called for each file that could not be read.
type SkipFunc func(path string, err error)

const markdownExt = ".md"

// RequireDir returns a *DocsDirMissingError unless dir exists and is a directory.
func RequireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &DocsDirMissingError{Path: dir}
		}
		return fmt.Errorf("checking docs directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("docs path %s is not a directory", dir)
	}
	return nil
}

// Collect returns every .md file under baseDir sorted by relative path.
// A missing baseDir yields an empty list. Unreadable files and
// subdirectories are skipped and reported to onSkip, which may be nil.
func Collect(baseDir string, onSkip SkipFunc) ([]Document, error) {
	if err := RequireDir(baseDir); err != nil {
		if errors.Is(err, ErrDocsDirMissing) {
			return nil, nil
		}
		return nil, err
	}
	skip := func(path string, err error) {
		if onSkip != nil {
			onSkip(path, err)
		}
	}

	var docs []Document
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == baseDir {
				return err
			}
			skip(path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != markdownExt {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			skip(path, err)
			return nil
		}
		rel, err := filepath.Rel(baseDir, path)
		if err != nil {
			skip(path, err)
			return nil
		}
		docs = append(docs, Document{Path: filepath.ToSlash(rel), Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", baseDir, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Merge concatenates docs in order, one blank line apart. With
// includeFilenames each body is preceded by a "# <path>" heading.
// Documents with an empty body are dropped unless a heading is written.
func Merge(docs []Document, includeFilenames bool) string {
	var parts []string
	for _, d := range docs {
		body := strings.TrimSpace(d.Content)
		if includeFilenames {
			if body == "" {
				parts = append(parts, "# "+d.Path)
			} else {
				parts = append(parts, "# "+d.Path+"\n\n"+body)
			}
			continue
		}
		if body != "" {
			parts = append(parts, body)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// Split returns a copy of docs. Target naming is left to the caller.
func Split(docs []Document) []Document {
	out := make([]Document, len(docs))
	copy(out, docs)
	return out
}

// SplitName derives a flat file name from a document path: the .md suffix
// is dropped, path separators become sep, and ext is appended.
func SplitName(path, sep, ext string) string {
	name := strings.TrimSuffix(path, markdownExt)
	name = strings.NewReplacer("/", sep, "\\", sep).Replace(name)
	return name + ext
}

package platform

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Removal performs best-effort deletions under Root. Failures are recorded
// as warnings instead of being returned, and paths are reported relative to
// Root with forward slashes.
type Removal struct {
	Root     string
	Removed  []string
	Warnings []string
}

// NewRemoval returns an empty Removal rooted at root.
func NewRemoval(root string) *Removal {
	return &Removal{Root: root}
}

// File removes a single regular file. A missing file is not an error.
// It reports whether the file was removed.
func (r *Removal) File(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.warn(path, err)
		}
		return false
	}
	if info.IsDir() {
		return false
	}
	if err := os.Remove(path); err != nil {
		r.warn(path, err)
		return false
	}
	r.Removed = append(r.Removed, r.rel(path))
	return true
}

// Matching removes the files directly inside dir whose names satisfy match.
// Subdirectories are left alone, and a dir that is not a directory is ignored.
func (r *Removal) Matching(dir string, match func(name string) bool) {
	if info, err := os.Lstat(dir); err != nil || !info.IsDir() {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.warn(dir, err)
		}
		return
	}
	for _, e := range entries {
		if e.IsDir() || !match(e.Name()) {
			continue
		}
		r.File(filepath.Join(dir, e.Name()))
	}
}

// DirIfEmpty removes dir when it exists and has no entries.
// It reports whether the directory was removed.
func (r *Removal) DirIfEmpty(dir string) bool {
	if info, err := os.Lstat(dir); err != nil || !info.IsDir() {
		return false
	}
	empty, err := IsDirEmpty(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.warn(dir, err)
		}
		return false
	}
	if !empty {
		return false
	}
	if err := os.Remove(dir); err != nil {
		r.warn(dir, err)
		return false
	}
	r.Removed = append(r.Removed, r.rel(dir)+"/")
	return true
}

func (r *Removal) warn(path string, err error) {
	r.Warnings = append(r.Warnings, fmt.Sprintf("could not remove %s: %v", r.rel(path), err))
}

func (r *Removal) rel(path string) string {
	if r.Root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(r.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// IsDirEmpty reports whether dir has no entries. It returns an error
// wrapping fs.ErrNotExist when dir does not exist.
func IsDirEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	names, err := f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return len(names) == 0, nil
}

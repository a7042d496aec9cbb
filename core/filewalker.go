package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// EmptyDirError reports a directory argument with no Python file below
// it, which almost always means the wrong path was passed.
type EmptyDirError struct {
	Path string
}

func (e *EmptyDirError) Error() string {
	return fmt.Sprintf("Directory %s doesn't contain any .py file", e.Path)
}

// PathError reports a path argument that does not exist.
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("Path %s doesn't exist", e.Path)
}

// FileWalker expands path arguments into the list of Python files to
// patch. Explicit file arguments are taken as-is; directories are walked
// recursively for .py files, skipping dot-directory trees and anything
// matching the configured exclude patterns.
type FileWalker struct {
	exclude []string
}

// NewFileWalker returns a walker honoring the given doublestar exclude
// patterns.
func NewFileWalker(exclude []string) *FileWalker {
	return &FileWalker{exclude: exclude}
}

// Expand resolves every path argument, preserving argument order and the
// lexical walk order inside each directory so runs are reproducible. Each
// problem path produces a typed error; discovery continues past them so
// one bad argument does not hide the others' results.
func (fw *FileWalker) Expand(paths []string) (files []string, errs []error) {
	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			errs = append(errs, &PathError{Path: path})
		case info.IsDir():
			found := fw.walkDir(path)
			if len(found) == 0 {
				errs = append(errs, &EmptyDirError{Path: path})
				continue
			}
			files = append(files, found...)
		default:
			files = append(files, path)
		}
	}
	return files, errs
}

func (fw *FileWalker) walkDir(root string) []string {
	var files []string
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if d.IsDir() {
			// Dot-directories (.tox, .git, .venv) never hold project sources.
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		if fw.isExcluded(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files
}

// isExcluded matches the path against the exclude patterns, trying the
// basename too for simple patterns without a path separator.
func (fw *FileWalker) isExcluded(path string) bool {
	for _, pattern := range fw.exclude {
		if matched, err := doublestar.PathMatch(pattern, path); err == nil && matched {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.PathMatch(pattern, filepath.Base(path)); err == nil && matched {
				return true
			}
		}
	}
	return false
}

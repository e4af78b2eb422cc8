package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIncludes covers the document types the loader understands.
var DefaultIncludes = []string{"**/*.pdf", "**/*.md", "**/*.txt"}

// skippedDirs are directory names never descended into.
var skippedDirs = []string{".git", "node_modules", "vendor", ".venv", ".idea", ".vscode"}

// Discover walks root and returns the paths of ingestable files, filtered
// by doublestar include/exclude glob patterns. Empty include patterns fall
// back to DefaultIncludes. If root is a plain file it is returned as-is,
// unfiltered.
func Discover(root string, include, exclude []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("ingest: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	if len(include) == 0 {
		include = DefaultIncludes
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if d.IsDir() {
			if shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !matchesAny(rel, include) || matchesAny(rel, exclude) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: walking %s: %w", root, err)
	}

	return files, nil
}

func shouldSkipDir(name string) bool {
	for _, skip := range skippedDirs {
		if strings.EqualFold(name, skip) {
			return true
		}
	}
	return false
}

// matchesAny checks relPath against the glob patterns, matching both the
// full slash-normalized path and the bare filename so "*.pdf" works at any
// depth.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(normalized)); err == nil && matched {
			return true
		}
	}
	return false
}

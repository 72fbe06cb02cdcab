// Package source finds and reads the CSS inputs handed to seess.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// StdinPath is the path that selects standard input
const StdinPath = "-"

// Stats tracks file discovery statistics
type Stats struct {
	Discovered int // Total files found by glob patterns
	Selected   int // Files kept for analysis (after filtering)
	Skipped    int // Files skipped due to filtering
}

// Discoverer expands glob patterns into CSS file paths
type Discoverer struct {
	IgnoreFile      string // Path to a .gitignore file, "" to disable
	IncludeMinified bool   // Keep *.min.css files

	gitIgnoreOnce  sync.Once
	gitIgnoreCache *ignore.GitIgnore
}

// NewDiscoverer creates a Discoverer that honours the given ignore file
func NewDiscoverer(ignoreFile string, includeMinified bool) *Discoverer {
	return &Discoverer{
		IgnoreFile:      ignoreFile,
		IncludeMinified: includeMinified,
	}
}

// isMinified checks if a file is a minified build artifact
func isMinified(path string) bool {
	return strings.HasSuffix(path, ".min.css")
}

// loadGitIgnore loads the ignore file once (thread-safe)
// Gracefully degrades if the file doesn't exist
func (d *Discoverer) loadGitIgnore() *ignore.GitIgnore {
	d.gitIgnoreOnce.Do(func() {
		if d.IgnoreFile == "" {
			return
		}
		gi, err := ignore.CompileIgnoreFile(d.IgnoreFile)
		if err != nil {
			// no ignore file is fine
			return
		}
		d.gitIgnoreCache = gi
	})
	return d.gitIgnoreCache
}

// shouldSkip determines if a file should be excluded from analysis
//
// Two-layer filtering:
// 1. Pattern check (fast): skip *.min.css unless IncludeMinified
// 2. Gitignore check: skip ignored files (only for relative paths)
func (d *Discoverer) shouldSkip(path string) bool {
	if !d.IncludeMinified && isMinified(path) {
		return true
	}

	// Absolute paths (like /tmp/...) are not affected by project gitignore
	if !filepath.IsAbs(path) {
		gi := d.loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// Discover expands patterns to file paths in pattern order, without duplicates.
// A pattern without glob metacharacters naming an existing file is always kept,
// so explicitly listed files are never filtered.
func (d *Discoverer) Discover(patterns []string) ([]string, Stats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := Stats{}

	for _, pattern := range patterns {
		if pattern == StdinPath {
			if !seen[pattern] {
				files = append(files, pattern)
				seen[pattern] = true
				stats.Discovered++
				stats.Selected++
			}
			continue
		}

		explicit := !hasMeta(pattern)

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		if explicit && len(matches) == 0 {
			return nil, stats, fmt.Errorf("%s: %w", pattern, os.ErrNotExist)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}

			stats.Discovered++
			seen[match] = true

			if !explicit && d.shouldSkip(match) {
				stats.Skipped++
				continue
			}

			files = append(files, match)
			stats.Selected++
		}
	}

	return files, stats, nil
}

// hasMeta reports whether pattern contains glob metacharacters
func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// ReadFile reads a CSS file, or standard input when path is StdinPath
func ReadFile(path string, stdin io.Reader) (string, error) {
	if path == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	// #nosec G304 - path comes from the command line or trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

// RelativePath returns a path relative to the current working directory
func RelativePath(path string) string {
	if path == StdinPath || !filepath.IsAbs(path) {
		return path
	}

	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return rel
}

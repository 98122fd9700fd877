package critcss

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks stylesheet discovery statistics.
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually read (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe).
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile filters discovered files before reading.
//
// Two-layer filtering:
// 1. Extension check: only .css files are stylesheets.
// 2. Gitignore check: skip gitignored files (only for relative paths,
// so absolute paths like /tmp/... are unaffected by the project's
// .gitignore).
func shouldSkipFile(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".css") {
		return true
	}

	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// ScanStylesheets expands glob patterns to stylesheet paths, reads
// each file and returns the concatenated CSS text along with scan
// statistics. Files that fail to read are skipped, mirroring the
// availability-over-completeness policy of the parser.
func ScanStylesheets(patterns []string) (string, ScanStats, error) {
	files, stats, err := expandGlobPatterns(patterns)
	if err != nil {
		return "", stats, err
	}

	var b strings.Builder
	for _, file := range files {
		// #nosec G304 - paths come from user-supplied glob patterns
		content, err := os.ReadFile(file)
		if err != nil {
			stats.FilesScanned--
			stats.FilesSkipped++
			continue
		}
		b.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			b.WriteString("\n")
		}
	}

	return b.String(), stats, nil
}

// expandGlobPatterns expands glob patterns to deduplicated file paths,
// tracking statistics.
func expandGlobPatterns(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("expanding pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match) {
				stats.FilesSkipped++
			} else {
				allFiles = append(allFiles, match)
				seen[match] = true
				stats.FilesScanned++
			}
		}
	}

	return allFiles, stats, nil
}

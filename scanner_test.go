package critcss

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkipFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"css file", "/tmp/styles/main.css", false},
		{"uppercase extension", "/tmp/styles/MAIN.CSS", false},
		{"scss file", "/tmp/styles/main.scss", true},
		{"html file", "/tmp/index.html", true},
		{"no extension", "/tmp/Makefile", true},
		{"css substring but wrong extension", "/tmp/main.css.bak", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldSkipFile(tt.path))
		})
	}
}

func TestScanStylesheets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "components"), 0755))

	write := func(rel, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(content), 0644))
	}
	write("base.css", "body { margin: 0; }\n")
	write("components/button.css", ".btn { color: red; }") // no trailing newline
	write("notes.txt", "not a stylesheet")

	css, stats, err := ScanStylesheets([]string{filepath.Join(dir, "**/*.css")})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesScanned)
	assert.Equal(t, 0, stats.FilesSkipped)
	assert.Contains(t, css, "body { margin: 0; }\n")
	assert.Contains(t, css, ".btn { color: red; }\n")
}

func TestScanStylesheetsSkipsNonCSS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.css"), []byte("a { color: red; }\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.scss"), []byte("$x: red;\n"), 0644))

	css, stats, err := ScanStylesheets([]string{filepath.Join(dir, "*")})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 1, stats.FilesScanned)
	assert.Equal(t, 1, stats.FilesSkipped)
	assert.Equal(t, "a { color: red; }\n", css)
}

func TestScanStylesheetsDeduplicatesAcrossPatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.css"), []byte("a { color: red; }\n"), 0644))

	pattern := filepath.Join(dir, "*.css")
	css, stats, err := ScanStylesheets([]string{pattern, pattern})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesScanned)
	assert.Equal(t, "a { color: red; }\n", css)
}

func TestScanStylesheetsNoMatches(t *testing.T) {
	dir := t.TempDir()

	css, stats, err := ScanStylesheets([]string{filepath.Join(dir, "**/*.css")})
	require.NoError(t, err)
	assert.Equal(t, "", css)
	assert.Equal(t, ScanStats{}, stats)
}

func TestScanStylesheetsBadPattern(t *testing.T) {
	_, _, err := ScanStylesheets([]string{"[unclosed"})
	assert.Error(t, err)
}

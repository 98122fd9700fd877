package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf clears global koanf state between tests.
func resetKoanf() {
	k = koanf.New(".")
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".critcss.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()
	path := writeConfigFile(t, `
verbose: true
include:
  shadows: true
  hover: true
extract:
  include:
    - "assets/**/*.css"
  minify: true
`)

	require.NoError(t, loadConfigFromPath(path))

	assert.True(t, k.Bool("verbose"))
	assert.True(t, k.Bool("include.shadows"))
	assert.True(t, k.Bool("include.hover"))
	assert.False(t, k.Bool("include.animations"))
	assert.True(t, k.Bool("extract.minify"))
	assert.Equal(t, []string{"assets/**/*.css"}, k.Strings("extract.include"))
}

func TestMissingConfigFileIsNotAnError(t *testing.T) {
	resetKoanf()
	err := loadConfigFromPath(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	assert.NoError(t, err)
}

func TestMalformedConfigFile(t *testing.T) {
	resetKoanf()
	path := writeConfigFile(t, "verbose: [unclosed")
	assert.Error(t, loadConfigFromPath(path))
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()
	path := writeConfigFile(t, `
extract:
  minify: false
`)
	t.Setenv("CRITCSS_EXTRACT_MINIFY", "true")

	require.NoError(t, loadConfigFromPath(path))
	assert.True(t, k.Bool("extract.minify"))
}

func TestEnvVarKeyMapping(t *testing.T) {
	resetKoanf()
	t.Setenv("CRITCSS_INCLUDE_SHADOWS", "true")
	t.Setenv("CRITCSS_VERBOSE", "true")

	require.NoError(t, loadConfigFromPath(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.True(t, k.Bool("include.shadows"))
	assert.True(t, k.Bool("verbose"))
}

func TestBuildOptions(t *testing.T) {
	resetKoanf()
	opts := buildOptions()
	assert.False(t, opts.IncludeShadows)
	assert.False(t, opts.IncludeAnimations)
	assert.False(t, opts.IncludeTransitions)
	assert.False(t, opts.IncludeHoverStates)

	resetKoanf()
	path := writeConfigFile(t, `
include:
  shadows: true
  transitions: true
`)
	require.NoError(t, loadConfigFromPath(path))

	opts = buildOptions()
	assert.True(t, opts.IncludeShadows)
	assert.False(t, opts.IncludeAnimations)
	assert.True(t, opts.IncludeTransitions)
	assert.False(t, opts.IncludeHoverStates)
}

func TestBuildOptionsFlagKeyTakesPrecedence(t *testing.T) {
	resetKoanf()
	require.NoError(t, k.Set("include.shadows", true))
	require.NoError(t, k.Set("include-shadows", false))

	// Flag key wins even when it disables what the file enables.
	assert.False(t, buildOptions().IncludeShadows)
}

func TestBuildLogger(t *testing.T) {
	resetKoanf()
	assert.NotNil(t, buildLogger())

	resetKoanf()
	require.NoError(t, k.Set("verbose", true))
	assert.NotNil(t, buildLogger())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()
	assert.Equal(t, "def", getStringWithFallback("out", "extract.out", "def"))

	require.NoError(t, k.Set("extract.out", "from-config"))
	assert.Equal(t, "from-config", getStringWithFallback("out", "extract.out", "def"))

	require.NoError(t, k.Set("out", "from-flag"))
	assert.Equal(t, "from-flag", getStringWithFallback("out", "extract.out", "def"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()
	assert.True(t, getBoolWithFallback("minify", "extract.minify", true))
	assert.False(t, getBoolWithFallback("minify", "extract.minify", false))

	require.NoError(t, k.Set("extract.minify", true))
	assert.True(t, getBoolWithFallback("minify", "extract.minify", false))

	require.NoError(t, k.Set("minify", false))
	assert.False(t, getBoolWithFallback("minify", "extract.minify", true))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()
	assert.Equal(t, []string{"**/*.css"}, getStringsWithFallback("include", "extract.include", []string{"**/*.css"}))

	require.NoError(t, k.Set("extract.include", []string{"a.css", "b.css"}))
	assert.Equal(t, []string{"a.css", "b.css"}, getStringsWithFallback("include", "extract.include", nil))

	require.NoError(t, k.Set("include", []string{"c.css"}))
	assert.Equal(t, []string{"c.css"}, getStringsWithFallback("include", "extract.include", nil))
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	require.NoError(t, initCmd.RunE(initCmd, nil))

	data, err := os.ReadFile(".critcss.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "extract:")
	assert.Contains(t, string(data), "combine:")

	// Second run without --force refuses to overwrite.
	err = initCmd.RunE(initCmd, nil)
	assert.Error(t, err)

	require.NoError(t, initCmd.Flags().Set("force", "true"))
	t.Cleanup(func() { _ = initCmd.Flags().Set("force", "false") })
	assert.NoError(t, initCmd.RunE(initCmd, nil))
}

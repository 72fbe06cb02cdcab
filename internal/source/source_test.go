package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIsMinified(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"web/styles/app.min.css", true},
		{"web/styles/app.css", false},
		{"web/styles/minimal.css", false},
		{"app.min.css.map", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.expected, isMinified(tt.path), "isMinified(%q)", tt.path)
		})
	}
}

func TestShouldSkip(t *testing.T) {
	dir := t.TempDir()
	ignoreFile := filepath.Join(dir, ".gitignore")
	writeFile(t, ignoreFile, "dist/\n*.generated.css\n")

	d := NewDiscoverer(ignoreFile, false)

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"minified", "web/app.min.css", true},
		{"ignored directory", "dist/app.css", true},
		{"ignored pattern", "web/theme.generated.css", true},
		{"regular file", "web/app.css", false},
		{"absolute paths bypass gitignore", "/tmp/dist/app.css", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, d.shouldSkip(tt.path), "shouldSkip(%q)", tt.path)
		})
	}
}

func TestShouldSkip_MissingIgnoreFile(t *testing.T) {
	d := NewDiscoverer(filepath.Join(t.TempDir(), "missing"), true)
	assert.False(t, d.shouldSkip("dist/app.css"))
	assert.False(t, d.shouldSkip("web/app.min.css"))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.css"), "body { margin: 0; }")
	writeFile(t, filepath.Join(dir, "components", "btn.css"), ".btn { color: red; }")
	writeFile(t, filepath.Join(dir, "components", "card.css"), ".card { padding: 0; }")
	writeFile(t, filepath.Join(dir, "vendor.min.css"), "a{b:c}")

	d := NewDiscoverer("", false)
	files, stats, err := d.Discover([]string{
		filepath.Join(dir, "**", "*.css"),
		filepath.Join(dir, "base.css"), // duplicate
	})
	require.NoError(t, err)

	assert.Len(t, files, 3)
	for _, f := range files {
		assert.False(t, strings.HasSuffix(f, ".min.css"), "minified file selected: %s", f)
	}
	assert.Equal(t, Stats{Discovered: 4, Selected: 3, Skipped: 1}, stats)
}

func TestDiscover_ExplicitFileIsNeverFiltered(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendor.min.css")
	writeFile(t, path, "a{b:c}")

	files, _, err := NewDiscoverer("", false).Discover([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestDiscover_MissingExplicitFile(t *testing.T) {
	_, _, err := NewDiscoverer("", false).Discover([]string{filepath.Join(t.TempDir(), "nope.css")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDiscover_Stdin(t *testing.T) {
	files, stats, err := NewDiscoverer("", false).Discover([]string{StdinPath, StdinPath})
	require.NoError(t, err)
	assert.Equal(t, []string{StdinPath}, files)
	assert.Equal(t, 1, stats.Selected)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.css")
	writeFile(t, path, "a { b: c; }")

	got, err := ReadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "a { b: c; }", got)

	got, err = ReadFile(StdinPath, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.css"), nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/mcplog"
)

// run executes the CLI in a clean working directory and returns its
// combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	return runHere(t, args...)
}

// runHere executes the CLI in the current working directory.
func runHere(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeCatalogDir writes a one-fragment catalog and returns its directory.
func writeCatalogDir(t *testing.T, docs []catalog.Document) string {
	t.Helper()
	dir := t.TempDir()

	manifest := catalog.Manifest{Name: "test", Version: "1", DefaultID: docs[0].ID}
	data, err := json.Marshal(manifest)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, catalog.ManifestFile), data, 0o644))

	data, err = json.Marshal(map[string]any{"documents": docs})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs.json"), data, 0o644))
	return dir
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rndocs dev\n", out)
}

func TestNavCmd(t *testing.T) {
	t.Run("default expands the active category", func(t *testing.T) {
		out, err := run(t, "nav")
		require.NoError(t, err)
		assert.Contains(t, out, "▾ Basic UI (8)")
		assert.Contains(t, out, "● Text")
		assert.Contains(t, out, "▸ Lists (2)")
		assert.NotContains(t, out, "FlatList")
	})

	t.Run("filter", func(t *testing.T) {
		out, err := run(t, "nav", "textin")
		require.NoError(t, err)
		assert.Contains(t, out, "▾ User Input (1)")
		assert.Contains(t, out, "TextInput")
		assert.NotContains(t, out, "Basic UI")
	})

	t.Run("no match", func(t *testing.T) {
		out, err := run(t, "nav", "zzzz")
		require.NoError(t, err)
		assert.Contains(t, out, "No components found")
	})

	t.Run("expand all", func(t *testing.T) {
		out, err := run(t, "nav", "--all")
		require.NoError(t, err)
		assert.Contains(t, out, "FlatList")
		assert.NotContains(t, out, "▸")
	})
}

func TestShowCmd(t *testing.T) {
	t.Run("selected props", func(t *testing.T) {
		out, err := run(t, "show", "textinput", "--props", "onChangeText,value")
		require.NoError(t, err)
		assert.Contains(t, out, "TextInput")
		assert.Contains(t, out, "Props (2 of 7)")
		assert.Contains(t, out, "onChangeText")
		assert.NotContains(t, out, "secureTextEntry")
	})

	t.Run("short query shows the first page", func(t *testing.T) {
		out, err := run(t, "show", "view", "-q", "x")
		require.NoError(t, err)
		assert.Contains(t, out, "Props (20 of 64)")
	})

	t.Run("unknown id falls back", func(t *testing.T) {
		out, err := run(t, "show", "nope")
		require.NoError(t, err)
		assert.Contains(t, out, `no component "nope", showing text`)
		assert.Contains(t, out, "Props (51 of 51)")
	})
}

func TestSearchCmd(t *testing.T) {
	out, err := run(t, "search", "flatlist")
	require.NoError(t, err)
	assert.Contains(t, out, "flatlist")
	assert.Contains(t, out, "name")

	out, err = run(t, "search", "zzzzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No components found")
}

func TestExportCmd(t *testing.T) {
	out, err := run(t, "export", "textinput")
	require.NoError(t, err)
	assert.Contains(t, out, "# TextInput")

	out, err = run(t, "export", "textinput", "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>TextInput</h1>")

	_, err = run(t, "export", "textinput", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExportCmd_File(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := runHere(t, "export", "flatlist", "-o", "flatlist.md")
	require.NoError(t, err)

	data, err := os.ReadFile("flatlist.md")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# FlatList")
}

func TestCatalogDirAndDefaultID(t *testing.T) {
	dir := writeCatalogDir(t, []catalog.Document{
		{ID: "alpha", Name: "Alpha", Category: "Basic UI"},
		{ID: "beta", Name: "Beta", Category: "Lists"},
	})

	out, err := run(t, "show", "missing", "--catalog-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "showing alpha")

	out, err = run(t, "show", "missing", "--catalog-dir", dir, "--default-id", "beta")
	require.NoError(t, err)
	assert.Contains(t, out, "showing beta")
}

func TestLintCmd(t *testing.T) {
	t.Run("embedded catalog loads", func(t *testing.T) {
		out, err := run(t, "lint")
		assert.Contains(t, out, "documents")
		if err != nil {
			assert.ErrorIs(t, err, errLintFailed)
		}
	})

	t.Run("clean", func(t *testing.T) {
		dir := writeCatalogDir(t, []catalog.Document{{
			ID: "view", Name: "View", Category: "Basic UI",
			BasicUsage: []catalog.CodeExample{
				{Code: "<View style={{ flex: 1 }} />", Language: "jsx"},
				{Code: "npx expo install expo-image", Language: "bash"},
			},
		}})
		out, err := run(t, "lint", "--catalog-dir", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "1 documents, 1 examples parsed, 1 skipped, 0 issues, 0 warnings")
		assert.Contains(t, out, "✓ catalog ok")
	})

	t.Run("broken example", func(t *testing.T) {
		dir := writeCatalogDir(t, []catalog.Document{{
			ID: "view", Name: "View", Category: "Basic UI",
			BasicUsage: []catalog.CodeExample{{Code: "<View style={() =>}>", Language: "jsx"}},
		}})
		out, err := run(t, "lint", "--catalog-dir", dir)
		require.ErrorIs(t, err, errLintFailed)
		assert.Contains(t, out, "✗ view basic_usage[0] (jsx)")
	})

	t.Run("unlisted category", func(t *testing.T) {
		dir := writeCatalogDir(t, []catalog.Document{
			{ID: "view", Name: "View", Category: "Basic UI"},
			{ID: "odd", Name: "Odd", Category: "Miscellany"},
		})
		out, err := run(t, "lint", "--catalog-dir", dir)
		require.NoError(t, err)
		assert.Contains(t, out, `category "Miscellany" is not in the sidebar order`)

		_, err = run(t, "lint", "--catalog-dir", dir, "--strict")
		assert.ErrorIs(t, err, errLintFailed)
	})

	t.Run("invalid catalog", func(t *testing.T) {
		dir := writeCatalogDir(t, []catalog.Document{{ID: "view", Name: "View"}})
		out, err := run(t, "lint", "--catalog-dir", dir)
		require.ErrorIs(t, err, errLintFailed)
		assert.Contains(t, out, "category is required")
	})

	t.Run("watch needs a directory", func(t *testing.T) {
		_, err := run(t, "lint", "--watch")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--catalog-dir")
	})
}

func TestInitCmd(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runHere(t, "init", "--cache-size", "32", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote .rndocs/config.yaml")

	cfg, used, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, configPath(), used)
	assert.Equal(t, 32, cfg.CacheSize)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = runHere(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runHere(t, "init", "--force")
	assert.NoError(t, err)
}

func TestInitCmd_ExplicitPath(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runHere(t, "init", "--config", "custom.yaml")
	require.NoError(t, err)
	_, err = os.Stat("custom.yaml")
	assert.NoError(t, err)
}

func TestStatsCmd(t *testing.T) {
	t.Chdir(t.TempDir())

	f, err := os.Create("calls.jsonl")
	require.NoError(t, err)
	l := mcplog.NewWriterLogger(f)
	require.NoError(t, l.Write(mcplog.LogEntry{Tool: "get_document", DurationMs: 4, ResponseBytes: 100}))
	require.NoError(t, l.Write(mcplog.LogEntry{Tool: "get_document", DurationMs: 6, ResponseBytes: 100}))
	require.NoError(t, l.Write(mcplog.LogEntry{Tool: "filter_props", DurationMs: 1, ToolError: true}))
	require.NoError(t, f.Close())

	out, err := runHere(t, "mcp-stats", "calls.jsonl")
	require.NoError(t, err)
	assert.Contains(t, out, "get_document")
	assert.Contains(t, out, "5.0")
	assert.Contains(t, out, "Total")

	_, err = runHere(t, "mcp-stats")
	require.Error(t, err)
}

package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/rndocs/catalogs"
	"github.com/gnana997/rndocs/pkg/util"
)

const (
	basicFragment = `{"documents":[
		{"id":"view","name":"View","category":"Basic UI","description":"Container","props":[]},
		{"id":"text","name":"Text","category":"Basic UI","description":"Displays text","props":[]}
	]}`
	listsFragment = `{"documents":[
		{"id":"flatlist","name":"FlatList","category":"Lists","description":"Flat lists","props":[]}
	]}`
)

func TestLoadFromFS_SortedWithoutManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"b-lists.json":     {Data: []byte(listsFragment)},
		"a-basic-ui.json":  {Data: []byte(basicFragment)},
		"notes/readme.txt": {Data: []byte("ignored")},
	}

	cat, idx, err := LoadFromFS(fsys, "")
	require.NoError(t, err)

	assert.Equal(t, "untitled", cat.Name)
	require.Len(t, cat.Documents, 3)
	assert.Equal(t, "view", cat.Documents[0].ID)
	assert.Equal(t, "flatlist", cat.Documents[2].ID)
	assert.Equal(t, []string{"Basic UI", "Lists"}, idx.Categories)
}

func TestLoadFromFS_ManifestOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog.json": {Data: []byte(`{"name":"rn","version":"1","default_id":"text","fragments":["lists.json","basic.json"]}`)},
		"basic.json":   {Data: []byte(basicFragment)},
		"lists.json":   {Data: []byte(listsFragment)},
	}

	cat, _, err := LoadFromFS(fsys, "")
	require.NoError(t, err)

	assert.Equal(t, "rn", cat.Name)
	assert.Equal(t, "text", cat.DefaultID)
	require.Len(t, cat.Documents, 3)
	assert.Equal(t, "flatlist", cat.Documents[0].ID)
}

func TestLoadFromFS_DuplicateAcrossFragments(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(basicFragment)},
		"b.json": {Data: []byte(basicFragment)},
	}

	_, _, err := LoadFromFS(fsys, "*.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestLoadFromFS_BadFragment(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"documents":[`)},
	}

	_, _, err := LoadFromFS(fsys, "*.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse fragment a.json")
}

func TestLoadFromFS_NoMatches(t *testing.T) {
	_, _, err := LoadFromFS(fstest.MapFS{}, "*.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog fragments match")
}

func TestFragmentPaths_InvalidPattern(t *testing.T) {
	_, err := FragmentPaths(fstest.MapFS{}, "[", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fragment pattern")
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "core"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "core", "basic.json"), []byte(basicFragment), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lists.json"), []byte(listsFragment), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(`{"name":"disk","version":"2"}`), 0644))

	cat, idx, err := LoadFromDir(dir, "**/*.json", util.DiscardLogger())
	require.NoError(t, err)

	assert.Equal(t, "disk", cat.Name)
	assert.Len(t, idx.DocumentByID, 3)
	// Sorted: core/basic.json before lists.json.
	assert.Equal(t, "view", cat.Documents[0].ID)
}

func TestLoadFromDir_Missing(t *testing.T) {
	_, _, err := LoadFromDir(filepath.Join(t.TempDir(), "missing"), "", util.DiscardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open catalog directory")
}

func TestEmbeddedCatalog(t *testing.T) {
	sub, err := fs.Sub(catalogs.ReactNative, catalogs.ReactNativeRoot)
	require.NoError(t, err)

	cat, idx, err := LoadFromFS(sub, "")
	require.NoError(t, err)

	assert.Equal(t, "text", cat.DefaultID)
	assert.NotEmpty(t, cat.Documents)

	textInput, ok := idx.DocumentByID["textinput"]
	require.True(t, ok)
	assert.Equal(t, "User Input", textInput.Category)
	assert.Equal(t, "value", textInput.Props[0].Name)
	assert.Equal(t, "onChangeText", textInput.Props[1].Name)
}

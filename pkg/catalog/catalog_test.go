package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func minimalValidCatalog() *Catalog {
	return &Catalog{
		Name:      "test",
		Version:   "1.0",
		DefaultID: "text",
		Documents: []Document{
			{
				ID:          "view",
				Name:        "View",
				Category:    "Basic UI",
				Description: "The most fundamental component for building a UI.",
				Props: []Prop{
					{Name: "style", Type: "ViewStyle", Description: "Styles for the view."},
				},
			},
			{
				ID:          "text",
				Name:        "Text",
				Category:    "Basic UI",
				Description: "A component for displaying text.",
				Props: []Prop{
					{Name: "numberOfLines", Type: "number", Description: "Truncate after this many lines."},
					{
						Name:        "selectable",
						Type:        "boolean",
						Description: "Lets the user select text.",
						Platform:    PlatformAndroid,
						Examples:    []CodeExample{{Code: "<Text selectable />", Language: "jsx"}},
					},
				},
			},
			{
				ID:           "flatlist",
				Name:         "FlatList",
				Category:     "Lists",
				Description:  "A performant interface for rendering basic, flat lists.",
				Installation: &Installation{Type: "built-in"},
			},
		},
	}
}

func writeTempCatalog(t *testing.T, catalog *Catalog) string {
	t.Helper()
	data, err := json.Marshal(catalog)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// --- Validate ---

func TestValidate_MinimalValid(t *testing.T) {
	errs := minimalValidCatalog().Validate()
	assert.Empty(t, errs)
}

func TestValidate_MissingNameAndVersion(t *testing.T) {
	c := minimalValidCatalog()
	c.Name = ""
	c.Version = ""
	errs := c.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "catalog name is required")
	assert.Contains(t, errs[1].Error(), "catalog version is required")
}

func TestValidate_DuplicateDocumentID(t *testing.T) {
	c := minimalValidCatalog()
	c.Documents = append(c.Documents, Document{ID: "view", Name: "View again", Category: "Basic UI"})
	errs := c.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `document "view": duplicate id`)
}

func TestValidate_DuplicatePropName(t *testing.T) {
	c := minimalValidCatalog()
	c.Documents[1].Props = append(c.Documents[1].Props, Prop{Name: "selectable", Type: "boolean"})
	errs := c.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `duplicate prop "selectable"`)
}

func TestValidate_PropFields(t *testing.T) {
	c := minimalValidCatalog()
	c.Documents[0].Props = []Prop{
		{Name: "", Type: "string"},
		{Name: "a", Type: ""},
		{Name: "b", Type: "string", Platform: "Windows"},
	}
	errs := c.Validate()
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "name is required")
	assert.Contains(t, errs[1].Error(), "type is required")
	assert.Contains(t, errs[2].Error(), `invalid platform "Windows"`)
}

func TestValidate_Examples(t *testing.T) {
	c := minimalValidCatalog()
	c.Documents[0].BasicUsage = []CodeExample{
		{Code: "", Language: "jsx"},
		{Code: "<View />", Language: "python"},
	}
	errs := c.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "code is required")
	assert.Contains(t, errs[1].Error(), `invalid language "python"`)
}

func TestValidate_InstallationType(t *testing.T) {
	c := minimalValidCatalog()
	c.Documents[2].Installation = &Installation{Type: "yarn"}
	errs := c.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `invalid installation type "yarn"`)
}

func TestValidate_UnknownDefaultID(t *testing.T) {
	c := minimalValidCatalog()
	c.DefaultID = "missing"
	errs := c.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `default_id "missing"`)
}

func TestValidate_MissingIDSkipsDocument(t *testing.T) {
	c := minimalValidCatalog()
	c.Documents = append(c.Documents, Document{Name: "Anonymous"})
	errs := c.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "documents[3]: id is required")
}

// --- BuildIndex ---

func TestBuildIndex(t *testing.T) {
	c := minimalValidCatalog()
	idx := c.BuildIndex()

	require.Len(t, idx.DocumentByID, 3)
	assert.Same(t, &c.Documents[1], idx.DocumentByID["text"])

	assert.Equal(t, []string{"Basic UI", "Lists"}, idx.Categories)
	require.Len(t, idx.DocumentsByCategory["Basic UI"], 2)
	assert.Equal(t, "view", idx.DocumentsByCategory["Basic UI"][0].ID)
	assert.Equal(t, "text", idx.DocumentsByCategory["Basic UI"][1].ID)
}

// --- Load ---

func TestLoadFromFile(t *testing.T) {
	path := writeTempCatalog(t, minimalValidCatalog())

	cat, idx, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test", cat.Name)
	assert.Len(t, idx.DocumentByID, 3)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}

func TestLoadFromBytes_InvalidJSON(t *testing.T) {
	_, _, err := LoadFromBytes([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog JSON")
}

func TestLoadFromBytes_ValidationFailure(t *testing.T) {
	c := minimalValidCatalog()
	c.Documents[1].ID = "view"
	data, err := json.Marshal(c)
	require.NoError(t, err)

	_, _, err = LoadFromBytes(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed")
	assert.Contains(t, err.Error(), "duplicate id")
}

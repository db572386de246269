package render

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/rndocs/pkg/appstate"
	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/navigation"
)

func sampleDocument() *catalog.Document {
	return &catalog.Document{
		ID:          "textinput",
		Name:        "TextInput",
		Category:    "User Input",
		Description: "A foundational component for inputting text.",
		ImportCode:  "import { TextInput } from 'react-native';",
		Purpose:     []string{"Collect text"},
		BasicUsage:  []catalog.CodeExample{{Title: "Basic", Code: "<TextInput />", Language: "jsx"}},
		Props: []catalog.Prop{
			{Name: "value", Type: "string", Description: "The value to show."},
			{
				Name: "clearButtonMode", Type: "'never' | 'always'", Default: "never",
				Description: "Shows a clear button.", Platform: catalog.PlatformIOS,
				Examples: []catalog.CodeExample{{Code: `<TextInput clearButtonMode="always" />`, Language: "jsx"}},
			},
		},
		Styles:       []catalog.StyleGroup{{Category: "Text", Properties: []string{"color", "fontSize"}}},
		Notes:        []string{"Controlled inputs re-render on every keystroke."},
		Installation: &catalog.Installation{Type: "built-in"},
	}
}

func TestNav(t *testing.T) {
	docs := []catalog.Document{
		{ID: "view", Name: "View", Category: "Basic UI"},
		{ID: "text", Name: "Text", Category: "Basic UI"},
		{ID: "flatlist", Name: "FlatList", Category: "Lists"},
	}
	sidebar := navigation.NewSidebar(docs, nil)
	sidebar.SetActive("text")

	var buf bytes.Buffer
	Nav(&buf, sidebar.Visible(), "text", NewStyles(appstate.ThemeLight))
	out := buf.String()

	assert.Contains(t, out, "▾ Basic UI (2)")
	assert.Contains(t, out, "● Text")
	assert.Contains(t, out, "▸ Lists (1)")
	assert.NotContains(t, out, "FlatList", "collapsed section hides documents")
}

func TestNav_Empty(t *testing.T) {
	var buf bytes.Buffer
	Nav(&buf, nil, "", NewStyles(appstate.ThemeDark))
	assert.Contains(t, buf.String(), navigation.EmptyMessage)
}

func TestDocument(t *testing.T) {
	doc := sampleDocument()

	var buf bytes.Buffer
	Document(&buf, doc, DocumentOptions{Examples: true}, NewStyles(appstate.ThemeLight))
	out := buf.String()

	assert.Contains(t, out, "TextInput")
	assert.Contains(t, out, "Built-in, no installation needed")
	assert.Contains(t, out, "import { TextInput } from 'react-native';")
	assert.Contains(t, out, "Props (2 of 2)")
	assert.Contains(t, out, "clearButtonMode")
	assert.Contains(t, out, "[iOS]")
	assert.Contains(t, out, `clearButtonMode="always"`)
	assert.Contains(t, out, "color, fontSize")
	assert.Contains(t, out, "Controlled inputs")
}

func TestDocument_FilteredProps(t *testing.T) {
	doc := sampleDocument()

	var buf bytes.Buffer
	Document(&buf, doc, DocumentOptions{
		Props:    doc.Props[:1],
		Query:    "val",
		Selected: []string{"value"},
		Pending:  true,
	}, NewStyles(appstate.ThemeLight))
	out := buf.String()

	assert.Contains(t, out, `Props (1 of 2) matching "val" selected: value (updating…)`)
	assert.NotContains(t, out, "clearButtonMode")
	assert.NotContains(t, out, "<TextInput />", "examples hidden by default")
}

func TestDocument_NoMatches(t *testing.T) {
	var buf bytes.Buffer
	Document(&buf, sampleDocument(), DocumentOptions{Props: []catalog.Prop{}}, NewStyles(appstate.ThemeLight))
	assert.Contains(t, buf.String(), "No props match")
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, sampleDocument(), nil))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# TextInput\n"))
	assert.Contains(t, out, "```jsx\n<TextInput />\n```")
	assert.Contains(t, out, "| `clearButtonMode` | 'never' \\| 'always' | never | iOS | Shows a clear button. |")
	assert.Contains(t, out, "- **Text**: color, fontSize")
	assert.Contains(t, out, "> Controlled inputs")
	assert.NotContains(t, out, "## Installation", "built-in documents have no install step")
}

func TestMarkdown_NPMInstall(t *testing.T) {
	doc := sampleDocument()
	doc.Installation = &catalog.Installation{Type: "npm", Package: "expo-camera", Command: "npx expo install expo-camera"}

	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, doc, []catalog.Prop{}))
	out := buf.String()

	assert.Contains(t, out, "```bash\nnpx expo install expo-camera\n```")
	assert.NotContains(t, out, "## Props")
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, sampleDocument(), nil))
	out := buf.String()

	assert.Contains(t, out, "<h1>TextInput</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<code>clearButtonMode</code>")
	assert.Contains(t, out, `<code class="language-jsx">`)
}

func TestCopy(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	var copied string
	ok := Copy(func(text string) error { copied = text; return nil }, "<View />", logger)
	assert.True(t, ok)
	assert.Equal(t, "<View />", copied)

	ok = Copy(func(string) error { return errors.New("clipboard unavailable") }, "x", logger)
	assert.False(t, ok)
	assert.Contains(t, logs.String(), "clipboard unavailable")

	assert.False(t, Copy(nil, "x", logger))
	assert.NotPanics(t, func() { Copy(func(string) error { return errors.New("x") }, "x", nil) })
}

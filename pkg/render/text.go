package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/navigation"
)

// Nav writes the sidebar: each section header, and its documents when
// expanded. The active document is marked.
func Nav(w io.Writer, sections []navigation.Section, active string, st Styles) {
	if len(sections) == 0 {
		_, _ = fmt.Fprintln(w, st.Muted.Render(navigation.EmptyMessage))
		return
	}

	for _, s := range sections {
		marker := "▸"
		if s.Expanded {
			marker = "▾"
		}
		header := fmt.Sprintf("%s %s (%d)", marker, s.Category, len(s.Documents))
		_, _ = fmt.Fprintln(w, st.Category.Render(header))
		if !s.Expanded {
			continue
		}
		for _, doc := range s.Documents {
			line := doc.Name + "  " + st.Muted.Render(doc.ID)
			if doc.ID == active {
				line = st.Active.Render("● "+doc.Name) + "  " + st.Muted.Render(doc.ID)
			}
			_, _ = fmt.Fprintln(w, st.Item.Render(line))
		}
	}
}

// DocumentOptions controls what Document prints.
type DocumentOptions struct {
	// Props is the prop list to show; nil means the document's own props.
	Props []catalog.Prop
	// Query and Selected describe the active prop filter, if any.
	Query    string
	Selected []string
	// Pending marks a search that has not been applied yet.
	Pending  bool
	Examples bool
}

// Document writes doc for a terminal.
func Document(w io.Writer, doc *catalog.Document, opts DocumentOptions, st Styles) {
	_, _ = fmt.Fprintln(w, st.Title.Render(doc.Name)+"  "+st.Muted.Render(doc.Category))
	if doc.Description != "" {
		_, _ = fmt.Fprintln(w, doc.Description)
	}

	if inst := doc.Installation; inst != nil {
		if inst.IsBuiltIn() {
			_, _ = fmt.Fprintln(w, st.Muted.Render("Built-in, no installation needed"))
		} else if inst.Command != "" {
			_, _ = fmt.Fprintln(w, st.Muted.Render("Install: ")+inst.Command)
		}
	}

	if doc.ImportCode != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, st.Code.Render(doc.ImportCode))
	}

	if len(doc.Purpose) > 0 {
		section(w, "Purpose", st)
		for _, p := range doc.Purpose {
			_, _ = fmt.Fprintln(w, "  • "+p)
		}
	}

	if opts.Examples {
		for _, ex := range doc.BasicUsage {
			title := ex.Title
			if title == "" {
				title = "Usage"
			}
			section(w, title, st)
			_, _ = fmt.Fprintln(w, st.Code.Render(ex.Code))
		}
	}

	props := opts.Props
	if props == nil {
		props = doc.Props
	}
	section(w, propsHeading(len(props), len(doc.Props), opts), st)
	if len(props) == 0 {
		_, _ = fmt.Fprintln(w, st.Muted.Render("  No props match"))
	} else {
		PropTable(w, props, st)
	}

	if opts.Examples {
		for _, p := range props {
			for _, ex := range p.Examples {
				section(w, p.Name+": "+exampleTitle(ex), st)
				_, _ = fmt.Fprintln(w, st.Code.Render(ex.Code))
			}
		}
	}

	if len(doc.Styles) > 0 {
		section(w, "Styles", st)
		for _, g := range doc.Styles {
			_, _ = fmt.Fprintf(w, "  %s: %s\n", st.Category.Render(g.Category), strings.Join(g.Properties, ", "))
		}
	}

	if len(doc.Notes) > 0 {
		section(w, "Notes", st)
		for _, n := range doc.Notes {
			_, _ = fmt.Fprintln(w, st.Warning.Render("  ! ")+n)
		}
	}
}

func section(w io.Writer, title string, st Styles) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, st.Category.Render(title))
}

func propsHeading(shown, total int, opts DocumentOptions) string {
	heading := fmt.Sprintf("Props (%d of %d)", shown, total)
	if opts.Query != "" {
		heading += fmt.Sprintf(" matching %q", opts.Query)
	}
	if len(opts.Selected) > 0 {
		heading += " selected: " + strings.Join(opts.Selected, ", ")
	}
	if opts.Pending {
		heading += " (updating…)"
	}
	return heading
}

func exampleTitle(ex catalog.CodeExample) string {
	if ex.Title != "" {
		return ex.Title
	}
	return "Example"
}

// PropTable writes props as a table.
func PropTable(w io.Writer, props []catalog.Prop, st Styles) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Type", "Default", "Platform", "Description"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 30},
		{Number: 5, WidthMax: 60},
	})

	for _, p := range props {
		name := p.Name
		if p.Required {
			name += "*"
		}
		t.AppendRow(table.Row{name, p.Type, p.Default, st.badge(p.Platform), p.Description})
	}
	t.Render()
}

package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/gnana997/rndocs/pkg/catalog"
)

// Markdown writes doc as a Markdown page. props, when non-nil, replaces the
// document's prop list.
func Markdown(w io.Writer, doc *catalog.Document, props []catalog.Prop) error {
	if props == nil {
		props = doc.Props
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Name)
	fmt.Fprintf(&b, "_%s_\n\n", doc.Category)
	if doc.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", doc.Description)
	}

	if inst := doc.Installation; inst != nil && !inst.IsBuiltIn() && inst.Command != "" {
		b.WriteString("## Installation\n\n")
		fence(&b, "bash", inst.Command)
	}

	if doc.ImportCode != "" {
		b.WriteString("## Import\n\n")
		fence(&b, "js", doc.ImportCode)
	}

	if len(doc.Purpose) > 0 {
		b.WriteString("## Purpose\n\n")
		for _, p := range doc.Purpose {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	if len(doc.BasicUsage) > 0 {
		b.WriteString("## Usage\n\n")
		for _, ex := range doc.BasicUsage {
			if ex.Title != "" {
				fmt.Fprintf(&b, "### %s\n\n", ex.Title)
			}
			fence(&b, ex.Language, ex.Code)
		}
	}

	if len(props) > 0 {
		b.WriteString("## Props\n\n")
		b.WriteString("| Name | Type | Default | Platform | Description |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, p := range props {
			name := "`" + p.Name + "`"
			if p.Required {
				name += " (required)"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				name, cell(p.Type), cell(p.Default), cell(string(p.Platform)), cell(p.Description))
		}
		b.WriteString("\n")

		for _, p := range props {
			for _, ex := range p.Examples {
				fmt.Fprintf(&b, "### %s: %s\n\n", p.Name, exampleTitle(ex))
				fence(&b, ex.Language, ex.Code)
			}
		}
	}

	if len(doc.Styles) > 0 {
		b.WriteString("## Styles\n\n")
		for _, g := range doc.Styles {
			fmt.Fprintf(&b, "- **%s**: %s\n", g.Category, strings.Join(g.Properties, ", "))
		}
		b.WriteString("\n")
	}

	if len(doc.Notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, n := range doc.Notes {
			fmt.Fprintf(&b, "> %s\n\n", n)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fence(b *strings.Builder, lang, code string) {
	fmt.Fprintf(b, "```%s\n%s\n```\n\n", lang, strings.TrimRight(code, "\n"))
}

// cell escapes a value for a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// HTML writes doc as an HTML fragment converted from its Markdown form.
func HTML(w io.Writer, doc *catalog.Document, props []catalog.Prop) error {
	var md bytes.Buffer
	if err := Markdown(&md, doc, props); err != nil {
		return err
	}

	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := gm.Convert(md.Bytes(), w); err != nil {
		return fmt.Errorf("failed to convert %s to HTML: %w", doc.ID, err)
	}
	return nil
}

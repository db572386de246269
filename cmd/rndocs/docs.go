package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/gnana997/rndocs/pkg/appstate"
	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/navigation"
	"github.com/gnana997/rndocs/pkg/render"
	"github.com/gnana997/rndocs/pkg/service"
)

func newNavCmd(rt *runtime) *cobra.Command {
	var expandAll bool

	cmd := &cobra.Command{
		Use:   "nav [query]",
		Short: "Show the component sidebar, optionally filtered by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := rt.queryService()
			if err != nil {
				return err
			}

			sb := navigation.NewSidebar(qs.Documents(), nil)
			if doc := qs.Resolve(""); doc != nil {
				sb.SetActive(doc.ID)
			}
			if expandAll {
				for _, g := range sb.Groups() {
					if !sb.Expanded(g.Category) {
						sb.Toggle(g.Category)
					}
				}
			}
			if len(args) == 1 {
				sb.SetQuery(args[0])
			}

			render.Nav(cmd.OutOrStdout(), sb.Visible(), sb.Active(), render.NewStyles(appstate.ThemeLight))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&expandAll, "all", "a", false, "expand every category")
	return cmd
}

func newShowCmd(rt *runtime) *cobra.Command {
	var (
		query    string
		selected []string
		examples bool
		dark     bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a component's reference page",
		Long: `Show a component's reference page.

Unknown ids fall back to the default component. --query filters props by
name, description and type once it is at least two characters long; --props
keeps only the named props.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := rt.queryService()
			if err != nil {
				return err
			}
			cache, err := rt.propCache()
			if err != nil {
				return err
			}
			svc := service.New(qs, cache)

			doc, err := svc.Document(args[0], examples)
			if err != nil {
				return err
			}
			if doc.Fallback {
				fmt.Fprintf(cmd.ErrOrStderr(), "no component %q, showing %s\n", args[0], doc.Document.ID)
			}
			props, err := svc.FilterProps(doc.Document.ID, query, selected)
			if err != nil {
				return err
			}

			theme := appstate.ThemeLight
			if dark {
				theme = appstate.ThemeDark
			}
			render.Document(cmd.OutOrStdout(), doc.Document, render.DocumentOptions{
				Props:    props.Props,
				Query:    strings.TrimSpace(query),
				Selected: props.Selected,
				Examples: examples,
			}, render.NewStyles(theme))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "filter props by name, description or type")
	cmd.Flags().StringSliceVarP(&selected, "props", "p", nil, "only show these props (comma separated)")
	cmd.Flags().BoolVarP(&examples, "examples", "e", false, "include usage and prop examples")
	cmd.Flags().BoolVar(&dark, "dark", false, "use the dark palette")
	return cmd
}

func newSearchCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search component names, descriptions and props",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := rt.queryService()
			if err != nil {
				return err
			}
			hits := service.New(qs, nil).Search(strings.Join(args, " "))
			printHits(cmd.OutOrStdout(), hits)
			return nil
		},
	}
}

func printHits(w io.Writer, hits []service.SearchHit) {
	if len(hits) == 0 {
		_, _ = fmt.Fprintln(w, navigation.EmptyMessage)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Category", "Match"})
	for _, h := range hits {
		t.AppendRow(table.Row{h.ID, h.Name, h.Category, h.MatchReason})
	}
	t.Render()
}

func newExportCmd(rt *runtime) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a component page as Markdown or HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, err := exporter(format)
			if err != nil {
				return err
			}

			qs, err := rt.queryService()
			if err != nil {
				return err
			}
			resp, err := service.New(qs, nil).Document(args[0], true)
			if err != nil {
				return err
			}
			if resp.Fallback {
				rt.logger.Warn("unknown component, exporting default", "id", args[0], "default", resp.Document.ID)
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return write(w, resp.Document, nil)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format (md|html)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"md", "html"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func exporter(format string) (func(io.Writer, *catalog.Document, []catalog.Prop) error, error) {
	switch strings.ToLower(format) {
	case "md", "markdown":
		return render.Markdown, nil
	case "html":
		return render.HTML, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want md or html)", format)
	}
}

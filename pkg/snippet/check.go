package snippet

import (
	"context"
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/gnana997/rndocs/pkg/catalog"
)

// Example is one code example located in the catalog.
type Example struct {
	DocumentID string
	Location   string // e.g. "basic_usage[0]" or "props.style.examples[1]"
	catalog.CodeExample
}

// Issue is an example whose parse tree contains errors.
type Issue struct {
	DocumentID string `json:"document_id"`
	Location   string `json:"location"`
	Language   string `json:"language"`
	Title      string `json:"title,omitempty"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s (%s) line %d col %d", i.DocumentID, i.Location, i.Language, i.Line, i.Column)
}

// Examples lists every code example in cat, in catalog order.
func Examples(cat *catalog.Catalog) []Example {
	var out []Example
	for _, doc := range cat.Documents {
		for i, ex := range doc.BasicUsage {
			out = append(out, Example{DocumentID: doc.ID, Location: fmt.Sprintf("basic_usage[%d]", i), CodeExample: ex})
		}
		for _, p := range doc.Props {
			for i, ex := range p.Examples {
				out = append(out, Example{DocumentID: doc.ID, Location: fmt.Sprintf("props.%s.examples[%d]", p.Name, i), CodeExample: ex})
			}
		}
	}
	return out
}

// Result summarizes a Check run.
type Result struct {
	Checked int
	Skipped int
	Issues  []Issue
}

// Check parses every example in cat concurrently. Examples without a
// grammar are skipped. Issues come back in catalog order.
func (m *Manager) Check(ctx context.Context, cat *catalog.Catalog) (Result, error) {
	examples := Examples(cat)
	issues := make([]*Issue, len(examples))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.poolSize)

	var res Result
	for i, ex := range examples {
		grammar := GrammarFor(ex.Language)
		if grammar == GrammarNone {
			res.Skipped++
			continue
		}
		res.Checked++

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			issue, err := m.checkOne(ex, grammar)
			if err != nil {
				return fmt.Errorf("%s %s: %w", ex.DocumentID, ex.Location, err)
			}
			issues[i] = issue
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	for _, issue := range issues {
		if issue != nil {
			res.Issues = append(res.Issues, *issue)
		}
	}
	m.logger.Debug("snippet check finished", "checked", res.Checked, "skipped", res.Skipped, "issues", len(res.Issues))
	return res, nil
}

func (m *Manager) checkOne(ex Example, grammar Grammar) (*Issue, error) {
	tree, err := m.Parse([]byte(ex.Code), grammar)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	pos := firstError(root).StartPosition()
	return &Issue{
		DocumentID: ex.DocumentID,
		Location:   ex.Location,
		Language:   ex.Language,
		Title:      ex.Title,
		Line:       int(pos.Row) + 1,
		Column:     int(pos.Column) + 1,
	}, nil
}

// firstError returns the earliest ERROR or MISSING node below n, or n
// itself when none is found.
func firstError(n *ts.Node) *ts.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		return firstError(child)
	}
	return n
}

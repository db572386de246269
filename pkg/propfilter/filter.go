// Package propfilter narrows a document's prop list by a text search and a
// set of explicitly selected prop names.
package propfilter

import (
	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/util"
)

const (
	// MinQueryLength is the shortest normalized query that is matched
	// against prop text.
	MinQueryLength = 2

	// PlaceholderLimit caps the result for queries shorter than
	// MinQueryLength.
	PlaceholderLimit = 20
)

// Filter returns the props that match query and selected, in their original
// order. props is never modified.
//
//   - A blank query with an empty selection returns props itself.
//   - A non-empty query shorter than MinQueryLength after normalization
//     returns the first PlaceholderLimit props. The selection is not
//     consulted; whitespace-only queries normalize to length 0.
//   - An empty query with a selection keeps the selected props.
//   - Otherwise a prop is kept when its name, description or type contains
//     the query and, if the selection is not empty, its name is selected.
//
// selected may be nil.
func Filter(props []catalog.Prop, query string, selected *Selection) []catalog.Prop {
	if query == "" && selected.Len() == 0 {
		return props
	}

	q := util.NormalizeQuery(query)
	if query != "" && len([]rune(q)) < MinQueryLength {
		return props[:min(len(props), PlaceholderLimit)]
	}

	out := make([]catalog.Prop, 0, len(props))
	for _, p := range props {
		if q != "" && !Matches(p, q) {
			continue
		}
		if selected.Len() > 0 && !selected.Has(p.Name) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Matches reports whether a normalized query occurs in the prop's name,
// description or type.
func Matches(p catalog.Prop, q string) bool {
	return util.ContainsFold(p.Name, q) ||
		util.ContainsFold(p.Description, q) ||
		util.ContainsFold(p.Type, q)
}

//go:build property
// +build property

package propfilter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/gnana997/rndocs/pkg/catalog"
)

func buildProps(words []string) []catalog.Prop {
	props := make([]catalog.Prop, len(words))
	for i, w := range words {
		props[i] = catalog.Prop{
			Name:        fmt.Sprintf("%s%d", w, i),
			Type:        strings.ToUpper(w),
			Description: "Sets " + w + ".",
		}
	}
	return props
}

func TestPropFilterProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	wordsGen := gen.SliceOf(gen.RegexMatch(`^[a-zA-Z]{1,8}$`))

	// Property: long queries keep exactly the matching props in order
	properties.Property("text predicate", prop.ForAll(
		func(words []string, query string) bool {
			props := buildProps(words)
			q := strings.ToLower(strings.TrimSpace(query))

			var want []string
			for _, p := range props {
				if strings.Contains(strings.ToLower(p.Name), q) ||
					strings.Contains(strings.ToLower(p.Description), q) ||
					strings.Contains(strings.ToLower(p.Type), q) {
					want = append(want, p.Name)
				}
			}

			got := Filter(props, query, nil)
			if len(got) != len(want) {
				return false
			}
			for i := range got {
				if got[i].Name != want[i] {
					return false
				}
			}
			return true
		},
		wordsGen, gen.RegexMatch(`^ ?[a-zA-Z]{2,4} ?$`),
	))

	// Property: short queries return the first 20 props, selection or not
	properties.Property("short query placeholder", prop.ForAll(
		func(words []string, query string, picks []int) bool {
			props := buildProps(words)
			sel := NewSelection()
			for _, p := range picks {
				if len(props) > 0 {
					sel.Toggle(props[p%len(props)].Name)
				}
			}
			got := Filter(props, query, sel)

			n := min(len(props), PlaceholderLimit)
			if len(got) != n {
				return false
			}
			for i := 0; i < n; i++ {
				if got[i].Name != props[i].Name {
					return false
				}
			}
			return true
		},
		wordsGen,
		gen.RegexMatch(`^ {0,2}[a-zA-Z]? {0,2}$`).SuchThat(func(s string) bool { return s != "" }),
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	// Property: selected props survive in source order
	properties.Property("selection is an ordered subsequence", prop.ForAll(
		func(words []string, picks []int) bool {
			props := buildProps(words)
			if len(props) == 0 {
				return len(Filter(props, "", NewSelection("x"))) == 0
			}

			sel := NewSelection()
			for _, p := range picks {
				sel.Toggle(props[p%len(props)].Name)
			}
			if sel.Len() == 0 {
				return true
			}

			got := Filter(props, "", sel)
			if len(got) != sel.Len() {
				return false
			}
			j := 0
			for _, p := range props {
				if j < len(got) && got[j].Name == p.Name {
					j++
				}
			}
			return j == len(got)
		},
		wordsGen, gen.SliceOf(gen.IntRange(0, 1000)),
	))

	// Property: toggling the same name twice restores the selection
	properties.Property("toggle pair is idempotent", prop.ForAll(
		func(initial []string, name string) bool {
			sel := NewSelection(initial...)
			before := strings.Join(sel.Names(), ",")
			sel.Toggle(name)
			sel.Toggle(name)
			return strings.Join(sel.Names(), ",") == before
		},
		gen.SliceOf(gen.AlphaString()), gen.AlphaString(),
	))

	properties.TestingRun(t)
}

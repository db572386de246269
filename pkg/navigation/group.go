// Package navigation groups catalog documents by category and narrows them
// with a name search, the way the documentation sidebar presents them.
package navigation

import (
	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/util"
)

// CategoryOrder is the display order of sidebar sections. Categories that
// are not listed here are not shown.
var CategoryOrder = []string{
	"Basic UI",
	"Lists",
	"User Input",
	"Layout & Styling",
	"Feedback & Alerts",
	"Modal & Overlays",
	"Gestures & Interaction",
	"Accessibility",
	"Other Core APIs",
	"Expo: Media & Files",
	"Expo: Camera & Sensors",
	"Expo: Location & Maps",
	"Expo: Device & System",
	"Expo: UI & UX",
	"Expo: Auth & Security",
	"Expo: Networking",
	"Expo: Storage",
	"Expo: Notifications",
	"Expo: App Info",
	"Navigation",
	"Animation",
}

// Group is one sidebar section.
type Group struct {
	Category  string              `json:"category"`
	Documents []*catalog.Document `json:"documents"`
}

// GroupDocuments partitions docs by category. Groups follow order and keep
// catalog order inside each group. Categories missing from order, or with no
// documents, are omitted.
func GroupDocuments(docs []catalog.Document, order []string) []Group {
	buckets := make(map[string][]*catalog.Document, len(order))
	for i := range docs {
		doc := &docs[i]
		buckets[doc.Category] = append(buckets[doc.Category], doc)
	}

	groups := make([]Group, 0, len(order))
	seen := make(map[string]bool, len(order))
	for _, category := range order {
		if seen[category] {
			continue
		}
		seen[category] = true
		if bucket := buckets[category]; len(bucket) > 0 {
			groups = append(groups, Group{Category: category, Documents: bucket})
		}
	}
	return groups
}

// Unlisted returns the categories present in docs that order does not
// mention, in first-appearance order. These documents never reach the
// sidebar; lint reports them.
func Unlisted(docs []catalog.Document, order []string) []string {
	listed := make(map[string]bool, len(order))
	for _, category := range order {
		listed[category] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, doc := range docs {
		if listed[doc.Category] || seen[doc.Category] {
			continue
		}
		seen[doc.Category] = true
		out = append(out, doc.Category)
	}
	return out
}

// Filter keeps documents whose name contains query, ignoring case and
// surrounding whitespace. Groups left empty are dropped. A blank query
// returns groups unchanged.
func Filter(groups []Group, query string) []Group {
	q := util.NormalizeQuery(query)
	if q == "" {
		return groups
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		var matched []*catalog.Document
		for _, doc := range g.Documents {
			if util.ContainsFold(doc.Name, q) {
				matched = append(matched, doc)
			}
		}
		if len(matched) > 0 {
			out = append(out, Group{Category: g.Category, Documents: matched})
		}
	}
	return out
}

// Count returns the number of documents across groups.
func Count(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Documents)
	}
	return n
}

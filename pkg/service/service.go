// Package service assembles the read-only responses shared by the MCP and
// HTTP front ends.
package service

import (
	"fmt"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/navigation"
	"github.com/gnana997/rndocs/pkg/propfilter"
)

// Service answers catalog questions. Safe for concurrent use.
type Service struct {
	query *catalog.QueryService
	cache *propfilter.Cache
}

// New creates a Service. cache may be nil.
func New(qs *catalog.QueryService, cache *propfilter.Cache) *Service {
	return &Service{query: qs, cache: cache}
}

// Query returns the underlying query service.
func (s *Service) Query() *catalog.QueryService {
	return s.query
}

// CategoryInfo is a sidebar category with its document count.
type CategoryInfo struct {
	Name  string `json:"name"`
	Count int    `json:"document_count"`
}

// DocumentSummary is the sidebar view of a document.
type DocumentSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
}

// NavGroup is one category of a navigation listing.
type NavGroup struct {
	Category  string            `json:"category"`
	Documents []DocumentSummary `json:"documents"`
}

// NavResponse is the result of a navigation search.
type NavResponse struct {
	Query   string     `json:"query"`
	Groups  []NavGroup `json:"groups"`
	Total   int        `json:"total"`
	Message string     `json:"message,omitempty"`
}

// DocumentResponse wraps a resolved document.
type DocumentResponse struct {
	RequestedID string            `json:"requested_id"`
	Fallback    bool              `json:"fallback"`
	Document    *catalog.Document `json:"document"`
}

// PropsResponse is the result of a prop filter.
type PropsResponse struct {
	DocumentID string         `json:"document_id"`
	Fallback   bool           `json:"fallback"`
	Query      string         `json:"query"`
	Selected   []string       `json:"selected"`
	Total      int            `json:"total"`
	Count      int            `json:"count"`
	Props      []catalog.Prop `json:"props"`
}

// SearchHit is one search match.
type SearchHit struct {
	DocumentSummary
	MatchReason string `json:"match_reason"`
}

// Categories lists the sidebar categories in display order.
func (s *Service) Categories() []CategoryInfo {
	groups := navigation.GroupDocuments(s.query.Documents(), navigation.CategoryOrder)
	out := make([]CategoryInfo, 0, len(groups))
	for _, g := range groups {
		out = append(out, CategoryInfo{Name: g.Category, Count: len(g.Documents)})
	}
	return out
}

// Navigation groups documents and filters them by name.
func (s *Service) Navigation(query string) NavResponse {
	groups := navigation.Filter(navigation.GroupDocuments(s.query.Documents(), navigation.CategoryOrder), query)

	resp := NavResponse{Query: query, Groups: make([]NavGroup, 0, len(groups))}
	for _, g := range groups {
		ng := NavGroup{Category: g.Category, Documents: make([]DocumentSummary, 0, len(g.Documents))}
		for _, doc := range g.Documents {
			ng.Documents = append(ng.Documents, summarize(doc))
		}
		resp.Groups = append(resp.Groups, ng)
		resp.Total += len(g.Documents)
	}
	if resp.Total == 0 {
		resp.Message = navigation.EmptyMessage
	}
	return resp
}

// Document resolves id, falling back to the default document. Without
// examples the usage and prop examples are stripped from a copy.
func (s *Service) Document(id string, examples bool) (DocumentResponse, error) {
	doc := s.query.Resolve(id)
	if doc == nil {
		return DocumentResponse{}, fmt.Errorf("%w: %q (catalog is empty)", catalog.ErrNotFound, id)
	}

	if !examples {
		doc = withoutExamples(doc)
	}
	return DocumentResponse{RequestedID: id, Fallback: doc.ID != id, Document: doc}, nil
}

// FilterProps applies the prop filter to the resolved document.
func (s *Service) FilterProps(id, query string, selected []string) (PropsResponse, error) {
	doc := s.query.Resolve(id)
	if doc == nil {
		return PropsResponse{}, fmt.Errorf("%w: %q (catalog is empty)", catalog.ErrNotFound, id)
	}

	sel := propfilter.NewSelection(selected...)
	props := s.cache.Filter(doc.ID, doc.Props, query, sel)

	names := sel.Names()
	if names == nil {
		names = []string{}
	}
	if props == nil {
		props = []catalog.Prop{}
	}
	return PropsResponse{
		DocumentID: doc.ID,
		Fallback:   doc.ID != id,
		Query:      query,
		Selected:   names,
		Total:      len(doc.Props),
		Count:      len(props),
		Props:      props,
	}, nil
}

// Search matches names, descriptions and prop names.
func (s *Service) Search(query string) []SearchHit {
	results := s.query.SearchDocuments(query)
	out := make([]SearchHit, 0, len(results))
	for _, r := range results {
		out = append(out, SearchHit{DocumentSummary: summarize(r.Document), MatchReason: r.MatchReason})
	}
	return out
}

func summarize(doc *catalog.Document) DocumentSummary {
	return DocumentSummary{ID: doc.ID, Name: doc.Name, Category: doc.Category, Description: doc.Description}
}

func withoutExamples(doc *catalog.Document) *catalog.Document {
	cp := *doc
	cp.BasicUsage = nil
	cp.Props = make([]catalog.Prop, len(doc.Props))
	for i, p := range doc.Props {
		p.Examples = nil
		cp.Props[i] = p
	}
	return &cp
}

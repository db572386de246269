package catalog

import "github.com/gnana997/rndocs/pkg/util"

// DocumentSearchResult holds a document match with the reason it matched.
type DocumentSearchResult struct {
	Document    *Document
	MatchReason string
}

// CategorySummary is a category name with its document count.
type CategorySummary struct {
	Name  string `json:"name"`
	Count int    `json:"document_count"`
}

// QueryService provides read-only query methods over a loaded catalog.
type QueryService struct {
	Catalog *Catalog
	Index   *CatalogIndex
}

// NewQueryService creates a QueryService from a validated catalog and its index.
func NewQueryService(cat *Catalog, idx *CatalogIndex) *QueryService {
	return &QueryService{Catalog: cat, Index: idx}
}

// Documents returns every document in catalog order.
func (q *QueryService) Documents() []Document {
	return q.Catalog.Documents
}

// ListCategories returns categories in order of first appearance with counts.
func (q *QueryService) ListCategories() []CategorySummary {
	out := make([]CategorySummary, 0, len(q.Index.Categories))
	for _, name := range q.Index.Categories {
		out = append(out, CategorySummary{Name: name, Count: len(q.Index.DocumentsByCategory[name])})
	}
	return out
}

// ListDocuments returns documents filtered by category and/or keyword.
// Both filters are optional (pass "" to skip). When both are provided, they combine with AND logic.
// The keyword matches case-insensitively against Name and Description.
func (q *QueryService) ListDocuments(category, keyword string) []Document {
	var candidates []*Document

	if category != "" {
		candidates = q.Index.DocumentsByCategory[category]
	} else {
		candidates = make([]*Document, 0, len(q.Catalog.Documents))
		for i := range q.Catalog.Documents {
			candidates = append(candidates, &q.Catalog.Documents[i])
		}
	}

	keyword = util.NormalizeQuery(keyword)
	result := make([]Document, 0)

	for _, doc := range candidates {
		if keyword != "" && !util.ContainsFold(doc.Name, keyword) && !util.ContainsFold(doc.Description, keyword) {
			continue
		}
		result = append(result, *doc)
	}

	return result
}

// GetDocument looks up a document by id.
// The bool indicates whether the document was found.
func (q *QueryService) GetDocument(id string) (*Document, bool) {
	doc, ok := q.Index.DocumentByID[id]
	return doc, ok
}

// Resolve returns the document for id, falling back to the catalog's
// default document and then to the first document. It returns nil only for
// an empty catalog.
func (q *QueryService) Resolve(id string) *Document {
	if doc, ok := q.Index.DocumentByID[id]; ok {
		return doc
	}
	if doc, ok := q.Index.DocumentByID[q.Catalog.DefaultID]; ok {
		return doc
	}
	if len(q.Catalog.Documents) == 0 {
		return nil
	}
	return &q.Catalog.Documents[0]
}

// GetDocumentsByIDs returns documents matching the given ids.
// Unknown ids are silently skipped. Duplicates are removed.
func (q *QueryService) GetDocumentsByIDs(ids []string) []*Document {
	seen := make(map[string]bool, len(ids))
	result := make([]*Document, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if doc, ok := q.Index.DocumentByID[id]; ok {
			result = append(result, doc)
		}
	}

	return result
}

// SearchDocuments performs a case-insensitive search across document names,
// descriptions and prop names. Returns matching documents with the reason
// for the match.
func (q *QueryService) SearchDocuments(query string) []DocumentSearchResult {
	query = util.NormalizeQuery(query)
	if query == "" {
		return nil
	}

	var results []DocumentSearchResult

	for i := range q.Catalog.Documents {
		doc := &q.Catalog.Documents[i]

		if util.ContainsFold(doc.Name, query) {
			results = append(results, DocumentSearchResult{Document: doc, MatchReason: "name"})
			continue
		}

		if util.ContainsFold(doc.Description, query) {
			results = append(results, DocumentSearchResult{Document: doc, MatchReason: "description"})
			continue
		}

		for _, prop := range doc.Props {
			if util.ContainsFold(prop.Name, query) {
				results = append(results, DocumentSearchResult{Document: doc, MatchReason: "prop:" + prop.Name})
				break
			}
		}
	}

	return results
}

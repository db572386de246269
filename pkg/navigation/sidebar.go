package navigation

import (
	"sync"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/util"
)

// EmptyMessage is shown when a search leaves no documents.
const EmptyMessage = "No components found"

// Host owns the active document and the sidebar's visibility. The sidebar
// only notifies it.
type Host interface {
	Select(id string)
	Close()
}

// Section is a visible group together with its display state.
type Section struct {
	Group
	Expanded  bool `json:"expanded"`
	HasActive bool `json:"has_active"`
}

// Sidebar holds the navigation search and expansion state over a fixed
// grouping. Safe for concurrent use.
type Sidebar struct {
	groups     []Group
	categoryOf map[string]string
	host       Host

	mu       sync.RWMutex
	query    string
	expanded map[string]bool
	active   string
}

// NewSidebar groups docs in CategoryOrder. host may be nil.
func NewSidebar(docs []catalog.Document, host Host) *Sidebar {
	categoryOf := make(map[string]string, len(docs))
	for _, doc := range docs {
		categoryOf[doc.ID] = doc.Category
	}
	return &Sidebar{
		groups:     GroupDocuments(docs, CategoryOrder),
		categoryOf: categoryOf,
		host:       host,
		expanded:   make(map[string]bool),
	}
}

// Groups returns the unfiltered grouping.
func (s *Sidebar) Groups() []Group {
	return s.groups
}

// SetQuery replaces the search text.
func (s *Sidebar) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// Query returns the raw search text.
func (s *Sidebar) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Filtering reports whether the search text narrows the grouping.
func (s *Sidebar) Filtering() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtering()
}

func (s *Sidebar) filtering() bool {
	return util.NormalizeQuery(s.query) != ""
}

// Toggle flips the expansion of category. It does nothing while filtering
// and reports whether the state changed.
func (s *Sidebar) Toggle(category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filtering() {
		return false
	}
	s.expanded[category] = !s.expanded[category]
	return true
}

// SetActive records the active document and expands its category.
func (s *Sidebar) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = id
	if category, ok := s.categoryOf[id]; ok {
		s.expanded[category] = true
	}
}

// Active returns the id last passed to SetActive.
func (s *Sidebar) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Expanded reports whether category is open. While filtering every visible
// category is open.
func (s *Sidebar) Expanded(category string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.filtering() {
		for _, g := range Filter(s.groups, s.query) {
			if g.Category == category {
				return true
			}
		}
		return false
	}
	return s.expanded[category]
}

// Visible returns the filtered sections with their display state.
func (s *Sidebar) Visible() []Section {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtering := s.filtering()
	groups := Filter(s.groups, s.query)
	out := make([]Section, 0, len(groups))
	for _, g := range groups {
		section := Section{Group: g, Expanded: filtering || s.expanded[g.Category]}
		for _, doc := range g.Documents {
			if doc.ID == s.active {
				section.HasActive = true
				break
			}
		}
		out = append(out, section)
	}
	return out
}

// Empty reports whether the current search matches nothing.
func (s *Sidebar) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(Filter(s.groups, s.query)) == 0
}

// Select notifies the host that id was picked and asks it to close the
// sidebar.
func (s *Sidebar) Select(id string) {
	if s.host == nil {
		return
	}
	s.host.Select(id)
	s.host.Close()
}

package propfilter

import (
	"slices"
	"sync"
)

// Selection is a set of prop names.
//
// The zero value is empty and ready to use. A nil *Selection behaves as
// empty for Has, Len and Names; Toggle, Remove and Clear need a non-nil
// receiver.
//
// Thread Safety:
//   - All methods are safe for concurrent use
//   - Names returns a sorted copy, so callers may keep it after later changes
type Selection struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

// NewSelection returns a Selection holding names.
func NewSelection(names ...string) *Selection {
	s := &Selection{}
	for _, n := range names {
		if n != "" {
			s.add(n)
		}
	}
	return s
}

func (s *Selection) add(name string) {
	if s.names == nil {
		s.names = make(map[string]struct{})
	}
	s.names[name] = struct{}{}
}

// Toggle adds name if absent and removes it if present. It reports whether
// name is selected afterwards. Toggling the same name twice restores the
// previous contents.
func (s *Selection) Toggle(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.names[name]; ok {
		delete(s.names, name)
		return false
	}
	s.add(name)
	return true
}

// Remove deselects name.
func (s *Selection) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.names, name)
}

// Has reports whether name is selected.
func (s *Selection) Has(name string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[name]
	return ok
}

// Len returns the number of selected names.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Names returns the selected names sorted.
func (s *Selection) Names() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.names)
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	return NewSelection(s.Names()...)
}

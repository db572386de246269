// Package appstate holds the browser's application-level state: the active
// document, sidebar visibility and theme. It is passed explicitly to front
// ends rather than kept in globals.
package appstate

import (
	"log/slog"
	"sync"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/util"
)

// DefaultDocumentID is shown when nothing else has been selected.
const DefaultDocumentID = "text"

// Theme is the color scheme. It lives in memory only.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// State is safe for concurrent use. Listeners run synchronously after the
// state lock is released.
type State struct {
	query  *catalog.QueryService
	logger *slog.Logger

	mu          sync.RWMutex
	activeID    string
	sidebarOpen bool
	theme       Theme
	listeners   []func(id string)
}

// Option configures a State.
type Option func(*State)

// WithActive sets the initially active document id.
func WithActive(id string) Option {
	return func(s *State) {
		if id != "" {
			s.activeID = id
		}
	}
}

// WithTheme sets the initial theme.
func WithTheme(t Theme) Option {
	return func(s *State) {
		if t == ThemeLight || t == ThemeDark {
			s.theme = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates the state over qs with the default document active, the
// sidebar closed and the light theme.
func New(qs *catalog.QueryService, opts ...Option) *State {
	s := &State{
		query:    qs,
		logger:   util.DiscardLogger(),
		activeID: DefaultDocumentID,
		theme:    ThemeLight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnSelect registers fn to be called with the new id after every Select.
func (s *State) OnSelect(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Select makes id the active document. Unknown ids are kept; Active falls
// back when resolving them.
func (s *State) Select(id string) {
	s.mu.Lock()
	s.activeID = id
	listeners := append([]func(string){}, s.listeners...)
	s.mu.Unlock()

	if _, ok := s.query.GetDocument(id); !ok {
		s.logger.Warn("selected unknown document, falling back", "id", id)
	}
	for _, fn := range listeners {
		fn(id)
	}
}

// Close hides the sidebar.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = false
}

// ToggleSidebar flips sidebar visibility and returns the new value.
func (s *State) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = !s.sidebarOpen
	return s.sidebarOpen
}

// SidebarOpen reports whether the sidebar is shown.
func (s *State) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *State) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	return s.theme
}

// Theme returns the current theme.
func (s *State) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ActiveID returns the id as selected, which may not resolve.
func (s *State) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active resolves the active id to a document, falling back to the
// catalog's default and then to its first document. It returns nil only for
// an empty catalog.
func (s *State) Active() *catalog.Document {
	return s.query.Resolve(s.ActiveID())
}

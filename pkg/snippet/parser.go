// Package snippet parses the catalog's code examples with tree-sitter and
// reports the ones that do not parse cleanly.
package snippet

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/rndocs/pkg/util"
)

// Manager owns one lazily created parser pool per grammar.
//
// Callers own returned trees and must Close them. Close the Manager when
// done to free the parsers.
type Manager struct {
	pools    map[Grammar]*parserPool
	poolSize int

	mutex  sync.RWMutex
	parses int

	logger *slog.Logger
}

// NewManager creates a Manager. poolSize 0 sizes pools from the CPU count.
func NewManager(poolSize int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = util.DiscardLogger()
	}
	return &Manager{
		pools:    make(map[Grammar]*parserPool),
		poolSize: util.GetOptimalPoolSizeWithOverride(poolSize),
		logger:   logger,
	}
}

// Parse parses source with grammar. Trees with syntax errors are returned
// as well; check RootNode().HasError().
func (m *Manager) Parse(source []byte, grammar Grammar) (*ts.Tree, error) {
	if grammar == GrammarNone {
		return nil, fmt.Errorf("cannot parse without a grammar")
	}

	m.mutex.Lock()
	m.parses++
	m.mutex.Unlock()

	pool, err := m.getOrCreatePool(grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", grammar, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}
	return tree, nil
}

func (m *Manager) getOrCreatePool(grammar Grammar) (*parserPool, error) {
	m.mutex.RLock()
	pool, ok := m.pools[grammar]
	m.mutex.RUnlock()
	if ok {
		return pool, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if pool, ok = m.pools[grammar]; ok {
		return pool, nil
	}

	langPtr, err := languagePointer(grammar)
	if err != nil {
		return nil, err
	}
	pool = newParserPool(grammar, langPtr, m.poolSize, m.logger)
	m.pools[grammar] = pool
	return pool, nil
}

func languagePointer(grammar Grammar) (unsafe.Pointer, error) {
	switch grammar {
	case GrammarJavaScript:
		return ts_javascript.Language(), nil
	case GrammarTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	case GrammarTSX:
		return ts_typescript.LanguageTSX(), nil
	default:
		return nil, fmt.Errorf("unsupported grammar: %s", grammar)
	}
}

// Stats reports how many parsers exist and how many parses ran.
type Stats struct {
	ParsersCreated int
	ParsesCalled   int
}

// Stats returns usage counters.
func (m *Manager) Stats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	total := 0
	for _, pool := range m.pools {
		total += pool.createdCount()
	}
	return Stats{ParsersCreated: total, ParsesCalled: m.parses}
}

// Close releases every parser. The Manager cannot be used afterwards.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, pool := range m.pools {
		pool.close()
	}
	m.pools = make(map[Grammar]*parserPool)
	m.logger.Debug("closed snippet parsers", "parses", m.parses)
	return nil
}

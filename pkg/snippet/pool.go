package snippet

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool hands out tree-sitter parsers for one grammar.
//
// Design:
// - Buffered channel holds idle parsers
// - Parsers are created lazily up to maxSize
// - Once maxSize exist, acquire blocks until one is released
//
// Thread Safety:
// - Channel operations need no extra locking
// - mutex guards created and parser construction
type parserPool struct {
	// pool holds idle parsers
	pool chan *ts.Parser

	// langPtr is the grammar's tree-sitter language pointer
	langPtr unsafe.Pointer

	grammar Grammar
	maxSize int

	// mutex protects created and parser construction
	mutex   sync.Mutex
	created int

	logger *slog.Logger
}

// newParserPool creates an empty pool for one grammar.
//
// Parameters:
// - grammar: the grammar parsers are configured with (used in logs)
// - langPtr: the tree-sitter language pointer for grammar
// - maxSize: upper bound on parsers ever created
// - logger: structured logger, must not be nil
func newParserPool(grammar Grammar, langPtr unsafe.Pointer, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		grammar: grammar,
		maxSize: maxSize,
		logger:  logger,
	}
}

// acquire returns an idle parser, creating one if the pool has room.
//
// Thread Safety:
// - Safe for concurrent use
// - Blocks when maxSize parsers exist and none is idle
func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
		return p.createParserIfNeeded()
	}
}

// createParserIfNeeded builds a parser under mutex when the pool has room,
// and otherwise waits for a released one.
func (p *parserPool) createParserIfNeeded() (*ts.Parser, error) {
	p.mutex.Lock()

	if p.created < p.maxSize {
		parser := ts.NewParser()
		if parser == nil {
			p.mutex.Unlock()
			return nil, fmt.Errorf("failed to create parser")
		}
		if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
			parser.Close()
			p.mutex.Unlock()
			return nil, fmt.Errorf("failed to set language %s: %w", p.grammar, err)
		}

		p.created++
		p.logger.Debug("created snippet parser", "grammar", p.grammar.String(), "pool_size", p.created)
		p.mutex.Unlock()
		return parser, nil
	}

	p.mutex.Unlock()
	return <-p.pool, nil
}

// release returns parser to the pool. A nil parser is ignored.
//
// Thread Safety:
// - Safe for concurrent use
// - Never blocks; a parser that does not fit is closed
func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.pool <- parser:
	default:
		parser.Close()
		p.logger.Warn("snippet parser pool full, closing excess parser", "grammar", p.grammar.String())
	}
}

// close frees every idle parser.
//
// Thread Safety:
// - Not safe to call concurrently with acquire or release
// - Parsers still checked out are not closed by this call
func (p *parserPool) close() {
	close(p.pool)
	for parser := range p.pool {
		if parser != nil {
			parser.Close()
		}
	}
}

func (p *parserPool) createdCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}

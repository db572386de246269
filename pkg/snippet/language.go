package snippet

import "strings"

// Grammar identifies the tree-sitter grammar used for a snippet.
type Grammar int

const (
	// GrammarJavaScript parses js and jsx; the grammar accepts JSX.
	GrammarJavaScript Grammar = iota
	// GrammarTypeScript parses ts.
	GrammarTypeScript
	// GrammarTSX parses tsx.
	GrammarTSX
	// GrammarNone marks languages that are not parsed, such as bash.
	GrammarNone
)

// String returns the grammar name.
func (g Grammar) String() string {
	switch g {
	case GrammarJavaScript:
		return "javascript"
	case GrammarTypeScript:
		return "typescript"
	case GrammarTSX:
		return "tsx"
	default:
		return "none"
	}
}

// GrammarFor maps a code example language to its grammar.
func GrammarFor(language string) Grammar {
	switch strings.ToLower(language) {
	case "js", "jsx", "javascript":
		return GrammarJavaScript
	case "ts", "typescript":
		return GrammarTypeScript
	case "tsx":
		return GrammarTSX
	default:
		return GrammarNone
	}
}

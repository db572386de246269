// Package mcplog records MCP tool calls as JSON lines and summarizes them.
package mcplog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// LogEntry is one JSONL line per tool call.
type LogEntry struct {
	Ts            string         `json:"ts"`
	Tool          string         `json:"tool"`
	Params        map[string]any `json:"params"`
	DurationMs    int64          `json:"duration_ms"`
	ResponseBytes int            `json:"response_bytes"`
	TokensEst     int            `json:"tokens_est"`
	ToolError     bool           `json:"tool_error,omitempty"`
	Error         *string        `json:"error"`
}

// Logger appends entries to a writer. Safe for concurrent use. A nil
// *Logger discards everything.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	c   io.Closer
	enc *json.Encoder
}

// NewLogger opens path for appending, creating parent directories. An empty
// path returns nil, nil.
func NewLogger(path string) (*Logger, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("mcplog: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("mcplog: open log file: %w", err)
	}
	return &Logger{w: f, c: f, enc: json.NewEncoder(f)}, nil
}

// NewWriterLogger writes entries to w. Close does not close w.
func NewWriterLogger(w io.Writer) *Logger {
	return &Logger{w: w, enc: json.NewEncoder(w)}
}

// Write appends entry.
func (l *Logger) Write(entry LogEntry) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(entry)
}

// Record builds the entry for one finished call and writes it.
func (l *Logger) Record(tool string, args map[string]any, start time.Time, result *mcp.CallToolResult, callErr error) error {
	if l == nil {
		return nil
	}

	rb := ResponseBytes(result)
	entry := LogEntry{
		Ts:            start.UTC().Format(time.RFC3339),
		Tool:          tool,
		Params:        SanitizeParams(args),
		DurationMs:    Now().Sub(start).Milliseconds(),
		ResponseBytes: rb,
		TokensEst:     rb / 4,
		ToolError:     result != nil && result.IsError,
	}
	if callErr != nil {
		msg := callErr.Error()
		entry.Error = &msg
	}
	return l.Write(entry)
}

// Close closes the log file, if the Logger owns one.
func (l *Logger) Close() error {
	if l == nil || l.c == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.Close()
}

// SanitizeParams copies args for logging. Strings longer than 64 bytes are
// replaced by a "{key}_len" entry; string slices are logged as their length
// under "{key}_count".
func SanitizeParams(args map[string]any) map[string]any {
	const shortStringMax = 64
	out := make(map[string]any, len(args))
	for k, v := range args {
		switch val := v.(type) {
		case string:
			if len(val) > shortStringMax {
				out[k+"_len"] = len(val)
			} else {
				out[k] = val
			}
		case []any:
			out[k+"_count"] = len(val)
		case []string:
			out[k+"_count"] = len(val)
		default:
			out[k] = v
		}
	}
	return out
}

// ResponseBytes returns the JSON size of a result's content, or 0.
func ResponseBytes(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	b, err := json.Marshal(result.Content)
	if err != nil {
		return 0
	}
	return len(b)
}

// Now is a replaceable clock for testing.
var Now = func() time.Time { return time.Now() }

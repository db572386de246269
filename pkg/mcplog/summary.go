package mcplog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// ToolStats aggregates the calls of one tool.
type ToolStats struct {
	Tool          string
	Calls         int
	Errors        int
	TotalMs       int64
	MaxMs         int64
	ResponseBytes int
}

// AvgMs returns the mean call duration.
func (s ToolStats) AvgMs() float64 {
	if s.Calls == 0 {
		return 0
	}
	return float64(s.TotalMs) / float64(s.Calls)
}

// ReadEntries decodes a JSONL log. Blank lines are skipped.
func ReadEntries(r io.Reader) ([]LogEntry, error) {
	var entries []LogEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal(b, &e); err != nil {
			return nil, fmt.Errorf("mcplog: line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mcplog: read log: %w", err)
	}
	return entries, nil
}

// Summarize groups entries by tool, busiest first.
func Summarize(entries []LogEntry) []ToolStats {
	byTool := make(map[string]*ToolStats)
	for _, e := range entries {
		s, ok := byTool[e.Tool]
		if !ok {
			s = &ToolStats{Tool: e.Tool}
			byTool[e.Tool] = s
		}
		s.Calls++
		if e.Error != nil || e.ToolError {
			s.Errors++
		}
		s.TotalMs += e.DurationMs
		s.MaxMs = max(s.MaxMs, e.DurationMs)
		s.ResponseBytes += e.ResponseBytes
	}

	out := make([]ToolStats, 0, len(byTool))
	for _, s := range byTool {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Calls != out[j].Calls {
			return out[i].Calls > out[j].Calls
		}
		return out[i].Tool < out[j].Tool
	})
	return out
}

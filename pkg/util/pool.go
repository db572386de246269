package util

import "runtime"

// GetOptimalPoolSize returns the number of parsers or workers to use for
// CPU-bound snippet checking.
//
// Formula: min(max(runtime.NumCPU(), 2), 16)
//
// Reasoning:
//   - Minimum 2: some overlap even on single-core machines
//   - 1× CPU cores: snippets are a few lines each, so parse time is short
//   - Maximum 16: bounds parser memory per grammar on large machines
//
// Examples:
//   - 1 core: 2 (minimum enforced)
//   - 8 cores: 8
//   - 32 cores: 16 (capped)
//
// This is used for:
//   - Parser pool size (parsers per grammar)
//   - Snippet check concurrency
func GetOptimalPoolSize() int {
	size := runtime.NumCPU()
	if size < 2 {
		size = 2
	}
	if size > 16 {
		size = 16
	}
	return size
}

// GetOptimalPoolSizeWithOverride returns override when positive, otherwise
// GetOptimalPoolSize().
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}

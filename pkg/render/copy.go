package render

import "log/slog"

// CopyFunc puts text somewhere the user can paste it from, such as a
// clipboard or a file.
type CopyFunc func(text string) error

// Copy runs fn and reports whether it succeeded. A failure is logged and
// otherwise ignored so the view keeps working.
func Copy(fn CopyFunc, text string, logger *slog.Logger) bool {
	if fn == nil {
		return false
	}
	if err := fn(text); err != nil {
		if logger != nil {
			logger.Warn("copy failed", "error", err)
		}
		return false
	}
	return true
}

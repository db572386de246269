package util

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadMapped returns the contents of path by memory-mapping it read-only and
// copying the mapped region out before unmapping.
//
// Catalog fragments are read once at startup, so nothing stays mapped after
// the call returns. If mmap fails (special files, exotic filesystems) the
// read falls back to os.ReadFile and logs a warning.
func ReadMapped(path string, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %q: %w", path, err)
	}

	// Can't mmap zero bytes.
	if stat.Size() == 0 {
		return []byte{}, nil
	}

	region, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		logger.Warn("mmap failed, using fallback",
			"file", path,
			"size", stat.Size(),
			"error", err)

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				path, err, readErr)
		}
		return data, nil
	}

	data := make([]byte, len(region))
	copy(data, region)

	if err := region.Unmap(); err != nil {
		logger.Warn("failed to unmap file", "file", path, "error", err)
	}

	return data, nil
}

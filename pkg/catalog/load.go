package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/gnana997/rndocs/pkg/util"
)

// ManifestFile is the name of the catalog manifest inside a catalog directory.
const ManifestFile = "catalog.json"

// DefaultFragmentPattern selects every JSON fragment under the catalog root.
const DefaultFragmentPattern = "**/*.json"

// Manifest carries catalog-level metadata for a directory of fragments.
// When Fragments is non-empty it fixes the merge order; otherwise fragments
// matched by the glob are merged in sorted path order.
type Manifest struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	DefaultID string   `json:"default_id,omitempty"`
	Fragments []string `json:"fragments,omitempty"`
}

// fragment is one JSON file contributing documents, typically one category.
type fragment struct {
	Documents []Document `json:"documents"`
}

// LoadFromFS loads a catalog split into fragments from fsys (e.g. the
// embedded catalogs.ReactNative), validates it, and builds the index.
func LoadFromFS(fsys fs.FS, pattern string) (*Catalog, *CatalogIndex, error) {
	return loadFragments(fsys, pattern, func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, name)
	})
}

// LoadFromDir loads a fragment catalog from a directory on disk. Files are
// read through util.ReadMapped.
func LoadFromDir(dir, pattern string, logger *slog.Logger) (*Catalog, *CatalogIndex, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog directory: %w", err)
	}
	return loadFragments(os.DirFS(dir), pattern, func(name string) ([]byte, error) {
		return util.ReadMapped(filepath.Join(dir, filepath.FromSlash(name)), logger)
	})
}

// FragmentPaths returns the fragment files a load would read, in merge order.
func FragmentPaths(fsys fs.FS, pattern string, manifest *Manifest) ([]string, error) {
	if manifest != nil && len(manifest.Fragments) > 0 {
		return manifest.Fragments, nil
	}

	if pattern == "" {
		pattern = DefaultFragmentPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid fragment pattern: %s", pattern)
	}

	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to match fragments: %w", err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if path.Base(m) == ManifestFile {
			continue
		}
		paths = append(paths, m)
	}
	sort.Strings(paths)
	return paths, nil
}

func loadFragments(fsys fs.FS, pattern string, read func(string) ([]byte, error)) (*Catalog, *CatalogIndex, error) {
	manifest, err := readManifest(read)
	if err != nil {
		return nil, nil, err
	}

	paths, err := FragmentPaths(fsys, pattern, manifest)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no catalog fragments match %q", pattern)
	}

	// Decode concurrently, merge in order.
	decoded := make([]fragment, len(paths))
	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			data, err := read(p)
			if err != nil {
				return fmt.Errorf("failed to read fragment %s: %w", p, err)
			}
			if err := json.Unmarshal(data, &decoded[i]); err != nil {
				return fmt.Errorf("failed to parse fragment %s: %w", p, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	cat := &Catalog{Name: "untitled", Version: "dev"}
	if manifest != nil {
		cat.Name = manifest.Name
		cat.Version = manifest.Version
		cat.DefaultID = manifest.DefaultID
	}
	for _, f := range decoded {
		cat.Documents = append(cat.Documents, f.Documents...)
	}

	return finish(cat)
}

// readManifest returns nil, nil when the catalog has no manifest.
func readManifest(read func(string) ([]byte, error)) (*Manifest, error) {
	data, err := read(ManifestFile)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

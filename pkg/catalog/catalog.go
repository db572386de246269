package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned when a document id does not resolve.
var ErrNotFound = errors.New("document not found")

// Catalog holds the full reference library. It is never mutated after load.
type Catalog struct {
	Name      string     `json:"name"`
	Version   string     `json:"version"`
	DefaultID string     `json:"default_id,omitempty"`
	Documents []Document `json:"documents"`
}

// CatalogIndex provides O(1) lookups into the catalog.
// Built during LoadFromBytes after validation passes.
type CatalogIndex struct {
	// DocumentByID maps document id -> *Document.
	DocumentByID map[string]*Document

	// DocumentsByCategory maps category -> documents in catalog order.
	DocumentsByCategory map[string][]*Document

	// Categories lists category names in order of first appearance.
	Categories []string
}

var validPlatforms = map[Platform]bool{
	"":              true,
	PlatformIOS:     true,
	PlatformAndroid: true,
	PlatformAll:     true,
}

var validLanguages = map[string]bool{
	"jsx":  true,
	"js":   true,
	"tsx":  true,
	"ts":   true,
	"bash": true,
}

var validInstallTypes = map[string]bool{
	"built-in": true,
	"npm":      true,
}

// Validate checks the catalog for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (c *Catalog) Validate() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, fmt.Errorf("catalog name is required"))
	}
	if c.Version == "" {
		errs = append(errs, fmt.Errorf("catalog version is required"))
	}

	ids := make(map[string]bool, len(c.Documents))

	for i, doc := range c.Documents {
		if doc.ID == "" {
			errs = append(errs, fmt.Errorf("documents[%d]: id is required", i))
			continue
		}
		if ids[doc.ID] {
			errs = append(errs, fmt.Errorf("document %q: duplicate id", doc.ID))
			continue
		}
		ids[doc.ID] = true

		if doc.Name == "" {
			errs = append(errs, fmt.Errorf("document %q: name is required", doc.ID))
		}
		if doc.Category == "" {
			errs = append(errs, fmt.Errorf("document %q: category is required", doc.ID))
		}
		if doc.Installation != nil && !validInstallTypes[doc.Installation.Type] {
			errs = append(errs, fmt.Errorf("document %q: invalid installation type %q (must be built-in/npm)", doc.ID, doc.Installation.Type))
		}
		errs = append(errs, validateExamples(fmt.Sprintf("document %q basic_usage", doc.ID), doc.BasicUsage)...)

		propNames := make(map[string]bool, len(doc.Props))
		for j, prop := range doc.Props {
			if prop.Name == "" {
				errs = append(errs, fmt.Errorf("document %q props[%d]: name is required", doc.ID, j))
				continue
			}
			if propNames[prop.Name] {
				errs = append(errs, fmt.Errorf("document %q: duplicate prop %q", doc.ID, prop.Name))
				continue
			}
			propNames[prop.Name] = true

			if prop.Type == "" {
				errs = append(errs, fmt.Errorf("document %q prop %q: type is required", doc.ID, prop.Name))
			}
			if !validPlatforms[prop.Platform] {
				errs = append(errs, fmt.Errorf("document %q prop %q: invalid platform %q (must be iOS/Android/All)", doc.ID, prop.Name, prop.Platform))
			}
			errs = append(errs, validateExamples(fmt.Sprintf("document %q prop %q", doc.ID, prop.Name), prop.Examples)...)
		}
	}

	if c.DefaultID != "" && !ids[c.DefaultID] {
		errs = append(errs, fmt.Errorf("default_id %q does not match any document", c.DefaultID))
	}

	return errs
}

func validateExamples(where string, examples []CodeExample) []error {
	var errs []error
	for i, ex := range examples {
		if ex.Code == "" {
			errs = append(errs, fmt.Errorf("%s examples[%d]: code is required", where, i))
		}
		if !validLanguages[ex.Language] {
			errs = append(errs, fmt.Errorf("%s examples[%d]: invalid language %q", where, i, ex.Language))
		}
	}
	return errs
}

// BuildIndex creates lookup maps for fast access.
// Should be called after Validate() passes.
func (c *Catalog) BuildIndex() *CatalogIndex {
	idx := &CatalogIndex{
		DocumentByID:        make(map[string]*Document, len(c.Documents)),
		DocumentsByCategory: make(map[string][]*Document),
	}

	for i := range c.Documents {
		doc := &c.Documents[i]
		idx.DocumentByID[doc.ID] = doc
		if _, seen := idx.DocumentsByCategory[doc.Category]; !seen {
			idx.Categories = append(idx.Categories, doc.Category)
		}
		idx.DocumentsByCategory[doc.Category] = append(idx.DocumentsByCategory[doc.Category], doc)
	}

	return idx
}

// LoadFromFile loads a catalog from a JSON file, validates it, and builds the index.
func LoadFromFile(path string) (*Catalog, *CatalogIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a catalog from raw JSON bytes, validates it, and builds the index.
func LoadFromBytes(data []byte) (*Catalog, *CatalogIndex, error) {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return finish(&catalog)
}

// finish validates a decoded catalog and builds its index.
func finish(catalog *Catalog) (*Catalog, *CatalogIndex, error) {
	if errs := catalog.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("catalog validation failed: %w", errors.Join(errs...))
	}
	return catalog, catalog.BuildIndex(), nil
}

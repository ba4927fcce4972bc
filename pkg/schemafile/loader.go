package schemafile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var extensions = []string{".yaml", ".yml", ".json"}

// LoadFile reads and parses a single document. The document is named after
// the file's base name without extension.
func LoadFile(path string, reg *Registry) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToRead, err)
	}
	doc, err := Parse(docName(path), data, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadDir parses every .yaml, .yml and .json file in dir (not recursive).
// Any invalid document fails the whole load.
func LoadDir(ctx context.Context, dir string, reg *Registry) (map[string]*Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToRead, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToRead, err)
	}

	docs := make(map[string]*Document)
	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(extensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCanceled, err)
		}

		doc, err := LoadFile(filepath.Join(dir, entry.Name()), reg)
		if err != nil {
			return nil, err
		}
		if _, dup := docs[doc.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate document %q in %s", ErrInvalidSchema, doc.Name, dir)
		}
		docs[doc.Name] = doc
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDocuments, dir)
	}
	return docs, nil
}

func docName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// mappingVersion is bumped whenever buildIndexMapping changes in a way that
// requires reindexing. A version mismatch on open wipes the index; callers
// rebuild it from the store.
const mappingVersion = "1"

// Index wraps a bleve index over recipe documents.
type Index struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the index.
type Options struct {
	// Path is the on-disk index location, e.g. <data>/search.bleve.
	Path   string
	Logger *slog.Logger
}

// NewIndex opens the index at Options.Path, creating it when missing or
// when the stored mapping version is stale.
func NewIndex(opts Options) (*Index, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	versionPath := opts.Path + ".version"

	if stored, err := os.ReadFile(versionPath); err == nil {
		if strings.TrimSpace(string(stored)) != mappingVersion {
			opts.Logger.Info("Search mapping changed, rebuilding index", "path", opts.Path)
			if err := os.RemoveAll(opts.Path); err != nil {
				return nil, fmt.Errorf("remove stale index: %w", err)
			}
		}
	}

	idx, err := bleve.Open(opts.Path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
		idx, err = bleve.New(opts.Path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create search index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); err != nil {
			return nil, fmt.Errorf("write index version: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}

	return &Index{index: idx, path: opts.Path, logger: opts.Logger}, nil
}

// Close releases the index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}

// IndexRecipe adds or updates a recipe document.
func (i *Index) IndexRecipe(doc *RecipeDocument) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Index(doc.ID, doc.ToMap())
}

// DeleteRecipe removes a recipe document. Deleting an unindexed ID is a
// no-op.
func (i *Index) DeleteRecipe(recipeID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Delete(recipeID)
}

// Count returns the number of indexed documents.
func (i *Index) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.DocCount()
}

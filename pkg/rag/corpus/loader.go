package corpus

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader supplies the raw documents the index is built from
type Loader interface {
	LoadSources(ctx context.Context) ([]RawSection, error)
}

var defaultExtensions = []string{".txt", ".md", ".markdown"}

// DirectoryLoader reads every supported file under a root directory,
// recursively. Sources are identified by their slash-separated path relative
// to the root and returned in lexical order.
type DirectoryLoader struct {
	root       string
	extensions map[string]bool
}

func NewDirectoryLoader(root string, extensions ...string) *DirectoryLoader {
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &DirectoryLoader{root: root, extensions: exts}
}

// Root returns the directory being loaded
func (l *DirectoryLoader) Root() string {
	return l.root
}

// Supports reports whether path has an extension the loader reads
func (l *DirectoryLoader) Supports(path string) bool {
	return l.extensions[strings.ToLower(filepath.Ext(path))]
}

// LoadSources creates the root directory when missing, so a fresh install
// starts with an empty corpus.
func (l *DirectoryLoader) LoadSources(ctx context.Context) ([]RawSection, error) {
	if err := os.MkdirAll(l.root, 0o755); err != nil {
		return nil, &CorpusError{Source: l.root, Op: "load", Err: err}
	}

	var paths []string
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !l.Supports(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, &CorpusError{Source: l.root, Op: "load", Err: err}
	}
	sort.Strings(paths)

	sources := make([]RawSection, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &CorpusError{Source: rel, Op: "load", Err: err}
		}
		sources = append(sources, RawSection{Source: rel, Text: string(data)})
	}

	return sources, nil
}

// StaticLoader serves a fixed set of sources
type StaticLoader []RawSection

func (s StaticLoader) LoadSources(ctx context.Context) ([]RawSection, error) {
	out := make([]RawSection, len(s))
	copy(out, s)
	return out, nil
}

// Load reads and indexes in one step
func Load(ctx context.Context, loader Loader) (*Index, error) {
	sources, err := loader.LoadSources(ctx)
	if err != nil {
		return nil, err
	}
	return Build(sources)
}

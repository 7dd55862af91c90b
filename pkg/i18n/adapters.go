package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// TranslationAdapter interface defines how translations are loaded
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter is a simple adapter that uses an in-memory map as the translation source
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single translation file.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a FileAdapter. A nil parser is chosen from the file
// extension.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if parser == nil {
		parser = NewParserForFile(path)
	}
	return &FileAdapter{parser: parser, path: path}
}

func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if a.parser == nil {
		return nil, fmt.Errorf("%w: no parser for %q", ErrInvalidBundle, a.path)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return a.parser.Parse(ctx, content)
}

// FSAdapter loads every supported file of a directory in a file system.
// fs.ReadDir yields files in name order; later files override earlier ones.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

// NewDirectoryAdapter loads translation files from a directory on disk.
func NewDirectoryAdapter(dir string) *FSAdapter {
	return NewFSAdapter(os.DirFS(dir), ".")
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}
	result := make(map[string]map[string]any)
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := NewParserForFile(entry.Name())
		if parser == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(a.dir, entry.Name())
		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		bundle, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		mergeBundles(result, bundle)
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoTranslations, a.dir)
	}
	return result, nil
}

// MultiAdapter merges the bundles of several adapters. Later adapters
// override keys of earlier ones; nested maps are merged key by key.
type MultiAdapter []TranslationAdapter

func (a MultiAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any)
	for _, adapter := range a {
		if adapter == nil {
			continue
		}
		bundle, err := adapter.Load(ctx)
		if err != nil {
			return nil, err
		}
		mergeBundles(result, bundle)
	}
	return result, nil
}

func mergeBundles(dst, src map[string]map[string]any) {
	for lang, translations := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any, len(translations))
		}
		mergeTree(dst[lang], translations)
	}
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		sv, srcIsMap := v.(map[string]any)
		dv, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeTree(dv, sv)
			continue
		}
		if srcIsMap {
			copied := make(map[string]any, len(sv))
			mergeTree(copied, sv)
			dst[k] = copied
			continue
		}
		dst[k] = v
	}
}

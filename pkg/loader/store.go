package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/blueprint"
)

// Extensions lists the file extensions a Store reads.
var Extensions = []string{".yaml", ".yml"}

// Store keeps the compiled blueprints of a directory tree. Names are file
// paths relative to the root, without extension ("user/register").
// It is safe for concurrent use; a failed reload keeps the previous set.
type Store struct {
	fsys fs.FS
	opts *options

	mu         sync.RWMutex
	blueprints map[string]*Blueprint
	schemas    map[string]*blueprint.Schema
}

// NewStore creates a store over fsys. Call Load before use.
func NewStore(fsys fs.FS, opts ...Option) *Store {
	return &Store{
		fsys:       fsys,
		opts:       newOptions(opts),
		blueprints: make(map[string]*Blueprint),
		schemas:    make(map[string]*blueprint.Schema),
	}
}

// NewDirectoryStore creates a store over a directory on disk.
func NewDirectoryStore(dir string, opts ...Option) *Store {
	return NewStore(os.DirFS(dir), opts...)
}

// Load reads, resolves and compiles every blueprint. Either all blueprints
// are replaced or none.
func (s *Store) Load(ctx context.Context) error {
	err := s.load(ctx)
	if s.opts.onReload != nil {
		s.opts.onReload(err)
	}
	return err
}

// Reload is Load under the name used by watchers.
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

func (s *Store) load(ctx context.Context) error {
	parsed, err := s.readAll(ctx)
	if err != nil {
		return err
	}
	if len(parsed) == 0 {
		return ErrNoBlueprints
	}

	resolved := make(map[string]*Blueprint, len(parsed))
	for _, name := range slices.Sorted(maps.Keys(parsed)) {
		if _, err := resolve(name, parsed, resolved, nil); err != nil {
			return err
		}
	}

	schemas := make(map[string]*blueprint.Schema, len(resolved))
	for name, bp := range resolved {
		schema, err := compile(bp, s.opts)
		if err != nil {
			return err
		}
		schemas[name] = schema
	}

	s.mu.Lock()
	s.blueprints = resolved
	s.schemas = schemas
	s.mu.Unlock()

	s.opts.logger.Info("blueprints loaded", slog.Int("count", len(schemas)))
	return nil
}

func (s *Store) readAll(ctx context.Context) (map[string]*Blueprint, error) {
	parsed := make(map[string]*Blueprint)
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Join(ErrLoadingCancelled, ctxErr)
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !slices.Contains(Extensions, ext) || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		b, err := fs.ReadFile(s.fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(p, path.Ext(p))
		bp, err := Parse(name, b)
		if err != nil {
			return err
		}
		parsed[name] = bp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

// resolve merges the extends chain of name into a single blueprint.
func resolve(name string, parsed, resolved map[string]*Blueprint, chain []string) (*Blueprint, error) {
	if bp, ok := resolved[name]; ok {
		return bp, nil
	}
	if slices.Contains(chain, name) {
		return nil, &FileError{Name: name, Err: fmt.Errorf("%w: %s", ErrExtendsCycle, strings.Join(append(chain, name), " -> "))}
	}

	bp, ok := parsed[name]
	if !ok {
		owner := name
		if len(chain) > 0 {
			owner = chain[len(chain)-1]
		}
		return nil, &FileError{Name: owner, Err: fmt.Errorf("%w: %s", ErrBlueprintNotFound, name)}
	}

	if bp.Extends != "" {
		parent, err := resolve(bp.Extends, parsed, resolved, append(chain, name))
		if err != nil {
			return nil, err
		}
		if bp, err = Extend(bp, parent); err != nil {
			return nil, err
		}
	}
	resolved[name] = bp
	return bp, nil
}

// Get returns the compiled schema of a blueprint.
func (s *Store) Get(name string) (*blueprint.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schema, ok := s.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlueprintNotFound, name)
	}
	return schema, nil
}

// Blueprint returns the resolved definition of a blueprint.
func (s *Store) Blueprint(name string) (*Blueprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bp, ok := s.blueprints[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBlueprintNotFound, name)
	}
	return bp, nil
}

// Names returns the loaded blueprint names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.schemas))
}

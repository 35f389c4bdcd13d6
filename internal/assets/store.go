package assets

import (
	"embed"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ski/internal/core"
)

//go:embed sprites/*.txt
var embedded embed.FS

// SpriteExt is the file extension of sprite files.
const SpriteExt = ".txt"

// Store caches sprites by name. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	dir    string
	colors map[string]core.Color
	cache  map[string]*Sprite
	warned map[string]bool
	logger *log.Logger
}

// Options configures a Store.
type Options struct {
	// Dir is the override directory; sprites are read from Dir/sprites/<name>.txt.
	// Empty disables file lookups.
	Dir string

	// Colors maps sprite names to config color names.
	Colors map[string]string

	// Logger receives fallback warnings. Nil discards them.
	Logger *log.Logger
}

// NewStore creates a sprite store.
func NewStore(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	colors := make(map[string]core.Color, len(opts.Colors))
	for name, cname := range opts.Colors {
		c, ok := core.ParseColor(cname)
		if !ok {
			logger.Warn("unknown sprite color", "sprite", name, "color", cname)
		}
		colors[name] = c
	}

	return &Store{
		dir:    opts.Dir,
		colors: colors,
		cache:  make(map[string]*Sprite),
		warned: make(map[string]bool),
		logger: logger,
	}
}

// SpriteDir returns the directory watched for sprite overrides, or empty.
func (s *Store) SpriteDir() string {
	if s.dir == "" {
		return ""
	}
	return filepath.Join(s.dir, "sprites")
}

// Sprite returns the named sprite, loading it on first use.
// It never returns nil.
func (s *Store) Sprite(name string) *Sprite {
	s.mu.RLock()
	sp, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return sp
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if sp, ok := s.cache[name]; ok {
		return sp
	}

	sp = s.resolve(name)
	if c, ok := s.colors[name]; ok && sp.Source != SourcePlaceholder {
		sp.Color = c
	}
	if sp.Source == SourcePlaceholder && !s.warned[name] {
		s.warned[name] = true
		s.logger.Warn("sprite not found, using placeholder", "name", name, "dir", s.SpriteDir())
	}
	s.cache[name] = sp
	return sp
}

// Size returns the sprite extent in board units.
func (s *Store) Size(name string, cellW, cellH int) (w, h int) {
	return s.Sprite(name).Size(cellW, cellH)
}

// resolve walks the lookup chain: override file, embedded, placeholder.
func (s *Store) resolve(name string) *Sprite {
	if dir := s.SpriteDir(); dir != "" {
		path := filepath.Join(dir, name+SpriteExt)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if sp, ok := parseSprite(name, data); ok {
				sp.Source = SourceFile
				return sp
			}
			s.logger.Warn("empty sprite file ignored", "path", path)
		case !os.IsNotExist(err):
			s.logger.Warn("cannot read sprite file", "path", path, "error", err)
		}
	}

	if data, err := embedded.ReadFile("sprites/" + name + SpriteExt); err == nil {
		if sp, ok := parseSprite(name, data); ok {
			sp.Source = SourceEmbedded
			return sp
		}
	}

	return placeholder(name)
}

// Reload drops a cached sprite; the next lookup reads it again.
func (s *Store) Reload(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, name)
	delete(s.warned, name)
}

// Entry describes how a sprite name resolves.
type Entry struct {
	Name   string
	Source Source
	Cols   int
	Rows   int
}

// Inventory resolves every name and reports its source, sorted by name.
func (s *Store) Inventory(names []string) []Entry {
	entries := make([]Entry, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		sp := s.Sprite(name)
		entries = append(entries, Entry{Name: name, Source: sp.Source, Cols: sp.Cols(), Rows: sp.Rows()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

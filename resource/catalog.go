package resource

import (
	"log/slog"
	"strings"
	"sync"
)

// Option configures a catalog.
type Option func(*options)

type options struct {
	log         *slog.Logger
	loadTexture func(path string) (*Texture, error)
	loadMesh    func(path string) (*Mesh, error)
}

// WithLogger sets the logger load failures are reported to.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTextureLoader replaces LoadTexture as the texture loader.
func WithTextureLoader(fn func(path string) (*Texture, error)) Option {
	return func(o *options) { o.loadTexture = fn }
}

// WithMeshLoader replaces LoadMesh as the mesh loader.
func WithMeshLoader(fn func(path string) (*Mesh, error)) Option {
	return func(o *options) { o.loadMesh = fn }
}

func newOptions(opts []Option) options {
	o := options{
		loadTexture: LoadTexture,
		loadMesh:    LoadMesh,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	return o
}

// catalog owns resources keyed by their lower cased path. Loading happens
// at most once per key, failed loads store the fallback.
type catalog[T any] struct {
	mu       sync.Mutex
	items    map[string]*T
	load     func(path string) (*T, error)
	fallback func() *T
	log      *slog.Logger
}

func (c *catalog[T]) get(path string) *T {
	key := strings.ToLower(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	if item, ok := c.items[key]; ok {
		return item
	}
	item, err := c.load(path)
	if err != nil || item == nil {
		c.log.Warn("resource load failed, using placeholder", "path", path, "error", err)
		item = c.fallback()
	} else {
		c.log.Debug("resource loaded", "path", path)
	}
	c.items[key] = item
	return item
}

func (c *catalog[T]) put(name string, item *T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[strings.ToLower(name)] = item
}

func (c *catalog[T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TextureCatalog loads and owns textures. It is safe for concurrent use.
type TextureCatalog struct {
	c catalog[Texture]
}

// NewTextureCatalog returns an empty texture catalog.
func NewTextureCatalog(opts ...Option) *TextureCatalog {
	o := newOptions(opts)
	return &TextureCatalog{c: catalog[Texture]{
		items:    make(map[string]*Texture),
		load:     o.loadTexture,
		fallback: Placeholder,
		log:      o.log,
	}}
}

// Get returns the texture at path, loading it on first use. Paths are
// case insensitive. If loading fails the placeholder texture is stored
// and returned; the error is logged, never returned.
func (tc *TextureCatalog) Get(path string) *Texture { return tc.c.get(path) }

// Add registers tex under name, replacing any previous entry.
func (tc *TextureCatalog) Add(name string, tex *Texture) { tc.c.put(name, tex) }

// Len returns the number of textures held.
func (tc *TextureCatalog) Len() int { return tc.c.len() }

// MeshCatalog loads and owns meshes. The unit cube is always available
// under CubeName. It is safe for concurrent use.
type MeshCatalog struct {
	c catalog[Mesh]
}

// NewMeshCatalog returns a catalog holding only the built in meshes.
func NewMeshCatalog(opts ...Option) *MeshCatalog {
	o := newOptions(opts)
	mc := &MeshCatalog{c: catalog[Mesh]{
		items:    make(map[string]*Mesh),
		load:     o.loadMesh,
		fallback: func() *Mesh { return &Mesh{} },
		log:      o.log,
	}}
	mc.Add(CubeName, Cube())
	return mc
}

// Get returns the mesh at path, loading it on first use. Paths are case
// insensitive. If loading fails an empty mesh is stored and returned; the
// error is logged, never returned.
func (mc *MeshCatalog) Get(path string) *Mesh { return mc.c.get(path) }

// Add registers m under name, replacing any previous entry.
func (mc *MeshCatalog) Add(name string, m *Mesh) { mc.c.put(name, m) }

// Len returns the number of meshes held, built in meshes included.
func (mc *MeshCatalog) Len() int { return mc.c.len() }

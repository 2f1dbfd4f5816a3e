package codec

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/waypoint/pkg/ports"
)

// Registry manages the available codecs, by name and by file extension.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]ports.Codec
	exts   map[string]string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]ports.Codec),
		exts:   make(map[string]string),
	}
}

// Default returns a registry holding the binary, JSON and YAML codecs.
func Default() *Registry {
	r := NewRegistry()
	r.Register(Binary{}, ".pb", ".bin", ".wpt")
	r.Register(JSON{}, ".json")
	r.Register(YAML{}, ".yaml", ".yml")
	return r
}

// Register adds a codec and the file extensions it handles.
// If a codec with the same name exists, it is overwritten.
func (r *Registry) Register(c ports.Codec, exts ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[c.Name()] = c
	for _, ext := range exts {
		r.exts[strings.ToLower(ext)] = c.Name()
	}
}

// ByName looks up a codec by name.
func (r *Registry) ByName(name string) (ports.Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("codec not found: %s", name)
	}
	return c, nil
}

// ForFile picks the codec registered for the extension of path.
func (r *Registry) ForFile(path string) (ports.Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	r.mu.RLock()
	name, ok := r.exts[ext]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}
	return r.ByName(name)
}

// Names lists the registered codec names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.codecs))
	for n := range r.codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = Default()

// ByName looks up a codec in the default registry.
func ByName(name string) (ports.Codec, error) { return defaultRegistry.ByName(name) }

// ForFile looks up a codec by file extension in the default registry.
func ForFile(path string) (ports.Codec, error) { return defaultRegistry.ForFile(path) }

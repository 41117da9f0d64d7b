package music

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// registry holds the globally registered Interface values, keyed by
// lowercase extension without the leading dot ("adx", not ".adx" or "ADX").
var registry = struct {
	mu         sync.RWMutex
	interfaces map[string]Interface
}{interfaces: make(map[string]Interface)}

// Register adds iface to the registry under each of its extensions,
// overwriting any prior registration for the same extension. It is meant to
// be called from an init func, mirroring how the original engine registered
// one static Mix_MusicInterface per compiled-in format.
func Register(iface Interface) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for _, ext := range iface.Extensions {
		registry.interfaces[normalizeExtension(ext)] = iface
	}
}

// Lookup returns the Interface registered for ext (with or without a
// leading dot), and whether one was found.
func Lookup(ext string) (Interface, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	iface, ok := registry.interfaces[normalizeExtension(ext)]
	return iface, ok
}

// Open dispatches to the Interface registered for path's extension and
// returns the Source it creates from src. Supported formats: whatever has
// called Register — at minimum the ADX plugin in this module.
func Open(path string, src ByteSource) (Source, error) {
	ext := filepath.Ext(path)
	iface, ok := Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("music: unsupported format %q", ext)
	}
	source, err := iface.CreateFromSource(src)
	if err != nil {
		return nil, fmt.Errorf("music: decode %s as %s: %w", path, iface.Name, err)
	}
	return source, nil
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

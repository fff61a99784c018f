// Package assets handles game asset loading and caching.
// Every asset path is relative to the configured root path.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // PNG decoder registration
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/font/opentype"
)

// Manager loads assets from a root directory and keeps them for reuse.
type Manager struct {
	root  string
	cache *Cache

	mu      sync.RWMutex
	decoded map[string]any
}

// NewManager creates an asset manager rooted at root.
func NewManager(root string) *Manager {
	return &Manager{
		root:    root,
		cache:   NewCache(),
		decoded: make(map[string]any),
	}
}

// Root returns the directory assets are loaded from.
func (m *Manager) Root() string {
	return m.root
}

// Load returns the raw bytes of a file under the root.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	full, err := m.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("loading asset %s: %w", path, err)
	}

	m.cache.Set(path, data)
	return data, nil
}

// Image loads and decodes a PNG, BMP or TGA image.
func (m *Manager) Image(path string) (image.Image, error) {
	return loadDecoded(m, "image:"+path, func() (image.Image, error) {
		data, err := m.Load(path)
		if err != nil {
			return nil, err
		}
		var img image.Image
		if strings.EqualFold(filepath.Ext(path), ".tga") {
			img, err = decodeTGA(data)
		} else {
			img, _, err = image.Decode(bytes.NewReader(data))
		}
		if err != nil {
			return nil, fmt.Errorf("decoding image %s: %w", path, err)
		}
		return img, nil
	})
}

// Font loads a TrueType or OpenType font.
func (m *Manager) Font(path string) (*opentype.Font, error) {
	return loadDecoded(m, "font:"+path, func() (*opentype.Font, error) {
		data, err := m.Load(path)
		if err != nil {
			return nil, err
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font %s: %w", path, err)
		}
		return f, nil
	})
}

// Sound returns WAV data for the audio package. Sounds are not decoded here
// since each playback needs its own stream.
func (m *Manager) Sound(path string) ([]byte, error) {
	return m.Load(path)
}

// Close drops every cached asset.
func (m *Manager) Close() {
	m.mu.Lock()
	m.decoded = make(map[string]any)
	m.mu.Unlock()
	m.cache.Clear()
}

// resolve joins path to the root, refusing paths that leave it.
func (m *Manager) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("asset path %q escapes root", path)
	}
	return filepath.Join(m.root, clean), nil
}

func loadDecoded[T any](m *Manager, key string, load func() (T, error)) (T, error) {
	m.mu.RLock()
	v, ok := m.decoded[key]
	m.mu.RUnlock()
	if ok {
		return v.(T), nil
	}

	asset, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	m.mu.Lock()
	m.decoded[key] = asset
	m.mu.Unlock()
	return asset, nil
}

// Cache is a simple in-memory cache for raw asset bytes.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

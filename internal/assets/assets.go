// Package assets loads and memoizes overlay icons.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"
)

var (
	// ErrAssetNotFound is returned when an icon path does not resolve to a file.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidAssetFormat is returned when a file does not decode to 3 or 4 channel 8-bit color.
	ErrInvalidAssetFormat = errors.New("invalid asset format")
)

// Cache loads images once per resolved path and keeps them for its lifetime.
// Returned Mats are owned by the cache and must not be closed by callers.
type Cache struct {
	dir    string
	mu     sync.Mutex
	images map[string]gocv.Mat
}

// NewCache creates a cache resolving relative names against dir.
func NewCache(dir string) *Cache {
	return &Cache{
		dir:    dir,
		images: make(map[string]gocv.Mat),
	}
}

// Dir returns the directory relative names are resolved against.
func (c *Cache) Dir() string {
	return c.dir
}

// Load returns the image for name, decoding it on first use.
func (c *Cache) Load(name string) (gocv.Mat, error) {
	path, err := c.resolve(name)
	if err != nil {
		return gocv.Mat{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.images[path]; ok {
		return img, nil
	}

	img := gocv.IMRead(path, gocv.IMReadUnchanged)
	if img.Empty() {
		img.Close()
		return gocv.Mat{}, fmt.Errorf("%w: %s could not be decoded", ErrInvalidAssetFormat, path)
	}
	if t := img.Type(); t != gocv.MatTypeCV8UC3 && t != gocv.MatTypeCV8UC4 {
		channels := img.Channels()
		img.Close()
		return gocv.Mat{}, fmt.Errorf("%w: %s has %d channels", ErrInvalidAssetFormat, path, channels)
	}

	c.images[path] = img
	return img, nil
}

// Len returns how many images are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Close releases every cached image.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for path, img := range c.images {
		img.Close()
		delete(c.images, path)
	}
	return nil
}

// resolve maps name to an absolute path with symlinks evaluated, so the same
// file reached through different names shares one cache entry.
func (c *Cache) resolve(name string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, name)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrAssetNotFound, abs)
		}
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, resolved)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrAssetNotFound, resolved)
	}

	return resolved, nil
}

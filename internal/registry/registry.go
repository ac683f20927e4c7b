// Package registry maps image container formats to their EXIF locators.
package registry

import (
	"sync"

	"github.com/simonhull/imagescore/internal/types"
)

// Locator finds the raw TIFF block embedded in a container.
type Locator interface {
	// Locate returns the TIFF block, types.ErrNoTagData when the container
	// carries none, or a typed error when the container is damaged.
	Locate(data []byte, path string) ([]byte, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(data []byte, path string) ([]byte, error)

// Locate calls f(data, path).
func (f LocatorFunc) Locate(data []byte, path string) ([]byte, error) {
	return f(data, path)
}

var (
	mu       sync.RWMutex
	locators = make(map[types.Format]Locator)
)

// Register registers a locator for a format, replacing any previous one.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, l Locator) {
	mu.Lock()
	defer mu.Unlock()
	locators[format] = l
}

// Get returns the locator for a given format.
// Returns nil if no locator is registered for the format.
func Get(format types.Format) Locator {
	mu.RLock()
	defer mu.RUnlock()
	return locators[format]
}

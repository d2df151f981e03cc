package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// cacheEntry is a decoded image and the format name image.Decode reported.
type cacheEntry struct {
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Once an image is loaded, subsequent Load calls for the same path return the
// cached copy without disk I/O. Cached images are treated as read-only by
// every caller in this module.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict or Clear.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/captures/panel-07.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache.Evict("/captures/panel-07.png") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cacheEntry
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cacheEntry),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP; the format is
// detected from the file contents, not the extension. The image is cached
// under the exact path string provided, so relative and absolute paths to
// the same file are separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	e := cacheEntry{img: img, format: format}
	c.mu.Lock()
	c.images[path] = e
	c.mu.Unlock()

	return e, nil
}

// Clear removes all images from the cache and returns how many were held.
func (c *ImageCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.images)
	c.images = make(map[string]cacheEntry)
	return n
}

// Evict removes a specific image from the cache by its path and reports
// whether it was cached.
func (c *ImageCache) Evict(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.images[path]
	delete(c.images, path)
	return ok
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that read the file: "png", "jpeg", "gif",
	// "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and reports its dimensions,
// format and file size.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := e.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        e.format,
		FileSizeBytes: stat.Size(),
	}, nil
}

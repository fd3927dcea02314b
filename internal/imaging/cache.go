package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"sync"
)

// BitmapCache provides thread-safe caching of decoded bitmaps to avoid
// redundant disk reads and format conversions.
//
// Load decodes the file once, converts it to the engine's 8-bit RGBA layout,
// and stores the resulting *Bitmap keyed by the exact path string. Subsequent
// Load calls for that path return the cached bitmap without disk I/O.
//
// BitmapCache is safe for concurrent use by multiple goroutines.
//
// # Sharing
//
// Load returns the cached bitmap itself, not a copy. Read-only operations
// (Recolor, Crop, Diff, sampling) can use it directly; callers that intend to
// mutate pixels, such as pipeline stages, must work on a Clone.
//
// # Memory Management
//
// Cached bitmaps remain in memory until removed via Evict or Clear. For
// long-running processes handling many images, consider periodic cleanup to
// prevent unbounded memory growth.
type BitmapCache struct {
	mu      sync.RWMutex
	bitmaps map[string]*Bitmap
}

// NewBitmapCache creates and initializes a new empty bitmap cache.
func NewBitmapCache() *BitmapCache {
	return &BitmapCache{
		bitmaps: make(map[string]*Bitmap),
	}
}

// Load retrieves a bitmap from the cache, decoding it from disk on a miss.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats
//     are PNG, JPEG, and GIF.
//
// Returns:
//   - *Bitmap: The decoded image in 8-bit RGBA layout with straight alpha.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The bitmap is cached using the exact path string provided. Different paths
// to the same file (relative vs absolute) result in separate cache entries.
func (c *BitmapCache) Load(path string) (*Bitmap, error) {
	c.mu.RLock()
	if b, ok := c.bitmaps[path]; ok {
		c.mu.RUnlock()
		return b, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := FromImage(img)

	c.mu.Lock()
	c.bitmaps[path] = b
	c.mu.Unlock()

	return b, nil
}

// Clear removes all bitmaps from the cache, freeing the associated memory.
// After Clear, all bitmaps must be reloaded from disk on subsequent Load calls.
func (c *BitmapCache) Clear() {
	c.mu.Lock()
	c.bitmaps = make(map[string]*Bitmap)
	c.mu.Unlock()
}

// Evict removes a specific bitmap from the cache by its path.
//
// If the path is not in the cache, this method does nothing. After eviction,
// the next Load call for this path reads from disk again. Evict is also the
// way to invalidate a path this process has just written, so a follow-up Load
// sees the new file contents instead of a stale entry.
func (c *BitmapCache) Evict(path string) {
	c.mu.Lock()
	delete(c.bitmaps, path)
	c.mu.Unlock()
}

// BitmapInfo contains metadata about a loaded image file as it appears to
// the engine after conversion.
type BitmapInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Stride is the byte distance between vertically adjacent pixels in the
	// converted bitmap.
	Stride int `json:"stride"`

	// Format is the detected source format: "png", "jpeg", "gif", or
	// "unknown". Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// HasTransparency indicates whether any pixel has alpha below 255.
	HasTransparency bool `json:"has_transparency"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadBitmapInfo loads an image through the cache and returns metadata about
// it: converted geometry, source format, transparency, and file size.
//
// Parameters:
//   - cache: The bitmap cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *BitmapInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be loaded or the file cannot be
//     stat'd.
//
// # Format Detection
//
// The format is determined by file extension:
//   - ".png" -> "png"
//   - ".jpg", ".jpeg" -> "jpeg"
//   - ".gif" -> "gif"
//   - Other extensions -> "unknown"
func LoadBitmapInfo(cache *BitmapCache, path string) (*BitmapInfo, error) {
	b, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	return &BitmapInfo{
		Width:           b.Width,
		Height:          b.Height,
		Stride:          b.Stride,
		Format:          format,
		HasTransparency: !b.Opaque(),
		FileSizeBytes:   stat.Size(),
	}, nil
}

// DimensionsResult contains the geometry of an image without the additional
// metadata provided by BitmapInfo.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Stride is the byte distance between vertically adjacent pixels.
	Stride int `json:"stride"`
}

// GetDimensions returns the dimensions of an image without extra metadata.
// The bitmap is loaded into the cache if not already present.
func GetDimensions(cache *BitmapCache, path string) (*DimensionsResult, error) {
	b, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	return &DimensionsResult{
		Width:  b.Width,
		Height: b.Height,
		Stride: b.Stride,
	}, nil
}

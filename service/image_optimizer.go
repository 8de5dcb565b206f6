package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

// ImageSize selects the output dimensions and quality of an optimized image
type ImageSize string

const (
	ImageThumb  ImageSize = "thumb"
	ImageMedium ImageSize = "medium"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

// ParseImageSize parses a size query value. Unknown or empty sizes default to medium.
func ParseImageSize(s string) ImageSize {
	switch ImageSize(strings.ToLower(strings.TrimSpace(s))) {
	case ImageThumb:
		return ImageThumb
	case ImageMedium, "":
		return ImageMedium
	default:
		log.Printf("⚠️  Unknown size '%s', defaulting to medium", s)
		return ImageMedium
	}
}

func (s ImageSize) limits() (maxDim, quality int) {
	if s == ImageThumb {
		return maxSizeThumb, qualityThumb
	}
	return maxSizeMedium, qualityMedium
}

// ImageCache stores optimized images on disk
type ImageCache struct {
	dir string
}

// NewImageCache creates the cache directory if it does not exist
func NewImageCache(dir string) (*ImageCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &ImageCache{dir: dir}, nil
}

// Path returns the cache file path for an item image, e.g. destinations_kashmir_thumb.jpg
func (c *ImageCache) Path(catalogName, id string, size ImageSize) string {
	filename := fmt.Sprintf("%s_%s_%s.jpg", catalogName, safeName(catalogName, id), size)
	return filepath.Join(c.dir, filename)
}

// Read returns cached bytes and whether the entry exists
func (c *ImageCache) Read(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, true, nil
}

// Save writes an image to the cache through a temp file so readers never see partial data
func (c *ImageCache) Save(path string, imageData []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".img-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(imageData); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Printf("✓ Image cached: %s", path)
	return nil
}

// safeName keeps ids usable as file names. Ids that had to be rewritten get a
// hash suffix so that e.g. "a.b" and "a-b" stay distinct.
func safeName(catalogName, id string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, id)
	if name == id {
		return name
	}
	sum := sha256.Sum256([]byte(catalogName + "/" + id))
	return name + "-" + hex.EncodeToString(sum[:4])
}

// OptimizeImage converts an image to JPEG, shrinking it to fit the size's max dimension.
// Images already within bounds keep their dimensions.
func OptimizeImage(imageData []byte, size ImageSize) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	maxDim, quality := size.limits()
	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		log.Printf("🔄 Resizing image: %dx%d to fit %dpx", bounds.Dx(), bounds.Dy(), maxDim)
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Printf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}

package colour

import (
	"errors"
	"fmt"
	"image"

	chromaimage "github.com/chromagen/chromagen/internal/image"
)

// Palette size and clustering defaults. Requested counts are clamped to
// [MinColours, MaxColours]; extraction never fails for being out of range.
const (
	DefaultColours = 10
	MinColours     = 3
	MaxColours     = 15

	DefaultSeed          = 42
	DefaultRestarts      = 10
	DefaultMaxIterations = 300
)

// ErrEmptyImage indicates the decoded image contains no pixels.
var ErrEmptyImage = errors.New("image contains no pixels")

// Extractor defines the interface for palette extraction algorithms.
type Extractor interface {
	// Extract extracts a ranked colour palette from an image.
	// The requested parameter is the desired number of colours, clamped
	// per the palette size bounds.
	Extract(img image.Image, requested int) (*Palette, error)
}

// Algorithm represents the palette extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses seeded k-means clustering.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans}
}

// ExtractorOptions holds tuning options for palette extraction.
// The zero value selects the defaults.
type ExtractorOptions struct {
	// Seed is the clustering RNG seed. Nil selects DefaultSeed; the
	// pipeline is deterministic for any fixed value.
	Seed *int64
	// Restarts is the number of independent k-means initialisations.
	Restarts int
	// MaxIterations bounds each k-means fit.
	MaxIterations int
}

// NewExtractor creates a new Extractor for the specified algorithm.
func NewExtractor(alg Algorithm, opts ExtractorOptions) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeansExtractor(opts), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractPalette is the core entry point: it decodes raw image bytes,
// normalises and bounds the pixel grid, and extracts a ranked palette of
// at most requested colours using the default seeded k-means settings.
//
// Failures are terminal and never retried: chromaimage.ErrDecode for
// undecodable bytes, ErrEmptyImage for a zero-pixel image. No partial
// palette is ever returned.
func ExtractPalette(data []byte, requested int) (*Palette, error) {
	return ExtractPaletteWithOptions(data, requested, ExtractorOptions{})
}

// ExtractPaletteWithOptions is ExtractPalette with explicit clustering
// options.
func ExtractPaletteWithOptions(data []byte, requested int, opts ExtractorOptions) (*Palette, error) {
	if requested <= 0 {
		requested = DefaultColours
	}

	img, err := chromaimage.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	normalised := chromaimage.Normalize(img)

	return NewKMeansExtractor(opts).Extract(normalised, requested)
}

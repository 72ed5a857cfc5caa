package output

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/df07/go-pathtracer/pkg/core"
)

// WriteError reports a failure to persist a rendered image
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write image %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NewImage converts a row-major buffer of gamma-encoded colors to an 8-bit image.
// Components are clamped to [0,1], scaled by 255 and truncated.
func NewImage(width, height int, pixels []core.Color) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("expected %d pixels for %dx%d image, got %d", width*height, width, height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, ToRGBA(pixels[y*width+x]))
		}
	}
	return img, nil
}

// ToRGBA quantizes a single color to 8 bits per channel
func ToRGBA(c core.Color) color.RGBA {
	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * c.R),
		G: uint8(255 * c.G),
		B: uint8(255 * c.B),
		A: 255,
	}
}

// SavePNG writes the image to path as a PNG file
func SavePNG(path string, img *image.RGBA) error {
	if err := gg.NewContextForRGBA(img).SavePNG(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// EncodePNG writes the image to w in PNG format
func EncodePNG(w io.Writer, img *image.RGBA) error {
	if err := gg.NewContextForRGBA(img).EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// LoadImage reads a PNG file back as linear [0,1] colors in row-major order
func LoadImage(path string) (width, height int, pixels []core.Color, err error) {
	img, err := gg.LoadPNG(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]core.Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}
	return width, height, pixels, nil
}

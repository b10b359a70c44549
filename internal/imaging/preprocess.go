// Package imaging turns uploaded image bytes into the float tensor the
// classifier expects.
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage marks input that could not be decoded as an image.
// Handlers map it to a client error.
var ErrInvalidImage = errors.New("invalid image")

// Decode reads and decodes an uploaded image in any registered format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return img, format, nil
}

// Preprocess resizes an image to size x size with Lanczos3 and returns
// HWC float32 data normalized to [0,1], matching the network's input
// layout. Deterministic: the same image always yields the same slice.
func Preprocess(img image.Image, size int) []float32 {
	if size <= 0 {
		return nil
	}

	resized := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	bounds := resized.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	data := make([]float32, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			idx := (y*width + x) * 3
			data[idx] = float32(r) / 65535.0
			data[idx+1] = float32(g) / 65535.0
			data[idx+2] = float32(b) / 65535.0
		}
	}

	return data
}

// Package export writes decoded RGB frames to image files.
package export

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/stillkit/stills/internal/config"
	"github.com/stillkit/stills/internal/errors"
)

// Options controls how a frame is written out.
type Options struct {
	Format config.Format
	// JPEGQuality applies to FormatJPEG only, 1-100.
	JPEGQuality int
	// Width scales the output to this width, preserving aspect ratio.
	// Zero keeps the source size.
	Width int
}

// RGBAFromRGB24 wraps a packed RGB24 buffer in an image.RGBA. The buffer
// layout is row-major with stride width*3 and no padding.
func RGBAFromRGB24(data []byte, width, height int) (*image.RGBA, error) {
	if len(data) < width*height*3 {
		return nil, fmt.Errorf("frame buffer too short: have %d, need %d", len(data), width*height*3)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := y * width * 3
		dst := y * img.Stride
		for x := 0; x < width; x++ {
			img.Pix[dst+0] = data[src+0]
			img.Pix[dst+1] = data[src+1]
			img.Pix[dst+2] = data[src+2]
			img.Pix[dst+3] = 0xff
			src += 3
			dst += 4
		}
	}
	return img, nil
}

// Resize scales an image to the target width, preserving aspect ratio, using
// bilinear interpolation. A target of 0 or the source width returns the input
// unchanged.
func Resize(img image.Image, targetWidth int) image.Image {
	bounds := img.Bounds()
	if targetWidth <= 0 || targetWidth == bounds.Dx() {
		return img
	}

	targetHeight := bounds.Dy() * targetWidth / bounds.Dx()
	if targetHeight < 1 {
		targetHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// WriteImage encodes an image to path in the configured format.
func WriteImage(img image.Image, path string, opts Options) error {
	if opts.Width > 0 {
		img = Resize(img, opts.Width)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("creating %s", path), err)
	}
	defer func() { _ = f.Close() }()

	switch opts.Format {
	case config.FormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = config.DefaultJPEGQuality
		}
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case config.FormatBMP:
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("encoding %s", path), err)
	}

	return f.Close()
}

// WriteRGB24 converts a packed RGB24 buffer and writes it to path.
func WriteRGB24(data []byte, width, height int, path string, opts Options) error {
	img, err := RGBAFromRGB24(data, width, height)
	if err != nil {
		return err
	}
	return WriteImage(img, path, opts)
}

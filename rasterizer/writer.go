package rasterizer

import (
	"image"
	"image/png"
	"io"

	"golang.org/x/image/tiff"
)

// Writer encodes a rendered page.
type Writer func(io.Writer, image.Image) error

// PNGWriter writes the image as a PNG file.
func PNGWriter() Writer {
	return func(w io.Writer, img image.Image) error {
		return png.Encode(w, img)
	}
}

// TIFFWriter writes the image as a TIFF file.
func TIFFWriter(opts *tiff.Options) Writer {
	return func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, opts)
	}
}

package rasterizer

import (
	"image"
	"image/color"

	"github.com/tdewolff/xps"
)

// brushImage is an infinite image that samples a brush at the center of each pixel.
type brushImage struct {
	brush *xps.Brush
	inv   xps.Matrix // pixel to brush space
}

func (g *brushImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (g *brushImage) Bounds() image.Rectangle {
	return image.Rectangle{image.Point{-1e9, -1e9}, image.Point{1e9, 1e9}}
}

func (g *brushImage) At(x, y int) color.Color {
	p := g.inv.Dot(xps.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
	return g.brush.At(p.X, p.Y)
}

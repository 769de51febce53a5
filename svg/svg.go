package svg

import (
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/tdewolff/xps"
)

// Options are the SVG output options.
type Options struct {
	Compression int // gzip compression level, zero for none
}

// DefaultOptions are the default options.
var DefaultOptions = Options{}

// SVG is a sink that writes scalable vector graphics. Clip regions are written as nested groups.
type SVG struct {
	w             io.Writer
	width, height float64
	opts          *Options
	ids           int
	depth         int
}

// New returns an SVG sink for a page of the given size in XPS units (1/96 inch).
func New(w io.Writer, width, height float64, opts *Options) *SVG {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}
	if opts.Compression != 0 {
		if opts.Compression < gzip.HuffmanOnly || gzip.BestCompression < opts.Compression {
			opts.Compression = -1
		}
		w, _ = gzip.NewWriterLevel(w, opts.Compression)
	}

	fmt.Fprintf(w, `<svg version="1.1" width="%v" height="%v" viewBox="0 0 %v %v" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`, dec(width), dec(height), dec(width), dec(height))
	return &SVG{
		w:      w,
		width:  width,
		height: height,
		opts:   opts,
	}
}

// Close closes open clip groups and finishes the SVG.
func (r *SVG) Close() error {
	for ; 0 < r.depth; r.depth-- {
		fmt.Fprintf(r.w, "</g>")
	}
	_, err := fmt.Fprintf(r.w, "</svg>")
	if r.opts.Compression != 0 {
		r.w.(*gzip.Writer).Close() // does not close underlying writer
	}
	return err
}

func (r *SVG) nextID(prefix string) string {
	r.ids++
	return fmt.Sprintf("%s%d", prefix, r.ids)
}

// FillGlyphs fills the outlines of a glyph run.
func (r *SVG) FillGlyphs(run *xps.GlyphRun, m xps.Matrix, col color.RGBA) {
	r.FillPath(run.Outline(xps.Identity), m, col)
}

// PushGlyphClip intersects the clip region with the outlines of a glyph run.
func (r *SVG) PushGlyphClip(run *xps.GlyphRun, m xps.Matrix) {
	r.PushClip(run.Outline(xps.Identity), m)
}

// FillPath fills a path.
func (r *SVG) FillPath(p *xps.Path, m xps.Matrix, col color.RGBA) {
	if col.A == 0 || p.IsEmpty() {
		return
	}
	fill, opacity := cssColor(col)
	fmt.Fprintf(r.w, `<path d="%s" fill="%s"`, toPathData(p.Transform(m)), fill)
	if opacity != 1.0 {
		fmt.Fprintf(r.w, ` fill-opacity="%v"`, dec(opacity))
	}
	if p.FillRule == xps.EvenOdd {
		fmt.Fprintf(r.w, ` fill-rule="evenodd"`)
	}
	fmt.Fprintf(r.w, `/>`)
}

// PushClip intersects the clip region with a path.
func (r *SVG) PushClip(p *xps.Path, m xps.Matrix) {
	id := r.nextID("c")
	fmt.Fprintf(r.w, `<clipPath id="%s"><path d="%s" clip-rule="%s"/></clipPath><g clip-path="url(#%s)">`, id, toPathData(p.Transform(m)), fillRule(p), id)
	r.depth++
}

// PopClip restores the previous clip region.
func (r *SVG) PopClip() {
	if 0 < r.depth {
		fmt.Fprintf(r.w, "</g>")
		r.depth--
	}
}

// PaintBrush paints a brush over the clip region.
func (r *SVG) PaintBrush(b *xps.Brush, m xps.Matrix) {
	m = m.Mul(b.Transform)
	switch b.Kind {
	case xps.SolidColorBrush:
		fill, opacity := cssColor(b.SolidColor())
		fmt.Fprintf(r.w, `<rect width="%v" height="%v" fill="%s" fill-opacity="%v"/>`, dec(r.width), dec(r.height), fill, dec(opacity))
	case xps.LinearGradientBrush, xps.RadialGradientBrush:
		id := r.writeGradient(b, m)
		fmt.Fprintf(r.w, `<rect width="%v" height="%v" fill="url(#%s)"`, dec(r.width), dec(r.height), id)
		if b.Opacity != 1.0 {
			fmt.Fprintf(r.w, ` fill-opacity="%v"`, dec(b.Opacity))
		}
		fmt.Fprintf(r.w, `/>`)
	case xps.ImageBrush:
		r.writeImage(b, m)
	}
}

func (r *SVG) writeGradient(b *xps.Brush, m xps.Matrix) string {
	id := r.nextID("g")
	spread := "pad"
	if b.SpreadMethod == xps.ReflectSpread {
		spread = "reflect"
	} else if b.SpreadMethod == xps.RepeatSpread {
		spread = "repeat"
	}

	tag := "linearGradient"
	if b.Kind == xps.LinearGradientBrush {
		fmt.Fprintf(r.w, `<defs><linearGradient id="%s" gradientUnits="userSpaceOnUse" spreadMethod="%s" gradientTransform="%s" x1="%v" y1="%v" x2="%v" y2="%v">`, id, spread, matrixAttr(m), dec(b.Start.X), dec(b.Start.Y), dec(b.End.X), dec(b.End.Y))
	} else {
		// SVG radial gradients are circular, an elliptical one is scaled vertically
		tag = "radialGradient"
		ratio := 1.0
		if b.RadiusX != 0.0 {
			ratio = b.RadiusY / b.RadiusX
		}
		fy := b.Origin.Y
		if ratio != 0.0 {
			fy = b.Center.Y + (b.Origin.Y-b.Center.Y)/ratio
			m = m.Translate(b.Center.X, b.Center.Y).Scale(1.0, ratio).Translate(-b.Center.X, -b.Center.Y)
		}
		fmt.Fprintf(r.w, `<defs><radialGradient id="%s" gradientUnits="userSpaceOnUse" spreadMethod="%s" gradientTransform="%s" cx="%v" cy="%v" r="%v" fx="%v" fy="%v">`, id, spread, matrixAttr(m), dec(b.Center.X), dec(b.Center.Y), dec(b.RadiusX), dec(b.Origin.X), dec(fy))
	}
	for _, stop := range b.Stops {
		col, opacity := cssColor(stop.Color)
		fmt.Fprintf(r.w, `<stop offset="%v" stop-color="%s"`, dec(stop.Offset), col)
		if opacity != 1.0 {
			fmt.Fprintf(r.w, ` stop-opacity="%v"`, dec(opacity))
		}
		fmt.Fprintf(r.w, `/>`)
	}
	fmt.Fprintf(r.w, `</%s></defs>`, tag)
	return id
}

func (r *SVG) writeImage(b *xps.Brush, m xps.Matrix) {
	img := viewboxImage(b)
	if img == nil || b.Viewport.W == 0.0 || b.Viewport.H == 0.0 {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scale := xps.Identity.Scale(b.Viewport.W/float64(w), b.Viewport.H/float64(h))
	if b.TileMode == xps.NoTile {
		fmt.Fprintf(r.w, `<image transform="%s" width="%d" height="%d"`, matrixAttr(m.Translate(b.Viewport.X, b.Viewport.Y).Mul(scale)), w, h)
		if b.Opacity != 1.0 {
			fmt.Fprintf(r.w, ` opacity="%v"`, dec(b.Opacity))
		}
		r.writeImageData(img)
		fmt.Fprintf(r.w, `/>`)
		return
	}

	// a pattern tile holds the image and its mirrored copies
	flipX := b.TileMode == xps.FlipX || b.TileMode == xps.FlipXY
	flipY := b.TileMode == xps.FlipY || b.TileMode == xps.FlipXY
	tileW, tileH := b.Viewport.W, b.Viewport.H
	if flipX {
		tileW *= 2.0
	}
	if flipY {
		tileH *= 2.0
	}

	id := r.nextID("p")
	imageID := r.nextID("i")
	fmt.Fprintf(r.w, `<defs><pattern id="%s" patternUnits="userSpaceOnUse" patternTransform="%s" x="%v" y="%v" width="%v" height="%v">`, id, matrixAttr(m), dec(b.Viewport.X), dec(b.Viewport.Y), dec(tileW), dec(tileH))
	fmt.Fprintf(r.w, `<image id="%s" transform="%s" width="%d" height="%d"`, imageID, matrixAttr(scale), w, h)
	r.writeImageData(img)
	fmt.Fprintf(r.w, `/>`)
	if flipX {
		fmt.Fprintf(r.w, `<use xlink:href="#%s" transform="%s"/>`, imageID, matrixAttr(xps.Identity.Translate(tileW, 0.0).Scale(-1.0, 1.0)))
	}
	if flipY {
		fmt.Fprintf(r.w, `<use xlink:href="#%s" transform="%s"/>`, imageID, matrixAttr(xps.Identity.Translate(0.0, tileH).Scale(1.0, -1.0)))
	}
	if flipX && flipY {
		fmt.Fprintf(r.w, `<use xlink:href="#%s" transform="%s"/>`, imageID, matrixAttr(xps.Identity.Translate(tileW, tileH).Scale(-1.0, -1.0)))
	}
	fmt.Fprintf(r.w, `</pattern></defs><rect width="%v" height="%v" fill="url(#%s)"`, dec(r.width), dec(r.height), id)
	if b.Opacity != 1.0 {
		fmt.Fprintf(r.w, ` fill-opacity="%v"`, dec(b.Opacity))
	}
	fmt.Fprintf(r.w, `/>`)
}

// viewboxImage crops the brush image to its viewbox, it returns nil if nothing remains.
func viewboxImage(b *xps.Brush) *image.RGBA {
	if b.Image == nil || b.Viewbox.W == 0.0 || b.Viewbox.H == 0.0 {
		return nil
	}
	src := b.Image.Bounds()
	crop := image.Rect(int(b.Viewbox.X), int(b.Viewbox.Y), int(b.Viewbox.X+b.Viewbox.W+0.5), int(b.Viewbox.Y+b.Viewbox.H+0.5)).Add(src.Min).Intersect(src)
	if crop.Empty() {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	for y := 0; y < crop.Dy(); y++ {
		for x := 0; x < crop.Dx(); x++ {
			img.Set(x, y, b.Image.At(crop.Min.X+x, crop.Min.Y+y))
		}
	}
	return img
}

func (r *SVG) writeImageData(img image.Image) {
	fmt.Fprintf(r.w, ` xlink:href="data:image/png;base64,`)
	encoder := base64.NewEncoder(base64.StdEncoding, r.w)
	if err := png.Encode(encoder, img); err != nil {
		xps.Logger().Warn("cannot encode image", "error", err)
	}
	encoder.Close()
	fmt.Fprintf(r.w, `"`)
}

package rasterizer

import (
	"image"
	"image/color"

	"github.com/tdewolff/xps"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// Options are the rasterization options.
type Options struct {
	DPI float64 // dots per inch, XPS coordinates are in 1/96 inch
}

// DefaultOptions are the default options.
var DefaultOptions = Options{
	DPI: 96.0,
}

// Rasterizer is a sink that draws to an image whose bounds start at the origin. Clip regions are kept as a stack of alpha masks.
type Rasterizer struct {
	img   draw.Image
	scale float64
	clips []*image.Alpha
}

// New returns a rasterizer that draws to img. Options may be nil to use DefaultOptions.
func New(img draw.Image, opts *Options) *Rasterizer {
	if opts == nil {
		opts = &DefaultOptions
	}
	return &Rasterizer{
		img:   img,
		scale: opts.DPI / 96.0,
	}
}

// NewImage returns an opaque white image for a page of the given size in XPS units.
func NewImage(width, height float64, opts *Options) *image.RGBA {
	if opts == nil {
		opts = &DefaultOptions
	}
	scale := opts.DPI / 96.0
	img := image.NewRGBA(image.Rect(0, 0, int(width*scale+0.5), int(height*scale+0.5)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func (r *Rasterizer) view(m xps.Matrix) xps.Matrix {
	return xps.Identity.Scale(r.scale, r.scale).Mul(m)
}

// coverage rasterizes the path to an alpha mask of the size of the image. The rasterizer fills using the non-zero winding rule.
func (r *Rasterizer) coverage(p *xps.Path, m xps.Matrix) *image.Alpha {
	size := r.img.Bounds().Size()
	ras := vector.NewRasterizer(size.X, size.Y)
	p.Transform(r.view(m)).Replay(&pather{ras: ras})

	mask := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	if clip := r.clip(); clip != nil {
		intersect(mask, clip)
	}
	return mask
}

func (r *Rasterizer) clip() *image.Alpha {
	if len(r.clips) == 0 {
		return nil
	}
	return r.clips[len(r.clips)-1]
}

func (r *Rasterizer) fill(mask *image.Alpha, src image.Image) {
	if mask == nil {
		draw.Draw(r.img, r.img.Bounds(), src, image.Point{}, draw.Over)
		return
	}
	draw.DrawMask(r.img, r.img.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
}

// FillGlyphs fills the outlines of a glyph run.
func (r *Rasterizer) FillGlyphs(run *xps.GlyphRun, m xps.Matrix, col color.RGBA) {
	r.FillPath(run.Outline(xps.Identity), m, col)
}

// PushGlyphClip intersects the clip region with the outlines of a glyph run.
func (r *Rasterizer) PushGlyphClip(run *xps.GlyphRun, m xps.Matrix) {
	r.PushClip(run.Outline(xps.Identity), m)
}

// FillPath fills a path.
func (r *Rasterizer) FillPath(p *xps.Path, m xps.Matrix, col color.RGBA) {
	if col.A == 0 || p.IsEmpty() {
		return
	}
	r.fill(r.coverage(p, m), image.NewUniform(col))
}

// PushClip intersects the clip region with a path.
func (r *Rasterizer) PushClip(p *xps.Path, m xps.Matrix) {
	r.clips = append(r.clips, r.coverage(p, m))
}

// PopClip restores the previous clip region.
func (r *Rasterizer) PopClip() {
	if len(r.clips) != 0 {
		r.clips = r.clips[:len(r.clips)-1]
	}
}

// PaintBrush paints a brush over the clip region.
func (r *Rasterizer) PaintBrush(b *xps.Brush, m xps.Matrix) {
	m = r.view(m).Mul(b.Transform)
	if b.IsSolid() {
		r.fill(r.clip(), image.NewUniform(b.SolidColor()))
		return
	} else if b.Kind == xps.ImageBrush && b.TileMode == xps.NoTile && b.Image != nil && b.Opacity == 1.0 {
		r.drawImage(b, m)
		return
	}

	inv, ok := m.Inv()
	if !ok {
		return
	}
	r.fill(r.clip(), &brushImage{brush: b, inv: inv})
}

// drawImage draws an untiled image brush mapping its viewbox to its viewport.
func (r *Rasterizer) drawImage(b *xps.Brush, m xps.Matrix) {
	if b.Viewbox.W == 0.0 || b.Viewbox.H == 0.0 {
		return
	}
	src := b.Image.Bounds()
	m = m.Translate(b.Viewport.X, b.Viewport.Y).Scale(b.Viewport.W/b.Viewbox.W, b.Viewport.H/b.Viewbox.H).Translate(-b.Viewbox.X-float64(src.Min.X), -b.Viewbox.Y-float64(src.Min.Y))
	srcRect := image.Rect(int(b.Viewbox.X), int(b.Viewbox.Y), int(b.Viewbox.X+b.Viewbox.W+0.5), int(b.Viewbox.Y+b.Viewbox.H+0.5)).Add(src.Min).Intersect(src)

	aff3 := f64.Aff3{m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2]}
	opts := &draw.Options{}
	if clip := r.clip(); clip != nil {
		opts.DstMask = clip
	}
	draw.BiLinear.Transform(r.img, aff3, b.Image, srcRect, draw.Over, opts)
}

// intersect multiplies the coverage of mask by clip.
func intersect(mask, clip *image.Alpha) {
	for i := range mask.Pix {
		if i < len(clip.Pix) {
			mask.Pix[i] = uint8((uint16(mask.Pix[i])*uint16(clip.Pix[i]) + 127) / 255)
		}
	}
}

// pather feeds path segments to a vector.Rasterizer.
type pather struct {
	ras *vector.Rasterizer
}

func (p *pather) MoveTo(x, y float64) {
	p.ras.MoveTo(float32(x), float32(y))
}

func (p *pather) LineTo(x, y float64) {
	p.ras.LineTo(float32(x), float32(y))
}

func (p *pather) QuadTo(x1, y1, x, y float64) {
	p.ras.QuadTo(float32(x1), float32(y1), float32(x), float32(y))
}

func (p *pather) CubeTo(x1, y1, x2, y2, x, y float64) {
	p.ras.CubeTo(float32(x1), float32(y1), float32(x2), float32(y2), float32(x), float32(y))
}

func (p *pather) Close() {
	p.ras.ClosePath()
}

package xps

import (
	"image/color"
)

// Sink receives the rendering operations of a page. Matrices map element coordinates to page coordinates (1/96 inch, y-axis down).
type Sink interface {
	// FillGlyphs fills the outlines of a glyph run.
	FillGlyphs(run *GlyphRun, m Matrix, col color.RGBA)
	// PushGlyphClip intersects the clip region with the outlines of a glyph run.
	PushGlyphClip(run *GlyphRun, m Matrix)
	// FillPath fills a path.
	FillPath(p *Path, m Matrix, col color.RGBA)
	// PushClip intersects the clip region with a path.
	PushClip(p *Path, m Matrix)
	// PaintBrush paints a brush over the entire clip region.
	PaintBrush(b *Brush, m Matrix)
	// PopClip restores the clip region of before the last push.
	PopClip()
}

// Options are the rendering options.
type Options struct {
	Parsers []string // font parsers in order of preference, see RegisterParser
}

// DefaultOptions are the default rendering options.
var DefaultOptions = Options{
	Parsers: DefaultParsers,
}

// Context renders the elements of an XPS package to a sink. It owns the font cache, which lives as long as the context. A context is not safe for concurrent use, but contexts may share a font cache.
type Context struct {
	pkg   *Package
	sink  Sink
	fonts *FontCache
}

// NewContext returns a rendering context with its own font cache. Options may be nil to use DefaultOptions.
func NewContext(pkg *Package, sink Sink, opts *Options) *Context {
	if opts == nil {
		opts = &DefaultOptions
	}
	return &Context{
		pkg:   pkg,
		sink:  sink,
		fonts: NewFontCache(pkg, opts.Parsers),
	}
}

// NewContextWithCache returns a rendering context that shares a font cache.
func NewContextWithCache(pkg *Package, sink Sink, fonts *FontCache) *Context {
	return &Context{
		pkg:   pkg,
		sink:  sink,
		fonts: fonts,
	}
}

// Package returns the package being rendered.
func (ctx *Context) Package() *Package {
	return ctx.pkg
}

// Fonts returns the font cache.
func (ctx *Context) Fonts() *FontCache {
	return ctx.fonts
}

// Close releases the font cache.
func (ctx *Context) Close() {
	ctx.fonts.Close()
}

package xps

import (
	"fmt"
	"image/color"
	"math"
)

// RenderGlyphs renders a Glyphs element, with baseURI the directory that relative part names are resolved against and m the current transformation. The glyph run is laid out once and is used either to fill with a solid color or as a clip mask to paint any other brush through.
//
// Errors are logged and returned, they only concern this element. A run without Indices and UnicodeString draws nothing and is not an error.
func (ctx *Context) RenderGlyphs(baseURI string, dict *ResourceDictionary, m Matrix, elem *Element) error {
	if err := ctx.renderGlyphs(baseURI, dict, m, elem); err != nil {
		Logger().Warn("skipping glyphs", "error", err)
		return err
	}
	return nil
}

type glyphsAttrs struct {
	bidiLevel   string
	fill        string
	size        string
	fontURI     string
	originX     string
	originY     string
	sideways    string
	indices     string
	unicode     string
	simulations string
	transform   string
	clip        string
	opacity     string
	opacityMask string

	hasFill, hasSize, hasFontURI, hasOriginX, hasOriginY bool
	hasIndices, hasUnicode, hasTransform, hasClip       bool
	hasOpacityMask                                      bool
}

func (ctx *Context) renderGlyphs(baseURI string, dict *ResourceDictionary, m Matrix, elem *Element) error {
	var a glyphsAttrs
	a.bidiLevel, _ = elem.Attr("BidiLevel")
	a.fill, a.hasFill = elem.Attr("Fill")
	a.size, a.hasSize = elem.Attr("FontRenderingEmSize")
	a.fontURI, a.hasFontURI = elem.Attr("FontUri")
	a.originX, a.hasOriginX = elem.Attr("OriginX")
	a.originY, a.hasOriginY = elem.Attr("OriginY")
	a.sideways, _ = elem.Attr("IsSideways")
	a.indices, a.hasIndices = elem.Attr("Indices")
	a.unicode, a.hasUnicode = elem.Attr("UnicodeString")
	a.simulations, _ = elem.Attr("StyleSimulations")
	a.transform, a.hasTransform = elem.Attr("RenderTransform")
	a.clip, a.hasClip = elem.Attr("Clip")
	a.opacity, _ = elem.Attr("Opacity")
	_, a.hasOpacityMask = elem.Attr("OpacityMask")

	transformTag := elem.Property("RenderTransform")
	clipTag := elem.Property("Clip")
	fillTag := elem.Property("Fill")
	opacityMaskTag := elem.Property("OpacityMask")

	// resource references
	fillURI := baseURI
	if a.hasFill {
		if res, base, ok := dict.Resolve(a.fill); ok {
			fillTag, fillURI = res, base
			a.hasFill = false
		} else if _, isRef := staticResourceKey(a.fill); isRef {
			return fmt.Errorf("%w: %s", ErrResourceNotFound, a.fill)
		}
	}
	if a.hasTransform {
		if res, _, ok := dict.Resolve(a.transform); ok {
			transformTag = res
			a.hasTransform = false
		}
	}
	if a.hasClip {
		if res, _, ok := dict.Resolve(a.clip); ok {
			clipTag = res
			a.hasClip = false
		}
	}

	if !a.hasSize || !a.hasFontURI || !a.hasOriginX || !a.hasOriginY {
		return fmt.Errorf("%w: Glyphs requires FontRenderingEmSize, FontUri, OriginX and OriginY", ErrMissingAttribute)
	} else if !a.hasIndices && !a.hasUnicode {
		return nil
	}

	size, ok := parseFloat(a.size)
	if !ok {
		return fmt.Errorf("bad FontRenderingEmSize %q", a.size)
	}
	originX, okX := parseFloat(a.originX)
	originY, okY := parseFloat(a.originY)
	if !okX || !okY {
		return fmt.Errorf("bad origin %q,%q", a.originX, a.originY)
	}
	sideways := a.sideways == "true"
	bidiLevel, _ := parseInt(a.bidiLevel)

	font, err := ctx.fonts.Resolve(baseURI, a.fontURI)
	if err != nil {
		return err
	}

	// transform, the property element overrides the attribute
	if a.hasTransform || transformTag != nil && transformTag.Name == "MatrixTransform" {
		val := a.transform
		if transformTag != nil && transformTag.Name == "MatrixTransform" {
			val, _ = transformTag.Attr("Matrix")
		}
		transform, err := ParseMatrix(val)
		if err != nil {
			return err
		}
		m = m.Mul(transform)
	}

	// clip
	if a.hasClip || clipTag != nil {
		clip, err := ParseGeometry(a.clip, clipTag)
		if err != nil {
			return err
		}
		ctx.sink.PushClip(clip, m)
		defer ctx.sink.PopClip()
	}

	opacity := 1.0
	if a.opacity != "" {
		if opacity, ok = parseFloat(a.opacity); !ok {
			return fmt.Errorf("bad Opacity %q", a.opacity)
		}
		opacity = math.Min(math.Max(opacity, 0.0), 1.0)
	}
	if a.hasOpacityMask || opacityMaskTag != nil {
		Logger().Debug("opacity mask is not supported", "font", font.Name)
	}

	// fill
	var col color.RGBA
	var brush *Brush
	hasColor := false
	if a.hasFill {
		if col, err = ParseColor(a.fill); err != nil {
			return err
		}
		hasColor = true
	}
	if fillTag != nil {
		if brush, err = ParseBrush(ctx.pkg, fillURI, fillTag); err != nil {
			return err
		} else if brush.IsSolid() {
			col, hasColor = brush.SolidColor(), true
			brush = nil
		}
	}
	if !hasColor && brush == nil {
		return nil
	}

	tokens, err := ParseIndices(a.indices, a.unicode)
	if err != nil {
		return err
	}
	run := Layout(font, size, Point{originX, originY}, sideways, bidiLevel, tokens.Glyphs)
	switch a.simulations {
	case "ItalicSimulation", "BoldItalicSimulation":
		run.Matrix = run.Matrix.Shear(italicShear, 0.0)
	}
	if a.simulations == "BoldSimulation" || a.simulations == "BoldItalicSimulation" {
		Logger().Debug("bold simulation is not supported", "font", font.Name)
	}

	if hasColor {
		ctx.sink.FillGlyphs(run, m, MulAlpha(col, opacity))
	}
	if brush != nil {
		brush.Opacity *= opacity
		ctx.sink.PushGlyphClip(run, m)
		ctx.sink.PaintBrush(brush, m)
		ctx.sink.PopClip()
	}
	return nil
}

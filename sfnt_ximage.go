package xps

import (
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageProgram wraps golang.org/x/image/font/sfnt. That package does not expose the cmap encoding records, so fonts parsed by it never have a selected encoding and use its default Unicode mapping.
type ximageProgram struct {
	f    *sfnt.Font
	ppem fixed.Int26_6
}

// ParseXImageSFNT parses TrueType, OpenType and collection data using golang.org/x/image/font/sfnt.
func ParseXImageSFNT(b []byte, index int) (FontProgram, error) {
	collection, err := sfnt.ParseCollection(b)
	if err != nil {
		return nil, err
	}
	f, err := collection.Font(index)
	if err != nil {
		return nil, err
	}
	// ppem equal to units per em yields outlines and metrics in font units
	return &ximageProgram{
		f:    f,
		ppem: fixed.I(int(f.UnitsPerEm())),
	}, nil
}

func (p *ximageProgram) Encodings() []Encoding {
	return nil
}

func (p *ximageProgram) Lookup(encoding int, code rune) (uint16, bool) {
	glyphID, err := p.f.GlyphIndex(nil, code)
	if err != nil || glyphID == 0 {
		return 0, false
	}
	return uint16(glyphID), true
}

func (p *ximageProgram) UnitsPerEm() uint16 {
	return uint16(p.f.UnitsPerEm())
}

func (p *ximageProgram) NumGlyphs() uint16 {
	return uint16(p.f.NumGlyphs())
}

func (p *ximageProgram) Advance(glyphID uint16) uint16 {
	adv, err := p.f.GlyphAdvance(nil, sfnt.GlyphIndex(glyphID), p.ppem, xfont.HintingNone)
	if err != nil || adv < 0 {
		return 0
	}
	return uint16(adv.Round())
}

func (p *ximageProgram) VerticalAdvance(glyphID uint16) uint16 {
	return p.UnitsPerEm()
}

func (p *ximageProgram) Ascender() int16 {
	metrics, err := p.f.Metrics(nil, p.ppem, xfont.HintingNone)
	if err != nil {
		return 0
	}
	return int16(metrics.Ascent.Round())
}

func (p *ximageProgram) GlyphPath(dst Pather, glyphID uint16, x, y, scale float64) error {
	segments, err := p.f.LoadGlyph(nil, sfnt.GlyphIndex(glyphID), p.ppem, nil)
	if err != nil {
		return err
	}

	// segments have the y-axis pointing down
	pt := func(q fixed.Point26_6) (float64, float64) {
		return x + scale*float64(q.X)/64.0, y - scale*float64(q.Y)/64.0
	}
	open := false
	for _, segment := range segments {
		switch segment.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				dst.Close()
			}
			dst.MoveTo(pt(segment.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			dst.LineTo(pt(segment.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(segment.Args[0])
			x2, y2 := pt(segment.Args[1])
			dst.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(segment.Args[0])
			x2, y2 := pt(segment.Args[1])
			x3, y3 := pt(segment.Args[2])
			dst.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	if open {
		dst.Close()
	}
	return nil
}

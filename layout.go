package xps

import (
	"math"
)

// PlacedGlyph is a glyph and its origin in the coordinate system of the Glyphs element.
type PlacedGlyph struct {
	ID       int
	CharCode rune
	X, Y     float64
}

// GlyphRun is a sequence of positioned glyphs of a single font and size. Matrix maps the glyph outlines (em units, y-axis up) to the element's coordinate system relative to each glyph origin.
type GlyphRun struct {
	Font     *Font
	Size     float64
	Matrix   Matrix
	Sideways bool
	Glyphs   []PlacedGlyph
}

// Layout positions the glyph tokens starting at origin. It only depends on its arguments, calling it twice with the same input gives the same run.
//
// Advances and offsets are in hundredths of the em size. Sideways glyphs are rotated and advance by their vertical advance, an odd bidi level denotes right-to-left text which advances to the left and mirrors the horizontal offset.
func Layout(font *Font, size float64, origin Point, sideways bool, bidiLevel int, tokens []GlyphToken) *GlyphRun {
	run := &GlyphRun{
		Font:     font,
		Size:     size,
		Matrix:   Identity.Scale(size, -size),
		Sideways: sideways,
		Glyphs:   make([]PlacedGlyph, 0, len(tokens)),
	}
	if sideways {
		run.Matrix = Identity.Rotate(90.0).Scale(-size, size)
	}
	rtl := bidiLevel&1 == 1

	x, y := origin.X, origin.Y
	for _, token := range tokens {
		glyphID := token.Index
		if !token.HasIndex {
			glyphID = font.GlyphIndex(token.CharCode)
		}
		metrics := font.Metrics(glyphID)

		var advance float64
		if sideways {
			advance = metrics.VAdvance * 100.0
		} else if rtl {
			advance = -metrics.HAdvance * 100.0
		} else {
			advance = metrics.HAdvance * 100.0
		}
		if token.HasAdvance {
			advance = token.Advance
		}

		u, v := token.UOffset, token.VOffset
		if rtl {
			u = -metrics.HAdvance*100.0 - u
		}
		u *= 0.01 * size
		v *= 0.01 * size

		glyph := PlacedGlyph{
			ID:       glyphID,
			CharCode: token.CharCode,
		}
		if sideways {
			glyph.X = x + u + metrics.VOrigin*size
			glyph.Y = y - v + metrics.HAdvance*0.5*size
		} else {
			glyph.X = x + u
			glyph.Y = y - v
		}
		run.Glyphs = append(run.Glyphs, glyph)

		x += advance * 0.01 * size
	}
	return run
}

// italicShear is the horizontal shear of simulated italics, a slant of 20 degrees.
var italicShear = math.Tan(20.0 * math.Pi / 180.0)

// Outline returns the outlines of all glyphs transformed by m. Glyphs whose outline cannot be read are skipped.
func (run *GlyphRun) Outline(m Matrix) *Path {
	p := &Path{FillRule: NonZero}
	outlines := map[int]*Path{}
	for _, glyph := range run.Glyphs {
		outline, ok := outlines[glyph.ID]
		if !ok {
			var err error
			if outline, err = run.Font.GlyphPath(glyph.ID); err != nil {
				Logger().Debug("bad glyph outline", "font", run.Font.Name, "glyph", glyph.ID, "error", err)
			}
			outlines[glyph.ID] = outline
		}
		if outline.IsEmpty() {
			continue
		}
		p.Append(outline.Transform(m.Translate(glyph.X, glyph.Y).Mul(run.Matrix)))
	}
	return p
}

package xps

import (
	"github.com/tdewolff/font"
)

type sfntProgram struct {
	sfnt *font.SFNT
}

// ParseSFNT parses TrueType, OpenType and TrueType collection data using github.com/tdewolff/font.
func ParseSFNT(b []byte, index int) (FontProgram, error) {
	sfnt, err := font.ParseSFNT(b, index)
	if err != nil {
		return nil, err
	}
	return &sfntProgram{sfnt}, nil
}

func (p *sfntProgram) Encodings() []Encoding {
	if p.sfnt.Cmap == nil {
		return nil
	}
	encodings := make([]Encoding, 0, len(p.sfnt.Cmap.EncodingRecords))
	for _, record := range p.sfnt.Cmap.EncodingRecords {
		encodings = append(encodings, Encoding{uint16(record.PlatformID), uint16(record.EncodingID)})
	}
	return encodings
}

func (p *sfntProgram) Lookup(encoding int, code rune) (uint16, bool) {
	if p.sfnt.Cmap == nil {
		return 0, false
	} else if encoding < 0 || len(p.sfnt.Cmap.EncodingRecords) <= encoding {
		glyphID := p.sfnt.GlyphIndex(code)
		return glyphID, glyphID != 0
	}
	subtable := int(p.sfnt.Cmap.EncodingRecords[encoding].Subtable)
	if subtable < 0 || len(p.sfnt.Cmap.Subtables) <= subtable {
		return 0, false
	}
	return p.sfnt.Cmap.Subtables[subtable].Get(code)
}

func (p *sfntProgram) UnitsPerEm() uint16 {
	return p.sfnt.Head.UnitsPerEm
}

func (p *sfntProgram) NumGlyphs() uint16 {
	return p.sfnt.NumGlyphs()
}

func (p *sfntProgram) Advance(glyphID uint16) uint16 {
	return p.sfnt.GlyphAdvance(glyphID)
}

func (p *sfntProgram) VerticalAdvance(glyphID uint16) uint16 {
	return p.sfnt.GlyphVerticalAdvance(glyphID)
}

func (p *sfntProgram) Ascender() int16 {
	return p.sfnt.Hhea.Ascender
}

func (p *sfntProgram) GlyphPath(dst Pather, glyphID uint16, x, y, scale float64) error {
	return p.sfnt.GlyphPath(dst, glyphID, 0, x, y, scale, font.NoHinting)
}

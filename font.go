package xps

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Encoding identifies a character-to-glyph mapping table (cmap subtable) by its platform and encoding ID.
type Encoding struct {
	PlatformID, EncodingID uint16
}

// see Encoding
var (
	UnicodeFullEncoding = Encoding{3, 10}
	UnicodeBMPEncoding  = Encoding{3, 1}
	WansungEncoding     = Encoding{3, 5}
	Big5Encoding        = Encoding{3, 4}
	PRCEncoding         = Encoding{3, 3}
	ShiftJISEncoding    = Encoding{3, 2}
	SymbolEncoding      = Encoding{3, 0}
	MacRomanEncoding    = Encoding{1, 0}
)

func (enc Encoding) String() string {
	return fmt.Sprintf("(%d,%d)", enc.PlatformID, enc.EncodingID)
}

// FontProgram is a parsed font program. Encoding tables are addressed by their index in Encodings, a negative index uses the program's default mapping.
type FontProgram interface {
	Encodings() []Encoding
	Lookup(encoding int, code rune) (uint16, bool)
	UnitsPerEm() uint16
	NumGlyphs() uint16
	Advance(glyphID uint16) uint16
	VerticalAdvance(glyphID uint16) uint16
	Ascender() int16
	GlyphPath(p Pather, glyphID uint16, x, y, scale float64) error
}

// GlyphMetrics are the metrics of a glyph in em units: the horizontal and vertical advance, and the vertical origin.
type GlyphMetrics struct {
	HAdvance, VAdvance, VOrigin float64
}

// Font is a loaded font program together with its selected encoding. It is read-only once published by the font cache.
type Font struct {
	Name  string
	Index int // sub-font index in a font collection

	program  FontProgram
	encoding int
}

// NewFont returns a font for the program without a selected encoding.
func NewFont(name string, index int, program FontProgram) *Font {
	return &Font{
		Name:     name,
		Index:    index,
		program:  program,
		encoding: -1,
	}
}

// Program returns the underlying font program.
func (f *Font) Program() FontProgram {
	return f.program
}

// Encoding returns the selected encoding, if any.
func (f *Font) Encoding() (Encoding, bool) {
	if f.encoding < 0 {
		return Encoding{}, false
	}
	return f.program.Encodings()[f.encoding], true
}

// GlyphIndex maps a character code to a glyph index through the selected encoding. Characters without a mapping return .notdef (zero).
func (f *Font) GlyphIndex(code rune) int {
	enc, ok := f.Encoding()
	if !ok {
		glyphID, _ := f.program.Lookup(-1, code)
		return int(glyphID)
	}

	c, ok := charsetCode(enc, code)
	if !ok {
		return 0
	}
	glyphID, ok := f.program.Lookup(f.encoding, c)
	if !ok && enc == SymbolEncoding && c < 0x100 {
		glyphID, ok = f.program.Lookup(f.encoding, 0xF000|c)
	}
	if !ok {
		return 0
	}
	return int(glyphID)
}

// Metrics returns the glyph's metrics in em units. Glyph indices outside the font use the metrics of .notdef.
func (f *Font) Metrics(glyphID int) GlyphMetrics {
	id := f.glyphID(glyphID)
	upem := float64(f.unitsPerEm())
	return GlyphMetrics{
		HAdvance: float64(f.program.Advance(id)) / upem,
		VAdvance: float64(f.program.VerticalAdvance(id)) / upem,
		VOrigin:  float64(f.program.Ascender()) / upem,
	}
}

// GlyphPath returns the glyph outline in em units with the y-axis pointing up.
func (f *Font) GlyphPath(glyphID int) (*Path, error) {
	p := &Path{FillRule: NonZero}
	if err := f.program.GlyphPath(p, f.glyphID(glyphID), 0.0, 0.0, 1.0/float64(f.unitsPerEm())); err != nil {
		return nil, err
	}
	return p, nil
}

func (f *Font) unitsPerEm() uint16 {
	if upem := f.program.UnitsPerEm(); upem != 0 {
		return upem
	}
	return 1000
}

func (f *Font) glyphID(glyphID int) uint16 {
	if glyphID < 0 || int(f.program.NumGlyphs()) <= glyphID {
		return 0
	}
	return uint16(glyphID)
}

// charsetCode converts a Unicode code point to the character code used by legacy encoding tables.
func charsetCode(enc Encoding, r rune) (rune, bool) {
	var e encoding.Encoding
	switch enc {
	case WansungEncoding:
		e = korean.EUCKR
	case Big5Encoding:
		e = traditionalchinese.Big5
	case PRCEncoding:
		e = simplifiedchinese.GBK
	case ShiftJISEncoding:
		e = japanese.ShiftJIS
	case MacRomanEncoding:
		if r < 0x80 {
			return r, true
		}
		b, ok := charmap.Macintosh.EncodeRune(r)
		return rune(b), ok
	default:
		return r, true
	}
	if r < 0x80 {
		return r, true
	} else if !utf8.ValidRune(r) {
		return 0, false
	}
	s, err := e.NewEncoder().String(string(r))
	if err != nil || len(s) == 0 || 2 < len(s) {
		return 0, false
	}
	code := rune(s[0])
	if len(s) == 2 {
		code = code<<8 | rune(s[1])
	}
	return code, true
}

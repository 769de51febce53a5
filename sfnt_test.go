package xps

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParsers(t *testing.T) {
	var tts = []struct {
		name   string
		parser FontParserFunc
	}{
		{"sfnt", ParseSFNT},
		{"ximage", ParseXImageSFNT},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			program, err := tt.parser(goregular.TTF, 0)
			test.Error(t, err)
			test.T(t, program.UnitsPerEm(), uint16(2048))
			test.That(t, 0 < program.NumGlyphs())
			test.That(t, 0 < program.Ascender())

			glyphID, ok := program.Lookup(-1, 'A')
			test.That(t, ok)
			test.That(t, 0 < program.Advance(glyphID))

			_, ok = program.Lookup(-1, 0x10FFFF)
			test.That(t, !ok)

			f := NewFont("/goregular.ttf", 0, program)
			p, err := f.GlyphPath(int(glyphID))
			test.Error(t, err)
			test.That(t, !p.IsEmpty())

			// the outline stands on the baseline with the y-axis up
			bounds := p.Bounds()
			test.That(t, math.Abs(bounds.Y) < 0.01, bounds)
			test.That(t, 0.5 < bounds.H && bounds.H < 1.0, bounds)
		})
	}
}

func TestParsersAgree(t *testing.T) {
	a, err := ParseSFNT(goregular.TTF, 0)
	test.Error(t, err)
	b, err := ParseXImageSFNT(goregular.TTF, 0)
	test.Error(t, err)

	test.T(t, a.NumGlyphs(), b.NumGlyphs())
	for _, r := range "Hello, wörld!" {
		glyphA, okA := a.Lookup(-1, r)
		glyphB, okB := b.Lookup(-1, r)
		test.T(t, okA, okB, string(r))
		test.T(t, glyphA, glyphB, string(r))
		test.T(t, a.Advance(glyphA), b.Advance(glyphB), string(r))
	}
}

func TestParseSFNTEncodings(t *testing.T) {
	program, err := ParseSFNT(goregular.TTF, 0)
	test.Error(t, err)

	encodings := program.Encodings()
	test.That(t, 0 < len(encodings))

	f := NewFont("/goregular.ttf", 0, program)
	test.Error(t, SelectEncoding(f))
	enc, _ := f.Encoding()
	glyphID, ok := program.Lookup(f.encoding, 'A')
	test.That(t, ok, enc)
	test.T(t, f.GlyphIndex('A'), int(glyphID))

	// out of range records fall back to the default mapping
	glyphID2, ok := program.Lookup(len(encodings), 'A')
	test.That(t, ok)
	test.T(t, glyphID2, glyphID)
}

func TestParseFontProgram(t *testing.T) {
	_, err := parseFontProgram([]string{"sfnt", "ximage"}, []byte("garbage data"), 0)
	test.That(t, errors.Is(err, ErrFontParse), err)

	_, err = parseFontProgram(nil, goregular.TTF, 0)
	test.That(t, errors.Is(err, ErrFontParse), err)

	program, err := parseFontProgram([]string{"unknown", "ximage"}, goregular.TTF, 0)
	test.Error(t, err)
	test.That(t, program.Encodings() == nil)
}

package xps

import (
	"errors"
	"testing"

	"github.com/tdewolff/test"
)

func TestSelectEncoding(t *testing.T) {
	var tts = []struct {
		name      string
		encodings []Encoding
		want      Encoding
	}{
		{"mac then unicode", []Encoding{MacRomanEncoding, UnicodeBMPEncoding}, UnicodeBMPEncoding},
		{"unicode then mac", []Encoding{UnicodeBMPEncoding, MacRomanEncoding}, UnicodeBMPEncoding},
		{"full unicode", []Encoding{UnicodeBMPEncoding, UnicodeFullEncoding}, UnicodeFullEncoding},
		{"symbol", []Encoding{{0, 3}, SymbolEncoding, MacRomanEncoding}, SymbolEncoding},
		{"shift jis", []Encoding{MacRomanEncoding, ShiftJISEncoding}, ShiftJISEncoding},
		{"mac", []Encoding{{0, 3}, MacRomanEncoding}, MacRomanEncoding},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			program := newTestProgram()
			program.encodings = tt.encodings
			program.cmaps = make([]map[rune]uint16, len(tt.encodings))
			f := NewFont("/font.ttf", 0, program)
			test.Error(t, SelectEncoding(f))

			enc, ok := f.Encoding()
			test.That(t, ok)
			test.T(t, enc, tt.want)
		})
	}
}

func TestSelectEncodingNone(t *testing.T) {
	program := newTestProgram()
	program.encodings = []Encoding{{0, 3}, {3, 7}}
	program.cmaps = []map[rune]uint16{{'A': 5}, {'A': 6}}
	program.fallback = map[rune]uint16{'A': 4}

	f := NewFont("/font.ttf", 0, program)
	err := SelectEncoding(f)
	test.That(t, errors.Is(err, ErrNoSuitableEncoding), err)

	_, ok := f.Encoding()
	test.That(t, !ok)
	test.T(t, f.GlyphIndex('A'), 4)
	test.T(t, f.GlyphIndex('Z'), 0)
}

func TestGlyphIndex(t *testing.T) {
	var tts = []struct {
		name     string
		encoding Encoding
		cmap     map[rune]uint16
		code     rune
		glyphID  int
	}{
		{"unicode", UnicodeBMPEncoding, map[rune]uint16{'A': 3}, 'A', 3},
		{"unmapped", UnicodeBMPEncoding, map[rune]uint16{'A': 3}, 'B', 0},
		{"symbol", SymbolEncoding, map[rune]uint16{0xF041: 9}, 'A', 9},
		{"symbol direct", SymbolEncoding, map[rune]uint16{'A': 8, 0xF041: 9}, 'A', 8},
		{"mac roman", MacRomanEncoding, map[rune]uint16{0x8E: 7}, 'é', 7},
		{"mac roman ascii", MacRomanEncoding, map[rune]uint16{'a': 2}, 'a', 2},
		{"mac roman unmappable", MacRomanEncoding, map[rune]uint16{0x8E: 7}, '中', 0},
		{"shift jis", ShiftJISEncoding, map[rune]uint16{0x82A0: 11}, 'あ', 11},
		{"wansung", WansungEncoding, map[rune]uint16{0xB0A1: 12}, '가', 12},
		{"big5", Big5Encoding, map[rune]uint16{0xA4A4: 13}, '中', 13},
		{"prc", PRCEncoding, map[rune]uint16{0xD6D0: 14}, '中', 14},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			program := newTestProgram()
			program.encodings = []Encoding{tt.encoding}
			program.cmaps = []map[rune]uint16{tt.cmap}
			f := NewFont("/font.ttf", 0, program)
			test.Error(t, SelectEncoding(f))
			test.T(t, f.GlyphIndex(tt.code), tt.glyphID)
		})
	}
}

func TestFontMetrics(t *testing.T) {
	f := newTestFont()
	test.T(t, f.Metrics(1), GlyphMetrics{0.5, 1.0, 0.8})
	test.T(t, f.Metrics(1000), f.Metrics(0)) // out of range uses .notdef

	p, err := f.GlyphPath(1)
	test.Error(t, err)
	test.T(t, p.Bounds(), Rect{0.0, 0.0, 0.5, 0.8})
}

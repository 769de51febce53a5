package xps

import (
	"image/color"
)

// testProgram is a font program with box-shaped glyphs of equal metrics.
type testProgram struct {
	encodings []Encoding
	cmaps     []map[rune]uint16
	fallback  map[rune]uint16

	upem      uint16
	numGlyphs uint16
	advance   uint16
	vadvance  uint16
	ascender  int16
}

func newTestProgram() *testProgram {
	return &testProgram{
		encodings: []Encoding{UnicodeBMPEncoding},
		cmaps:     []map[rune]uint16{{'A': 1, 'B': 2, 'C': 3}},
		upem:      1000,
		numGlyphs: 10,
		advance:   500,
		vadvance:  1000,
		ascender:  800,
	}
}

func (p *testProgram) Encodings() []Encoding {
	return p.encodings
}

func (p *testProgram) Lookup(encoding int, code rune) (uint16, bool) {
	cmap := p.fallback
	if 0 <= encoding {
		cmap = p.cmaps[encoding]
	}
	glyphID, ok := cmap[code]
	return glyphID, ok
}

func (p *testProgram) UnitsPerEm() uint16            { return p.upem }
func (p *testProgram) NumGlyphs() uint16             { return p.numGlyphs }
func (p *testProgram) Advance(glyphID uint16) uint16 { return p.advance }
func (p *testProgram) VerticalAdvance(uint16) uint16 { return p.vadvance }
func (p *testProgram) Ascender() int16               { return p.ascender }

func (p *testProgram) GlyphPath(dst Pather, glyphID uint16, x, y, scale float64) error {
	if glyphID == 0 {
		return nil
	}
	w, h := float64(p.advance)*scale, float64(p.ascender)*scale
	dst.MoveTo(x, y)
	dst.LineTo(x+w, y)
	dst.LineTo(x+w, y+h)
	dst.LineTo(x, y+h)
	dst.Close()
	return nil
}

func newTestFont() *Font {
	f := NewFont("/test.ttf", 0, newTestProgram())
	if err := SelectEncoding(f); err != nil {
		panic(err)
	}
	return f
}

////////////////////////////////////////////////////////////////

type sinkOp struct {
	Op    string
	Run   *GlyphRun
	Path  *Path
	Brush *Brush
	M     Matrix
	Color color.RGBA
}

// recordSink records all operations it receives.
type recordSink struct {
	ops []sinkOp
}

func (s *recordSink) FillGlyphs(run *GlyphRun, m Matrix, col color.RGBA) {
	s.ops = append(s.ops, sinkOp{Op: "FillGlyphs", Run: run, M: m, Color: col})
}

func (s *recordSink) PushGlyphClip(run *GlyphRun, m Matrix) {
	s.ops = append(s.ops, sinkOp{Op: "PushGlyphClip", Run: run, M: m})
}

func (s *recordSink) FillPath(p *Path, m Matrix, col color.RGBA) {
	s.ops = append(s.ops, sinkOp{Op: "FillPath", Path: p, M: m, Color: col})
}

func (s *recordSink) PushClip(p *Path, m Matrix) {
	s.ops = append(s.ops, sinkOp{Op: "PushClip", Path: p, M: m})
}

func (s *recordSink) PaintBrush(b *Brush, m Matrix) {
	s.ops = append(s.ops, sinkOp{Op: "PaintBrush", Brush: b, M: m})
}

func (s *recordSink) PopClip() {
	s.ops = append(s.ops, sinkOp{Op: "PopClip"})
}

func (s *recordSink) names() []string {
	names := make([]string, 0, len(s.ops))
	for _, op := range s.ops {
		names = append(names, op.Op)
	}
	return names
}

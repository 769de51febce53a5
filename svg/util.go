package svg

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/xps"
)

// Precision is the number of significant digits of coordinates.
var Precision = 6

type num float64

func (f num) String() string {
	s := fmt.Sprintf("%.*g", Precision, f)
	if num(math.MaxInt32) < f || f < num(math.MinInt32) {
		if i := strings.IndexAny(s, ".eE"); i == -1 {
			s += ".0"
		}
	}
	return string(minify.Number([]byte(s), Precision))
}

type dec float64

func (f dec) String() string {
	s := fmt.Sprintf("%.*f", Precision, f)
	s = string(minify.Decimal([]byte(s), Precision))
	if dec(math.MaxInt32) < f || f < dec(math.MinInt32) {
		if i := strings.IndexByte(s, '.'); i == -1 {
			s += ".0"
		}
	}
	return s
}

// cssColor returns the opaque color and the opacity of an alpha premultiplied color.
func cssColor(col color.RGBA) (string, float64) {
	if col.A == 0 {
		return "#000000", 0.0
	}
	a := float64(col.A) / 255.0
	unpremultiply := func(c uint8) byte {
		return byte(math.Min(float64(c)/a+0.5, 255.0))
	}
	buf := make([]byte, 7)
	buf[0] = '#'
	hex.Encode(buf[1:], []byte{unpremultiply(col.R), unpremultiply(col.G), unpremultiply(col.B)})
	return string(buf), a
}

func matrixAttr(m xps.Matrix) string {
	return fmt.Sprintf("matrix(%v,%v,%v,%v,%v,%v)", num(m[0][0]), num(m[1][0]), num(m[0][1]), num(m[1][1]), num(m[0][2]), num(m[1][2]))
}

// pathData builds the d attribute of a path.
type pathData struct {
	sb strings.Builder
}

func (p *pathData) MoveTo(x, y float64) {
	fmt.Fprintf(&p.sb, "M%v %v", dec(x), dec(y))
}

func (p *pathData) LineTo(x, y float64) {
	fmt.Fprintf(&p.sb, "L%v %v", dec(x), dec(y))
}

func (p *pathData) QuadTo(x1, y1, x, y float64) {
	fmt.Fprintf(&p.sb, "Q%v %v %v %v", dec(x1), dec(y1), dec(x), dec(y))
}

func (p *pathData) CubeTo(x1, y1, x2, y2, x, y float64) {
	fmt.Fprintf(&p.sb, "C%v %v %v %v %v %v", dec(x1), dec(y1), dec(x2), dec(y2), dec(x), dec(y))
}

func (p *pathData) Close() {
	p.sb.WriteString("z")
}

func toPathData(p *xps.Path) string {
	d := &pathData{}
	p.Replay(d)
	return d.sb.String()
}

func fillRule(p *xps.Path) string {
	if p.FillRule == xps.EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

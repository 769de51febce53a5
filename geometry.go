package xps

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

type geometryScanner struct {
	b   []byte
	i   int
	err error
}

func (s *geometryScanner) num() float64 {
	if s.err != nil {
		return 0.0
	}
	s.i += skipCommaWhitespace(s.b[s.i:])
	f, n := strconv.ParseFloat(s.b[s.i:])
	if n == 0 {
		s.err = fmt.Errorf("%w: expected number at position %d", ErrBadGeometry, s.i)
		return 0.0
	}
	s.i += n
	return f
}

func (s *geometryScanner) flag() bool {
	if s.err != nil {
		return false
	}
	s.i += skipCommaWhitespace(s.b[s.i:])
	if s.i < len(s.b) && (s.b[s.i] == '0' || s.b[s.i] == '1') {
		s.i++
		return s.b[s.i-1] == '1'
	}
	s.err = fmt.Errorf("%w: expected flag at position %d", ErrBadGeometry, s.i)
	return false
}

// ParseAbbreviatedGeometry parses the abbreviated geometry syntax of XPS, which is the SVG path syntax with an optional fill rule prefix F0 (even-odd) or F1 (non-zero).
func ParseAbbreviatedGeometry(data string) (*Path, error) {
	p := &Path{}
	s := &geometryScanner{b: []byte(data)}
	s.i += skipCommaWhitespace(s.b)
	if s.i+1 < len(s.b) && s.b[s.i] == 'F' && (s.b[s.i+1] == '0' || s.b[s.i+1] == '1') {
		if s.b[s.i+1] == '1' {
			p.FillRule = NonZero
		}
		s.i += 2
	}

	var prevCmd byte
	cpx, cpy := 0.0, 0.0 // control point
	for {
		s.i += skipCommaWhitespace(s.b[s.i:])
		if len(s.b) <= s.i {
			break
		}
		cmd := prevCmd
		if c := s.b[s.i]; 'A' <= c && c <= 'z' {
			cmd = c
			s.i++
		} else if prevCmd == 0 || prevCmd == 'Z' || prevCmd == 'z' {
			return nil, fmt.Errorf("%w: expected command at position %d", ErrBadGeometry, s.i)
		}

		x, y := p.Pos()
		switch cmd {
		case 'M', 'm':
			a, b := s.num(), s.num()
			if cmd == 'm' {
				a += x
				b += y
			}
			p.MoveTo(a, b)
			// subsequent pairs are lines
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			a, b := s.num(), s.num()
			if cmd == 'l' {
				a += x
				b += y
			}
			p.LineTo(a, b)
		case 'H', 'h':
			a := s.num()
			if cmd == 'h' {
				a += x
			}
			p.LineTo(a, y)
		case 'V', 'v':
			b := s.num()
			if cmd == 'v' {
				b += y
			}
			p.LineTo(x, b)
		case 'C', 'c':
			a, b, c, d, e, f := s.num(), s.num(), s.num(), s.num(), s.num(), s.num()
			if cmd == 'c' {
				a += x
				b += y
				c += x
				d += y
				e += x
				f += y
			}
			p.CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
		case 'S', 's':
			c, d, e, f := s.num(), s.num(), s.num(), s.num()
			if cmd == 's' {
				c += x
				d += y
				e += x
				f += y
			}
			a, b := x, y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				a, b = 2*x-cpx, 2*y-cpy
			}
			p.CubeTo(a, b, c, d, e, f)
			cpx, cpy = c, d
		case 'Q', 'q':
			a, b, c, d := s.num(), s.num(), s.num(), s.num()
			if cmd == 'q' {
				a += x
				b += y
				c += x
				d += y
			}
			p.QuadTo(a, b, c, d)
			cpx, cpy = a, b
		case 'T', 't':
			c, d := s.num(), s.num()
			if cmd == 't' {
				c += x
				d += y
			}
			a, b := x, y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				a, b = 2*x-cpx, 2*y-cpy
			}
			p.QuadTo(a, b, c, d)
			cpx, cpy = a, b
		case 'A', 'a':
			rx, ry, rot := s.num(), s.num(), s.num()
			large, sweep := s.flag(), s.flag()
			f, g := s.num(), s.num()
			if cmd == 'a' {
				f += x
				g += y
			}
			if s.err == nil {
				p.ArcTo(rx, ry, rot, large, sweep, f, g)
			}
		default:
			return nil, fmt.Errorf("%w: unknown command %q", ErrBadGeometry, cmd)
		}
		if s.err != nil {
			return nil, s.err
		}
		prevCmd = cmd
	}
	return p, nil
}

// ParsePathGeometry parses a PathGeometry element including its figures, fill rule and transform.
func ParsePathGeometry(elem *Element) (*Path, error) {
	p := &Path{}
	if figures, ok := elem.Attr("Figures"); ok {
		var err error
		if p, err = ParseAbbreviatedGeometry(figures); err != nil {
			return nil, err
		}
	}
	p.FillRule = EvenOdd
	if fillRule, _ := elem.Attr("FillRule"); fillRule == "NonZero" {
		p.FillRule = NonZero
	}

	for _, child := range elem.Children {
		if child.Name == "PathFigure" {
			if err := parsePathFigure(p, child); err != nil {
				return nil, err
			}
		}
	}

	m, err := parseTransform(elem, "Transform")
	if err != nil {
		return nil, err
	} else if m != Identity {
		p = p.Transform(m)
	}
	return p, nil
}

func parsePathFigure(p *Path, elem *Element) error {
	start, _ := elem.Attr("StartPoint")
	pts, err := parsePoints(start)
	if err != nil || len(pts) != 1 {
		return fmt.Errorf("%w: bad StartPoint %q", ErrBadGeometry, start)
	}
	p.MoveTo(pts[0].X, pts[0].Y)

	for _, seg := range elem.Children {
		points, _ := seg.Attr("Points")
		switch seg.Name {
		case "PolyLineSegment":
			pts, err := parsePoints(points)
			if err != nil {
				return err
			}
			for _, pt := range pts {
				p.LineTo(pt.X, pt.Y)
			}
		case "PolyBezierSegment":
			pts, err := parsePoints(points)
			if err != nil {
				return err
			}
			for i := 0; i+2 < len(pts); i += 3 {
				p.CubeTo(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, pts[i+2].X, pts[i+2].Y)
			}
		case "PolyQuadraticBezierSegment":
			pts, err := parsePoints(points)
			if err != nil {
				return err
			}
			for i := 0; i+1 < len(pts); i += 2 {
				p.QuadTo(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y)
			}
		case "ArcSegment":
			point, _ := seg.Attr("Point")
			size, _ := seg.Attr("Size")
			pt, err := parsePoints(point)
			if err != nil || len(pt) != 1 {
				return fmt.Errorf("%w: bad Point %q", ErrBadGeometry, point)
			}
			sz, err := parsePoints(size)
			if err != nil || len(sz) != 1 {
				return fmt.Errorf("%w: bad Size %q", ErrBadGeometry, size)
			}
			rot := 0.0
			if val, ok := seg.Attr("RotationAngle"); ok {
				if rot, ok = parseFloat(val); !ok {
					return fmt.Errorf("%w: bad RotationAngle %q", ErrBadGeometry, val)
				}
			}
			large, _ := seg.Attr("IsLargeArc")
			sweep, _ := seg.Attr("SweepDirection")
			p.ArcTo(sz[0].X, sz[0].Y, rot, large == "true", sweep == "Clockwise", pt[0].X, pt[0].Y)
		}
	}
	if closed, _ := elem.Attr("IsClosed"); closed == "true" {
		p.Close()
	}
	return nil
}

// parsePoints parses a list of "x,y" points separated by whitespace.
func parsePoints(s string) ([]Point, error) {
	var pts []Point
	for _, field := range strings.Fields(s) {
		x, y, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("%w: bad point %q", ErrBadGeometry, field)
		}
		fx, okx := parseFloat(x)
		fy, oky := parseFloat(y)
		if !okx || !oky {
			return nil, fmt.Errorf("%w: bad point %q", ErrBadGeometry, field)
		}
		pts = append(pts, Point{fx, fy})
	}
	return pts, nil
}

// parseTransform returns the transformation given by the attribute name or the MatrixTransform inside the property element of the same name.
func parseTransform(elem *Element, name string) (Matrix, error) {
	if val, ok := elem.Attr(name); ok {
		return ParseMatrix(val)
	}
	if prop := elem.Property(name); prop != nil && prop.Name == "MatrixTransform" {
		val, _ := prop.Attr("Matrix")
		return ParseMatrix(val)
	}
	return Identity, nil
}

// ParseGeometry parses either abbreviated geometry data or a geometry element.
func ParseGeometry(data string, elem *Element) (*Path, error) {
	if elem != nil {
		if elem.Name != "PathGeometry" {
			return nil, fmt.Errorf("%w: unsupported geometry %s", ErrBadGeometry, elem.Name)
		}
		return ParsePathGeometry(elem)
	}
	return ParseAbbreviatedGeometry(data)
}

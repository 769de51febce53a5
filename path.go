package xps

import (
	"math"
)

// PathCmd is a path segment command.
type PathCmd int

// see PathCmd
const (
	MoveToCmd PathCmd = iota
	LineToCmd
	QuadToCmd
	CubeToCmd
	CloseCmd
)

// FillRule is the fill rule used to determine the inside of a path.
type FillRule int

// see FillRule
const (
	EvenOdd FillRule = iota
	NonZero
)

// Pather receives path segments, it is implemented by Path and by the sinks' path builders. It is compatible with the glyph outline interface of github.com/tdewolff/font.
type Pather interface {
	MoveTo(float64, float64)
	LineTo(float64, float64)
	QuadTo(float64, float64, float64, float64)
	CubeTo(float64, float64, float64, float64, float64, float64)
	Close()
}

// Path is a collection of subpaths made of lines and Bézier curves. Arcs are converted to cubic Béziers when added.
type Path struct {
	FillRule

	cmds []PathCmd
	d    []float64
	x0   float64
	y0   float64
}

// IsEmpty returns true if the path has no segments.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.cmds) == 0
}

// Append appends the subpaths of q.
func (p *Path) Append(q *Path) {
	if q == nil {
		return
	}
	p.cmds = append(p.cmds, q.cmds...)
	p.d = append(p.d, q.d...)
	p.x0, p.y0 = q.x0, q.y0
}

// Pos returns the current position.
func (p *Path) Pos() (float64, float64) {
	if len(p.cmds) > 0 && p.cmds[len(p.cmds)-1] == CloseCmd {
		return p.x0, p.y0
	}
	if len(p.d) > 1 {
		return p.d[len(p.d)-2], p.d[len(p.d)-1]
	}
	return 0.0, 0.0
}

////////////////////////////////////////////////////////////////

// MoveTo starts a new subpath at (x,y).
func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, MoveToCmd)
	p.d = append(p.d, x, y)
	p.x0, p.y0 = x, y
}

// LineTo adds a line to (x,y).
func (p *Path) LineTo(x, y float64) {
	p.ensureStart()
	p.cmds = append(p.cmds, LineToCmd)
	p.d = append(p.d, x, y)
}

// QuadTo adds a quadratic Bézier with control point (x1,y1) ending at (x,y).
func (p *Path) QuadTo(x1, y1, x, y float64) {
	p.ensureStart()
	p.cmds = append(p.cmds, QuadToCmd)
	p.d = append(p.d, x1, y1, x, y)
}

// CubeTo adds a cubic Bézier with control points (x1,y1) and (x2,y2) ending at (x,y).
func (p *Path) CubeTo(x1, y1, x2, y2, x, y float64) {
	p.ensureStart()
	p.cmds = append(p.cmds, CubeToCmd)
	p.d = append(p.d, x1, y1, x2, y2, x, y)
}

// ArcTo adds an elliptical arc with radii rx and ry, rot the x-axis rotation in degrees, and the large and sweep flags as in SVG.
func (p *Path) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) {
	x1, y1 := p.Pos()
	rx, ry = math.Abs(rx), math.Abs(ry)
	if (x1 == x && y1 == y) || rx == 0.0 || ry == 0.0 {
		p.LineTo(x, y)
		return
	}
	cx, cy, theta0, theta1, rx, ry := arcToCenter(x1, y1, rx, ry, rot, large, sweep, x, y)
	ellipseToCubicBeziers(p, cx, cy, rx, ry, rot*math.Pi/180.0, theta0*math.Pi/180.0, theta1*math.Pi/180.0, x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	if len(p.cmds) == 0 || p.cmds[len(p.cmds)-1] == CloseCmd {
		return
	}
	p.cmds = append(p.cmds, CloseCmd)
}

func (p *Path) ensureStart() {
	if len(p.cmds) == 0 || p.cmds[len(p.cmds)-1] == CloseCmd {
		x, y := p.Pos()
		p.MoveTo(x, y)
	}
}

////////////////////////////////////////////////////////////////

// Replay sends all segments of the path to dst.
func (p *Path) Replay(dst Pather) {
	if p == nil {
		return
	}
	i := 0
	for _, cmd := range p.cmds {
		switch cmd {
		case MoveToCmd:
			dst.MoveTo(p.d[i], p.d[i+1])
			i += 2
		case LineToCmd:
			dst.LineTo(p.d[i], p.d[i+1])
			i += 2
		case QuadToCmd:
			dst.QuadTo(p.d[i], p.d[i+1], p.d[i+2], p.d[i+3])
			i += 4
		case CubeToCmd:
			dst.CubeTo(p.d[i], p.d[i+1], p.d[i+2], p.d[i+3], p.d[i+4], p.d[i+5])
			i += 6
		case CloseCmd:
			dst.Close()
		}
	}
}

// Transform returns a copy of the path with all coordinates transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	q := &Path{FillRule: p.FillRule}
	q.cmds = append(q.cmds, p.cmds...)
	q.d = make([]float64, len(p.d))
	for i := 0; i+1 < len(p.d); i += 2 {
		pt := m.Dot(Point{p.d[i], p.d[i+1]})
		q.d[i], q.d[i+1] = pt.X, pt.Y
	}
	pt := m.Dot(Point{p.x0, p.y0})
	q.x0, q.y0 = pt.X, pt.Y
	return q
}

// Bounds returns the bounding box of all end and control points.
func (p *Path) Bounds() Rect {
	if len(p.d) < 2 {
		return Rect{}
	}
	xmin, ymin := p.d[0], p.d[1]
	xmax, ymax := xmin, ymin
	for i := 2; i+1 < len(p.d); i += 2 {
		xmin = math.Min(xmin, p.d[i])
		xmax = math.Max(xmax, p.d[i])
		ymin = math.Min(ymin, p.d[i+1])
		ymax = math.Max(ymax, p.d[i+1])
	}
	return Rect{xmin, ymin, xmax - xmin, ymax - ymin}
}

////////////////////////////////////////////////////////////////

// arcToCenter converts the endpoint parametrization of an arc to the center parametrization. Radii that are too small are scaled up, the angles are in degrees.
func arcToCenter(x1, y1, rx, ry, rot float64, large, sweep bool, x2, y2 float64) (float64, float64, float64, float64, float64, float64) {
	// see https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
	rot *= math.Pi / 180.0
	sinrot, cosrot := math.Sincos(rot)
	x1p := cosrot*(x1-x2)/2 + sinrot*(y1-y2)/2
	y1p := -sinrot*(x1-x2)/2 + cosrot*(y1-y2)/2

	radiiCheck := x1p*x1p/rx/rx + y1p*y1p/ry/ry
	if radiiCheck > 1.0 {
		rx *= math.Sqrt(radiiCheck)
		ry *= math.Sqrt(radiiCheck)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	if sq < 0 {
		sq = 0
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := cosrot*cxp - sinrot*cyp + (x1+x2)/2
	cy := sinrot*cxp + cosrot*cyp + (y1+y2)/2

	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := -(x1p + cxp) / rx
	vy := -(y1p + cyp) / ry

	theta := math.Acos(math.Max(-1.0, math.Min(1.0, ux/math.Sqrt(ux*ux+uy*uy))))
	if uy < 0 {
		theta = -theta
	}
	theta *= 180 / math.Pi

	delta := math.Acos(math.Max(-1.0, math.Min(1.0, (ux*vx+uy*vy)/math.Sqrt((ux*ux+uy*uy)*(vx*vx+vy*vy)))))
	if ux*vy-uy*vx < 0 {
		delta = -delta
	}
	delta *= 180 / math.Pi
	if !sweep && delta > 0 {
		delta -= 360
	} else if sweep && delta < 0 {
		delta += 360
	}
	return cx, cy, theta, theta + delta, rx, ry
}

// ellipseToCubicBeziers appends cubic Béziers approximating the elliptical arc from theta0 to theta1 (radians), splitting it in segments of at most 90 degrees. The final point is set exactly to (x,y).
func ellipseToCubicBeziers(p *Path, cx, cy, rx, ry, phi, theta0, theta1, x, y float64) {
	n := int(math.Ceil(math.Abs(theta1-theta0) / (math.Pi / 2.0)))
	if n < 1 {
		n = 1
	}
	sinphi, cosphi := math.Sincos(phi)
	point := func(theta float64) (float64, float64) {
		sintheta, costheta := math.Sincos(theta)
		return cx + rx*costheta*cosphi - ry*sintheta*sinphi, cy + rx*costheta*sinphi + ry*sintheta*cosphi
	}
	deriv := func(theta float64) (float64, float64) {
		sintheta, costheta := math.Sincos(theta)
		return -rx*sintheta*cosphi - ry*costheta*sinphi, -rx*sintheta*sinphi + ry*costheta*cosphi
	}

	dtheta := (theta1 - theta0) / float64(n)
	kappa := 4.0 / 3.0 * math.Tan(dtheta/4.0)
	for i := 0; i < n; i++ {
		t0 := theta0 + float64(i)*dtheta
		t1 := t0 + dtheta
		x0, y0 := point(t0)
		x3, y3 := point(t1)
		if i == n-1 {
			x3, y3 = x, y
		}
		dx0, dy0 := deriv(t0)
		dx1, dy1 := deriv(t1)
		p.CubeTo(x0+kappa*dx0, y0+kappa*dy0, x3-kappa*dx1, y3-kappa*dy1, x3, y3)
	}
}

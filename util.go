package xps

import (
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// Epsilon is the tolerance used to compare floating point values.
const Epsilon = 1e-10

func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// parseFloat parses a complete floating point number, surrounding whitespace is allowed.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0, false
	}
	f, n := strconv.ParseFloat([]byte(s))
	if n != len(s) || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0.0, false
	}
	return f, true
}

// parseInt parses a complete integer, surrounding whitespace is allowed.
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	i, n := strconv.ParseInt([]byte(s))
	if n != len(s) || i < math.MinInt32 || math.MaxInt32 < i {
		return 0, false
	}
	return int(i), true
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in 2D space.
type Point struct {
	X, Y float64
}

// Add adds q to p.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts q from p.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Equals returns true if p and q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return equal(p.X, q.X) && equal(p.Y, q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Rect is a rectangle with origin X,Y and size W,H.
type Rect struct {
	X, Y, W, H float64
}

// Add returns the smallest rectangle that contains both r and q.
func (r Rect) Add(q Rect) Rect {
	if q.W == 0.0 || q.H == 0 {
		return r
	} else if r.W == 0.0 || r.H == 0 {
		return q
	}
	x0 := math.Min(r.X, q.X)
	y0 := math.Min(r.Y, q.Y)
	x1 := math.Max(r.X+r.W, q.X+q.W)
	y1 := math.Max(r.Y+r.H, q.Y+q.H)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// ToPath returns the rectangle as a closed path.
func (r Rect) ToPath() *Path {
	p := &Path{}
	p.MoveTo(r.X, r.Y)
	p.LineTo(r.X+r.W, r.Y)
	p.LineTo(r.X+r.W, r.Y+r.H)
	p.LineTo(r.X, r.Y+r.H)
	p.Close()
	return p
}

// Equals returns true if both rectangles are equal with tolerance Epsilon.
func (r Rect) Equals(q Rect) bool {
	return equal(r.X, q.X) && equal(r.Y, q.Y) && equal(r.W, q.W) && equal(r.H, q.H)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g; %g]--[%g; %g]", r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// ParseRect parses an XPS rectangle "x,y,w,h" as used by Viewbox and Viewport.
func ParseRect(s string) (Rect, error) {
	v, err := parseFloatList(s, 4)
	if err != nil {
		return Rect{}, err
	}
	return Rect{v[0], v[1], v[2], v[3]}, nil
}

////////////////////////////////////////////////////////////////

// Matrix is used for affine transformations. Concatenated transformations are evaluated right-to-left, so Identity.Rotate(30).Translate(20,0) first translates and then rotates.
type Matrix [2][3]float64

// Identity is the identity transformation.
var Identity = Matrix{
	{1.0, 0.0, 0.0},
	{0.0, 1.0, 0.0},
}

// Mul returns m·q, i.e. q is applied first.
func (m Matrix) Mul(q Matrix) Matrix {
	return Matrix{{
		m[0][0]*q[0][0] + m[0][1]*q[1][0],
		m[0][0]*q[0][1] + m[0][1]*q[1][1],
		m[0][0]*q[0][2] + m[0][1]*q[1][2] + m[0][2],
	}, {
		m[1][0]*q[0][0] + m[1][1]*q[1][0],
		m[1][0]*q[0][1] + m[1][1]*q[1][1],
		m[1][0]*q[0][2] + m[1][1]*q[1][2] + m[1][2],
	}}
}

// Dot transforms point p.
func (m Matrix) Dot(p Point) Point {
	return Point{
		m[0][0]*p.X + m[0][1]*p.Y + m[0][2],
		m[1][0]*p.X + m[1][1]*p.Y + m[1][2],
	}
}

// Translate adds a translation.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, 0.0, x},
		{0.0, 1.0, y},
	})
}

// Rotate adds a counter clockwise rotation in degrees.
func (m Matrix) Rotate(rot float64) Matrix {
	sintheta, costheta := math.Sincos(rot * math.Pi / 180.0)
	return m.Mul(Matrix{
		{costheta, -sintheta, 0.0},
		{sintheta, costheta, 0.0},
	})
}

// Scale adds a scaling.
func (m Matrix) Scale(x, y float64) Matrix {
	return m.Mul(Matrix{
		{x, 0.0, 0.0},
		{0.0, y, 0.0},
	})
}

// Shear adds a shear.
func (m Matrix) Shear(x, y float64) Matrix {
	return m.Mul(Matrix{
		{1.0, x, 0.0},
		{y, 1.0, 0.0},
	})
}

// Det returns the determinant.
func (m Matrix) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Inv returns the inverse. A singular matrix returns the identity and false.
func (m Matrix) Inv() (Matrix, bool) {
	det := m.Det()
	if equal(det, 0.0) {
		return Identity, false
	}
	return Matrix{{
		m[1][1] / det,
		-m[0][1] / det,
		-(m[1][1]*m[0][2] - m[0][1]*m[1][2]) / det,
	}, {
		-m[1][0] / det,
		m[0][0] / det,
		-(-m[1][0]*m[0][2] + m[0][0]*m[1][2]) / det,
	}}, true
}

// Equals returns true if both matrices are equal with tolerance Epsilon.
func (m Matrix) Equals(q Matrix) bool {
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if !equal(m[i][j], q[i][j]) {
				return false
			}
		}
	}
	return true
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g, %g, %g; %g, %g, %g; 0, 0, 1]", m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2])
}

// ParseMatrix parses an XPS matrix "m11,m12,m21,m22,dx,dy". XPS uses row vectors, so (x,y) maps to (m11·x + m21·y + dx, m12·x + m22·y + dy).
func ParseMatrix(s string) (Matrix, error) {
	v, err := parseFloatList(s, 6)
	if err != nil {
		return Identity, err
	}
	return Matrix{
		{v[0], v[2], v[4]},
		{v[1], v[3], v[5]},
	}, nil
}

func parseFloatList(s string, n int) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d numbers in %q", n, s)
	}
	v := make([]float64, n)
	for i, field := range fields {
		f, ok := parseFloat(field)
		if !ok {
			return nil, fmt.Errorf("bad number %q in %q", field, s)
		}
		v[i] = f
	}
	return v, nil
}

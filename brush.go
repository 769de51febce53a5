package xps

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	_ "golang.org/x/image/tiff"
)

// BrushKind is the kind of brush.
type BrushKind int

// see BrushKind
const (
	SolidColorBrush BrushKind = iota
	LinearGradientBrush
	RadialGradientBrush
	ImageBrush
)

func (kind BrushKind) String() string {
	switch kind {
	case SolidColorBrush:
		return "SolidColorBrush"
	case LinearGradientBrush:
		return "LinearGradientBrush"
	case RadialGradientBrush:
		return "RadialGradientBrush"
	case ImageBrush:
		return "ImageBrush"
	}
	return fmt.Sprintf("BrushKind(%d)", int(kind))
}

// SpreadMethod specifies how a gradient is extended outside of its range.
type SpreadMethod int

// see SpreadMethod
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// TileMode specifies how an image brush is repeated outside of its viewport.
type TileMode int

// see TileMode
const (
	NoTile TileMode = iota
	Tile
	FlipX
	FlipY
	FlipXY
)

// Brush is a parsed fill. All coordinates are in brush space, Transform maps them to the coordinate system of the element.
type Brush struct {
	Kind      BrushKind
	Color     color.RGBA // solid color, alpha premultiplied
	Opacity   float64
	Transform Matrix

	// gradients
	Stops        Stops
	SpreadMethod SpreadMethod
	Start, End   Point // linear
	Center       Point // radial
	Origin       Point // radial
	RadiusX      float64
	RadiusY      float64

	// images
	Image    image.Image
	Viewbox  Rect // in image pixels
	Viewport Rect
	TileMode TileMode
}

// ParseBrush parses a brush element. Image sources are resolved against the directory baseURI.
func ParseBrush(pkg *Package, baseURI string, elem *Element) (*Brush, error) {
	brush := &Brush{
		Opacity:   1.0,
		Transform: Identity,
	}
	if val, ok := elem.Attr("Opacity"); ok {
		opacity, ok := parseFloat(val)
		if !ok {
			return nil, fmt.Errorf("bad opacity %q", val)
		}
		brush.Opacity = math.Min(math.Max(opacity, 0.0), 1.0)
	}
	var err error
	if brush.Transform, err = parseTransform(elem, "Transform"); err != nil {
		return nil, err
	}

	switch elem.Name {
	case "SolidColorBrush":
		brush.Kind = SolidColorBrush
		val, _ := elem.Attr("Color")
		if brush.Color, err = ParseColor(val); err != nil {
			return nil, err
		}
	case "LinearGradientBrush":
		brush.Kind = LinearGradientBrush
		if brush.Start, err = parsePointAttr(elem, "StartPoint"); err != nil {
			return nil, err
		} else if brush.End, err = parsePointAttr(elem, "EndPoint"); err != nil {
			return nil, err
		}
		if err := parseGradient(brush, elem); err != nil {
			return nil, err
		}
	case "RadialGradientBrush":
		brush.Kind = RadialGradientBrush
		if brush.Center, err = parsePointAttr(elem, "Center"); err != nil {
			return nil, err
		} else if brush.Origin, err = parsePointAttr(elem, "GradientOrigin"); err != nil {
			return nil, err
		}
		rx, _ := elem.Attr("RadiusX")
		ry, _ := elem.Attr("RadiusY")
		var okx, oky bool
		brush.RadiusX, okx = parseFloat(rx)
		brush.RadiusY, oky = parseFloat(ry)
		if !okx || !oky {
			return nil, fmt.Errorf("bad radius %q,%q", rx, ry)
		}
		if err := parseGradient(brush, elem); err != nil {
			return nil, err
		}
	case "ImageBrush":
		brush.Kind = ImageBrush
		source, _ := elem.Attr("ImageSource")
		if strings.HasPrefix(source, "{") {
			return nil, fmt.Errorf("%w: image source %s", ErrUnsupportedBrush, source)
		}
		b, err := pkg.ReadPart(AbsolutePartName(baseURI, source))
		if err != nil {
			return nil, err
		}
		if brush.Image, _, err = image.Decode(bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		viewbox, _ := elem.Attr("Viewbox")
		viewport, _ := elem.Attr("Viewport")
		if brush.Viewbox, err = ParseRect(viewbox); err != nil {
			return nil, err
		} else if brush.Viewport, err = ParseRect(viewport); err != nil {
			return nil, err
		}
		switch tileMode, _ := elem.Attr("TileMode"); tileMode {
		case "Tile":
			brush.TileMode = Tile
		case "FlipX":
			brush.TileMode = FlipX
		case "FlipY":
			brush.TileMode = FlipY
		case "FlipXY":
			brush.TileMode = FlipXY
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBrush, elem.Name)
	}
	return brush, nil
}

func parsePointAttr(elem *Element, name string) (Point, error) {
	val, _ := elem.Attr(name)
	pts, err := parsePoints(val)
	if err != nil || len(pts) != 1 {
		return Point{}, fmt.Errorf("bad %s %q", name, val)
	}
	return pts[0], nil
}

func parseGradient(brush *Brush, elem *Element) error {
	switch spread, _ := elem.Attr("SpreadMethod"); spread {
	case "Reflect":
		brush.SpreadMethod = ReflectSpread
	case "Repeat":
		brush.SpreadMethod = RepeatSpread
	}

	stops := elem.Child(elem.Name + ".GradientStops")
	if stops == nil {
		return fmt.Errorf("%s: missing gradient stops", elem.Name)
	}
	for _, stop := range stops.Children {
		if stop.Name != "GradientStop" {
			continue
		}
		val, _ := stop.Attr("Color")
		col, err := ParseColor(val)
		if err != nil {
			return err
		}
		val, _ = stop.Attr("Offset")
		offset, ok := parseFloat(val)
		if !ok {
			return fmt.Errorf("bad gradient stop offset %q", val)
		}
		brush.Stops.Add(offset, col)
	}
	return nil
}

// IsSolid returns true for solid color brushes.
func (b *Brush) IsSolid() bool {
	return b.Kind == SolidColorBrush
}

// SolidColor returns the color of a solid brush with the brush opacity applied.
func (b *Brush) SolidColor() color.RGBA {
	return MulAlpha(b.Color, b.Opacity)
}

// At returns the color at (x,y) in brush space, with the brush opacity applied.
func (b *Brush) At(x, y float64) color.RGBA {
	var col color.RGBA
	switch b.Kind {
	case SolidColorBrush:
		col = b.Color
	case LinearGradientBrush:
		d := b.End.Sub(b.Start)
		d2 := d.X*d.X + d.Y*d.Y
		if d2 == 0.0 {
			col = b.Stops.At(0.0)
			break
		}
		t := ((x-b.Start.X)*d.X + (y-b.Start.Y)*d.Y) / d2
		col = b.Stops.At(b.spread(t))
	case RadialGradientBrush:
		col = b.Stops.At(b.spread(b.radialOffset(x, y)))
	case ImageBrush:
		col = b.imageAt(x, y)
	}
	return MulAlpha(col, b.Opacity)
}

// radialOffset returns the gradient offset at (x,y): the ellipse is mapped to the unit circle, the gradient origin has offset zero and the ellipse boundary offset one.
func (b *Brush) radialOffset(x, y float64) float64 {
	if b.RadiusX == 0.0 || b.RadiusY == 0.0 {
		return 1.0
	}
	o := Point{(b.Origin.X - b.Center.X) / b.RadiusX, (b.Origin.Y - b.Center.Y) / b.RadiusY}
	d := Point{(x-b.Center.X)/b.RadiusX - o.X, (y-b.Center.Y)/b.RadiusY - o.Y}
	dd := d.X*d.X + d.Y*d.Y
	if dd == 0.0 {
		return 0.0
	}
	// solve |o + s·d| = 1 for s > 0, the offset is 1/s
	od := o.X*d.X + o.Y*d.Y
	disc := od*od - dd*(o.X*o.X+o.Y*o.Y-1.0)
	if disc < 0.0 {
		return 1.0
	}
	s := (-od + math.Sqrt(disc)) / dd
	if s <= 0.0 {
		return 1.0
	}
	return 1.0 / s
}

func (b *Brush) spread(t float64) float64 {
	switch b.SpreadMethod {
	case RepeatSpread:
		return t - math.Floor(t)
	case ReflectSpread:
		t = math.Mod(math.Abs(t), 2.0)
		if 1.0 < t {
			t = 2.0 - t
		}
		return t
	}
	return t
}

func (b *Brush) imageAt(x, y float64) color.RGBA {
	if b.Image == nil || b.Viewport.W == 0.0 || b.Viewport.H == 0.0 {
		return Transparent
	}
	tx := (x - b.Viewport.X) / b.Viewport.W
	ty := (y - b.Viewport.Y) / b.Viewport.H
	if b.TileMode == NoTile {
		if tx < 0.0 || 1.0 <= tx || ty < 0.0 || 1.0 <= ty {
			return Transparent
		}
	} else {
		tx = tile(tx, b.TileMode == FlipX || b.TileMode == FlipXY)
		ty = tile(ty, b.TileMode == FlipY || b.TileMode == FlipXY)
	}

	bounds := b.Image.Bounds()
	px := bounds.Min.X + int(math.Floor(b.Viewbox.X+tx*b.Viewbox.W))
	py := bounds.Min.Y + int(math.Floor(b.Viewbox.Y+ty*b.Viewbox.H))
	if !(image.Point{px, py}).In(bounds) {
		return Transparent
	}
	return color.RGBAModel.Convert(b.Image.At(px, py)).(color.RGBA)
}

func tile(t float64, flip bool) float64 {
	i := math.Floor(t)
	t -= i
	if flip && int(i)%2 != 0 {
		t = 1.0 - t
	}
	return t
}

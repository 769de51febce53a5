package xps

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Transparent is the fully transparent color.
var Transparent = color.RGBA{0x00, 0x00, 0x00, 0x00}

// Black is opaque black.
var Black = color.RGBA{0x00, 0x00, 0x00, 0xff}

// ParseColor parses an XPS color: #RRGGBB, #AARRGGBB, scRGB as sc#R,G,B or sc#A,R,G,B, or a ContextColor whose components are approximated as gray, RGB or CMYK. The returned color is alpha premultiplied.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "sc#") {
		v, err := parseFloatList(s[3:], strings.Count(s, ",")+1)
		if err != nil {
			return Black, err
		}
		a := 1.0
		if len(v) == 4 {
			a, v = v[0], v[1:]
		} else if len(v) != 3 {
			return Black, fmt.Errorf("bad scRGB color %q", s)
		}
		return premultiply(scRGBToSRGB(v[0]), scRGBToSRGB(v[1]), scRGBToSRGB(v[2]), a), nil
	} else if strings.HasPrefix(s, "ContextColor ") {
		fields := strings.Fields(s)
		if len(fields) != 3 {
			return Black, fmt.Errorf("bad context color %q", s)
		}
		v, err := parseFloatList(fields[2], strings.Count(fields[2], ",")+1)
		if err != nil {
			return Black, err
		}
		a, v := v[0], v[1:]
		switch len(v) {
		case 1:
			return premultiply(v[0], v[0], v[0], a), nil
		case 3:
			return premultiply(v[0], v[1], v[2], a), nil
		case 4:
			k := 1.0 - v[3]
			return premultiply((1.0-v[0])*k, (1.0-v[1])*k, (1.0-v[2])*k, a), nil
		}
		return Black, fmt.Errorf("unsupported context color %q", s)
	} else if 0 < len(s) && s[0] == '#' {
		s = s[1:]
		h := make([]uint8, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if '0' <= c && c <= '9' {
				h[i] = c - '0'
			} else if 'a' <= c && c <= 'f' {
				h[i] = 10 + c - 'a'
			} else if 'A' <= c && c <= 'F' {
				h[i] = 10 + c - 'A'
			} else {
				return Black, fmt.Errorf("bad hex color %q", s)
			}
		}
		if len(s) == 6 {
			return color.RGBA{h[0]*16 + h[1], h[2]*16 + h[3], h[4]*16 + h[5], 0xff}, nil
		} else if len(s) == 8 {
			a := float64(h[0]*16+h[1]) / 255.0
			return color.RGBA{
				uint8(a*float64(h[2]*16+h[3]) + 0.5),
				uint8(a*float64(h[4]*16+h[5]) + 0.5),
				uint8(a*float64(h[6]*16+h[7]) + 0.5),
				h[0]*16 + h[1],
			}, nil
		}
	}
	return Black, fmt.Errorf("bad color %q", s)
}

func scRGBToSRGB(c float64) float64 {
	if c <= 0.0 {
		return 0.0
	} else if 1.0 <= c {
		return 1.0
	} else if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func premultiply(r, g, b, a float64) color.RGBA {
	clamp := func(f float64) float64 {
		return math.Min(math.Max(f, 0.0), 1.0)
	}
	a = clamp(a)
	return color.RGBA{
		uint8(a*clamp(r)*255.0 + 0.5),
		uint8(a*clamp(g)*255.0 + 0.5),
		uint8(a*clamp(b)*255.0 + 0.5),
		uint8(a*255.0 + 0.5),
	}
}

// MulAlpha multiplies the opacity of an alpha premultiplied color by a ∈ [0,1].
func MulAlpha(col color.RGBA, a float64) color.RGBA {
	if 1.0 <= a {
		return col
	} else if a <= 0.0 {
		return Transparent
	}
	return color.RGBA{
		uint8(a*float64(col.R) + 0.5),
		uint8(a*float64(col.G) + 0.5),
		uint8(a*float64(col.B) + 0.5),
		uint8(a*float64(col.A) + 0.5),
	}
}

////////////////////////////////////////////////////////////////

// Stop is a color and offset for gradients.
type Stop struct {
	Offset float64
	Color  color.RGBA
}

// Stops are the colors and offsets for gradients, sorted by offset.
type Stops []Stop

// Add adds a new color stop and keeps the stops sorted.
func (stops *Stops) Add(t float64, color color.RGBA) {
	stop := Stop{math.Min(math.Max(t, 0.0), 1.0), color}
	for i := range *stops {
		if stop.Offset < (*stops)[i].Offset {
			*stops = append((*stops)[:i], append(Stops{stop}, (*stops)[i:]...)...)
			return
		}
	}
	*stops = append(*stops, stop)
}

// At returns the color at position t ∈ [0,1].
func (stops Stops) At(t float64) color.RGBA {
	if len(stops) == 0 {
		return Transparent
	} else if t <= stops[0].Offset || len(stops) == 1 {
		return stops[0].Color
	} else if stops[len(stops)-1].Offset <= t {
		return stops[len(stops)-1].Color
	}
	for i, stop := range stops[1:] {
		if t < stop.Offset {
			t = (t - stops[i].Offset) / (stop.Offset - stops[i].Offset)
			return colorLerp(stops[i].Color, stop.Color, t)
		}
	}
	return stops[len(stops)-1].Color
}

func colorLerp(c0, c1 color.RGBA, t float64) color.RGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8((1.0-t)*float64(a) + t*float64(b) + 0.5)
	}
	return color.RGBA{
		lerp(c0.R, c1.R),
		lerp(c0.G, c1.G),
		lerp(c0.B, c1.B),
		lerp(c0.A, c1.A),
	}
}

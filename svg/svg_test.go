package svg

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/tdewolff/test"
	"github.com/tdewolff/xps"
)

func rect(x, y, w, h float64) *xps.Path {
	return xps.Rect{X: x, Y: y, W: w, H: h}.ToPath()
}

func TestFillPath(t *testing.T) {
	var buf bytes.Buffer
	svg := New(&buf, 100.0, 50.0, nil)
	svg.FillPath(rect(0.0, 0.0, 10.0, 10.0), xps.Identity.Translate(5.0, 0.0), color.RGBA{0xff, 0x00, 0x00, 0xff})
	svg.FillPath(rect(0.0, 0.0, 10.0, 10.0), xps.Identity, color.RGBA{0x00, 0x00, 0x00, 0x00})
	test.Error(t, svg.Close())

	test.String(t, buf.String(), `<svg version="1.1" width="100" height="50" viewBox="0 0 100 50" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+
		`<path d="M5 0L15 0L15 10L5 10z" fill="#ff0000" fill-rule="evenodd"/></svg>`)
}

func TestClip(t *testing.T) {
	var buf bytes.Buffer
	svg := New(&buf, 100.0, 50.0, nil)
	clip := rect(0.0, 0.0, 20.0, 20.0)
	clip.FillRule = xps.NonZero
	svg.PushClip(clip, xps.Identity)
	svg.PushClip(rect(0.0, 0.0, 10.0, 10.0), xps.Identity)
	svg.PopClip()
	test.Error(t, svg.Close())

	s := buf.String()
	test.That(t, strings.Contains(s, `<clipPath id="c1"><path d="M0 0L20 0L20 20L0 20z" clip-rule="nonzero"/></clipPath><g clip-path="url(#c1)">`), s)
	test.That(t, strings.Contains(s, `<clipPath id="c2"><path d="M0 0L10 0L10 10L0 10z" clip-rule="evenodd"/></clipPath><g clip-path="url(#c2)"></g></g></svg>`), s)
}

func TestGlyphs(t *testing.T) {
	var buf bytes.Buffer
	svg := New(&buf, 100.0, 50.0, nil)
	run := &xps.GlyphRun{Matrix: xps.Identity}
	svg.FillGlyphs(run, xps.Identity, color.RGBA{0x00, 0x00, 0x00, 0xff})
	svg.PushGlyphClip(run, xps.Identity)
	svg.PopClip()
	test.Error(t, svg.Close())

	// an empty run draws nothing but still clips
	s := buf.String()
	test.That(t, !strings.Contains(s, "<path d=\"\" fill"), s)
	test.That(t, strings.Contains(s, `<g clip-path="url(#c1)"></g></svg>`), s)
}

func TestPaintBrush(t *testing.T) {
	var stops xps.Stops
	stops.Add(0.0, color.RGBA{0xff, 0x00, 0x00, 0xff})
	stops.Add(1.0, color.RGBA{0x00, 0x00, 0xff, 0xff})

	var tts = []struct {
		name  string
		brush *xps.Brush
		want  []string
	}{
		{"solid", &xps.Brush{Kind: xps.SolidColorBrush, Color: color.RGBA{0x00, 0xff, 0x00, 0xff}, Opacity: 1.0, Transform: xps.Identity}, []string{
			`<rect width="100" height="50" fill="#00ff00" fill-opacity="1"/>`,
		}},
		{"linear", &xps.Brush{Kind: xps.LinearGradientBrush, Opacity: 1.0, Transform: xps.Identity, Stops: stops, SpreadMethod: xps.ReflectSpread, End: xps.Point{X: 10.0, Y: 0.0}}, []string{
			`<linearGradient id="g1" gradientUnits="userSpaceOnUse" spreadMethod="reflect" gradientTransform="matrix(1,0,0,1,0,0)" x1="0" y1="0" x2="10" y2="0">`,
			`<stop offset="0" stop-color="#ff0000"/><stop offset="1" stop-color="#0000ff"/></linearGradient></defs>`,
			`<rect width="100" height="50" fill="url(#g1)"/>`,
		}},
		{"radial", &xps.Brush{Kind: xps.RadialGradientBrush, Opacity: 1.0, Transform: xps.Identity, Stops: stops, Center: xps.Point{X: 10.0, Y: 10.0}, Origin: xps.Point{X: 10.0, Y: 10.0}, RadiusX: 10.0, RadiusY: 20.0}, []string{
			`<radialGradient id="g1" gradientUnits="userSpaceOnUse" spreadMethod="pad" gradientTransform="matrix(1,0,0,2,0,-10)" cx="10" cy="10" r="10" fx="10" fy="10">`,
		}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			svg := New(&buf, 100.0, 50.0, nil)
			svg.PaintBrush(tt.brush, xps.Identity)
			test.Error(t, svg.Close())
			for _, want := range tt.want {
				test.That(t, strings.Contains(buf.String(), want), buf.String())
			}
		})
	}
}

func TestPaintImageBrush(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	svg := New(&buf, 100.0, 50.0, nil)
	svg.PaintBrush(&xps.Brush{
		Kind:      xps.ImageBrush,
		Opacity:   1.0,
		Transform: xps.Identity,
		Image:     img,
		Viewbox:   xps.Rect{X: 2.0, Y: 0.0, W: 2.0, H: 4.0},
		Viewport:  xps.Rect{X: 0.0, Y: 0.0, W: 20.0, H: 40.0},
	}, xps.Identity)
	test.Error(t, svg.Close())
	test.That(t, strings.Contains(buf.String(), `<image transform="matrix(10,0,0,10,0,0)" width="2" height="4" xlink:href="data:image/png;base64,`), buf.String())
}

func TestPaintTiledImageBrush(t *testing.T) {
	var tts = []struct {
		tileMode xps.TileMode
		want     []string
	}{
		{xps.Tile, []string{
			`<defs><pattern id="p1" patternUnits="userSpaceOnUse" patternTransform="matrix(1,0,0,1,5,0)" x="0" y="0" width="20" height="40"><image id="i2" transform="matrix(10,0,0,10,0,0)" width="2" height="4" xlink:href="data:image/png;base64,`,
			`"/></pattern></defs><rect width="100" height="50" fill="url(#p1)"/>`,
		}},
		{xps.FlipX, []string{
			`width="40" height="40">`,
			`<use xlink:href="#i2" transform="matrix(-1,0,0,1,40,0)"/></pattern>`,
		}},
		{xps.FlipXY, []string{
			`width="40" height="80">`,
			`<use xlink:href="#i2" transform="matrix(-1,0,0,1,40,0)"/><use xlink:href="#i2" transform="matrix(1,0,0,-1,0,80)"/><use xlink:href="#i2" transform="matrix(-1,0,0,-1,40,80)"/></pattern>`,
		}},
	}
	for _, tt := range tts {
		t.Run(fmt.Sprint(tt.tileMode), func(t *testing.T) {
			var buf bytes.Buffer
			svg := New(&buf, 100.0, 50.0, nil)
			svg.PaintBrush(&xps.Brush{
				Kind:      xps.ImageBrush,
				Opacity:   1.0,
				Transform: xps.Identity,
				Image:     image.NewRGBA(image.Rect(0, 0, 4, 4)),
				Viewbox:   xps.Rect{X: 2.0, Y: 0.0, W: 2.0, H: 4.0},
				Viewport:  xps.Rect{X: 0.0, Y: 0.0, W: 20.0, H: 40.0},
				TileMode:  tt.tileMode,
			}, xps.Identity.Translate(5.0, 0.0))
			test.Error(t, svg.Close())
			for _, want := range tt.want {
				test.That(t, strings.Contains(buf.String(), want), buf.String())
			}
		})
	}
}

func TestCompression(t *testing.T) {
	var buf bytes.Buffer
	svg := New(&buf, 10.0, 10.0, &Options{Compression: -1})
	svg.FillPath(rect(0.0, 0.0, 10.0, 10.0), xps.Identity, color.RGBA{0xff, 0x00, 0x00, 0xff})
	test.Error(t, svg.Close())

	r, err := gzip.NewReader(&buf)
	test.Error(t, err)
	b, err := io.ReadAll(r)
	test.Error(t, err)
	test.That(t, strings.HasPrefix(string(b), `<svg version="1.1" width="10" height="10"`))
	test.That(t, strings.HasSuffix(string(b), `</svg>`))
}

func TestWriter(t *testing.T) {
	pkg := xps.NewPackage(fstest.MapFS{
		"Documents/1/Pages/1.fpage": {Data: []byte(`<FixedPage Width="40" Height="30"><Path Data="M0,0 L10,0 L10,10 Z" Fill="#0000FF"/></FixedPage>`)},
	})
	page, err := xps.LoadPage(pkg, "/Documents/1/Pages/1.fpage")
	test.Error(t, err)

	var buf bytes.Buffer
	test.Error(t, Writer(&buf, pkg, page, nil, nil))
	test.String(t, buf.String(), `<svg version="1.1" width="40" height="30" viewBox="0 0 40 30" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`+
		`<path d="M0 0L10 0L10 10z" fill="#0000ff" fill-rule="evenodd"/></svg>`)
}

func TestCSSColor(t *testing.T) {
	col, opacity := cssColor(color.RGBA{0x80, 0x00, 0x00, 0x80})
	test.String(t, col, "#ff0000")
	test.Float(t, opacity, 128.0/255.0)

	col, opacity = cssColor(color.RGBA{})
	test.String(t, col, "#000000")
	test.Float(t, opacity, 0.0)
}

package xps

import (
	"bytes"
	"fmt"
	"path"
)

// Page is a parsed FixedPage part.
type Page struct {
	Name          string
	Width, Height float64
	Root          *Element
}

// LoadPage reads and parses a FixedPage part.
func LoadPage(pkg *Package, name string) (*Page, error) {
	b, err := pkg.ReadPart(name)
	if err != nil {
		return nil, err
	}
	root, err := ParseElement(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	} else if root.Name != "FixedPage" {
		return nil, fmt.Errorf("%s: expected FixedPage, got %s", name, root.Name)
	}

	page := &Page{
		Name: name,
		Root: root,
	}
	width, _ := root.Attr("Width")
	height, _ := root.Attr("Height")
	var okW, okH bool
	page.Width, okW = parseFloat(width)
	page.Height, okH = parseFloat(height)
	if !okW || !okH {
		return nil, fmt.Errorf("%s: bad page size %q,%q", name, width, height)
	}
	return page, nil
}

// RenderPage renders a page with transformation m. Elements that fail to render are logged and skipped.
func (ctx *Context) RenderPage(page *Page, m Matrix) error {
	baseURI := path.Dir(page.Name)
	dict, err := ctx.parseResources(baseURI, page.Root, nil)
	if err != nil {
		return err
	}
	ctx.renderChildren(baseURI, dict, m, page.Root)
	return nil
}

func (ctx *Context) parseResources(baseURI string, elem *Element, parent *ResourceDictionary) (*ResourceDictionary, error) {
	if resources := elem.Property("Resources"); resources != nil && resources.Name == "ResourceDictionary" {
		return ParseResourceDictionary(ctx.pkg, baseURI, resources, parent)
	}
	return parent, nil
}

func (ctx *Context) renderChildren(baseURI string, dict *ResourceDictionary, m Matrix, elem *Element) {
	for _, child := range elem.Children {
		switch child.Name {
		case "Canvas":
			if err := ctx.renderCanvas(baseURI, dict, m, child); err != nil {
				Logger().Warn("skipping canvas", "error", err)
			}
		case "Path":
			if err := ctx.renderPath(baseURI, dict, m, child); err != nil {
				Logger().Warn("skipping path", "error", err)
			}
		case "Glyphs":
			_ = ctx.RenderGlyphs(baseURI, dict, m, child)
		}
	}
}

// elementTransform returns the RenderTransform of an element, resolving resource references.
func elementTransform(dict *ResourceDictionary, elem *Element) (Matrix, error) {
	if val, ok := elem.Attr("RenderTransform"); ok {
		if res, _, ok := dict.Resolve(val); ok {
			val, _ = res.Attr("Matrix")
		}
		return ParseMatrix(val)
	}
	return parseTransform(elem, "RenderTransform")
}

// elementGeometry returns the geometry of attribute or property name, resolving resource references. It returns nil if there is none.
func elementGeometry(dict *ResourceDictionary, elem *Element, name string) (*Path, error) {
	val, ok := elem.Attr(name)
	tag := elem.Property(name)
	if ok {
		if res, _, isRes := dict.Resolve(val); isRes {
			tag = res
		}
	} else if tag == nil {
		return nil, nil
	}
	return ParseGeometry(val, tag)
}

func (ctx *Context) renderCanvas(baseURI string, dict *ResourceDictionary, m Matrix, elem *Element) error {
	dict, err := ctx.parseResources(baseURI, elem, dict)
	if err != nil {
		return err
	}
	transform, err := elementTransform(dict, elem)
	if err != nil {
		return err
	}
	m = m.Mul(transform)

	clip, err := elementGeometry(dict, elem, "Clip")
	if err != nil {
		return err
	} else if clip != nil {
		ctx.sink.PushClip(clip, m)
		defer ctx.sink.PopClip()
	}
	if _, ok := elem.Attr("Opacity"); ok {
		Logger().Debug("canvas opacity is not supported")
	}
	ctx.renderChildren(baseURI, dict, m, elem)
	return nil
}

func (ctx *Context) renderPath(baseURI string, dict *ResourceDictionary, m Matrix, elem *Element) error {
	transform, err := elementTransform(dict, elem)
	if err != nil {
		return err
	}
	m = m.Mul(transform)

	data, err := elementGeometry(dict, elem, "Data")
	if err != nil {
		return err
	} else if data == nil || data.IsEmpty() {
		return nil
	}

	clip, err := elementGeometry(dict, elem, "Clip")
	if err != nil {
		return err
	} else if clip != nil {
		ctx.sink.PushClip(clip, m)
		defer ctx.sink.PopClip()
	}

	opacity := 1.0
	if val, ok := elem.Attr("Opacity"); ok {
		if opacity, ok = parseFloat(val); !ok {
			return fmt.Errorf("bad Opacity %q", val)
		}
	}
	if _, ok := elem.Attr("Stroke"); ok || elem.Property("Stroke") != nil {
		Logger().Debug("path strokes are not supported")
	}

	fillURI := baseURI
	fill, hasFill := elem.Attr("Fill")
	fillTag := elem.Property("Fill")
	if hasFill {
		if res, base, ok := dict.Resolve(fill); ok {
			fillTag, fillURI, hasFill = res, base, false
		}
	}
	if hasFill {
		col, err := ParseColor(fill)
		if err != nil {
			return err
		}
		ctx.sink.FillPath(data, m, MulAlpha(col, opacity))
	} else if fillTag != nil {
		brush, err := ParseBrush(ctx.pkg, fillURI, fillTag)
		if err != nil {
			return err
		}
		if brush.IsSolid() {
			ctx.sink.FillPath(data, m, MulAlpha(brush.SolidColor(), opacity))
		} else {
			brush.Opacity *= opacity
			ctx.sink.PushClip(data, m)
			ctx.sink.PaintBrush(brush, m)
			ctx.sink.PopClip()
		}
	}
	return nil
}

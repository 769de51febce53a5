package xps

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// Attr is a markup attribute.
type Attr struct {
	Name, Val string
}

// Element is a markup element of a fixed page or resource dictionary. Property elements such as Glyphs.Fill are kept as regular children.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
}

// Attr returns the value of the named attribute and whether it exists.
func (e *Element) Attr(name string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name == name {
			return attr.Val, true
		}
	}
	return "", false
}

// Child returns the first child with the given name.
func (e *Element) Child(name string) *Element {
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Property returns the first element inside the property element Name.prop, e.g. the brush inside Glyphs.Fill.
func (e *Element) Property(prop string) *Element {
	if child := e.Child(e.Name + "." + prop); child != nil && 0 < len(child.Children) {
		return child.Children[0]
	}
	return nil
}

func (e *Element) String() string {
	return "<" + e.Name + ">"
}

// ParseElement parses markup and returns its root element.
func ParseElement(r io.Reader) (*Element, error) {
	z := parse.NewInput(r)
	defer z.Restore()

	var root *Element
	var stack []*Element
	l := xml.NewLexer(z)
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, l.Err()
			} else if root == nil {
				return nil, fmt.Errorf("expected root element")
			}
			return root, nil
		case xml.StartTagToken:
			elem := &Element{
				Name: localName(string(data[1:])),
			}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if 1 < len(val) && (val[0] == '\'' || val[0] == '"') && val[0] == val[len(val)-1] {
					val = val[1 : len(val)-1]
				}
				elem.Attrs = append(elem.Attrs, Attr{
					Name: string(l.Text()),
					Val:  html.UnescapeString(string(val)),
				})
			}
			if tt == xml.ErrorToken {
				return nil, l.Err()
			}

			if len(stack) != 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			} else if root == nil {
				root = elem
			} else {
				return nil, parse.NewErrorLexer(z, "unexpected element %s after root element", elem.Name)
			}
			if tt != xml.StartTagCloseVoidToken {
				stack = append(stack, elem)
			}
		case xml.EndTagToken:
			if len(stack) == 0 {
				return nil, parse.NewErrorLexer(z, "unexpected end tag")
			}
			name := localName(string(data[2 : len(data)-1]))
			if stack[len(stack)-1].Name != name {
				return nil, parse.NewErrorLexer(z, "unexpected end tag %s", name)
			}
			stack = stack[:len(stack)-1]
		}
	}
}

func localName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ':'); i != -1 {
		return name[i+1:]
	}
	return name
}

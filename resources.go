package xps

import (
	"bytes"
	"fmt"
	"path"
	"strings"
)

// ResourceDictionary holds keyed resources such as brushes, geometries and transforms. Lookups continue in the parent dictionary.
type ResourceDictionary struct {
	BaseURI string // directory of the part that defines the resources
	Parent  *ResourceDictionary

	entries map[string]*Element
}

// ParseResourceDictionary parses a ResourceDictionary element. A Source attribute loads the dictionary from a remote part, relative to baseURI.
func ParseResourceDictionary(pkg *Package, baseURI string, elem *Element, parent *ResourceDictionary) (*ResourceDictionary, error) {
	dict := &ResourceDictionary{
		BaseURI: baseURI,
		Parent:  parent,
		entries: map[string]*Element{},
	}
	if source, ok := elem.Attr("Source"); ok {
		name := AbsolutePartName(baseURI, source)
		b, err := pkg.ReadPart(name)
		if err != nil {
			return nil, err
		}
		remote, err := ParseElement(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		} else if remote.Name != "ResourceDictionary" {
			return nil, fmt.Errorf("%s: expected ResourceDictionary, got %s", name, remote.Name)
		}
		dict.BaseURI = path.Dir(name)
		elem = remote
	}

	for _, child := range elem.Children {
		if key, ok := child.Attr("x:Key"); ok {
			dict.entries[key] = child
		}
	}
	return dict, nil
}

// Lookup returns the resource with the given key and the dictionary that holds it.
func (dict *ResourceDictionary) Lookup(key string) (*Element, *ResourceDictionary) {
	for d := dict; d != nil; d = d.Parent {
		if elem, ok := d.entries[key]; ok {
			return elem, d
		}
	}
	return nil, nil
}

// Resolve resolves an attribute value of the form {StaticResource key}. It returns the resource and the base URI to resolve its part references against.
func (dict *ResourceDictionary) Resolve(val string) (*Element, string, bool) {
	key, ok := staticResourceKey(val)
	if !ok {
		return nil, "", false
	}
	elem, d := dict.Lookup(key)
	if elem == nil {
		return nil, "", false
	}
	return elem, d.BaseURI, true
}

func staticResourceKey(val string) (string, bool) {
	val = strings.TrimSpace(val)
	if !strings.HasPrefix(val, "{StaticResource ") || !strings.HasSuffix(val, "}") {
		return "", false
	}
	return strings.TrimSpace(val[len("{StaticResource ") : len(val)-1]), true
}

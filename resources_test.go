package xps

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/tdewolff/test"
)

func TestResourceDictionary(t *testing.T) {
	parent, err := ParseResourceDictionary(nil, "/Documents/1/Pages", parseTestElement(t, `<ResourceDictionary>
	<SolidColorBrush x:Key="Red" Color="#FF0000"/>
	<SolidColorBrush x:Key="Blue" Color="#0000FF"/>
</ResourceDictionary>`), nil)
	test.Error(t, err)
	dict, err := ParseResourceDictionary(nil, "/Documents/1/Pages", parseTestElement(t, `<ResourceDictionary>
	<SolidColorBrush x:Key="Red" Color="#800000"/>
	<SolidColorBrush Color="#000000"/>
</ResourceDictionary>`), parent)
	test.Error(t, err)

	elem, d := dict.Lookup("Red")
	test.That(t, d == dict)
	val, _ := elem.Attr("Color")
	test.String(t, val, "#800000")

	elem, d = dict.Lookup("Blue")
	test.That(t, d == parent)
	val, _ = elem.Attr("Color")
	test.String(t, val, "#0000FF")

	elem, _ = dict.Lookup("Green")
	test.That(t, elem == nil)

	var nilDict *ResourceDictionary
	elem, _ = nilDict.Lookup("Red")
	test.That(t, elem == nil)
	_, _, ok := nilDict.Resolve("{StaticResource Red}")
	test.That(t, !ok)
}

func TestResourceDictionaryResolve(t *testing.T) {
	dict, err := ParseResourceDictionary(nil, "/Documents/1/Pages", parseTestElement(t, `<ResourceDictionary><SolidColorBrush x:Key="Red" Color="#FF0000"/></ResourceDictionary>`), nil)
	test.Error(t, err)

	var tts = []struct {
		val string
		ok  bool
	}{
		{"{StaticResource Red}", true},
		{" {StaticResource  Red } ", true},
		{"{StaticResource Blue}", false},
		{"#FF0000", false},
		{"{StaticResource Red", false},
	}
	for _, tt := range tts {
		t.Run(tt.val, func(t *testing.T) {
			elem, base, ok := dict.Resolve(tt.val)
			test.T(t, ok, tt.ok)
			if ok {
				test.String(t, elem.Name, "SolidColorBrush")
				test.String(t, base, "/Documents/1/Pages")
			}
		})
	}
}

func TestResourceDictionarySource(t *testing.T) {
	pkg := NewPackage(fstest.MapFS{
		"Documents/1/Resources/remote.dict": {Data: []byte(`<ResourceDictionary><ImageBrush x:Key="Photo" ImageSource="photo.png" Viewbox="0,0,1,1" Viewport="0,0,1,1"/></ResourceDictionary>`)},
		"Documents/1/Resources/bad.dict":    {Data: []byte(`<Canvas/>`)},
	})

	dict, err := ParseResourceDictionary(pkg, "/Documents/1/Pages", parseTestElement(t, `<ResourceDictionary Source="../Resources/remote.dict"/>`), nil)
	test.Error(t, err)
	test.String(t, dict.BaseURI, "/Documents/1/Resources")

	// image sources resolve against the remote dictionary
	_, base, ok := dict.Resolve("{StaticResource Photo}")
	test.That(t, ok)
	test.String(t, base, "/Documents/1/Resources")

	_, err = ParseResourceDictionary(pkg, "/Documents/1/Pages", parseTestElement(t, `<ResourceDictionary Source="../Resources/bad.dict"/>`), nil)
	test.That(t, err != nil)

	_, err = ParseResourceDictionary(pkg, "/Documents/1/Pages", parseTestElement(t, `<ResourceDictionary Source="missing.dict"/>`), nil)
	test.That(t, errors.Is(err, ErrResourceNotFound), err)
}

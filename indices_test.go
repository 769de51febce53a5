package xps

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestParseIndices(t *testing.T) {
	var tts = []struct {
		name     string
		indices  string
		unicode  string
		clusters []Cluster
		glyphs   []GlyphToken
	}{
		{"glyphs", "3;(2:1)5,10.5,1,0;7", "", []Cluster{{1, 1, ""}, {2, 1, ""}, {1, 1, ""}}, []GlyphToken{
			{Cluster: 0, Index: 3, HasIndex: true, CharCode: '?'},
			{Cluster: 1, Index: 5, HasIndex: true, Advance: 10.5, HasAdvance: true, UOffset: 1, CharCode: '?'},
			{Cluster: 2, Index: 7, HasIndex: true, CharCode: '?'},
		}},
		{"unicode only", "", "AB", []Cluster{{1, 1, "A"}, {1, 1, "B"}}, []GlyphToken{
			{Cluster: 0, Index: -1, CharCode: 'A'},
			{Cluster: 1, Index: -1, CharCode: 'B'},
		}},
		{"escaped unicode", "", "{}{A", []Cluster{{1, 1, "{"}, {1, 1, "A"}}, []GlyphToken{
			{Cluster: 0, Index: -1, CharCode: '{'},
			{Cluster: 1, Index: -1, CharCode: 'A'},
		}},
		{"cluster", "(2:1)10", "ABC", []Cluster{{2, 1, "AB"}, {1, 1, "C"}}, []GlyphToken{
			{Cluster: 0, Index: 10, HasIndex: true, CharCode: 'B'},
			{Cluster: 1, Index: -1, CharCode: 'C'},
		}},
		{"ligature glyphs", "(1:2)4;5", "f", []Cluster{{1, 2, "f"}}, []GlyphToken{
			{Cluster: 0, Index: 4, HasIndex: true, CharCode: 'f'},
			{Cluster: 0, Index: 5, HasIndex: true, CharCode: 'f'},
		}},
		{"clamp counts", "(0:0)4", "", []Cluster{{1, 1, ""}}, []GlyphToken{
			{Cluster: 0, Index: 4, HasIndex: true, CharCode: '?'},
		}},
		{"advance only", ",20;,30", "AB", []Cluster{{1, 1, "A"}, {1, 1, "B"}}, []GlyphToken{
			{Cluster: 0, Index: -1, Advance: 20, HasAdvance: true, CharCode: 'A'},
			{Cluster: 1, Index: -1, Advance: 30, HasAdvance: true, CharCode: 'B'},
		}},
		{"empty field", "1,,5,2", "", []Cluster{{1, 1, ""}}, []GlyphToken{
			{Cluster: 0, Index: 1, HasIndex: true, UOffset: 5, VOffset: 2, CharCode: '?'},
		}},
		{"exponent", "1,1e2,-5E-1", "", []Cluster{{1, 1, ""}}, []GlyphToken{
			{Cluster: 0, Index: 1, HasIndex: true, Advance: 100, HasAdvance: true, UOffset: -0.5, CharCode: '?'},
		}},
		{"multibyte", "", "é€", []Cluster{{1, 1, "é"}, {1, 1, "€"}}, []GlyphToken{
			{Cluster: 0, Index: -1, CharCode: 'é'},
			{Cluster: 1, Index: -1, CharCode: '€'},
		}},
		{"clamp max", "(70000:1)", "", []Cluster{{MaxClusterCount, 1, ""}}, []GlyphToken{
			{Cluster: 0, Index: -1, CharCode: '?'},
		}},
		{"invalid utf-8", "", "\xff\xfeA", []Cluster{{1, 1, "\xff"}, {1, 1, "\xfe"}, {1, 1, "A"}}, []GlyphToken{
			{Cluster: 0, Index: -1, CharCode: 0xFFFD},
			{Cluster: 1, Index: -1, CharCode: 0xFFFD},
			{Cluster: 2, Index: -1, CharCode: 'A'},
		}},
		{"saturate", "99999999999999", "", []Cluster{{1, 1, ""}}, []GlyphToken{
			{Cluster: 0, Index: math.MaxInt32, HasIndex: true, CharCode: '?'},
		}},
		{"empty", "", "", nil, nil},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := ParseIndices(tt.indices, tt.unicode)
			test.Error(t, err)
			test.T(t, tokens.Clusters, tt.clusters)
			test.T(t, tokens.Glyphs, tt.glyphs)
		})
	}
}

func TestParseIndicesErrors(t *testing.T) {
	var tts = []struct {
		name    string
		indices string
		err     error
	}{
		{"too long", "1," + strings.Repeat("1", MaxNumberLength+1), ErrNumberTooLong},
		{"too long offset", "1,2," + strings.Repeat("0", 100), ErrNumberTooLong},
		{"bad character", "1x", ErrMalformedIndices},
		{"bad start", "x", ErrMalformedIndices},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIndices(tt.indices, "")
			test.That(t, errors.Is(err, tt.err), err)
		})
	}
}

func TestParseIndicesMaxLength(t *testing.T) {
	tokens, err := ParseIndices("1,"+strings.Repeat("1", MaxNumberLength), "")
	test.Error(t, err)
	test.T(t, len(tokens.Glyphs), 1)
	test.That(t, tokens.Glyphs[0].HasAdvance)
}

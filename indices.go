package xps

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2/strconv"
)

// MaxNumberLength is the maximum length of a real number in the Indices attribute.
const MaxNumberLength = 64

// MaxClusterCount is the maximum number of code units or glyphs of a single cluster mapping.
const MaxClusterCount = 65535

// Cluster maps a run of characters of the Unicode string to a run of glyphs.
type Cluster struct {
	CodeUnits int
	Glyphs    int
	Text      string
}

// GlyphToken is a glyph as specified by the Indices attribute. Advance and offsets are in hundredths of the em size. Without an explicit index the glyph is derived from CharCode.
type GlyphToken struct {
	Cluster    int // index into Clusters
	Index      int
	HasIndex   bool
	Advance    float64
	HasAdvance bool
	UOffset    float64
	VOffset    float64
	CharCode   rune
}

// Indices is the tokenized combination of the Indices and UnicodeString attributes.
type Indices struct {
	Clusters []Cluster
	Glyphs   []GlyphToken
}

type indicesScanner struct {
	s string
	i int
}

func (z *indicesScanner) more() bool {
	return z.i < len(z.s)
}

func (z *indicesScanner) peek(c byte) bool {
	return z.i < len(z.s) && z.s[z.i] == c
}

// digits parses a decimal integer, saturating at math.MaxInt32. It returns false if there were no digits.
func (z *indicesScanner) digits() (int, bool) {
	start := z.i
	n := 0
	for z.i < len(z.s) && '0' <= z.s[z.i] && z.s[z.i] <= '9' {
		if n <= (math.MaxInt32-9)/10 {
			n = n*10 + int(z.s[z.i]-'0')
		} else {
			n = math.MaxInt32
		}
		z.i++
	}
	return n, start < z.i
}

// real scans the characters of a real number and parses them. An empty field returns false.
func (z *indicesScanner) real() (float64, bool, error) {
	start := z.i
	for z.i < len(z.s) && isRealNumChar(z.s[z.i]) {
		z.i++
		if MaxNumberLength < z.i-start {
			return 0.0, false, fmt.Errorf("%w: %q...", ErrNumberTooLong, z.s[start:start+16])
		}
	}
	if start == z.i {
		return 0.0, false, nil
	}
	// like atof, the longest valid prefix counts and no valid prefix is zero
	f, _ := strconv.ParseFloat([]byte(z.s[start:z.i]))
	return f, true, nil
}

func isRealNumChar(c byte) bool {
	return '0' <= c && c <= '9' || c == 'e' || c == 'E' || c == '+' || c == '-' || c == '.'
}

func clampCount(n int) int {
	if n < 1 {
		return 1
	} else if MaxClusterCount < n {
		return MaxClusterCount
	}
	return n
}

// ParseIndices tokenizes the Indices attribute together with the UnicodeString attribute. A Unicode string starting with {} has that escape removed. When one of both is exhausted the other is drained using clusters of one character and one glyph, missing characters are '?'.
func ParseIndices(indices, unicode string) (Indices, error) {
	unicode = strings.TrimPrefix(unicode, "{}")

	var tokens Indices
	is := &indicesScanner{s: indices}
	us := 0
	for us < len(unicode) || is.more() {
		start := is.i
		codeCount, glyphCount := 1, 1
		if is.more() {
			// cluster mapping: (codeCount:glyphCount)
			if is.peek('(') {
				is.i++
				codeCount, _ = is.digits()
			}
			if is.peek(':') {
				is.i++
				glyphCount, _ = is.digits()
			}
			if is.peek(')') {
				is.i++
			}
		}
		codeCount = clampCount(codeCount)
		glyphCount = clampCount(glyphCount)

		charCode := '?'
		textStart := us
		for j := 0; j < codeCount && us < len(unicode); j++ {
			r, n := utf8.DecodeRuneInString(unicode[us:])
			charCode = r
			us += n
		}
		tokens.Clusters = append(tokens.Clusters, Cluster{
			CodeUnits: codeCount,
			Glyphs:    glyphCount,
			Text:      unicode[textStart:us],
		})
		cluster := len(tokens.Clusters) - 1

		for j := 0; j < glyphCount; j++ {
			token := GlyphToken{
				Cluster:  cluster,
				Index:    -1,
				CharCode: charCode,
			}
			if is.more() {
				token.Index, token.HasIndex = is.digits()
				if !token.HasIndex {
					token.Index = -1
				}
			}
			if is.more() {
				var err error
				if is.peek(',') {
					is.i++
					if token.Advance, token.HasAdvance, err = is.real(); err != nil {
						return Indices{}, err
					}
				}
				if is.peek(',') {
					is.i++
					if token.UOffset, _, err = is.real(); err != nil {
						return Indices{}, err
					}
				}
				if is.peek(',') {
					is.i++
					if token.VOffset, _, err = is.real(); err != nil {
						return Indices{}, err
					}
				}
				if is.peek(';') {
					is.i++
				}
			}
			tokens.Glyphs = append(tokens.Glyphs, token)
		}

		if is.more() && is.i == start {
			return Indices{}, fmt.Errorf("%w: unexpected %q at position %d", ErrMalformedIndices, is.s[is.i], is.i)
		}
	}
	return tokens, nil
}

package xps

import (
	"errors"
	"fmt"
	"sync"
)

// FontParser parses font data into a font program. The index selects a font in a font collection.
type FontParser interface {
	Parse(b []byte, index int) (FontProgram, error)
}

// FontParserFunc is a function implementing FontParser.
type FontParserFunc func([]byte, int) (FontProgram, error)

// Parse implements FontParser.
func (f FontParserFunc) Parse(b []byte, index int) (FontProgram, error) {
	return f(b, index)
}

var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		"sfnt":   FontParserFunc(ParseSFNT),
		"ximage": FontParserFunc(ParseXImageSFNT),
	}
)

// DefaultParsers are the font parsers tried in order when loading a font.
var DefaultParsers = []string{"sfnt", "ximage"}

// RegisterParser registers a font parser under name, replacing any earlier parser with the same name.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	parserRegistry[name] = parser
	parserMu.Unlock()
}

func getParser(name string) (FontParser, bool) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	p, ok := parserRegistry[name]
	return p, ok
}

// parseFontProgram tries each named parser in turn and returns the first program that parses.
func parseFontProgram(names []string, b []byte, index int) (FontProgram, error) {
	var errs []error
	for _, name := range names {
		parser, ok := getParser(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: unknown font parser", name))
			continue
		}
		program, err := parser.Parse(b, index)
		if err == nil {
			return program, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	if len(errs) == 0 {
		return nil, ErrFontParse
	}
	return nil, fmt.Errorf("%w: %w", ErrFontParse, errors.Join(errs...))
}

package xps

import (
	"sync"
)

type fontEntry struct {
	once sync.Once
	font *Font
	err  error
}

// FontCache loads fonts from a package at most once per part name. It is safe for concurrent use, concurrent callers resolving the same name wait for a single load and observe the same result. Failed loads are remembered as well.
type FontCache struct {
	pkg     *Package
	parsers []string

	mu    sync.Mutex
	fonts map[string]*fontEntry
}

// NewFontCache returns an empty font cache for the package. The parsers are tried in order, nil uses DefaultParsers.
func NewFontCache(pkg *Package, parsers []string) *FontCache {
	if parsers == nil {
		parsers = DefaultParsers
	}
	return &FontCache{
		pkg:     pkg,
		parsers: parsers,
		fonts:   map[string]*fontEntry{},
	}
}

// Resolve returns the font referenced by fontURI relative to the directory baseURI. A trailing #<digits> selects a font in a collection and is not part of the cache key. A missing encoding table is logged and does not fail the load.
func (c *FontCache) Resolve(baseURI, fontURI string) (*Font, error) {
	name, index := splitSubfont(AbsolutePartName(baseURI, fontURI))

	c.mu.Lock()
	if c.fonts == nil {
		c.fonts = map[string]*fontEntry{}
	}
	entry, ok := c.fonts[name]
	if !ok {
		entry = &fontEntry{}
		c.fonts[name] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.font, entry.err = c.load(name, index)
	})
	return entry.font, entry.err
}

func (c *FontCache) load(name string, index int) (*Font, error) {
	b, err := c.pkg.ReadPart(name)
	if err != nil {
		return nil, err
	}
	if IsObfuscated(name) {
		// never modify the package's own buffer
		b = append([]byte{}, b...)
		if err := Deobfuscate(name, b); err != nil {
			return nil, err
		}
	}

	program, err := parseFontProgram(c.parsers, b, index)
	if err != nil {
		return nil, err
	}
	font := NewFont(name, index, program)
	if err := SelectEncoding(font); err != nil {
		Logger().Warn("could not find a suitable cmap", "font", name, "error", err)
	}
	Logger().Debug("loaded font", "font", name, "index", index)
	return font, nil
}

// Len returns the number of cached part names, including failed loads.
func (c *FontCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fonts)
}

// Close drops all cached fonts.
func (c *FontCache) Close() {
	c.mu.Lock()
	c.fonts = nil
	c.mu.Unlock()
}

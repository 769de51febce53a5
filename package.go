package xps

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"strconv"
	"strings"
)

// Package gives access to the parts of an XPS package. Part names are absolute, such as /Documents/1/Pages/1.fpage, and their last segment is matched case-insensitively. Interleaved parts stored as pieces ([0].piece ... [n].last.piece) are joined.
type Package struct {
	fsys fs.FS
}

// NewPackage returns a package backed by a file system, e.g. a *zip.Reader, os.DirFS or fstest.MapFS.
func NewPackage(fsys fs.FS) *Package {
	return &Package{fsys}
}

// OpenPackage opens a zipped XPS file. The returned closer must be closed when done.
func OpenPackage(filename string) (*Package, *zip.ReadCloser, error) {
	r, err := zip.OpenReader(filename)
	if err != nil {
		return nil, nil, err
	}
	return NewPackage(r), r, nil
}

// ReadPart returns the contents of the named part.
func (pkg *Package) ReadPart(name string) ([]byte, error) {
	fsName := strings.TrimPrefix(path.Clean("/"+name), "/")
	if b, err := pkg.readFile(fsName); err == nil {
		return b, nil
	}
	if unescaped, err := url.PathUnescape(fsName); err == nil && unescaped != fsName {
		if b, err := pkg.readFile(unescaped); err == nil {
			return b, nil
		}
	}

	// interleaved part
	var buf bytes.Buffer
	for i := 0; ; i++ {
		piece := fsName + "/[" + strconv.Itoa(i) + "].piece"
		b, err := pkg.readFile(piece)
		if err != nil {
			if b, err = pkg.readFile(fsName + "/[" + strconv.Itoa(i) + "].last.piece"); err == nil {
				buf.Write(b)
				return buf.Bytes(), nil
			}
			break
		}
		buf.Write(b)
	}
	return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, name)
}

func (pkg *Package) readFile(name string) ([]byte, error) {
	if name == "" || name == "." {
		return nil, fs.ErrNotExist
	}
	b, err := fs.ReadFile(pkg.fsys, name)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return b, err
	}

	// part names are case-insensitive
	entries, errDir := fs.ReadDir(pkg.fsys, path.Dir(name))
	if errDir != nil {
		return nil, err
	}
	base := path.Base(name)
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(entry.Name(), base) {
			return fs.ReadFile(pkg.fsys, path.Join(path.Dir(name), entry.Name()))
		}
	}
	return nil, err
}

// AbsolutePartName resolves name against the directory base. Absolute names are returned as is, except for cleaning.
func AbsolutePartName(base, name string) string {
	fragment := ""
	if i := strings.IndexByte(name, '#'); i != -1 {
		name, fragment = name[:i], name[i:]
	}
	if !strings.HasPrefix(name, "/") {
		name = path.Join("/", base, name)
	}
	return path.Clean(name) + fragment
}

// splitSubfont strips a trailing #<digits> from a font part name and returns the sub-font index it selects.
func splitSubfont(name string) (string, int) {
	i := strings.LastIndexByte(name, '#')
	if i == -1 {
		return name, 0
	}
	index, ok := parseInt(name[i+1:])
	if !ok || index < 0 {
		return name[:i], 0
	}
	return name[:i], index
}

package svg

import (
	"io"

	"github.com/tdewolff/xps"
)

// Writer renders a page as an SVG file. Both options may be nil.
func Writer(w io.Writer, pkg *xps.Package, page *xps.Page, opts *Options, renderOpts *xps.Options) error {
	sink := New(w, page.Width, page.Height, opts)
	ctx := xps.NewContext(pkg, sink, renderOpts)
	defer ctx.Close()
	if err := ctx.RenderPage(page, xps.Identity); err != nil {
		return err
	}
	return sink.Close()
}

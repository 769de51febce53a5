package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/xps"
	"github.com/tdewolff/xps/rasterizer"
	"github.com/tdewolff/xps/svg"
	"golang.org/x/image/tiff"
)

type Render struct {
	Page    int     `short:"p" default:"1" desc:"Page number"`
	DPI     float64 `default:"96" desc:"Resolution in dots per inch for PNG and TIFF output"`
	Parser  string  `default:"" desc:"Font parser to try first (sfnt or ximage)"`
	Verbose bool    `short:"v" desc:"Log skipped elements and ignored features"`
	Output  string  `short:"o" desc:"Output file (.png, .tif, .tiff, .svg or .svgz)"`
	Input   string  `index:"0" desc:"Input XPS file"`
}

type Info struct {
	Input string `index:"0" desc:"Input XPS file"`
}

func main() {
	root := argp.NewCmd(&Render{}, "XPS page renderer")
	root.AddCmd(&Info{}, "info", "List the pages of an XPS file")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Render) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	} else if cmd.Output == "" {
		fmt.Println("ERROR: must specify output filename")
		return argp.ShowUsage
	}
	if cmd.Verbose {
		xps.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	pkg, closer, err := xps.OpenPackage(cmd.Input)
	if err != nil {
		return err
	}
	defer closer.Close()

	doc, err := xps.OpenDocument(pkg)
	if err != nil {
		return err
	} else if cmd.Page < 1 || len(doc.Pages) < cmd.Page {
		return fmt.Errorf("page %d out of range [1,%d]", cmd.Page, len(doc.Pages))
	}
	page, err := xps.LoadPage(pkg, doc.Pages[cmd.Page-1])
	if err != nil {
		return err
	}

	opts := xps.DefaultOptions
	if cmd.Parser != "" {
		opts.Parsers = append([]string{cmd.Parser}, xps.DefaultParsers...)
	}

	ext := strings.ToLower(filepath.Ext(cmd.Output))
	return writeFile(cmd.Output, func(w io.Writer) error {
		switch ext {
		case ".svg", ".svgz":
			svgOpts := svg.DefaultOptions
			if ext == ".svgz" {
				svgOpts.Compression = -1
			}
			return svg.Writer(w, pkg, page, &svgOpts, &opts)
		case ".png", ".tif", ".tiff":
			rasOpts := rasterizer.Options{DPI: cmd.DPI}
			img := rasterizer.NewImage(page.Width, page.Height, &rasOpts)
			ctx := xps.NewContext(pkg, rasterizer.New(img, &rasOpts), &opts)
			defer ctx.Close()
			if err := ctx.RenderPage(page, xps.Identity); err != nil {
				return err
			}
			writer := rasterizer.PNGWriter()
			if ext != ".png" {
				writer = rasterizer.TIFFWriter(&tiff.Options{Compression: tiff.Deflate})
			}
			return writer(w, img)
		default:
			return fmt.Errorf("unknown output format %s", ext)
		}
	})
}

// writeFile creates filename and writes to it, the error of closing the file is returned as well.
func writeFile(filename string, write func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (cmd *Info) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	pkg, closer, err := xps.OpenPackage(cmd.Input)
	if err != nil {
		return err
	}
	defer closer.Close()

	doc, err := xps.OpenDocument(pkg)
	if err != nil {
		return err
	}
	fmt.Println("File name:", filepath.Base(cmd.Input))
	fmt.Println("Pages:", len(doc.Pages))
	for i, name := range doc.Pages {
		page, err := xps.LoadPage(pkg, name)
		if err != nil {
			fmt.Printf("%4d %s: %v\n", i+1, name, err)
			continue
		}
		fmt.Printf("%4d %s: %gx%g\n", i+1, name, page.Width, page.Height)
	}
	return nil
}

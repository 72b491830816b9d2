// Command ccvi converts images to and from the CCVI document format.
//
// Usage:
//
//	ccvi convert [-margin 0.5] [-o path] <input>
//	ccvi info <file.ccvi>
//	ccvi preview [-vectors] [-size 2] [-phase p] [-zoom z] [-o path] <file.ccvi>
//
// convert dispatches on the input extension: .ccvi files decode back
// into images, everything else encodes into a document.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/ccvi"
	"github.com/hupe1980/ccvi/raster"
	"github.com/hupe1980/ccvi/render"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "convert":
		err = runConvert(args[1:])
	case "info":
		err = runInfo(args[1:])
	case "preview":
		err = runPreview(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "ccvi: unknown command %q\n\n", args[0])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ccvi: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: ccvi <command> [options] <file>

Commands:
  convert   encode an image to a .ccvi document, or decode one back
  info      print document statistics
  preview   render the document's vectors as dots to a PNG

Run "ccvi <command> -h" for command options.
`)
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	margin := fs.Float64("margin", 0.5, "margin of error in [0,1]; higher drops more samples")
	output := fs.String("o", "", "output path (default: ~/Pictures/<stem><ext>)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("convert: expected exactly one input file")
	}
	input := fs.Arg(0)

	if !strings.EqualFold(filepath.Ext(input), ccvi.FileExt) {
		fmt.Printf("Margin %.2f: %s\n", *margin, marginDescription(*margin))
	}

	c := ccvi.New()
	out, err := c.ConvertFile(context.Background(), input, *output, *margin)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", out)
	return nil
}

// marginDescription summarizes the fidelity trade-off of a margin value.
func marginDescription(margin float64) string {
	switch {
	case margin < 0.25:
		return "dense sampling, high fidelity, larger documents"
	case margin < 0.75:
		return "balanced sampling and document size"
	default:
		return "sparse sampling, smallest documents"
	}
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("info: expected exactly one document file")
	}

	c := ccvi.New()
	doc, err := c.LoadDocument(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Println(doc.Stats())
	return nil
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	vectors := fs.Bool("vectors", true, "draw vectors as dots instead of single pixels")
	size := fs.Int("size", render.DefaultVectorSize, "dot diameter in pixels (clamped to [1,10])")
	phase := fs.Float64("phase", -1, "animation phase in radians; negative disables the pulse")
	zoom := fs.Float64("zoom", 1.0, "scale factor for the output image")
	output := fs.String("o", "", "output PNG path (default: <stem>-preview.png beside the input)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("preview: expected exactly one document file")
	}
	input := fs.Arg(0)

	c := ccvi.New()
	doc, err := c.LoadDocument(context.Background(), input)
	if err != nil {
		return err
	}

	img := render.Preview(doc, render.Options{
		ShowVectors: *vectors,
		VectorSize:  *size,
		Animating:   *phase >= 0,
		Phase:       *phase,
	})
	if *zoom != 1.0 {
		img = render.Scale(img, *zoom)
	}

	out := *output
	if out == "" {
		stem := strings.TrimSuffix(input, filepath.Ext(input))
		out = stem + "-preview.png"
	}

	if err := writePNG(out, img); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", out)
	return nil
}

func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.WritePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

// runPad implements the `sitetools pad` subcommand, which grows a PNG by a
// transparent border on every side. Used to give favicons and logos
// breathing room without reopening an image editor.
func runPad(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sitetools pad", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		padding int
		outPath string
	)
	fs.IntVar(&padding, "padding", 40, "pixels of transparent border to add on each side")
	fs.StringVar(&outPath, "out", "", "output path (default: overwrite the input)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: sitetools pad [flags] <image.png>

Add a transparent border around an image. The source is composited onto a
larger fully transparent canvas, centered, and saved as PNG.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("pad: expected exactly one input image")
	}
	if padding <= 0 {
		return fmt.Errorf("pad: padding must be positive, got %d", padding)
	}

	inPath := fs.Arg(0)
	if outPath == "" {
		outPath = inPath
	}

	img, err := imaging.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inPath, err)
	}

	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx()+2*padding, bounds.Dy()+2*padding, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	padded := imaging.PasteCenter(canvas, img)

	if err := imaging.Save(padded, outPath); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	_, _ = fmt.Fprintf(stdout, "padded %s: %dx%d -> %dx%d (%s)\n",
		inPath, bounds.Dx(), bounds.Dy(), bounds.Dx()+2*padding, bounds.Dy()+2*padding, outPath)
	return nil
}

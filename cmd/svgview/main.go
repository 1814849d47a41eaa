// Command svgview renders an SVG document to PNG. With -frames it
// writes a turntable sequence, re-drawing the same parsed scene under
// a different rotation each frame.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/N-of-1/mandala-svg/rasterctx"
	"github.com/N-of-1/mandala-svg/svgscene"
)

func main() {
	var (
		in     = flag.String("in", "", "input SVG file")
		out    = flag.String("out", "out.png", "output PNG file; with -frames > 1 it must contain %d")
		size   = flag.Int("size", 512, "output image size in pixels")
		rotate = flag.Float64("rotate", 0, "rotation in degrees, about the image center")
		frames = flag.Int("frames", 1, "number of frames; the rotation is spread across them")
		strict = flag.Bool("strict", false, "fail on any SVG error instead of dropping bad shapes")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	if *in == "" {
		logger.Fatal().Msg("missing -in file")
	}
	if *frames > 1 && !strings.Contains(*out, "%d") {
		logger.Fatal().Msg("-frames needs a %d placeholder in -out")
	}

	mode := svgscene.WarnErrorMode
	if *strict {
		mode = svgscene.StrictErrorMode
	}
	scene, err := svgscene.ReadSceneFile(*in, svgscene.Options{
		ErrorMode: mode,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Str("file", *in).Msg("cannot read svg")
	}
	logger.Info().Int("shapes", len(scene.Records)).Msg("scene parsed")

	fit := scene.FitTo(0, 0, float64(*size), float64(*size))
	center := float64(*size) / 2
	ctx := rasterctx.New(*size, *size, nil)

	for frame := 0; frame < *frames; frame++ {
		angle := *rotate * math.Pi / 180
		if *frames > 1 {
			angle *= float64(frame) / float64(*frames-1)
		}
		top := svgscene.Identity.
			Translate(center, center).
			Rotate(angle).
			Translate(-center, -center).
			Mult(fit)

		ctx.Clear()
		scene.Draw(ctx, top, 1.0)
		ctx.Present()

		name := *out
		if *frames > 1 {
			name = fmt.Sprintf(*out, frame)
		}
		if err := writePNG(name, ctx); err != nil {
			logger.Fatal().Err(err).Str("file", name).Msg("cannot write png")
		}
		logger.Info().Str("file", name).Msg("frame written")
	}
}

func writePNG(name string, ctx *rasterctx.Context) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, ctx.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

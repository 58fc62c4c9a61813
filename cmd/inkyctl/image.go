package main

import (
	"errors"
	"flag"
	"fmt"
	"image"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/pixel"
	"github.com/BeatGlow/epaper/prepare"
)

func runImage(args []string) error {
	var (
		flags      = flag.NewFlagSet("image", flag.ExitOnError)
		inputFlag  = flags.String("i", "", "The image to pre-process for rendering")
		outputFlag = flags.String("o", "./output.png", "Out path for the pre-processed image (.png, .bmp, .tiff, .jpg or .gif)")
		colorsFlag = flags.String("colormap", pixel.FourColor.String(), "Color map to use for quantization (four-color or mono)")
		ditherFlag = flags.Bool("dither", false, "Enable Floyd-Steinberg dithering, simple color quantization is the default")
		widthFlag  = flags.Int("width", epaper.DefaultConfig.Width, "Image width")
		heightFlag = flags.Int("height", epaper.DefaultConfig.Height, "Image height")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *inputFlag == "" {
		flags.Usage()
		return errors.New("no input image, use -i")
	}

	palette, err := pixel.ParsePalette(*colorsFlag)
	if err != nil {
		return err
	}

	p := prepare.New(palette, image.Pt(*widthFlag, *heightFlag))
	img, err := p.PrepareFile(*inputFlag, *ditherFlag)
	if err != nil {
		return err
	}
	if err = img.Save(*outputFlag); err != nil {
		return err
	}

	fmt.Printf("saved %s %s preview to %s\n", img.Size(), palette, *outputFlag)
	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"image"

	"periph.io/x/host/v3"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/draw"
	"github.com/BeatGlow/epaper/eeprom"
	"github.com/BeatGlow/epaper/pixel"
	"github.com/BeatGlow/epaper/prepare"
)

type renderFunc func(*prepare.Preprocessor) (*prepare.Image, error)

func runDisplay(args []string) error {
	var (
		flags      = flag.NewFlagSet("display", flag.ExitOnError)
		autoFlag   = flags.Bool("auto", false, "Take the display resolution from its EEPROM")
		widthFlag  = flags.Int("width", epaper.DefaultConfig.Width, "Display width")
		heightFlag = flags.Int("height", epaper.DefaultConfig.Height, "Display height")
		spiFlag    = flags.String("spi", epaper.DefaultSPIConfig.Path, "SPI device")
		speedFlag  = flags.Uint("speed", uint(epaper.DefaultSPIConfig.SpeedHz), "SPI clock in Hz")
		csFlag     = flags.String("cs", epaper.DefaultSPIConfig.ChipSelect, "Chip select GPIO pin (CS)")
		dcFlag     = flags.String("dc", epaper.DefaultSPIConfig.DataCmd, "Data/Command GPIO pin (DC)")
		resetFlag  = flags.String("reset", epaper.DefaultSPIConfig.Reset, "Reset GPIO pin")
		busyFlag   = flags.String("busy", epaper.DefaultSPIConfig.Busy, "Busy GPIO pin")
	)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "Usage: display [flags] detect|clear|render-image|render-color|render-text|test-card [arguments]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		flags.Usage()
		return errors.New("no display command")
	}

	command, rest := flags.Arg(0), flags.Args()[1:]
	if command == "detect" {
		return detect(rest)
	}

	config := epaper.DefaultConfig
	config.Width = *widthFlag
	config.Height = *heightFlag
	config.SPI.Path = *spiFlag
	config.SPI.SpeedHz = uint32(*speedFlag)
	config.SPI.ChipSelect = *csFlag
	config.SPI.DataCmd = *dcFlag
	config.SPI.Reset = *resetFlag
	config.SPI.Busy = *busyFlag

	if *autoFlag {
		if spec, ok := autodetect(); ok {
			fmt.Printf("using detected display: %s\n", spec)
			config.Width, config.Height = spec.Width, spec.Height
		} else {
			fmt.Printf("no supported display detected, using %dx%d\n", config.Width, config.Height)
		}
	}

	render, preview, err := parseRender(command, rest)
	if err != nil {
		return err
	}

	img, err := render(prepare.New(pixel.FourColor, config.Size()))
	if err != nil {
		return err
	}
	if preview != "" {
		if err = img.Save(preview); err != nil {
			return err
		}
		fmt.Printf("saved preview to %s\n", preview)
	}

	d, err := epaper.Open(&config)
	if err != nil {
		return err
	}
	defer d.Close()
	fmt.Printf("using driver: %s\n", d)

	if err = d.Initialize(); err != nil {
		return err
	}
	fmt.Println("refreshing display, this takes a while...")
	return d.Show(img.Indexed)
}

// parseRender parses the flags of a render command and returns how it
// produces its image, and an optional preview path.
func parseRender(command string, args []string) (render renderFunc, preview string, err error) {
	flags := flag.NewFlagSet(command, flag.ExitOnError)
	previewFlag := flags.String("o", "", "Also save the rendered image to this path")

	switch command {
	case "clear":
		render = func(p *prepare.Preprocessor) (*prepare.Image, error) {
			return p.Solid(pixel.White)
		}

	case "render-image":
		var (
			inputFlag  = flags.String("i", "", "Filepath to the image to render")
			ditherFlag = flags.Bool("dither", false, "Enable Floyd-Steinberg dithering")
		)
		render = func(p *prepare.Preprocessor) (*prepare.Image, error) {
			if *inputFlag == "" {
				return nil, errors.New("no input image, use -i")
			}
			return p.PrepareFile(*inputFlag, *ditherFlag)
		}

	case "render-color":
		colorFlag := flags.String("c", pixel.Red.String(), "Which solid color to render (black, white, yellow or red)")
		render = func(p *prepare.Preprocessor) (*prepare.Image, error) {
			c, err := pixel.ParseColor(*colorFlag)
			if err != nil {
				return nil, err
			}
			return p.Solid(c)
		}

	case "render-text":
		var (
			textFlag       = flags.String("t", "", "Text to render, \\n starts a new line")
			sizeFlag       = flags.Float64("size", draw.DefaultFontSize, "Font size in pixels")
			colorFlag      = flags.String("color", pixel.Black.String(), "Text color")
			backgroundFlag = flags.String("bg", pixel.White.String(), "Background color")
			frameFlag      = flags.Bool("frame", false, "Draw a rounded frame around the text")
		)
		render = func(p *prepare.Preprocessor) (*prepare.Image, error) {
			fg, err := pixel.ParseColor(*colorFlag)
			if err != nil {
				return nil, err
			}
			bg, err := pixel.ParseColor(*backgroundFlag)
			if err != nil {
				return nil, err
			}

			canvas := image.NewRGBA(image.Rectangle{Max: p.Size()})
			draw.Fill(canvas, bg)
			if *frameFlag {
				draw.RoundedRectangle(canvas, canvas.Bounds().Inset(4), 12, fg)
			}
			if err = draw.Text(canvas, canvas.Bounds().Inset(12), unescape(*textFlag), *sizeFlag, fg); err != nil {
				return nil, err
			}
			return p.Prepare(canvas, false)
		}

	case "test-card":
		render = func(p *prepare.Preprocessor) (*prepare.Image, error) {
			card := pixel.NewIndexed(image.Rectangle{Max: p.Size()}, p.ColorMap())
			draw.TestCard(card, p.ColorMap())
			return p.Prepare(card, false)
		}

	default:
		return nil, "", fmt.Errorf("unknown display command %q", command)
	}

	if err = flags.Parse(args); err != nil {
		return nil, "", err
	}
	return render, *previewFlag, nil
}

func detect(args []string) error {
	var (
		flags   = flag.NewFlagSet("detect", flag.ExitOnError)
		busFlag = flags.Int("bus", -1, "Only probe this I²C bus number")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	var reports []eeprom.BusReport
	if *busFlag >= 0 {
		if _, err := host.Init(); err != nil {
			return err
		}
		reports = []eeprom.BusReport{{
			Path:   fmt.Sprintf("I²C bus %d", *busFlag),
			Status: eeprom.ProbeBus(*busFlag),
		}}
	} else {
		var err error
		if reports, err = eeprom.ProbeAll(); err != nil {
			return err
		}
	}
	if len(reports) == 0 {
		fmt.Println("no I²C buses found")
		return nil
	}
	for _, report := range reports {
		fmt.Printf("%s: %s\n", report.Path, report.Status)
	}

	report, ok := eeprom.First(reports)
	if !ok {
		fmt.Println("no display EEPROM found")
		return nil
	}
	if spec, ok := report.Status.Info.DisplaySpec(); ok {
		fmt.Printf("detected %s on %s\n", spec, report.Path)
	} else {
		fmt.Printf("detected unsupported display %q on %s\n", report.Status.Info.VariantName(), report.Path)
	}
	return nil
}

func autodetect() (eeprom.DisplaySpec, bool) {
	reports, err := eeprom.ProbeAll()
	if err != nil {
		return eeprom.DisplaySpec{}, false
	}
	report, ok := eeprom.First(reports)
	if !ok {
		return eeprom.DisplaySpec{}, false
	}
	return report.Status.Info.DisplaySpec()
}

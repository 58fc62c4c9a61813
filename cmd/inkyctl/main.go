// Command inkyctl prepares images for, and renders them on, the Inky wHAT 4-color e-paper display.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BeatGlow/epaper/internal/debug"
)

const usageText = `Usage: %s [-debug] <command> [arguments]

Commands:
  image     pre-process an image and save a preview
  display   detect, clear or render on the display

Run "%s <command> -h" for the command flags.
`

func main() {
	debugFlag := flag.Bool("debug", false, "Turn debugging information on")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usageText, os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debugFlag {
		_ = os.Setenv(debug.Env, "1")
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch command := flag.Arg(0); command {
	case "image":
		err = runImage(flag.Args()[1:])
	case "display":
		err = runDisplay(flag.Args()[1:])
	default:
		flag.Usage()
		err = fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}

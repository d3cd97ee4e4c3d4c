// Command fetch computes the upwind fetch distance of every cell of a DEM
// along one azimuth.
//
// Usage:
//
//	fetch -i dem.asc -o fetch.asc -azimuth 315 -hgt_inc 0.05
package main

import (
	"flag"
	"fmt"
	"os"

	"wind-fetch/internal/app"
	"wind-fetch/internal/fetch"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: fetch -i <dem> -o <output> [flags]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	log := app.NewLogger(os.Stderr, cfg.LogFormat, cfg.Verbose)
	fetch.SetLogger(log)

	rep, err := app.Run(cfg, log)
	if err != nil {
		log.Error("fetch analysis failed", "err", err)
		os.Exit(1)
	}
	log.Info("output file written",
		"output", rep.Output,
		"azimuth", rep.Geometry.Azimuth,
		"cells", app.FormatCount(rep.Summary.Cells),
		"elapsed", rep.Result.Elapsed)
	log.Info(rep.Summary.String())
}

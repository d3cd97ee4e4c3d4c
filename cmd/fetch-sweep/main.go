// Command fetch-sweep computes fetch grids for several wind directions over
// one DEM and prints how exposed the terrain is from each of them.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"wind-fetch/internal/app"
	"wind-fetch/internal/fetch"
)

func main() {
	cfg := app.NewConfig()
	cfg.BindRun(flag.CommandLine)

	var plan app.SweepPlan
	var azimuths string
	planPath := flag.String("plan", "", "YAML sweep plan (input, prefix, ext, azimuths, directions, height_increment)")
	jobs := flag.Int("jobs", 2, "directions computed at the same time")
	flag.StringVar(&plan.Input, "i", "", "input DEM file")
	flag.StringVar(&plan.Prefix, "prefix", "", "output path prefix; grids are written to <prefix>_<azimuth><ext>")
	flag.StringVar(&plan.Ext, "ext", ".asc", "output extension")
	flag.StringVar(&azimuths, "azimuths", "", "comma separated azimuths in degrees")
	flag.IntVar(&plan.Directions, "directions", 8, "number of evenly spaced directions when no azimuth list is given")
	flag.Parse()

	if *planPath != "" {
		fromFile, err := app.LoadSweepPlan(*planPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		plan = merge(plan, fromFile)
	}
	if azimuths != "" {
		list, err := parseAzimuths(azimuths)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		plan.Azimuths = list
	}
	if cfg.Workers == 0 && *jobs > 1 {
		// split the processors between concurrently running directions
		cfg.Workers = max(1, runtime.GOMAXPROCS(0) / *jobs)
	}

	log := app.NewLogger(os.Stderr, cfg.LogFormat, cfg.Verbose)
	fetch.SetLogger(log)

	dirs := plan.ResolveAzimuths()
	fmt.Printf("Sweeping %d directions over %s (%d jobs)\n", len(dirs), plan.Input, *jobs)

	start := time.Now()
	reports, err := app.Sweep(plan, cfg, *jobs, log)
	if err != nil {
		log.Error("sweep failed", "err", err)
		os.Exit(1)
	}
	printTable(reports, time.Since(start))
}

// merge fills the unset fields of flags from the plan file.
func merge(flags, file app.SweepPlan) app.SweepPlan {
	out := file
	if flags.Input != "" {
		out.Input = flags.Input
	}
	if flags.Prefix != "" {
		out.Prefix = flags.Prefix
	}
	if out.Ext == "" {
		out.Ext = flags.Ext
	}
	if len(out.Azimuths) == 0 && out.Directions == 0 {
		out.Directions = flags.Directions
	}
	return out
}

func parseAzimuths(list string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("bad azimuth %q: %w", field, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func printTable(reports []app.Report, elapsed time.Duration) {
	fmt.Printf("\n%8s %11s %11s %11s  %s\n", "azimuth", "obstructed", "mean dist", "max open", "output")
	for _, rep := range reports {
		s := rep.Summary
		fmt.Printf("%8.1f %10.1f%% %11.1f %11.1f  %s\n",
			rep.Geometry.Azimuth, 100*s.ObstructedFraction(), s.MeanDistance, s.MaxOpenReach, rep.Output)
	}

	sheltered := append([]app.Report(nil), reports...)
	sort.Slice(sheltered, func(i, j int) bool {
		return sheltered[i].Summary.ObstructedFraction() > sheltered[j].Summary.ObstructedFraction()
	})
	if len(sheltered) > 0 {
		best := sheltered[0]
		fmt.Printf("\nMost sheltered from %.1f degrees (%.1f%% of cells obstructed), elapsed %s\n",
			best.Geometry.Azimuth, 100*best.Summary.ObstructedFraction(), elapsed.Round(time.Millisecond))
	}
}

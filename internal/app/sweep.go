package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ErrNoAzimuths indicates a sweep plan that names no directions.
var ErrNoAzimuths = errors.New("app: sweep plan has no azimuths")

// SweepPlan lists the directions a sweep computes and where the grids go.
type SweepPlan struct {
	Input  string `yaml:"input"`
	Prefix string `yaml:"prefix"`
	// Ext is the output extension, including any .zst suffix.
	Ext string `yaml:"ext"`
	// Azimuths lists explicit directions. When empty, Directions evenly
	// spaced azimuths starting at north are used.
	Azimuths   []float64 `yaml:"azimuths"`
	Directions int       `yaml:"directions"`
	// HeightIncrement overrides the command-line value when set.
	HeightIncrement *float64 `yaml:"height_increment"`
}

// LoadSweepPlan reads a YAML sweep plan.
func LoadSweepPlan(path string) (SweepPlan, error) {
	var plan SweepPlan
	b, err := os.ReadFile(path)
	if err != nil {
		return plan, fmt.Errorf("app: read plan: %w", err)
	}
	if err := yaml.Unmarshal(b, &plan); err != nil {
		return plan, fmt.Errorf("app: parse plan %s: %w", path, err)
	}
	return plan, nil
}

// ResolveAzimuths returns the directions of the plan in ascending order.
func (p SweepPlan) ResolveAzimuths() []float64 {
	var out []float64
	if len(p.Azimuths) > 0 {
		out = append(out, p.Azimuths...)
	} else {
		for i := 0; i < p.Directions; i++ {
			out = append(out, float64(i)*360/float64(p.Directions))
		}
	}
	sort.Float64s(out)
	return out
}

// OutputPath names the grid written for azimuth.
func (p SweepPlan) OutputPath(azimuth float64) string {
	ext := p.Ext
	if ext == "" {
		ext = ".asc"
	}
	return p.Prefix + "_" + strconv.FormatFloat(azimuth, 'f', -1, 64) + ext
}

// Sweep computes one fetch grid per azimuth of plan, running up to jobs
// azimuths at once against a single shared copy of the DEM. Reports are
// returned in azimuth order. Any failure aborts the sweep.
func Sweep(plan SweepPlan, cfg *Config, jobs int, log *slog.Logger) ([]Report, error) {
	if plan.Input == "" {
		return nil, ErrMissingInput
	}
	if plan.Prefix == "" {
		return nil, ErrMissingOutput
	}
	run := *cfg
	if plan.HeightIncrement != nil {
		run.HeightIncrement = *plan.HeightIncrement
	}
	if err := run.validateRun(); err != nil {
		return nil, err
	}
	azimuths := plan.ResolveAzimuths()
	if len(azimuths) == 0 {
		return nil, ErrNoAzimuths
	}

	dem, err := LoadDEM(plan.Input, run.Coords, log)
	if err != nil {
		return nil, err
	}

	if jobs <= 0 {
		jobs = 1
	}
	reports := make([]Report, len(azimuths))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, az := range azimuths {
		i, az := i, az
		g.Go(func() error {
			out, rep, err := Compute(dem, plan.OutputPath(az), az, &run, log)
			if err != nil {
				return err
			}
			if err := Save(out, run.Metadata, "", log); err != nil {
				return err
			}
			log.Info("direction done", "azimuth", rep.Geometry.Azimuth, "output", rep.Output, "elapsed", rep.Result.Elapsed)
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

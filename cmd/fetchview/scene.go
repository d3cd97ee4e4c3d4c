package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"wind-fetch/internal/app"
	"wind-fetch/internal/raster"
	"wind-fetch/internal/view"
)

type source struct {
	cfg  *app.Config
	demo bool
	seed int64
	rows int
	cols int
}

// buildScene loads what the viewer shows. A raster with a metadata sidecar
// is an existing fetch grid; anything else is treated as a DEM and fetch is
// computed for it.
func buildScene(src source, log *slog.Logger) (*view.Scene, error) {
	if src.demo {
		dem := app.SyntheticDEM(src.rows, src.cols, 10, src.seed)
		return computeScene(dem, src.cfg, log)
	}
	path := src.cfg.Input
	if path == "" {
		return nil, app.ErrMissingInput
	}

	doc, err := raster.ReadMetadata(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		dem, err := app.LoadDEM(path, src.cfg.Coords, log)
		if err != nil {
			return nil, err
		}
		return computeScene(dem, src.cfg, log)
	case err != nil:
		return nil, err
	}

	grid, err := raster.Open(path)
	if err != nil {
		return nil, err
	}
	if err := grid.ApplyMetadata(doc); err != nil {
		return nil, err
	}
	return view.NewScene(filepath.Base(path), grid.Size(), grid.Configs.Metadata,
		view.FetchLayer(grid.Values(), grid.NoData()))
}

func computeScene(dem *raster.Raster, cfg *app.Config, log *slog.Logger) (*view.Scene, error) {
	out, rep, err := app.Compute(dem, cfg.Output, cfg.Azimuth, cfg, log)
	if err != nil {
		return nil, err
	}
	if cfg.Output != "" {
		if err := app.Save(out, cfg.Metadata, cfg.Preview, log); err != nil {
			return nil, err
		}
	}
	info := app.RunParameters(rep.Input, rep.Geometry, cfg.HeightIncrement, rep.Result).Entries()
	info = append(info,
		fmt.Sprintf("Obstructed: %.1f%%", 100*rep.Summary.ObstructedFraction()),
		fmt.Sprintf("Mean distance: %.1f", rep.Summary.MeanDistance))
	title := fmt.Sprintf("%s @ %g", filepath.Base(dem.FileName), rep.Geometry.Azimuth)
	return view.NewScene(title, dem.Size(), info,
		view.FetchLayer(out.Values(), out.NoData()),
		view.ElevationLayer(dem.Values(), dem.NoData()))
}

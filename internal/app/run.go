package app

import (
	"fmt"
	"log/slog"

	"wind-fetch/internal/core"
	"wind-fetch/internal/fetch"
	"wind-fetch/internal/raster"
	"wind-fetch/internal/render"
)

// ToolName identifies the tool in output metadata.
const ToolName = "FetchAnalysis"

// Report describes a finished run.
type Report struct {
	Input    string
	Output   string
	Geometry fetch.Geometry
	Result   fetch.Result
	Summary  Summary
}

// Run executes one fetch analysis as described by cfg: read the DEM,
// compute, and persist the output grid with its sidecar and preview.
func Run(cfg *Config, log *slog.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	dem, err := LoadDEM(cfg.Input, cfg.Coords, log)
	if err != nil {
		return Report{}, err
	}
	out, rep, err := Compute(dem, cfg.Output, cfg.Azimuth, cfg, log)
	if err != nil {
		return Report{}, err
	}
	if err := Save(out, cfg.Metadata, cfg.Preview, log); err != nil {
		return Report{}, err
	}
	return rep, nil
}

// LoadDEM reads the input grid and applies the coordinate override.
func LoadDEM(path, coords string, log *slog.Logger) (*raster.Raster, error) {
	log.Info("reading data", "input", path)
	dem, err := raster.Open(path)
	if err != nil {
		return nil, err
	}
	switch coords {
	case CoordsPlanar:
		dem.Configs.Geographic = false
	case CoordsGeographic:
		dem.Configs.Geographic = true
	}
	log.Debug("input grid",
		"rows", dem.Rows(), "columns", dem.Columns(),
		"nodata", dem.NoData(), "geographic", dem.IsInGeographicCoordinates())
	return dem, nil
}

// Georef extracts the ray geometry inputs from a raster header.
func Georef(r *raster.Raster) fetch.Georef {
	c := r.Configs
	return fetch.Georef{
		ResolutionX: c.ResolutionX,
		ResolutionY: c.ResolutionY,
		North:       c.North,
		South:       c.South,
		Geographic:  c.Geographic,
	}
}

// Compute runs the fetch engine over dem for azimuth and returns the output
// raster, bound to outputPath but not yet written.
func Compute(dem *raster.Raster, outputPath string, azimuth float64, cfg *Config, log *slog.Logger) (*raster.Raster, Report, error) {
	out := raster.InitializeUsing(outputPath, dem)
	progress := func(pct int) {
		if cfg.Verbose {
			log.Info("progress", "azimuth", azimuth, "percent", pct)
		}
	}
	geom, res, err := fetch.Compute(dem, out, Georef(dem), azimuth, cfg.HeightIncrement, fetch.Options{
		Workers:  cfg.Workers,
		Progress: progress,
	})
	if err != nil {
		return nil, Report{}, fmt.Errorf("app: computing fetch for %s: %w", dem.FileName, err)
	}
	if geom.Azimuth != azimuth {
		log.Debug("azimuth adjusted", "requested", azimuth, "used", geom.Azimuth)
	}

	snap := RunParameters(dem.FileName, geom, cfg.HeightIncrement, res)
	out.Configs.Palette = "grey"
	out.AddMetadataEntry(fmt.Sprintf("Created by wind-fetch's %s tool", ToolName))
	for _, e := range snap.Entries() {
		out.AddMetadataEntry(e)
	}

	rep := Report{
		Input:    dem.FileName,
		Output:   outputPath,
		Geometry: geom,
		Result:   res,
		Summary:  Summarize(out.Values(), out.NoData()),
	}
	return out, rep, nil
}

// RunParameters captures the values a run used, in metadata order.
func RunParameters(input string, geom fetch.Geometry, heightIncrement float64, res fetch.Result) core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Input",
			Params: []core.Parameter{
				core.StringParam("input", "Input file", input),
			},
		},
		{
			Name: "Ray",
			Params: []core.Parameter{
				core.FloatParam("azimuth", "Azimuth", geom.Azimuth),
				core.FloatParam("hgt_inc", "Height increment", heightIncrement),
				core.FloatParam("cell_size", "Cell size", geom.CellSize),
			},
		},
		{
			Name: "Execution",
			Params: []core.Parameter{
				core.IntParam("workers", "Workers", res.Workers),
				core.StringParam("elapsed", "Elapsed Time (excluding I/O)", res.Elapsed.String()),
			},
		},
	}}
}

// Save writes out, then optionally its metadata sidecar and a TIFF preview.
func Save(out *raster.Raster, withMetadata bool, preview string, log *slog.Logger) error {
	log.Info("saving data", "output", out.FileName)
	if err := out.Write(); err != nil {
		return err
	}
	if withMetadata {
		if err := out.WriteMetadata(); err != nil {
			return err
		}
	}
	if preview != "" {
		shades := render.ShadeFetch(out.Values(), out.NoData())
		if err := render.SaveTIFF(preview, out.Columns(), out.Rows(), shades); err != nil {
			return err
		}
		log.Debug("preview written", "path", preview)
	}
	return nil
}

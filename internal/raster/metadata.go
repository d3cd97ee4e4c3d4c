package raster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// metadataSuffix is appended to a raster path to name its sidecar.
const metadataSuffix = ".meta.yaml"

// Sidecar is the YAML document written next to a raster to carry the
// header fields and metadata that simple grid formats cannot store.
type Sidecar struct {
	File       string   `yaml:"file"`
	Rows       int      `yaml:"rows"`
	Columns    int      `yaml:"columns"`
	NoData     float64  `yaml:"nodata"`
	North      float64  `yaml:"north"`
	South      float64  `yaml:"south"`
	East       float64  `yaml:"east"`
	West       float64  `yaml:"west"`
	Geographic bool     `yaml:"geographic"`
	Palette    string   `yaml:"palette,omitempty"`
	Metadata   []string `yaml:"metadata,omitempty"`
}

// MetadataPath returns the sidecar path for a raster file.
func MetadataPath(rasterPath string) string {
	return strings.TrimSuffix(rasterPath, compressedSuffix) + metadataSuffix
}

// WriteMetadata writes the sidecar for r next to r.FileName.
func (r *Raster) WriteMetadata() error {
	c := r.Configs
	doc := Sidecar{
		File:       r.FileName,
		Rows:       c.Rows,
		Columns:    c.Columns,
		NoData:     c.NoData,
		North:      c.North,
		South:      c.South,
		East:       c.East,
		West:       c.West,
		Geographic: c.Geographic,
		Palette:    c.Palette,
		Metadata:   c.Metadata,
	}
	b, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("raster: metadata for %s: %w", r.FileName, err)
	}
	p := MetadataPath(r.FileName)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("raster: write %s: %w", p, err)
	}
	return nil
}

// ReadMetadata loads the sidecar written for rasterPath.
func ReadMetadata(rasterPath string) (Sidecar, error) {
	var doc Sidecar
	p := MetadataPath(rasterPath)
	b, err := os.ReadFile(p)
	if err != nil {
		return doc, fmt.Errorf("raster: read %s: %w", p, err)
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("raster: parse %s: %w", p, err)
	}
	return doc, nil
}

// ApplyMetadata copies palette and metadata entries from doc into r when
// the sidecar describes a grid of the same shape.
func (r *Raster) ApplyMetadata(doc Sidecar) error {
	if doc.Rows != r.Configs.Rows || doc.Columns != r.Configs.Columns {
		return fmt.Errorf("%w: sidecar is %dx%d, raster is %dx%d",
			ErrDimensionMismatch, doc.Rows, doc.Columns, r.Configs.Rows, r.Configs.Columns)
	}
	r.Configs.Palette = doc.Palette
	r.Configs.Metadata = append([]string(nil), doc.Metadata...)
	return nil
}

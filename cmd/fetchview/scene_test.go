package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind-fetch/internal/app"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestBuildSceneDemo(t *testing.T) {
	cfg := app.NewConfig()
	cfg.Azimuth = 45
	scene, err := buildScene(source{cfg: cfg, demo: true, seed: 3, rows: 12, cols: 16}, quiet())
	require.NoError(t, err)

	assert.Equal(t, 16, scene.Size.W)
	assert.Equal(t, 12, scene.Size.H)
	require.Len(t, scene.Layers, 2)
	assert.Equal(t, "fetch", scene.Layers[0].Name)
	assert.Equal(t, "elevation", scene.Layers[1].Name)
	assert.Contains(t, scene.Info, "Azimuth: 45")
}

func TestBuildSceneReopensSavedGrid(t *testing.T) {
	dir := t.TempDir()
	cfg := app.NewConfig()
	cfg.Output = filepath.Join(dir, "fetch.asc")
	cfg.Azimuth = 270
	_, err := buildScene(source{cfg: cfg, demo: true, seed: 9, rows: 8, cols: 8}, quiet())
	require.NoError(t, err)

	// the saved grid has a sidecar, so it is shown as fetch without recomputing
	reopen := app.NewConfig()
	reopen.Input = cfg.Output
	scene, err := buildScene(source{cfg: reopen}, quiet())
	require.NoError(t, err)
	require.Len(t, scene.Layers, 1)
	assert.True(t, scene.Layers[0].Fetch)
	assert.Contains(t, scene.Info, "Azimuth: 270")
	assert.Equal(t, "fetch.asc", scene.Title)
}

func TestBuildSceneMissingInput(t *testing.T) {
	_, err := buildScene(source{cfg: app.NewConfig()}, quiet())
	assert.ErrorIs(t, err, app.ErrMissingInput)
}

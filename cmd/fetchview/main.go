//go:build ebiten

// Command fetchview shows a fetch grid, or computes and shows one for a
// DEM or a synthetic terrain.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"wind-fetch/internal/app"
	"wind-fetch/internal/fetch"
	"wind-fetch/internal/view"
)

func main() {
	cfg := app.NewConfig()
	cfg.Metadata = false
	cfg.Bind(flag.CommandLine)
	src := source{cfg: cfg}
	flag.BoolVar(&src.demo, "demo", false, "show a synthetic terrain instead of -i")
	flag.Int64Var(&src.seed, "seed", 1, "synthetic terrain seed")
	flag.IntVar(&src.rows, "rows", 160, "synthetic terrain rows")
	flag.IntVar(&src.cols, "cols", 200, "synthetic terrain columns")
	scale := flag.Int("scale", 3, "pixels per cell")
	flag.Parse()

	logger := app.NewLogger(os.Stderr, cfg.LogFormat, cfg.Verbose)
	fetch.SetLogger(logger)

	scene, err := buildScene(src, logger)
	if err != nil {
		log.Fatal(err)
	}

	game := view.New(scene, *scale)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("fetchview: " + scene.Title)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

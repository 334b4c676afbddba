package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-particle-field/pkg/config"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/host"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/store"
	"github.com/lao-tseu-is-alive/go-particle-field/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", "", "YAML config file; embedded defaults fill the gaps")
	writeConfig := flag.String("write-config", "", "write the effective config to this file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *writeConfig != "" {
		if err := cfg.WriteYAML(*writeConfig); err != nil {
			log.Fatal(err)
		}
		return
	}

	logger := golog.New(cfg.Level(), os.Stderr)

	var local store.Store = store.NewMemory()
	if cfg.StorePath != "" {
		fs, err := store.OpenFile(cfg.StorePath, logger)
		if err != nil {
			log.Fatal(err)
		}
		logger.Infof("remembering preferences in %s", fs.Path())
		local = fs
	}

	out, err := telemetry.CreateCSV(cfg.Telemetry.CSVPath)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	game, err := host.NewGame(host.Options{
		Config:    cfg,
		Logger:    logger,
		Local:     local,
		Session:   store.NewMemory(),
		Telemetry: telemetry.NewCollector(cfg.Telemetry.Window, cfg.Telemetry.Every, out, logger),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"embed"
	"flag"
	"log"

	"github.com/pkg/errors"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/flavono123/shaper/internal/config"
	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/logging"
	"github.com/flavono123/shaper/internal/property"
	"github.com/flavono123/shaper/internal/store"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	envFile := flag.String("env", ".env", "path to an env file")
	importFile := flag.String("import", "", "start from the properties of a JSON Schema file")
	flag.Parse()

	if err := run(*envFile, *importFile); err != nil {
		log.Fatalf("shaper-gui: %v", err)
	}
}

func run(envFile, importFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	logger, closer, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	exports, err := store.NewStore(cfg.ExportDir)
	if err != nil {
		logger.WithError(err).Error("failed to open export store")
		return err
	}
	if err := exports.Load(); err != nil {
		logger.WithError(err).Warn("failed to load export index")
	}

	tree := field.New()
	if importFile != "" {
		imported, coerced, err := property.LoadTree(importFile)
		if err != nil {
			logger.WithError(err).Error("failed to import schema")
			return err
		}
		for _, name := range coerced {
			logger.WithField("property", name).Warn("unsupported type imported as string")
		}
		tree = imported
	}

	// Create an instance of the app structure
	app := NewApp(tree, exports, logger)

	err = wails.Run(&options.App{
		Title:  config.AppID,
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 30, G: 30, B: 46, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.WithError(err).Error("wails exited")
		return errors.Wrap(err, "failed to run app")
	}
	return nil
}

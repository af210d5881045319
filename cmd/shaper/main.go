package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/flavono123/shaper/internal/config"
	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/logging"
	"github.com/flavono123/shaper/internal/property"
	"github.com/flavono123/shaper/internal/store"
	"github.com/flavono123/shaper/internal/ui"
)

func main() {
	envFile := flag.String("env", ".env", "path to an env file")
	importFile := flag.String("import", "", "start from the properties of a JSON Schema file")
	flag.Parse()

	// run returns before exiting so deferred closers flush the debug log.
	if err := run(*envFile, *importFile); err != nil {
		log.Fatalf("shaper: %v", err)
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

	program := tea.NewProgram(
		ui.InitModel(ui.Options{
			Tree:   tree,
			Format: cfg.PreviewFormat,
			Store:  exports,
			Logger: logger,
		}),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		logger.WithError(err).Error("program exited")
		return errors.Wrap(err, "failed to run program")
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ezBadminton/fastimport/core"
	"github.com/ezBadminton/fastimport/directory"
	"github.com/ezBadminton/fastimport/ingest"
	"github.com/ezBadminton/fastimport/internal/config"
	"github.com/ezBadminton/fastimport/internal/logging"
	"github.com/joho/godotenv"
)

type flags struct {
	configPath string
	inPath     string
	outPath    string
}

func main() {
	if err := run(); err != nil {
		logging.GetLogger().WithError(err).Error("Import failed")
		os.Exit(1)
	}
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to the YAML config file")
	flag.StringVar(&f.inPath, "in", "", "path to the export snapshot")
	flag.StringVar(&f.outPath, "out", "", "path of the JSON output, stdout when empty")
	flag.Parse()
	return f
}

func run() error {
	f := parseFlags()
	if f.inPath == "" {
		flag.Usage()
		return fmt.Errorf("the export snapshot is required: use -in=<file>")
	}

	envErr := godotenv.Load()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.InitLogger(cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		log.Debug("No .env file found, using environment variables")
	}

	source, err := ingest.LoadSnapshot(f.inPath)
	if err != nil {
		return err
	}
	log.WithField("format", source.Format()).Info("Loaded export")

	cache, err := directory.OpenCache(cfg.Cache.Path)
	if err != nil {
		return err
	}
	defer cache.Close()

	registry := directory.NewRegistry(cache, directory.NewPageResolver(cfg.Pages.Dir))

	ctx := context.Background()
	players, err := source.Players(ctx, registry)
	if err != nil {
		return fmt.Errorf("failed to resolve players: %w", err)
	}

	tournament, err := core.Process(source.Competitions(), players)
	if err != nil {
		return err
	}

	for index, root := range tournament.Roots() {
		log.WithField("competition", root.Label(index+1)).
			WithField("subCompetitions", len(tournament.SubCompetitions(root))).
			Info("Root competition")
	}

	return writeOutput(tournament, f.outPath, cfg.Output.Indent)
}

func writeOutput(tournament *core.Tournament, path string, indent bool) error {
	out := os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	encoder := json.NewEncoder(out)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(tournament); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

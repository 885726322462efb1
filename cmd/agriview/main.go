package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agriscan/agriview/internal/app"
	"github.com/agriscan/agriview/internal/constants"
	"github.com/agriscan/agriview/internal/log"
	"github.com/agriscan/agriview/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "", "Path to YAML configuration file (optional)")
	inputFile := flag.String("input", "", "Path to simulation_logs.json (overrides config)")
	outputDir := flag.String("output-dir", "", "Directory for report and chart data (overrides config)")
	serve := flag.Bool("serve", false, "Serve computed results over HTTP after the run")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("agriview %s\n", constants.Version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := loadConfig(*cfgFile)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// CLI overrides win over the config file. A bare positional argument
	// names the input file, matching the original tooling.
	if flag.NArg() > 0 {
		cfg.Input.File = flag.Arg(0)
	}
	if *inputFile != "" {
		cfg.Input.File = *inputFile
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *serve && cfg.Server == nil {
		cfg.Server = &config.ServerData{ListenAddr: "127.0.0.1", Port: 8090}
	}

	application := app.New(cfg, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}

	filename, _ := filepath.Abs(cfgFile)
	cfg, err := config.NewYAMLProvider(filename).LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Run with -h for help: %w", err)
	}
	return cfg, nil
}

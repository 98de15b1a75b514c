package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/vjelic/blogforge/internal/build"
	"github.com/vjelic/blogforge/internal/config"
)

func main() {
	configPath := flag.String("config", "blogforge.toml", "path to config file")
	root := flag.String("root", "", "content root (overrides config)")
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this file")
	flag.Parse()

	if err := run(*configPath, *root, *cpuProfile); err != nil {
		slog.Error("build failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, root, cpuProfile string) error {
	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("creating profile file: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	// Load configuration (auto-creates a default file if missing).
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if root != "" {
		cfg.Content.Root = root
	}

	caps := build.Setup()
	slog.Info("starting build", "version", caps.Version, "root", cfg.Content.Root)

	return build.Run(context.Background(), cfg)
}

package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/moveboard/moveboard/internal/seeder"
	"github.com/moveboard/moveboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumEvents  = 5000
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		bundlePath = flag.String("bundle", "data/moves.json", "Path to the move catalog bundle")
		category   = flag.String("category", "", "Category to seed (default: all categories in the bundle)")
		numEvents  = flag.Int("events", defaultNumEvents, "Number of comparisons to generate and submit")
		workers    = flag.Int("workers", runtime.NumCPU()*2, "Number of concurrent submit workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seeder.Config{
		BaseURL:    *baseURL,
		BundlePath: *bundlePath,
		Category:   *category,
		NumEvents:  *numEvents,
		Workers:    *workers,
		Timeout:    *timeout,
		Verbose:    *verbose,
	}

	if err := seeder.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

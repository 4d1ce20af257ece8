package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/revintel/internal/demo"
	"github.com/okian/revintel/pkg/logger"
)

// Default configuration constants.
const (
	defaultTopN        = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultDemoTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "Base URL of the service")
		topN    = flag.Int("top", defaultTopN, "Number of top leads to fetch")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent requests")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		format  = flag.String("log-format", "text", "Log format: text or json")
		verbose = flag.Bool("verbose", false, "Log every scored subject")
	)
	flag.Parse()

	// Logs go to stderr, the report to stdout.
	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithFormat(*format)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDemoTimeout)
	defer cancel()

	cfg := demo.Config{
		BaseURL: *baseURL,
		Workers: *workers,
		Timeout: *timeout,
		TopN:    *topN,
		Verbose: *verbose,
	}
	if _, err := demo.Run(ctx, cfg, logger.Named("demo"), os.Stdout); err != nil {
		os.Stderr.WriteString("demo failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}

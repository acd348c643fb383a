package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/indiacovid/internal/smoke"
)

const defaultTestTimeout = 5 * time.Minute

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "Base URL of the dashboard")
		rounds  = flag.Int("rounds", smoke.DefaultRounds, "Times each status is posted to the callback")
		workers = flag.Int("workers", smoke.DefaultWorkers, "Number of concurrent callback workers")
		timeout = flag.Duration("timeout", smoke.DefaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Also write logs to this file")
		verbose = flag.Bool("verbose", false, "Log every callback response")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	if err := smoke.SetupLogging(*logFile, *verbose); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTestTimeout)
	defer cancel()

	config := &smoke.Config{
		BaseURL: *baseURL,
		Rounds:  *rounds,
		Workers: *workers,
		Timeout: *timeout,
		LogFile: *logFile,
		Verbose: *verbose,
	}

	if _, err := smoke.Run(ctx, config); err != nil {
		_, _ = os.Stderr.WriteString("Smoke test failed: " + err.Error() + "\n")
		cancel()
		stop()
		os.Exit(1)
	}
}

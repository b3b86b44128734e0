package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/suwen/internal/probe"
)

// runTimeout bounds a whole probe run.
const runTimeout = 2 * time.Minute

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:3000", "Base URL of the backend API")
		workers = flag.Int("workers", probe.DefaultWorkers, "Maximum concurrent calls")
		timeout = flag.Duration("timeout", probe.DefaultTimeout, "Per-call HTTP timeout")
		lang    = flag.String("lang", probe.DefaultLang, "Language for language-aware endpoints")
		verbose = flag.Bool("verbose", false, "Log every call as it completes")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp(os.Stdout)
		return
	}

	if err := probe.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	report, err := probe.Run(ctx, probe.Config{
		BaseURL: *baseURL,
		Workers: *workers,
		Timeout: *timeout,
		Lang:    *lang,
		Verbose: *verbose,
	})
	if report != nil {
		_ = probe.WriteReport(os.Stdout, report)
	}
	if err != nil {
		if !errors.Is(err, probe.ErrProbeFailed) {
			os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}

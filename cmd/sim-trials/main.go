package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/perceptlab/syntrial/internal/simtrials"
)

// Default configuration constants.
const (
	defaultParticipants     = 50
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	defaultTimeout          = 30 * time.Second
	defaultRunTimeout       = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		participants = flag.Int("participants", defaultParticipants, "Number of simulated participants")
		testType     = flag.String("test", "letter", "Test type to run sessions for")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent session drivers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile   = flag.String("output", "", "Output file for session records (default: sim_sessions_TIMESTAMP.json)")
		logFile      = flag.String("log", "", "Log file for simulation output (default: sim_log_TIMESTAMP.log)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simtrials.ShowHelp()
		return
	}

	if err := simtrials.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &simtrials.Config{
		BaseURL:      *baseURL,
		Participants: *participants,
		TestType:     *testType,
		Workers:      *workers,
		Timeout:      *timeout,
		OutputFile:   *outputFile,
		LogFile:      *logFile,
		Verbose:      *verbose,
	}

	if err := simtrials.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}

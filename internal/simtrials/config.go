// Package simtrials drives simulated participants through complete test
// sessions against a running results service, then verifies what landed
// in the result store.
package simtrials

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Participants int           // Number of simulated participants
	TestType     string        // Test type to run sessions for
	Workers      int           // Number of concurrent session drivers
	Timeout      time.Duration // HTTP request timeout
	OutputFile   string        // Output file for submitted batches
	LogFile      string        // Log file for simulation output
	Verbose      bool          // Enable verbose logging
}

// Stats holds simulation statistics.
type Stats struct {
	SessionsStarted   int
	SessionsCompleted int
	SessionsFailed    int
	TrialsAnswered    int
	BatchesVerified   int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

package simtrials

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/perceptlab/syntrial/pkg/logger"
)

// File permission constants.
const (
	outputFilePermission = 0o600
	directoryPermission  = 0o750
)

// verifyResults checks that every completed session produced a stored
// batch with the expected trial count.
func verifyResults(ctx context.Context, client *HTTPClient, config *Config, records []sessionRecord, stats *Stats) error {
	logger.Get().Info(ctx, "verifying stored results", logger.Int("sessions", len(records)))

	if len(records) == 0 {
		return fmt.Errorf("no completed sessions to verify")
	}

	verified := 0
	for _, record := range records {
		summaries, err := fetchSummaries(ctx, client, config.BaseURL, record.ParticipantID)
		if err != nil {
			logger.Get().Warn(ctx, "summary fetch failed",
				logger.String("participantID", record.ParticipantID),
				logger.Error(err))
			continue
		}

		found := false
		for _, summary := range summaries {
			if summary.TrialCount != record.Trials {
				continue
			}
			if summary.TestType != config.TestType {
				continue
			}
			found = true
			if config.Verbose {
				logger.Get().Info(ctx, "batch verified",
					logger.String("participantID", record.ParticipantID),
					logger.String("batchID", summary.BatchID),
					logger.Int("trials", summary.TrialCount),
					logger.Float64("meanReactionMS", summary.MeanReactionMS),
					logger.Float64("consistency", summary.Consistency))
			}
			break
		}
		if !found {
			logger.Get().Warn(ctx, "no matching batch stored",
				logger.String("participantID", record.ParticipantID),
				logger.Int("expectedTrials", record.Trials))
			continue
		}
		verified++
	}

	stats.BatchesVerified = verified
	if verified < len(records) {
		return fmt.Errorf("only %d of %d sessions verified", verified, len(records))
	}

	logger.Get().Info(ctx, "all sessions verified", logger.Int("count", verified))
	return nil
}

// saveRecordsToFile saves the completed session records to a JSON file.
func saveRecordsToFile(ctx context.Context, config *Config, records []sessionRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "sim_sessions_" + timestamp + ".json"
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := os.WriteFile(filename, data, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "session records saved", logger.String("filename", filename))
	return nil
}
